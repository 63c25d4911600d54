// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tests holds the end-to-end scenarios exercising the public API
package tests

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

// Verbose enables printing in the scenarios
func Verbose() {
	io.Verbose = true
	chk.Verbose = true
}
