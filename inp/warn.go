// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"sync"

	"github.com/cpmech/gosl/io"
)

// warned holds the warnings already emitted; each message is printed once per
// process and suppressed thereafter
var (
	warned   = make(map[string]bool)
	warnedMu sync.Mutex
)

// WarnOnce prints a warning message the first time it occurs
func WarnOnce(key, msg string, args ...interface{}) {
	warnedMu.Lock()
	defer warnedMu.Unlock()
	if warned[key] {
		return
	}
	warned[key] = true
	io.Pfyel("WARNING: "+msg+"\n", args...)
}

// warnLegacyManager flags the single-threaded managers which are kept for
// verification runs only
func warnLegacyManager(name string) {
	if name == "full" || name == "partial" {
		WarnOnce("legacy-manager", "histogram manager %q is single-threaded; use %q-mt unless verifying", name, name)
	}
}

// ResetWarnings clears the per-process warning set (tests only)
func ResetWarnings() {
	warnedMu.Lock()
	defer warnedMu.Unlock()
	warned = make(map[string]bool)
}
