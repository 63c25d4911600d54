// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

// Member records one object (atom or water) inside the grid: its absolute
// position, its centre bin and whether its volume has been expanded
type Member[T any] struct {
	Obj      T       // the atom or water
	X, Y, Z  float64 // absolute position [Å]
	I, J, K  int     // centre bin
	Expanded bool    // volume/shell stamped
}
