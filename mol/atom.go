// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mol implements the molecular data model: atoms, waters, bodies,
// molecules and the change-tracking state manager
package mol

import (
	"math"

	"github.com/cpmech/gosaxs/ffs"
)

// Atom is the weight-carrying form used by the distance kernels: a position
// in Å and an effective scattering weight
type Atom struct {
	X, Y, Z float64 // coordinates [Å]
	W       float64 // effective scattering weight [e]
}

// Distance computes the Euclidean distance to another atom
func (o *Atom) Distance(b *Atom) float64 {
	dx, dy, dz := o.X-b.X, o.Y-b.Y, o.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// AtomFF is an atom with its form-factor tag
type AtomFF struct {
	Atom
	Type ffs.Type // form-factor type
}

// NewAtomFF creates an atom with the weight implied by its type
func NewAtomFF(x, y, z float64, t ffs.Type) AtomFF {
	return AtomFF{Atom: Atom{X: x, Y: y, Z: z, W: ffs.Charge(t)}, Type: t}
}

// Water is a hydration-layer molecule. it scatters like a free water (O-like
// with two hydrogens) and is not part of the molecule's chemistry
type Water struct {
	Atom
}

// NewWater creates a water at the given position
func NewWater(x, y, z float64) Water {
	return Water{Atom: Atom{X: x, Y: y, Z: z, W: ffs.Charge(ffs.OH) + ffs.Charge(ffs.H)}}
}
