// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mol

import (
	"github.com/cpmech/gosaxs/ffs"
	"github.com/cpmech/gosl/chk"
)

// next body uid; bodies keep their identity through grid membership maps
var bodyUID int

// Body is a contiguous collection of atoms with an optional hydration layer,
// a stable unique identifier, a change signaller and zero or more symmetry
// descriptors. atoms never mutate without the signaller emitting the
// corresponding internal or external change
type Body struct {
	Atoms      []AtomFF   // atoms with form-factor tags
	Waters     []Water    // per-body hydration (optional)
	Symmetries []Symmetry // rigid repetitions of this body

	uid       int       // stable unique identifier
	signaller Signaller // change notifications
}

// NewBody creates a body from atoms
func NewBody(atoms []AtomFF) (o *Body) {
	o = new(Body)
	o.Atoms = atoms
	bodyUID++
	o.uid = bodyUID
	return
}

// UID returns the body's stable unique identifier
func (o *Body) UID() int { return o.uid }

// SetSignaller attaches the state-manager reference and body index
func (o *Body) SetSignaller(mgr *StateManager, idx int) {
	o.signaller = Signaller{mgr: mgr, idx: idx}
}

// Signaller returns the body's signaller
func (o *Body) Signaller() *Signaller { return &o.signaller }

// Size returns the number of atoms
func (o *Body) Size() int { return len(o.Atoms) }

// CentreOfMass computes the weight-averaged centre of the body's atoms
func (o *Body) CentreOfMass() (com [3]float64) {
	wsum := 0.0
	for i := range o.Atoms {
		a := &o.Atoms[i]
		com[0] += a.W * a.X
		com[1] += a.W * a.Y
		com[2] += a.W * a.Z
		wsum += a.W
	}
	if wsum > 0 {
		com[0] /= wsum
		com[1] /= wsum
		com[2] /= wsum
	}
	return
}

// Translate moves every atom (and water) by (dx, dy, dz) and signals an
// external change
func (o *Body) Translate(dx, dy, dz float64) {
	for i := range o.Atoms {
		o.Atoms[i].X += dx
		o.Atoms[i].Y += dy
		o.Atoms[i].Z += dz
	}
	for i := range o.Waters {
		o.Waters[i].X += dx
		o.Waters[i].Y += dy
		o.Waters[i].Z += dz
	}
	o.signaller.ExternalChange()
}

// Rotate applies an axis-angle rotation about the body's centre of mass and
// signals an external change
func (o *Body) Rotate(axis [3]float64, angle float64) {
	com := o.CentreOfMass()
	m := matAxisAngle(axis, angle)
	for i := range o.Atoms {
		a := &o.Atoms[i]
		x, y, z := m.apply(a.X-com[0], a.Y-com[1], a.Z-com[2])
		a.X, a.Y, a.Z = x+com[0], y+com[1], z+com[2]
	}
	for i := range o.Waters {
		w := &o.Waters[i]
		x, y, z := m.apply(w.X-com[0], w.Y-com[1], w.Z-com[2])
		w.X, w.Y, w.Z = x+com[0], y+com[1], z+com[2]
	}
	o.signaller.ExternalChange()
}

// SetHydration replaces the body's water layer and signals the hydration
// change
func (o *Body) SetHydration(waters []Water) {
	o.Waters = waters
	o.signaller.HydrationChange()
}

// RetagAtoms replaces form-factor tags in place (same positions) and signals
// an internal change
func (o *Body) RetagAtoms(types []ffs.Type) (err error) {
	if len(types) != len(o.Atoms) {
		return chk.Err("dimension mismatch: %d tags for %d atoms", len(types), len(o.Atoms))
	}
	for i, t := range types {
		o.Atoms[i].Type = t
		o.Atoms[i].W = ffs.Charge(t)
	}
	o.signaller.InternalChange()
	return
}

// AddSymmetry appends a symmetry descriptor and signals the change
func (o *Body) AddSymmetry(s Symmetry) {
	o.Symmetries = append(o.Symmetries, s)
	o.signaller.SymmetryChange(len(o.Symmetries) - 1)
}

// SetSymmetry replaces the j-th symmetry descriptor and signals the change
func (o *Body) SetSymmetry(j int, s Symmetry) (err error) {
	if j < 0 || j >= len(o.Symmetries) {
		return chk.Err("out of range: symmetry index %d (have %d)", j, len(o.Symmetries))
	}
	o.Symmetries[j] = s
	o.signaller.SymmetryChange(j)
	return
}
