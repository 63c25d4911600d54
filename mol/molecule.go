// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mol

import (
	"math"
	"strings"

	"github.com/cpmech/gosaxs/ffs"
	"github.com/cpmech/gosaxs/inp"
	"github.com/cpmech/gosl/chk"
)

// Gridder is the view of the spatial grid the molecule needs in order to own
// it: the molecule creates it through a constructor elsewhere, caches at most
// one instance and drops it on external change
type Gridder interface {
	Volume() float64 // Ångström³ volume of the occupied cells
}

// Histogrammer is the cached scattering histogram: the molecule only caches
// and invalidates it
type Histogrammer interface {
	TotalCounts() []float64 // current p_total
}

// Molecule is an ordered sequence of bodies with optional global hydration,
// a lazily created grid, a lazily created histogram and the state manager.
// invariant: at most one grid and at most one histogram exist; both are
// invalidated on external mutation
type Molecule struct {
	Bodies []*Body // ordered bodies
	Waters []Water // global hydration (in addition to per-body layers)

	state *StateManager // change tracking
	grid  Gridder       // cached grid (lazy)
	hist  Histogrammer  // cached histogram (lazy)
}

// NewMolecule creates a molecule from bodies and wires the signallers
func NewMolecule(bodies []*Body) (o *Molecule) {
	o = new(Molecule)
	o.Bodies = bodies
	o.state = NewStateManager(len(bodies))
	for i, b := range bodies {
		b.SetSignaller(o.state, i)
	}
	return
}

// State returns the state manager
func (o *Molecule) State() *StateManager { return o.state }

// NumBodies returns the number of bodies
func (o *Molecule) NumBodies() int { return len(o.Bodies) }

// NumAtoms returns the total number of atoms over all bodies
func (o *Molecule) NumAtoms() (n int) {
	for _, b := range o.Bodies {
		n += len(b.Atoms)
	}
	return
}

// AllAtoms collects the atoms of all bodies in body order
func (o *Molecule) AllAtoms() (atoms []AtomFF) {
	atoms = make([]AtomFF, 0, o.NumAtoms())
	for _, b := range o.Bodies {
		atoms = append(atoms, b.Atoms...)
	}
	return
}

// AllWaters collects the global hydration followed by the per-body layers
func (o *Molecule) AllWaters() (waters []Water) {
	waters = append(waters, o.Waters...)
	for _, b := range o.Bodies {
		waters = append(waters, b.Waters...)
	}
	return
}

// SetGlobalHydration replaces the molecule-level water layer
func (o *Molecule) SetGlobalHydration(waters []Water) {
	o.Waters = waters
	o.state.ModifiedHydration()
	o.hist = nil
}

// Grid returns the cached grid, or nil if none exists
func (o *Molecule) Grid() Gridder { return o.grid }

// SetGrid installs the grid created by the grid package. a second grid while
// one is cached violates the single-grid invariant
func (o *Molecule) SetGrid(g Gridder) {
	if o.grid != nil && g != nil {
		chk.Panic("molecule already has a grid")
	}
	o.grid = g
}

// Histogram returns the cached histogram, or nil if none exists
func (o *Molecule) Histogram() Histogrammer { return o.hist }

// SetHistogram installs the histogram computed by the histogram manager
func (o *Molecule) SetHistogram(h Histogrammer) { o.hist = h }

// Invalidate drops the cached grid and histogram. called after external
// mutations that outrun the dirty-tracking path
func (o *Molecule) Invalidate() {
	o.grid = nil
	o.hist = nil
}

// TranslateBody moves body i and invalidates the caches
func (o *Molecule) TranslateBody(i int, dx, dy, dz float64) (err error) {
	if i < 0 || i >= len(o.Bodies) {
		return chk.Err("out of range: body index %d (have %d)", i, len(o.Bodies))
	}
	o.Bodies[i].Translate(dx, dy, dz)
	o.Invalidate()
	return
}

// Rg computes the radius of gyration of the atoms [Å]
func (o *Molecule) Rg() float64 {
	com := [3]float64{}
	wsum := 0.0
	for _, b := range o.Bodies {
		for i := range b.Atoms {
			a := &b.Atoms[i]
			com[0] += a.W * a.X
			com[1] += a.W * a.Y
			com[2] += a.W * a.Z
			wsum += a.W
		}
	}
	if wsum == 0 {
		return 0
	}
	com[0] /= wsum
	com[1] /= wsum
	com[2] /= wsum
	sum := 0.0
	for _, b := range o.Bodies {
		for i := range b.Atoms {
			a := &b.Atoms[i]
			dx, dy, dz := a.X-com[0], a.Y-com[1], a.Z-com[2]
			sum += a.W * (dx*dx + dy*dy + dz*dz)
		}
	}
	return math.Sqrt(sum / wsum)
}

// TotalVolume sums the displaced volumes of all atoms [Å³]
func (o *Molecule) TotalVolume() (v float64) {
	for _, b := range o.Bodies {
		for i := range b.Atoms {
			v += ffs.DisplacedVolume(b.Atoms[i].Type)
		}
	}
	return
}

// AvgDisplacedVolume is the average displaced volume per atom [Å³]
func (o *Molecule) AvgDisplacedVolume() float64 {
	n := o.NumAtoms()
	if n == 0 {
		return ffs.AvgDisplacedVolume
	}
	return o.TotalVolume() / float64(n)
}

// FromPdb builds a molecule from a parsed PDB file: one body per TER-separated
// chain segment, waters routed to the global hydration layer. unknown elements
// are skipped with a one-shot warning unless the settings demand a throw
func FromPdb(pdb *inp.PdbFile, stg *inp.Settings) (o *Molecule, err error) {
	var bodies []*Body
	var atoms []AtomFF
	var waters []Water
	ter := 0
	flush := func() {
		if len(atoms) > 0 {
			bodies = append(bodies, NewBody(atoms))
			atoms = nil
		}
	}
	for i := range pdb.Atoms {
		for ter < len(pdb.Ter) && pdb.Ter[ter] == i {
			flush()
			ter++
		}
		rec := &pdb.Atoms[i]
		if stg.IsWater(rec) {
			if !strings.HasPrefix(rec.Element, "H") {
				waters = append(waters, NewWater(rec.X, rec.Y, rec.Z))
			}
			continue
		}
		t := ffs.TypeFromElement(rec.Element)
		if t == ffs.UNKNOWN {
			if stg.ThrowUnknown {
				return nil, chk.Err("unknown atom: element %q (atom %d)", rec.Element, rec.Serial)
			}
			inp.WarnOnce("unknown-element:"+rec.Element, "skipping atoms with unknown element %q", rec.Element)
			continue
		}
		if t == ffs.H && stg.ImplicitH {
			// explicit hydrogens are dropped; the heavy atoms keep their
			// plain element types
			continue
		}
		atoms = append(atoms, NewAtomFF(rec.X, rec.Y, rec.Z, t))
	}
	flush()
	if len(bodies) == 0 {
		return nil, chk.Err("parse error: no atoms in PDB input")
	}
	o = NewMolecule(bodies)
	o.Waters = waters
	return
}

// Split rebuilds a molecule with body i divided at the given atom offsets,
// so rigid-body transforms can move the pieces independently. offsets are
// ascending and strictly inside (0, len(atoms))
func Split(m *Molecule, i int, at []int) (o *Molecule, err error) {
	if i < 0 || i >= len(m.Bodies) {
		return nil, chk.Err("out of range: body index %d (have %d)", i, len(m.Bodies))
	}
	src := m.Bodies[i]
	var bodies []*Body
	bodies = append(bodies, m.Bodies[:i]...)
	prev := 0
	for _, cut := range append(append([]int{}, at...), len(src.Atoms)) {
		if cut <= prev || cut > len(src.Atoms) {
			return nil, chk.Err("out of range: split offset %d (body has %d atoms)", cut, len(src.Atoms))
		}
		bodies = append(bodies, NewBody(append([]AtomFF{}, src.Atoms[prev:cut]...)))
		prev = cut
	}
	bodies = append(bodies, m.Bodies[i+1:]...)
	o = NewMolecule(bodies)
	o.Waters = m.Waters
	return
}

// FromRawArrays builds a single-body molecule from coordinate and weight
// arrays. all atoms are tagged UNKNOWN; the excluded-volume models that need
// resolved form factors reject them
func FromRawArrays(x, y, z, w []float64) (o *Molecule, err error) {
	if len(y) != len(x) || len(z) != len(x) || len(w) != len(x) {
		return nil, chk.Err("dimension mismatch: coordinate arrays have unequal lengths")
	}
	atoms := make([]AtomFF, len(x))
	for i := range x {
		atoms[i] = AtomFF{Atom: Atom{X: x[i], Y: y[i], Z: z[i], W: w[i]}, Type: ffs.UNKNOWN}
	}
	return NewMolecule([]*Body{NewBody(atoms)}), nil
}
