// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"math"

	"github.com/cpmech/gosaxs/ffs"
	"github.com/cpmech/gosaxs/grid"
	"github.com/cpmech/gosaxs/inp"
	"github.com/cpmech/gosaxs/mol"
	"github.com/cpmech/gosl/chk"
)

// Manager computes the composite distance histogram of a molecule. a manager
// is allocated once per molecule and reused across fit iterations
type Manager interface {
	CalculateAll() (Histogram, error)
}

// Histogram is the view the fitter needs of either composite
type Histogram interface {
	TotalCounts() []float64
	NumBins() int
	ApplyWaterScaling(c float64)
	DebyeTransform(q Axis) ([]float64, error)
}

// manager factory
var managers = make(map[string]func(m *mol.Molecule, stg *inp.Settings) Manager)

// NewManager allocates a histogram manager by name
func NewManager(name string, m *mol.Molecule, stg *inp.Settings) (Manager, error) {
	alloc, ok := managers[name]
	if !ok {
		return nil, chk.Err("unknown histogram manager %q", name)
	}
	return alloc(m, stg), nil
}

func init() {
	managers["full"] = func(m *mol.Molecule, stg *inp.Settings) Manager {
		return &Full{m: m, stg: stg, serial: true}
	}
	managers["full-mt"] = func(m *mol.Molecule, stg *inp.Settings) Manager {
		return &Full{m: m, stg: stg}
	}
	managers["full-mt-ff"] = func(m *mol.Molecule, stg *inp.Settings) Manager {
		return &FullFF{m: m, stg: stg}
	}
	managers["partial"] = func(m *mol.Molecule, stg *inp.Settings) Manager {
		return NewPartial(m, stg, true)
	}
	managers["partial-mt"] = func(m *mol.Molecule, stg *inp.Settings) Manager {
		return NewPartial(m, stg, false)
	}
}

// defaultNBins sizes the scratch histograms: enough bins for the largest
// distance across the bounding box of the molecule plus hydration
func defaultNBins(m *mol.Molecule, binwidth float64) int {
	lo := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	grow := func(x, y, z float64) {
		p := [3]float64{x, y, z}
		for d := 0; d < 3; d++ {
			lo[d] = math.Min(lo[d], p[d])
			hi[d] = math.Max(hi[d], p[d])
		}
	}
	for _, b := range m.Bodies {
		for i := range b.Atoms {
			grow(b.Atoms[i].X, b.Atoms[i].Y, b.Atoms[i].Z)
		}
	}
	for _, w := range m.AllWaters() {
		grow(w.X, w.Y, w.Z)
	}
	dx, dy, dz := hi[0]-lo[0], hi[1]-lo[1], hi[2]-lo[2]
	dmax := math.Sqrt(dx*dx+dy*dy+dz*dz) + 5.0 // hydration shells extend past the atoms
	n := int(dmax/binwidth) + 2
	if n < 10 {
		n = 10
	}
	return n
}

// Full rebuilds the three partial histograms from scratch on every call. the
// multi-threaded form fans the outer loops over the worker pool
type Full struct {
	m      *mol.Molecule
	stg    *inp.Settings
	serial bool
}

// CalculateAll computes aa, aw and ww and assembles the composite
func (o *Full) CalculateAll() (Histogram, error) {
	exv, err := NewExvModel(o.stg.ExvMethod)
	if err != nil {
		return nil, err
	}
	if exv.RequiresFF() {
		return nil, chk.Err("bad state: manager %q cannot serve the form-factor method %q; use full-mt-ff", "full", exv.Name())
	}
	nbins := defaultNBins(o.m, o.stg.BinWidth)
	jobsize := o.stg.JobSize
	if o.serial {
		jobsize = 1 << 30 // one job: the pool still runs it, on one worker
	}
	k := NewKernel(nbins, o.stg.BinWidth, jobsize)

	ca := NewCompactAtoms(o.m.Bodies)
	cw := NewCompactWaters(o.m.AllWaters())
	if exv.Name() == "grid" {
		// excluded volume carried by grid pseudo-atoms with negative weights
		g, ok := o.m.Grid().(*grid.Grid)
		if !ok || g == nil {
			if g, err = grid.New(o.stg, o.m.Bodies); err != nil {
				return nil, err
			}
			o.m.SetGrid(g)
		}
		g.ExpandVolume()
		cellW := ffs.RhoWater * g.W * g.W * g.W
		ca = appendCompact(ca, NewCompactPoints(g.VolumeCells(), -cellW))
	} else {
		ca.ApplySimpleExv(o.stg)
	}

	var aa, aw, ww Dist1
	var waa, waw, www WDist1
	if o.stg.WeightedBins {
		waa = k.SelfWeighted(ca)
		www = k.SelfWeighted(cw)
		waw = k.CrossWeighted(ca, cw)
		aa, aw, ww = waa.Values(), waw.Values(), www.Values()
	} else {
		aa = k.Self(ca)
		ww = k.Self(cw)
		aw = k.Cross(ca, cw)
	}

	// truncate trailing zero bins, keeping at least 10
	ptot := aa.Clone()
	for i := range ptot {
		ptot[i] += aw[i] + ww[i]
	}
	maxBin := trailingBin(ptot, 10)
	aa, aw, ww = aa[:maxBin], aw[:maxBin], ww[:maxBin]
	if o.stg.WeightedBins {
		waa, waw, www = waa[:maxBin], waw[:maxBin], www[:maxBin]
	}

	c := NewComposite(aa, aw, ww, waa, waw, www, o.stg.BinWidth)
	c.V = o.m.AvgDisplacedVolume()
	c.Exv = exv
	o.m.SetHistogram(c)
	return c, nil
}

// FullFF rebuilds the form-factor-resolved distributions from scratch: one
// compact buffer per present type, pairwise cross kernels, plain pair counts
type FullFF struct {
	m   *mol.Molecule
	stg *inp.Settings
}

// CalculateAll computes the typed histograms and assembles the FF composite
func (o *FullFF) CalculateAll() (Histogram, error) {
	exv, err := NewExvModel(o.stg.ExvMethod)
	if err != nil {
		return nil, err
	}
	if err = ValidateFF(o.m, exv); err != nil {
		return nil, err
	}
	nbins := defaultNBins(o.m, o.stg.BinWidth)
	k := NewKernel(nbins, o.stg.BinWidth, o.stg.JobSize)

	// split atoms by type with unit weights
	byType := make(map[ffs.Type][]mol.AtomFF)
	for _, b := range o.m.Bodies {
		for i := range b.Atoms {
			a := b.Atoms[i]
			a.W = 1
			byType[a.Type] = append(byType[a.Type], a)
		}
	}
	compact := make(map[ffs.Type]CompactCoordinates)
	for t, atoms := range byType {
		body := mol.Body{Atoms: atoms}
		compact[t] = NewCompactAtoms([]*mol.Body{&body})
	}
	waters := o.m.AllWaters()
	for i := range waters {
		waters[i].W = 1
	}
	cw := NewCompactWaters(waters)

	aat := make([]Dist1, ffs.NumTypes*ffs.NumTypes)
	awt := make([]Dist1, ffs.NumTypes)
	for t1, c1 := range compact {
		aat[ffs.Idx(t1, t1)] = k.Self(c1)
		for t2, c2 := range compact {
			if t2 <= t1 {
				continue
			}
			h := k.Cross(c1, c2)
			aat[ffs.Idx(t1, t2)] = h
			aat[ffs.Idx(t2, t1)] = h
		}
		awt[t1] = k.Cross(c1, cw)
	}
	ww := k.Self(cw)

	// truncate by the contracted totals
	c := NewCompositeFF(aat, awt, ww, o.stg.BinWidth, exv, o.m.AvgDisplacedVolume())
	maxBin := trailingBin(c.TotalCounts(), 10)
	for i := range aat {
		if aat[i] != nil {
			aat[i] = aat[i][:maxBin]
		}
	}
	for i := range awt {
		if awt[i] != nil {
			awt[i] = awt[i][:maxBin]
		}
	}
	c.WW = ww[:maxBin]
	o.m.SetHistogram(c)
	return c, nil
}

// ValidateFF rejects molecules whose atoms cannot serve the form-factor-
// resolved path: the typed distributions need resolved tags for every atom
func ValidateFF(m *mol.Molecule, exv ExvModel) error {
	for _, b := range m.Bodies {
		for i := range b.Atoms {
			if b.Atoms[i].Type == ffs.UNKNOWN {
				return chk.Err("bad state: excluded-volume method %q cannot process UNKNOWN form factor", exv.Name())
			}
		}
	}
	return nil
}

