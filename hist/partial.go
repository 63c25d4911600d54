// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"sync"

	"github.com/cpmech/gosaxs/inp"
	"github.com/cpmech/gosaxs/mol"
)

// Partial keeps the pairwise histograms of the body matrix and recomputes
// only the blocks touched by modified bodies. with n bodies the self
// correlations sit on the diagonal; the upper triangle holds the inter-body
// blocks; the hydration layer extends the matrix by one row (aw) plus the
// water-water corner
type Partial struct {
	m      *mol.Molecule
	stg    *inp.Settings
	serial bool

	nbins  int
	coords []CompactCoordinates // per-body compact atoms (exv-corrected)
	coordw CompactCoordinates   // compact waters

	selfAA []Dist1   // [n] per-body self-correlation
	pairAA [][]Dist1 // [n][n] inter-body blocks; i < j populated
	partAW []Dist1   // [n] atom-water blocks
	partWW Dist1     // water-water

	ready bool
	mu    sync.Mutex // guards merges into the master histogram
}

// NewPartial creates a partial manager. serial restricts each kernel call to
// one job
func NewPartial(m *mol.Molecule, stg *inp.Settings, serial bool) *Partial {
	return &Partial{m: m, stg: stg, serial: serial}
}

func (o *Partial) kernel() *Kernel {
	jobsize := o.stg.JobSize
	if o.serial {
		jobsize = 1 << 30
	}
	return NewKernel(o.nbins, o.stg.BinWidth, jobsize)
}

func (o *Partial) compactBody(i int) CompactCoordinates {
	c := NewCompactAtoms([]*mol.Body{o.m.Bodies[i]})
	c.ApplySimpleExv(o.stg)
	return c
}

// initialize precomputes everything once; the per-body self correlations are
// unaffected by rigid translations and rotations and are rarely recomputed
func (o *Partial) initialize() {
	n := o.m.NumBodies()
	o.nbins = defaultNBins(o.m, o.stg.BinWidth)
	k := o.kernel()

	o.coords = make([]CompactCoordinates, n)
	o.selfAA = make([]Dist1, n)
	o.pairAA = make([][]Dist1, n)
	o.partAW = make([]Dist1, n)
	for i := 0; i < n; i++ {
		o.pairAA[i] = make([]Dist1, n)
	}
	for i := 0; i < n; i++ {
		o.coords[i] = o.compactBody(i)
		o.selfAA[i] = k.Self(o.coords[i])
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			o.pairAA[i][j] = k.Cross(o.coords[i], o.coords[j])
		}
	}
	o.coordw = NewCompactWaters(o.m.AllWaters())
	for i := 0; i < n; i++ {
		o.partAW[i] = k.Cross(o.coords[i], o.coordw)
	}
	o.partWW = k.Self(o.coordw)
	o.ready = true
}

// CalculateAll snapshots the dirty bits, recomputes the affected blocks, sums
// the pieces, resets the state manager and returns the composite
func (o *Partial) CalculateAll() (Histogram, error) {
	sm := o.m.State()
	n := o.m.NumBodies()

	// moved bodies may outgrow the allocated bins; fall back on a full init
	if o.ready && defaultNBins(o.m, o.stg.BinWidth) > o.nbins {
		o.ready = false
	}

	if !o.ready {
		o.initialize()
	} else {
		k := o.kernel()

		// bodies whose positions changed: externally modified, or with a
		// modified symmetry descriptor. internal (identity) changes also
		// invalidate the blocks touching the body, but not through motion
		external := make([]bool, n)
		for i := 0; i < n; i++ {
			external[i] = sm.IsExternallyModified(i)
			for j := range o.m.Bodies[i].Symmetries {
				if sm.IsModifiedSymmetry(i, j) {
					external[i] = true
				}
			}
		}

		for i := 0; i < n; i++ {
			if sm.IsInternallyModified(i) {
				// identity changed: the self block is stale as well
				o.coords[i] = o.compactBody(i)
				o.selfAA[i] = k.Self(o.coords[i])
				external[i] = true
			}
		}
		for i := 0; i < n; i++ {
			if !external[i] {
				continue
			}
			o.coords[i] = o.compactBody(i)
			for j := 0; j < n; j++ {
				switch {
				case i < j:
					o.pairAA[i][j] = k.Cross(o.coords[i], o.coords[j])
				case j < i:
					o.pairAA[j][i] = k.Cross(o.coords[j], o.coords[i])
				}
			}
			o.partAW[i] = k.Cross(o.coords[i], o.coordw)
		}
		if sm.IsModifiedHydration() {
			o.coordw = NewCompactWaters(o.m.AllWaters())
			o.partWW = k.Self(o.coordw)
			for i := 0; i < n; i++ {
				o.partAW[i] = k.Cross(o.coords[i], o.coordw)
			}
		}
	}

	// merge the pieces into the master
	aa := make(Dist1, o.nbins)
	aw := make(Dist1, o.nbins)
	ww := make(Dist1, o.nbins)
	o.mu.Lock()
	for i := 0; i < n; i++ {
		aa.AddDist(o.selfAA[i])
		for j := i + 1; j < n; j++ {
			for b := range o.pairAA[i][j] {
				aa[b] += 2.0 * o.pairAA[i][j][b] // both orderings of the pair
			}
		}
		aw.AddDist(o.partAW[i])
	}
	ww.AddDist(o.partWW)
	o.mu.Unlock()

	maxBin := o.nbins
	{
		ptot := aa.Clone()
		for i := range ptot {
			ptot[i] += aw[i] + ww[i]
		}
		maxBin = trailingBin(ptot, 10)
	}

	c := NewComposite(aa[:maxBin], aw[:maxBin], ww[:maxBin], nil, nil, nil, o.stg.BinWidth)
	c.V = o.m.AvgDisplacedVolume()
	sm.ResetToFalse()
	o.m.SetHistogram(c)
	return c, nil
}
