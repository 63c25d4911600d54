// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Composite owns the three partial histograms (atom-atom, atom-water,
// water-water), the total-counts buffer and the free parameters. the water
// contribution can be rescaled without recomputing distances:
//  p_total[i] = aa[i] + 2·c_water·aw[i] + c_water²·ww[i]
type Composite struct {
	AA, AW, WW Dist1  // partial histograms
	WAA        WDist1 // weighted forms (optional; nil when weighted bins are off)
	WAW        WDist1
	WWW        WDist1

	PTot     []float64 // current total counts
	BinWidth float64   // distance bin width [Å]
	DCentres []float64 // bin centres (weighted when enabled)

	// free parameters
	CWater   float64 // hydration scale
	CExv     float64 // excluded-volume scale
	CSolvent float64 // solvent density [e/Å³]
	BAtom    float64 // atomic Debye-Waller factor [Å²]
	BExv     float64 // exv Debye-Waller factor [Å²]

	Exv ExvModel // excluded-volume method (envelope only for the plain composite)
	V   float64  // average displaced volume [Å³]

	wtable     *DebyeTable // cached per-call table for the weighted centres
	wtableAxis Axis
}

// NewComposite assembles a plain composite from its partials. weighted
// partials may be nil
func NewComposite(aa, aw, ww Dist1, waa, waw, www WDist1, binwidth float64) (o *Composite) {
	o = new(Composite)
	o.AA, o.AW, o.WW = aa, aw, ww
	o.WAA, o.WAW, o.WWW = waa, waw, www
	o.BinWidth = binwidth
	o.CWater = 1
	o.CExv = 1
	o.CSolvent = 0.334
	o.Exv, _ = NewExvModel("simple")
	o.V = 18.0
	o.computeCentres()
	o.ApplyWaterScaling(1)
	return
}

// computeCentres derives the bin centres, using the weighted sums when they
// are present
func (o *Composite) computeCentres() {
	n := len(o.AA)
	if o.WAA != nil {
		// merge the three weighted partials so a bin centre reflects all pairs
		merged := make(WDist1, n)
		merged.AddDist(o.WAA)
		if o.WAW != nil {
			merged.AddDist(o.WAW)
		}
		if o.WWW != nil {
			merged.AddDist(o.WWW)
		}
		o.DCentres = merged.Centres(o.BinWidth)
		return
	}
	o.DCentres = DVals(n, o.BinWidth)
}

// TotalCounts returns the current p_total
func (o *Composite) TotalCounts() []float64 { return o.PTot }

// NumBins returns the histogram length
func (o *Composite) NumBins() int { return len(o.AA) }

// ApplyWaterScaling recomputes only the total counts from the unchanged
// partials; the distance computation path is never touched
func (o *Composite) ApplyWaterScaling(c float64) {
	o.CWater = c
	if o.PTot == nil {
		o.PTot = make([]float64, len(o.AA))
	}
	for i := range o.AA {
		o.PTot[i] = o.AA[i] + 2.0*c*o.AW[i] + c*c*o.WW[i]
	}
}

// SetExvScale sets the excluded-volume scaling
func (o *Composite) SetExvScale(c float64) { o.CExv = c }

// SetSolventDensity sets the solvent density [e/Å³]
func (o *Composite) SetSolventDensity(rho float64) { o.CSolvent = rho }

// SetDebyeWaller sets the atomic and exv Debye-Waller factors [Å²]
func (o *Composite) SetDebyeWaller(bAtom, bExv float64) { o.BAtom, o.BExv = bAtom, bExv }

// ExvLimits returns the admissible excluded-volume scaling range
func (o *Composite) ExvLimits() (lo, hi float64) { return o.Exv.Limits() }

// DebyeTransform computes I(q) over the given q-axis,
//  I(q) = exp(-q²) · Σ_i p_total[i] · sinc(q·d_i)
// the excluded-volume envelope G(q) and the atomic Debye-Waller factor
// exp(-B_atom·q²/2) multiply the whole sum; BExv and CSolvent have no effect
// here. a non-finite result is a numeric error
func (o *Composite) DebyeTransform(q Axis) (I []float64, err error) {
	qvals := q.Vals()
	var table *DebyeTable
	if o.WAA != nil {
		// weighted centres are per-composite; the table is owned, not shared
		if o.wtable == nil || o.wtableAxis != q {
			o.wtable = NewDebyeTable(qvals, o.DCentres)
			o.wtableAxis = q
		}
		table = o.wtable
	} else {
		table = GetDebyeTable(q, len(o.PTot), o.BinWidth)
	}
	I = make([]float64, len(qvals))
	for iq, qv := range qvals {
		row := table.Row(iq)
		sum := 0.0
		for i, p := range o.PTot {
			sum += p * row[i]
		}
		g := o.Exv.Factor(qv, o.CExv, o.V)
		dw := math.Exp(-o.BAtom * qv * qv / 2.0)
		I[iq] = sum * math.Exp(-qv*qv) * g * dw
		if math.IsNaN(I[iq]) || math.IsInf(I[iq], 0) {
			return nil, chk.Err("numeric error: non-finite intensity at q = %g", qv)
		}
	}
	return
}
