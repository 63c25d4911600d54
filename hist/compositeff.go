// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"math"

	"github.com/cpmech/gosaxs/ffs"
	"github.com/cpmech/gosl/chk"
)

// CompositeFF is the form-factor-resolved composite: the atom-atom and
// atom-water distributions are indexed additionally by form-factor type, and
// the total intensity is the contraction with the product table, the
// excluded-volume envelope and the Debye-Waller envelopes. the pair counts
// are plain (unit weights); all scattering amplitudes enter at transform time
type CompositeFF struct {
	AAT []Dist1 // [NumTypes²] ordered-pair histograms per type pair
	AWT []Dist1 // [NumTypes]  atom-water histograms per atom type
	WW  Dist1   // water-water histogram

	BinWidth float64 // distance bin width [Å]

	// free parameters
	CWater   float64 // hydration scale
	CExv     float64 // excluded-volume scale
	CSolvent float64 // solvent density [e/Å³]
	BAtom    float64 // atomic Debye-Waller factor [Å²]
	BExv     float64 // exv Debye-Waller factor [Å²]

	Exv ExvModel // excluded-volume method
	V   float64  // average displaced volume [Å³]
}

// NewCompositeFF assembles a form-factor-resolved composite
func NewCompositeFF(aat, awt []Dist1, ww Dist1, binwidth float64, exv ExvModel, v float64) (o *CompositeFF) {
	o = new(CompositeFF)
	o.AAT, o.AWT, o.WW = aat, awt, ww
	o.BinWidth = binwidth
	o.CWater = 1
	o.CExv = 1
	o.CSolvent = ffs.RhoWater
	o.Exv = exv
	o.V = v
	return
}

// NumBins returns the histogram length
func (o *CompositeFF) NumBins() int { return len(o.WW) }

// TotalCounts contracts the typed distributions into plain total counts with
// the current water scaling, weighting pairs by the atomic charges and the
// q = 0 water form factor; the excluded volume is not subtracted. used by
// callers that only need the distance distribution
func (o *CompositeFF) TotalCounts() []float64 {
	p := make([]float64, o.NumBins())
	for t1 := 0; t1 < ffs.NumTypes; t1++ {
		for t2 := 0; t2 < ffs.NumTypes; t2++ {
			aa := o.AAT[ffs.Idx(ffs.Type(t1), ffs.Type(t2))]
			if aa == nil {
				continue
			}
			z := ffs.Charge(ffs.Type(t1)) * ffs.Charge(ffs.Type(t2))
			for i := range aa {
				p[i] += z * aa[i]
			}
		}
		aw := o.AWT[t1]
		if aw == nil {
			continue
		}
		zw := ffs.Charge(ffs.Type(t1)) * ffs.WaterFF(0)
		for i := range aw {
			p[i] += 2.0 * o.CWater * zw * aw[i]
		}
	}
	zww := ffs.WaterFF(0) * ffs.WaterFF(0)
	for i := range o.WW {
		p[i] += o.CWater * o.CWater * zww * o.WW[i]
	}
	return p
}

// ApplyWaterScaling sets the hydration scale; the contraction happens at
// transform time, so only the parameter changes
func (o *CompositeFF) ApplyWaterScaling(c float64) { o.CWater = c }

// SetExvScale sets the excluded-volume scaling
func (o *CompositeFF) SetExvScale(c float64) { o.CExv = c }

// SetSolventDensity sets the solvent density [e/Å³]
func (o *CompositeFF) SetSolventDensity(rho float64) { o.CSolvent = rho }

// SetDebyeWaller sets the atomic and exv Debye-Waller factors [Å²]
func (o *CompositeFF) SetDebyeWaller(bAtom, bExv float64) { o.BAtom, o.BExv = bAtom, bExv }

// ExvLimits returns the admissible excluded-volume scaling range
func (o *CompositeFF) ExvLimits() (lo, hi float64) { return o.Exv.Limits() }

// DebyeTransform computes I(q) by contracting the typed distributions with
// the form-factor products:
//  amplitude per atom: Z·f_a·e^(-B_a q²/2) − G(q)·ρV·f_x·e^(-B_x q²/2)
// the solvent density scales the exv amplitudes through ρ/ρ_water
func (o *CompositeFF) DebyeTransform(q Axis) (I []float64, err error) {
	qvals := q.Vals()
	nb := o.NumBins()
	table := GetDebyeTable(q, nb, o.BinWidth)
	prods := getProductTable(q)
	rhoScale := o.CSolvent / ffs.RhoWater

	// collapse the typed distributions once per q into an effective p_total
	I = make([]float64, len(qvals))
	for iq, qv := range qvals {
		row := table.Row(iq)
		g := o.Exv.Factor(qv, o.CExv, o.V) * rhoScale
		dwA := math.Exp(-o.BAtom * qv * qv / 2.0)
		dwX := math.Exp(-o.BExv * qv * qv / 2.0)

		sum := 0.0
		for t1 := 0; t1 < ffs.NumTypes; t1++ {
			for t2 := 0; t2 < ffs.NumTypes; t2++ {
				idx := ffs.Idx(ffs.Type(t1), ffs.Type(t2))
				aa := o.AAT[idx]
				if aa == nil {
					continue
				}
				// (Z1 f1 dwA - G ρV1 fx1 dwX)(Z2 f2 dwA - G ρV2 fx2 dwX)
				ff := prods.AA[idx][iq]*dwA*dwA +
					g*g*prods.XX[idx][iq]*dwX*dwX -
					g*dwA*dwX*(prods.AX[idx][iq]+prods.AX[ffs.Idx(ffs.Type(t2), ffs.Type(t1))][iq])
				s := 0.0
				for i := range aa {
					s += aa[i] * row[i]
				}
				sum += ff * s
			}
			aw := o.AWT[t1]
			if aw == nil {
				continue
			}
			ff := prods.AW[t1][iq]*dwA - g*prods.XW[t1][iq]*dwX
			s := 0.0
			for i := range aw {
				s += aw[i] * row[i]
			}
			sum += 2.0 * o.CWater * ff * s
		}
		s := 0.0
		for i := range o.WW {
			s += o.WW[i] * row[i]
		}
		sum += o.CWater * o.CWater * prods.WW[iq] * s

		I[iq] = sum
		if math.IsNaN(sum) || math.IsInf(sum, 0) {
			return nil, chk.Err("numeric error: non-finite intensity at q = %g", qv)
		}
	}
	return
}
