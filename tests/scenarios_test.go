// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tests

import (
	"math"
	"strings"
	"testing"

	"github.com/cpmech/gosaxs/ana"
	"github.com/cpmech/gosaxs/ffs"
	"github.com/cpmech/gosaxs/fit"
	"github.com/cpmech/gosaxs/hist"
	"github.com/cpmech/gosaxs/inp"
	"github.com/cpmech/gosaxs/mol"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// scenario settings: weighted bins and small jobs. the excluded-volume method
// keeps its default; calcRaw bypasses it so the intensities match the bare
// analytic sums
func rawSettings() *inp.Settings {
	stg := inp.NewSettings()
	stg.WeightedBins = true
	stg.JobSize = 4
	return stg
}

// rawMolecule builds a single body of unit-weight scatterers
func rawMolecule(pts []ana.Point) *mol.Molecule {
	atoms := make([]mol.AtomFF, len(pts))
	for i, p := range pts {
		atoms[i] = mol.AtomFF{Atom: mol.Atom{X: p.X, Y: p.Y, Z: p.Z, W: p.W}, Type: ffs.UNKNOWN}
	}
	m := mol.NewMolecule([]*mol.Body{mol.NewBody(atoms)})
	m.State().ResetToFalse()
	return m
}

// calcRaw builds the composite directly from the weighted self kernel,
// bypassing the managers so no solvent subtraction is applied: every atom
// keeps its given weight
func calcRaw(tst *testing.T, m *mol.Molecule, stg *inp.Settings) hist.Histogram {
	k := hist.NewKernel(256, stg.BinWidth, stg.JobSize)
	c := hist.NewCompactAtoms(m.Bodies)
	waa := k.SelfWeighted(c)
	empty := make(hist.Dist1, 256)
	h := hist.NewComposite(waa.Values(), empty, empty.Clone(), waa, make(hist.WDist1, 256), nil, stg.BinWidth)
	return h
}

func Test_scenario01(tst *testing.T) {

	//Verbose()
	chk.PrintTitle("scenario01. eight unit-weight atoms on a 2 A cube")

	a := 2.0
	var pts []ana.Point
	for _, x := range []float64{0, a} {
		for _, y := range []float64{0, a} {
			for _, z := range []float64{0, a} {
				pts = append(pts, ana.Point{X: x, Y: y, Z: z, W: 1})
			}
		}
	}
	stg := rawSettings()
	m := rawMolecule(pts)
	h := calcRaw(tst, m, stg)

	// multiplicities at the bin centres: 8 self, 24 edge, 24 face, 8 body
	p := h.TotalCounts()
	bw := stg.BinWidth
	bin := func(d float64) int { return int(d/bw + 0.5) }
	chk.Float64(tst, "self pairs", 1e-12, p[0], 8.0)
	chk.Float64(tst, "edge pairs", 1e-12, p[bin(a)], 24.0)
	chk.Float64(tst, "face pairs", 1e-12, p[bin(a*math.Sqrt2)], 24.0)
	chk.Float64(tst, "body pairs", 1e-12, p[bin(a*math.Sqrt(3))], 8.0)
	sum := 0.0
	for _, v := range p {
		sum += v
	}
	chk.Float64(tst, "all ordered pairs", 1e-12, sum, 64.0)

	// intensity equals the analytic sum at any q
	q := hist.Axis{Bins: 60, Min: 1e-4, Max: 1.0}
	I, err := h.DebyeTransform(q)
	if err != nil {
		tst.Errorf("DebyeTransform failed: %v\n", err)
		return
	}
	Iref := ana.CubeIntensity(a, q.Vals())
	for i := range I {
		rel := math.Abs(I[i]-Iref[i]) / Iref[i]
		if rel > 1e-6 {
			tst.Errorf("relative error %g at q[%d]\n", rel, i)
			return
		}
	}
}

func Test_scenario02(tst *testing.T) {

	//Verbose()
	chk.PrintTitle("scenario02. two atoms, translation only")

	d := 4.0
	stg := rawSettings()
	m := rawMolecule([]ana.Point{{0, 0, 0, 1}, {d, 0, 0, 1}})
	h := calcRaw(tst, m, stg)

	q := hist.Axis{Bins: 50, Min: 1e-4, Max: 0.9}
	I, err := h.DebyeTransform(q)
	if err != nil {
		tst.Errorf("DebyeTransform failed: %v\n", err)
		return
	}
	// I(q)/exp(-q²) = 2 + 2·sin(qd)/(qd)
	for i, qv := range q.Vals() {
		lhs := I[i] / math.Exp(-qv*qv)
		rhs := 2.0 + 2.0*math.Sin(qv*d)/(qv*d)
		chk.Float64(tst, io.Sf("I(%.3f)", qv), 1e-6*rhs, lhs, rhs)
	}
}

func Test_scenario03(tst *testing.T) {

	//Verbose()
	chk.PrintTitle("scenario03. water scaling equals scaled waters from scratch")

	b := mol.NewBody([]mol.AtomFF{
		mol.NewAtomFF(0, 0, 0, ffs.C),
		mol.NewAtomFF(3, 0, 0, ffs.N),
	})
	m := mol.NewMolecule([]*mol.Body{b})
	m.SetGlobalHydration([]mol.Water{
		mol.NewWater(0, 4, 0),
		mol.NewWater(3, -4, 1),
	})
	m.State().ResetToFalse()

	stg := rawSettings()
	stg.WeightedBins = false
	mgr, err := hist.NewManager("full-mt", m, stg)
	if err != nil {
		tst.Errorf("NewManager failed: %v\n", err)
		return
	}
	h, err := mgr.CalculateAll()
	if err != nil {
		tst.Errorf("CalculateAll failed: %v\n", err)
		return
	}
	h.ApplyWaterScaling(1.5)
	scaled := append([]float64{}, h.TotalCounts()...)

	// from scratch with water weights scaled by 1.5
	m2 := mol.NewMolecule([]*mol.Body{mol.NewBody(append([]mol.AtomFF{}, b.Atoms...))})
	w1 := mol.NewWater(0, 4, 0)
	w2 := mol.NewWater(3, -4, 1)
	w1.W *= 1.5
	w2.W *= 1.5
	m2.SetGlobalHydration([]mol.Water{w1, w2})
	m2.State().ResetToFalse()
	mgr2, _ := hist.NewManager("full-mt", m2, stg)
	h2, err := mgr2.CalculateAll()
	if err != nil {
		tst.Errorf("CalculateAll failed: %v\n", err)
		return
	}
	chk.Array(tst, "scaled totals", 1e-10, scaled, h2.TotalCounts())
}

func Test_scenario04(tst *testing.T) {

	//Verbose()
	chk.PrintTitle("scenario04. partial manager after moving one body")

	b1 := mol.NewBody([]mol.AtomFF{
		mol.NewAtomFF(0, 0, 0, ffs.C),
		mol.NewAtomFF(1.5, 0.5, 0, ffs.O),
	})
	b2 := mol.NewBody([]mol.AtomFF{
		mol.NewAtomFF(0, 5, 0, ffs.N),
		mol.NewAtomFF(1, 6, 1, ffs.C),
	})
	b3 := mol.NewBody([]mol.AtomFF{mol.NewAtomFF(4, 0, 4, ffs.S)})
	m := mol.NewMolecule([]*mol.Body{b1, b2, b3})
	m.State().ResetToFalse()

	stg := rawSettings()
	stg.WeightedBins = false
	partial, _ := hist.NewManager("partial-mt", m, stg)
	full, _ := hist.NewManager("full-mt", m, stg)

	if _, err := partial.CalculateAll(); err != nil {
		tst.Errorf("initial pass failed: %v\n", err)
		return
	}

	// move body 1 by (1, 0, 0); the signaller marks it externally modified
	m.Bodies[1].Translate(1, 0, 0)
	hPart, err := partial.CalculateAll()
	if err != nil {
		tst.Errorf("partial recompute failed: %v\n", err)
		return
	}
	hFull, err := full.CalculateAll()
	if err != nil {
		tst.Errorf("full pass failed: %v\n", err)
		return
	}
	chk.Array(tst, "partial == full", 1e-10, hPart.TotalCounts(), hFull.TotalCounts())
	if m.State().IsModified() {
		tst.Errorf("state manager must be clean after CalculateAll\n")
	}
}

// lysozyme-like synthetic scenario: a compact blob of atoms with a matching
// measured curve generated from the model itself plus hydration
func Test_scenario05(tst *testing.T) {

	//Verbose()
	chk.PrintTitle("scenario05. fit convergence on a synthetic measured curve")

	// compact pseudo-globular arrangement
	var atoms []mol.AtomFF
	types := []ffs.Type{ffs.C, ffs.N, ffs.O, ffs.C, ffs.S}
	n := 0
	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			for k := -2; k <= 2; k++ {
				if i*i+j*j+k*k > 6 {
					continue
				}
				t := types[n%len(types)]
				atoms = append(atoms, mol.NewAtomFF(float64(i)*3.0, float64(j)*3.0, float64(k)*3.0, t))
				n++
			}
		}
	}
	m := mol.NewMolecule([]*mol.Body{mol.NewBody(atoms)})
	m.SetGlobalHydration([]mol.Water{
		mol.NewWater(9, 0, 0), mol.NewWater(-9, 0, 0),
		mol.NewWater(0, 9, 0), mol.NewWater(0, -9, 0),
		mol.NewWater(0, 0, 9), mol.NewWater(0, 0, -9),
	})
	m.State().ResetToFalse()

	stg := rawSettings()
	stg.WeightedBins = false
	stg.Qmax = 0.5
	stg.Nq = 200
	stg.Minimizer = "golden"

	mgr, _ := hist.NewManager("full-mt", m, stg)
	h, err := mgr.CalculateAll()
	if err != nil {
		tst.Errorf("CalculateAll failed: %v\n", err)
		return
	}

	// synthesise the measured curve at hydration scale 1.3
	h.ApplyWaterScaling(1.3)
	qm := hist.Axis{Bins: stg.Nq, Min: stg.Qmin, Max: stg.Qmax}
	Itruth, err := h.DebyeTransform(qm)
	if err != nil {
		tst.Errorf("DebyeTransform failed: %v\n", err)
		return
	}
	qd := utl.LinSpace(0.01, 0.45, 60)
	Id, err := fit.Splice(qm.Vals(), Itruth, qd)
	if err != nil {
		tst.Errorf("Splice failed: %v\n", err)
		return
	}
	ds := &inp.Dataset{Q: qd, I: make([]float64, len(qd)), Serr: make([]float64, len(qd))}
	for i := range qd {
		ds.I[i] = Id[i]
		ds.Serr[i] = 0.01*math.Abs(Id[i]) + 1e-6
	}
	h.ApplyWaterScaling(1)

	sf, err := fit.NewSmartFitter(stg, ds, h)
	if err != nil {
		tst.Errorf("NewSmartFitter failed: %v\n", err)
		return
	}
	res, err := sf.Fit()
	if err != nil {
		tst.Errorf("Fit failed: %v\n", err)
		return
	}
	io.Pforan("chi2/dof = %g, hydration = %g\n", res.Chi2PerDof(), res.Get("hydration").V)

	if res.Chi2PerDof() > 1.5 {
		tst.Errorf("chi2/dof = %g exceeds 1.5\n", res.Chi2PerDof())
		return
	}
	c := res.Get("hydration").V
	if c <= 0 || c >= 5 {
		tst.Errorf("hydration scale %g outside (0, 5)\n", c)
	}
}

func Test_scenario06(tst *testing.T) {

	//Verbose()
	chk.PrintTitle("scenario06. raw arrays: simple passes, fraser rejects")

	x := []float64{0, 3, 0, 0}
	y := []float64{0, 0, 3, 0}
	z := []float64{0, 0, 0, 3}
	w := []float64{1, 1, 1, 1}
	m, err := mol.FromRawArrays(x, y, z, w)
	if err != nil {
		tst.Errorf("FromRawArrays failed: %v\n", err)
		return
	}

	stg := rawSettings()
	stg.WeightedBins = false
	stg.ExvMethod = "simple"
	mgr, _ := hist.NewManager("full-mt", m, stg)
	h, err := mgr.CalculateAll()
	if err != nil {
		tst.Errorf("simple model failed: %v\n", err)
		return
	}
	if _, err = h.DebyeTransform(hist.Axis{Bins: 20, Min: 1e-4, Max: 0.5}); err != nil {
		tst.Errorf("DebyeTransform failed: %v\n", err)
		return
	}

	stg2 := rawSettings()
	stg2.ExvMethod = "fraser"
	mgr2, _ := hist.NewManager("full-mt-ff", m, stg2)
	_, err = mgr2.CalculateAll()
	if err == nil || !strings.Contains(err.Error(), "UNKNOWN form factor") {
		tst.Errorf("fraser must fail mentioning the UNKNOWN form factor, got: %v\n", err)
	}
}
