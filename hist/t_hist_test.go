// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"math"
	"testing"

	"github.com/cpmech/gosaxs/ana"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// compactFromPoints packs unit-weight points for kernel-level tests
func compactFromPoints(pts []ana.Point) (o CompactCoordinates) {
	o.N = len(pts)
	o.Data = make([]float32, 4*((o.N+3)&^3))
	o.Type = nil
	for i, p := range pts {
		o.Data[4*i] = float32(p.X)
		o.Data[4*i+1] = float32(p.Y)
		o.Data[4*i+2] = float32(p.Z)
		o.Data[4*i+3] = float32(p.W)
	}
	return
}

func cubePoints(a float64) (pts []ana.Point) {
	for _, x := range []float64{0, a} {
		for _, y := range []float64{0, a} {
			for _, z := range []float64{0, a} {
				pts = append(pts, ana.Point{X: x, Y: y, Z: z, W: 1})
			}
		}
	}
	return
}

func Test_sinc01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("sinc01. Taylor fallback boundary")

	chk.Float64(tst, "sinc(0)", 1e-15, Sinc(0), 1.0)

	// below the cutoff: Taylor
	x := 1e-4
	chk.Float64(tst, "sinc(1e-4)", 1e-17, Sinc(x), 1.0-x*x/6.0+x*x*x*x/120.0)

	// at and above the cutoff: sin(x)/x
	x = 1e-3
	chk.Float64(tst, "sinc(1e-3)", 1e-17, Sinc(x), math.Sin(x)/x)

	// both branches agree to float64 accuracy near the cutoff
	lo, hi := Sinc(1e-3-1e-12), Sinc(1e-3+1e-12)
	chk.Float64(tst, "continuity", 1e-12, lo, hi)
}

func Test_kernel01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("kernel01. two atoms: bins, diagonal, rounding")

	bw := 0.25
	d := 2.0
	c := compactFromPoints([]ana.Point{{0, 0, 0, 1}, {d, 0, 0, 1}})
	k := NewKernel(64, bw, 1)

	h := k.Self(c)
	chk.Float64(tst, "bin 0 (self pairs)", 1e-14, h[0], 2.0)
	chk.Float64(tst, "bin d (both orders)", 1e-14, h[int(d/bw+0.5)], 2.0)
	sum := 0.0
	for _, v := range h {
		sum += v
	}
	chk.Float64(tst, "total pairs", 1e-14, sum, 4.0)

	// d = binwidth·k + ε rounds to bin k for |ε| < binwidth/2
	c2 := compactFromPoints([]ana.Point{{0, 0, 0, 1}, {d + 0.1, 0, 0, 1}})
	h2 := k.Self(c2)
	chk.Float64(tst, "rounded bin", 1e-14, h2[8], 2.0) // 2.1/0.25 = 8.4 -> bin 8

	// weighted centres recover the exact distance
	wh := k.SelfWeighted(c)
	centres := wh.Centres(bw)
	chk.Float64(tst, "weighted centre", 1e-6, centres[int(d/bw+0.5)], d)
	chk.Float64(tst, "bin 0 centre", 1e-15, centres[0], 0.0)
}

func Test_kernel02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("kernel02. cross correlation and parallel reduction")

	a := compactFromPoints([]ana.Point{{0, 0, 0, 2}, {1, 0, 0, 2}})
	b := compactFromPoints([]ana.Point{{0, 3, 0, 1}})
	k := NewKernel(64, 0.25, 1) // tiny jobs exercise the fan-out

	h := k.Cross(a, b)
	sum := 0.0
	for _, v := range h {
		sum += v
	}
	chk.Float64(tst, "total cross weight", 1e-14, sum, 4.0)

	// against a large-job run: merge order must not matter
	k2 := NewKernel(64, 0.25, 1<<20)
	h2 := k2.Cross(a, b)
	chk.Array(tst, "job-size independence", 1e-15, h, h2)
}

func Test_debye01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("debye01. unit cube of eight scatterers vs exact sum")

	pts := cubePoints(2.0)
	bw := 0.25
	k := NewKernel(64, bw, 1)
	c := compactFromPoints(pts)

	waa := k.SelfWeighted(c)
	aa := waa.Values()
	empty := make(Dist1, len(aa))
	wempty := make(WDist1, len(aa))
	comp := NewComposite(aa, empty, empty.Clone(), waa, wempty, nil, bw)

	q := Axis{Bins: 50, Min: 1e-4, Max: 1.0}
	I, err := comp.DebyeTransform(q)
	if err != nil {
		tst.Errorf("DebyeTransform failed: %v\n", err)
		return
	}

	Iref := ana.ExactDebye(pts, q.Vals())
	Icube := ana.CubeIntensity(2.0, q.Vals())
	for i := range I {
		rel := math.Abs(I[i]-Iref[i]) / Iref[i]
		if rel > 1e-6 {
			tst.Errorf("relative error %g at q[%d] exceeds 1e-6\n", rel, i)
			return
		}
		rel = math.Abs(I[i]-Icube[i]) / Icube[i]
		if rel > 1e-6 {
			tst.Errorf("cube analytic mismatch %g at q[%d]\n", rel, i)
			return
		}
	}
	io.Pforan("max q checked: %g\n", q.Max)
}

func Test_debye02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("debye02. two atoms: I(q) = (2 + 2·sinc(qd))·exp(-q²)")

	d := 3.5
	pts := []ana.Point{{0, 0, 0, 1}, {d, 0, 0, 1}}
	bw := 0.25
	k := NewKernel(64, bw, 1)
	c := compactFromPoints(pts)

	waa := k.SelfWeighted(c)
	empty := make(Dist1, 64)
	comp := NewComposite(waa.Values(), empty, empty.Clone(), waa, make(WDist1, 64), nil, bw)

	q := Axis{Bins: 40, Min: 1e-4, Max: 0.8}
	I, err := comp.DebyeTransform(q)
	if err != nil {
		tst.Errorf("DebyeTransform failed: %v\n", err)
		return
	}
	Iref := ana.TwoPointIntensity(d, q.Vals())
	for i := range I {
		rel := math.Abs(I[i]-Iref[i]) / Iref[i]
		if rel > 1e-6 {
			tst.Errorf("relative error %g at q[%d] exceeds 1e-6\n", rel, i)
			return
		}
	}
}

func Test_composite01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("composite01. water rescaling without recomputation")

	aa := Dist1{4, 2, 0, 1}
	aw := Dist1{1, 3, 2, 0}
	ww := Dist1{2, 1, 1, 1}
	comp := NewComposite(aa, aw, ww, nil, nil, nil, 0.25)

	// p_total with c = 1
	for i := range aa {
		chk.Float64(tst, "ptot(1)", 1e-15, comp.PTot[i], aa[i]+2*aw[i]+ww[i])
	}

	// scale(1) then scale(c) equals a fresh build at c
	comp.ApplyWaterScaling(1)
	comp.ApplyWaterScaling(1.5)
	fresh := NewComposite(aa, aw, ww, nil, nil, nil, 0.25)
	fresh.ApplyWaterScaling(1.5)
	chk.Array(tst, "scale path independence", 1e-15, comp.PTot, fresh.PTot)

	// scaling c then back to 1 restores the original totals
	comp.ApplyWaterScaling(1)
	orig := NewComposite(aa, aw, ww, nil, nil, nil, 0.25)
	chk.Array(tst, "scale roundtrip", 1e-15, comp.PTot, orig.PTot)

	// equivalently: scaling by c equals scaling the water weights by c
	comp.ApplyWaterScaling(2)
	scaledAW := aw.Clone()
	scaledWW := ww.Clone()
	for i := range scaledAW {
		scaledAW[i] *= 2
		scaledWW[i] *= 4
	}
	direct := NewComposite(aa, scaledAW, scaledWW, nil, nil, nil, 0.25)
	chk.Array(tst, "scaled waters", 1e-15, comp.PTot, direct.PTot)
}
