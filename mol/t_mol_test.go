// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mol

import (
	"math"
	"testing"

	"github.com/cpmech/gosaxs/ffs"
	"github.com/cpmech/gosl/chk"
)

func twoBodies() *Molecule {
	b1 := NewBody([]AtomFF{
		NewAtomFF(0, 0, 0, ffs.C),
		NewAtomFF(1, 0, 0, ffs.C),
	})
	b2 := NewBody([]AtomFF{
		NewAtomFF(0, 5, 0, ffs.O),
	})
	return NewMolecule([]*Body{b1, b2})
}

func Test_state01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("state01. signaller wiring and reset")

	m := twoBodies()
	sm := m.State()
	if sm.IsModified() {
		tst.Errorf("fresh state manager must be clean\n")
		return
	}

	m.Bodies[0].Translate(1, 0, 0)
	if !sm.IsExternallyModified(0) {
		tst.Errorf("translate must mark body 0 externally modified\n")
	}
	if sm.IsExternallyModified(1) {
		tst.Errorf("body 1 must stay clean\n")
	}

	m.Bodies[1].SetHydration([]Water{NewWater(0, 9, 0)})
	if !sm.IsModifiedHydration() {
		tst.Errorf("hydration flag not set\n")
	}

	m.Bodies[0].AddSymmetry(Symmetry{Repeats: 1})
	if !sm.IsModifiedSymmetry(0, 0) {
		tst.Errorf("symmetry flag not set\n")
	}

	sm.ResetToFalse()
	if sm.IsModified() {
		tst.Errorf("reset must clear all flags\n")
	}
}

func Test_mol01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("mol01. cache invalidation on external mutation")

	m := twoBodies()
	m.SetHistogram(fakeHist{})
	m.SetGrid(fakeGrid{})
	if m.Histogram() == nil || m.Grid() == nil {
		tst.Errorf("caches not installed\n")
		return
	}
	if err := m.TranslateBody(0, 1, 0, 0); err != nil {
		tst.Errorf("TranslateBody failed: %v\n", err)
		return
	}
	if m.Histogram() != nil || m.Grid() != nil {
		tst.Errorf("external mutation must drop both caches\n")
	}
	if err := m.TranslateBody(7, 0, 0, 0); err == nil {
		tst.Errorf("out-of-range body index must fail\n")
	}
}

func Test_mol02(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("mol02. Rg of a symmetric pair")

	b := NewBody([]AtomFF{
		NewAtomFF(-1, 0, 0, ffs.C),
		NewAtomFF(1, 0, 0, ffs.C),
	})
	m := NewMolecule([]*Body{b})
	chk.Float64(tst, "Rg", 1e-14, m.Rg(), 1.0)
}

func Test_sym01(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("sym01. symmetry transform: translation and rotation")

	// pure translation
	s := Symmetry{Translate: [3]float64{2, 0, 0}, Repeats: 2}
	f := s.Transform(2, [3]float64{0, 0, 0})
	x, y, z := f(1, 1, 0)
	chk.Float64(tst, "x", 1e-14, x, 5.0)
	chk.Float64(tst, "y", 1e-14, y, 1.0)
	chk.Float64(tst, "z", 1e-14, z, 0.0)

	// external rotation by π/2 about z, pivot at origin
	s = Symmetry{Axis: [3]float64{0, 0, 1}, Angle: math.Pi / 2, Repeats: 1}
	f = s.Transform(1, [3]float64{0, 0, 0})
	x, y, z = f(1, 0, 0)
	chk.Float64(tst, "rot x", 1e-14, x, 0.0)
	chk.Float64(tst, "rot y", 1e-14, y, 1.0)
	chk.Float64(tst, "rot z", 1e-14, z, 0.0)

	// internal rotation pivots on the given centre
	s = Symmetry{Euler: [3]float64{math.Pi, 0, 0}, Repeats: 1}
	f = s.Transform(1, [3]float64{1, 0, 0})
	x, y, _ = f(2, 0, 0)
	chk.Float64(tst, "pivot x", 1e-14, x, 0.0)
	chk.Float64(tst, "pivot y", 1e-14, y, 0.0)
}

func Test_mol03(tst *testing.T) {

	//chk.Verbose = true
	chk.PrintTitle("mol03. body splitting")

	b := NewBody([]AtomFF{
		NewAtomFF(0, 0, 0, ffs.C),
		NewAtomFF(1, 0, 0, ffs.C),
		NewAtomFF(2, 0, 0, ffs.N),
		NewAtomFF(3, 0, 0, ffs.O),
	})
	m := NewMolecule([]*Body{b})

	m2, err := Split(m, 0, []int{2})
	if err != nil {
		tst.Errorf("Split failed: %v\n", err)
		return
	}
	chk.Int(tst, "nbodies", m2.NumBodies(), 2)
	chk.Int(tst, "body 0 size", m2.Bodies[0].Size(), 2)
	chk.Int(tst, "body 1 size", m2.Bodies[1].Size(), 2)
	chk.Int(tst, "natoms", m2.NumAtoms(), 4)

	// the pieces move independently and signal their own index
	m2.Bodies[1].Translate(0, 1, 0)
	if m2.State().IsExternallyModified(0) || !m2.State().IsExternallyModified(1) {
		tst.Errorf("split bodies must signal independently\n")
		return
	}

	// bad offsets fail
	if _, err := Split(m, 0, []int{0}); err == nil {
		tst.Errorf("offset 0 must fail\n")
	}
	if _, err := Split(m, 5, nil); err == nil {
		tst.Errorf("bad body index must fail\n")
	}
}

type fakeHist struct{}

func (fakeHist) TotalCounts() []float64 { return nil }

type fakeGrid struct{}

func (fakeGrid) Volume() float64 { return 0 }
