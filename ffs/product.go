// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ffs

import "github.com/cpmech/gosl/utl"

// ProductTable holds precomputed form-factor products for all type pairs over
// a fixed q-axis. products are unnormalised (they carry the forward
// scattering), so a histogram of plain pair counts contracts directly into
// I(q). the excluded-volume pseudo-atoms sit at the atom positions, hence the
// exv products are indexed by atomic type pairs as well. immutable after
// construction
type ProductTable struct {
	Nq int         // number of q samples
	AA [][]float64 // [NumTypes²][nq] f_a(t1)·f_a(t2)
	AX [][]float64 // [NumTypes²][nq] f_a(t1)·f_x(t2)
	XX [][]float64 // [NumTypes²][nq] f_x(t1)·f_x(t2)
	AW [][]float64 // [NumTypes][nq]  f_a(t)·f_w
	XW [][]float64 // [NumTypes][nq]  f_x(t)·f_w
	WW []float64   // [nq]            f_w²
}

// Idx flattens a type pair into a row index
func Idx(t1, t2 Type) int { return int(t1)*NumTypes + int(t2) }

// WaterFF evaluates the unnormalised water form factor (O-like, 10 electrons)
func WaterFF(q float64) float64 {
	return (Charge(OH) + Charge(H)) * Eval(O, q)
}

// NewProductTable precomputes all pairwise form-factor products on the given
// q-values. excluded-volume factors use the per-type displaced volumes
func NewProductTable(qvals []float64) (o *ProductTable) {
	o = new(ProductTable)
	o.Nq = len(qvals)
	o.AA = utl.Alloc(NumTypes*NumTypes, o.Nq)
	o.AX = utl.Alloc(NumTypes*NumTypes, o.Nq)
	o.XX = utl.Alloc(NumTypes*NumTypes, o.Nq)
	o.AW = utl.Alloc(NumTypes, o.Nq)
	o.XW = utl.Alloc(NumTypes, o.Nq)
	o.WW = make([]float64, o.Nq)

	// unnormalised atomic, exv and water curves
	fa := utl.Alloc(NumTypes, o.Nq)
	fx := utl.Alloc(NumTypes, o.Nq)
	fw := make([]float64, o.Nq)
	for k, q := range qvals {
		fw[k] = WaterFF(q)
		for t := 0; t < NumTypes; t++ {
			fa[t][k] = Charge(Type(t)) * Eval(Type(t), q)
			fx[t][k] = GetExv(Type(t)).Evaluate(q)
		}
	}

	for t1 := 0; t1 < NumTypes; t1++ {
		for t2 := 0; t2 < NumTypes; t2++ {
			i := Idx(Type(t1), Type(t2))
			for k := 0; k < o.Nq; k++ {
				o.AA[i][k] = fa[t1][k] * fa[t2][k]
				o.AX[i][k] = fa[t1][k] * fx[t2][k]
				o.XX[i][k] = fx[t1][k] * fx[t2][k]
			}
		}
		for k := 0; k < o.Nq; k++ {
			o.AW[t1][k] = fa[t1][k] * fw[k]
			o.XW[t1][k] = fx[t1][k] * fw[k]
		}
	}
	return
}
