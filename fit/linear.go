// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// LinearLeastSquares fits y = a·x + b in closed form with per-point errors.
// x is the model curve, y the measured data
type LinearLeastSquares struct {
	X, Y   []float64 // aligned model and data
	InvSig []float64 // 1/σ per point; unit weights when absent
}

// NewLinearLeastSquares prepares a fit; errs may be nil
func NewLinearLeastSquares(x, y, errs []float64) (o *LinearLeastSquares, err error) {
	if len(x) != len(y) {
		return nil, chk.Err("dimension mismatch: model and data must have the same size (%d != %d)", len(x), len(y))
	}
	o = &LinearLeastSquares{X: x, Y: y}
	o.InvSig = make([]float64, len(x))
	for i := range o.InvSig {
		o.InvSig[i] = 1
	}
	if errs != nil {
		if len(errs) != len(x) {
			return nil, chk.Err("dimension mismatch: data and errors must have the same size (%d != %d)", len(errs), len(x))
		}
		for i, e := range errs {
			o.InvSig[i] = 1.0 / e
		}
	}
	return
}

// FitParamsOnly computes the closed-form best (a, b) and their variances
func (o *LinearLeastSquares) FitParamsOnly() (a, b, varA, varB float64, err error) {
	var S, Sx, Sy, Sxx, Sxy float64
	for i := range o.X {
		w := o.InvSig[i] * o.InvSig[i]
		S += w
		Sx += o.X[i] * w
		Sy += o.Y[i] * w
		Sxx += o.X[i] * o.X[i] * w
		Sxy += o.X[i] * o.Y[i] * w
	}
	delta := S*Sxx - Sx*Sx
	if delta == 0 {
		return 0, 0, 0, 0, chk.Err("numeric error: degenerate linear system (delta = 0)")
	}
	a = (S*Sxy - Sx*Sy) / delta
	b = (Sxx*Sy - Sx*Sxy) / delta
	varA = S / delta
	varB = Sxx / delta
	return
}

// Chi2 evaluates Σ((y - a·x - b)/σ)²
func (o *LinearLeastSquares) Chi2(a, b float64) (chi2 float64) {
	for i := range o.X {
		r := (o.Y[i] - a*o.X[i] - b) * o.InvSig[i]
		chi2 += r * r
	}
	return
}

// Fit solves and packages the result with the fitted curve
func (o *LinearLeastSquares) Fit() (res *FitResult, err error) {
	a, b, varA, varB, err := o.FitParamsOnly()
	if err != nil {
		return nil, err
	}
	res = new(FitResult)
	res.Converged = true
	res.Fevals = 1
	res.Chi2 = o.Chi2(a, b)
	res.Dof = o.Dof()
	ea, eb := math.Sqrt(varA), math.Sqrt(varB)
	res.Params = []FittedParameter{
		{Name: "a", V: a, Emin: -ea, Emax: ea},
		{Name: "b", V: b, Emin: -eb, Emax: eb},
	}
	return
}

// Dof returns the degrees of freedom of the linear fit
func (o *LinearLeastSquares) Dof() int { return len(o.X) - 2 }

// Residuals computes (y - a·x - b)/σ
func (o *LinearLeastSquares) Residuals(a, b float64) (r []float64) {
	r = make([]float64, len(o.X))
	for i := range o.X {
		r[i] = (o.Y[i] - a*o.X[i] - b) * o.InvSig[i]
	}
	return
}
