// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"math"

	"github.com/cpmech/gosaxs/ffs"
	"github.com/cpmech/gosaxs/hist"
	"github.com/cpmech/gosaxs/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Model is the view the smart fitter needs of a composite histogram: apply
// the free parameters, then Debye-transform
type Model interface {
	ApplyWaterScaling(c float64)
	DebyeTransform(q hist.Axis) ([]float64, error)
}

// parameterised models additionally accept the excluded-volume scale, the
// solvent density and the Debye-Waller factors; both composites implement it
type paramModel interface {
	SetExvScale(c float64)
	SetSolventDensity(rho float64)
	SetDebyeWaller(bAtom, bExv float64)
	ExvLimits() (lo, hi float64)
}

// SmartFitter fits a model histogram to a measured curve. the enabled
// parameters are configuration-driven; slope and background always come from
// the linear inner solve
type SmartFitter struct {
	Stg   *inp.Settings
	Data  *inp.Dataset
	Model Model
	Guess dbf.Params // optional override of the default guesses
}

// NewSmartFitter prepares a fit of the measured values to the model
func NewSmartFitter(stg *inp.Settings, data *inp.Dataset, model Model) (o *SmartFitter, err error) {
	if data.Len() < 3 {
		return nil, chk.Err("dimension mismatch: at least 3 data points are required, got %d", data.Len())
	}
	return &SmartFitter{Stg: stg, Data: data, Model: model}, nil
}

// DefaultGuess builds the enabled parameter set with default values and
// limits
func (o *SmartFitter) DefaultGuess() (prms dbf.Params) {
	if o.Stg.FitHydration {
		prms = append(prms, &dbf.P{N: "hydration", V: 1, Min: 0, Max: 10})
	}
	if o.Stg.FitExv {
		if pm, ok := o.Model.(paramModel); ok {
			lo, hi := pm.ExvLimits()
			if lo < hi {
				prms = append(prms, &dbf.P{N: "excluded_volume", V: 1, Min: lo, Max: hi})
			}
		}
	}
	if o.Stg.FitSolvent {
		rho := ffs.RhoWater
		prms = append(prms, &dbf.P{N: "solvent_density", V: rho, Min: 0.95 * rho, Max: 1.05 * rho})
	}
	if o.Stg.FitDebyeWaller {
		prms = append(prms, &dbf.P{N: "atomic_debye_waller", V: 0, Min: 0, Max: 20})
		prms = append(prms, &dbf.P{N: "exv_debye_waller", V: 0, Min: 0, Max: 20})
	}
	return
}

// apply pushes a parameter vector onto the model
func (o *SmartFitter) apply(prms dbf.Params, p []float64) {
	pm, _ := o.Model.(paramModel)
	var bAtom, bExv float64
	setDW := false
	for i, prm := range prms {
		switch prm.N {
		case "hydration":
			o.Model.ApplyWaterScaling(p[i])
		case "excluded_volume":
			if pm != nil {
				pm.SetExvScale(p[i])
			}
		case "solvent_density":
			if pm != nil {
				pm.SetSolventDensity(p[i])
			}
		case "atomic_debye_waller":
			bAtom = p[i]
			setDW = true
		case "exv_debye_waller":
			bExv = p[i]
			setDW = true
		}
	}
	if setDW && pm != nil {
		pm.SetDebyeWaller(bAtom, bExv)
	}
}

// modelAxis is the q-axis the model curve is evaluated on before splicing
func (o *SmartFitter) modelAxis() hist.Axis {
	return hist.Axis{Bins: o.Stg.Nq, Min: o.Stg.Qmin, Max: o.Stg.Qmax}
}

// evaluate computes chi² for one parameter vector; numeric errors in the
// transform reject the step with +Inf
func (o *SmartFitter) evaluate(prms dbf.Params, p []float64) float64 {
	o.apply(prms, p)
	qm := o.modelAxis()
	Im, err := o.Model.DebyeTransform(qm)
	if err != nil {
		return math.Inf(1)
	}
	spliced, err := Splice(qm.Vals(), Im, o.Data.Q)
	if err != nil {
		return math.Inf(1)
	}
	lls, err := NewLinearLeastSquares(spliced, o.Data.I, o.Data.Serr)
	if err != nil {
		return math.Inf(1)
	}
	a, b, _, _, err := lls.FitParamsOnly()
	if err != nil {
		return math.Inf(1)
	}
	return lls.Chi2(a, b)
}

// Fit runs the outer minimizer over the enabled parameters and assembles the
// result
func (o *SmartFitter) Fit() (res *FitResult, err error) {
	prms := o.Guess
	if prms == nil {
		prms = o.DefaultGuess()
	}

	mini, err := NewMinimizer(o.Stg.Minimizer, o.Stg.MaxEvals)
	if err != nil {
		return nil, err
	}

	popt := make([]float64, len(prms))
	fopt := 0.0
	nevals := 0
	objective := func(p []float64) float64 { return o.evaluate(prms, p) }
	if len(prms) > 0 {
		popt, fopt, nevals, err = mini.Minimize(objective, prms)
		if err != nil {
			return nil, err
		}
	} else {
		fopt = objective(popt)
		nevals = 1
	}

	// final model at the optimum
	o.apply(prms, popt)
	qm := o.modelAxis()
	Im, err := o.Model.DebyeTransform(qm)
	if err != nil {
		return nil, err
	}
	spliced, err := Splice(qm.Vals(), Im, o.Data.Q)
	if err != nil {
		return nil, err
	}
	lls, err := NewLinearLeastSquares(spliced, o.Data.I, o.Data.Serr)
	if err != nil {
		return nil, err
	}
	a, b, varA, varB, err := lls.FitParamsOnly()
	if err != nil {
		return nil, err
	}

	res = new(FitResult)
	res.Converged = nevals < o.Stg.MaxEvals
	res.Fevals = nevals
	res.Chi2 = fopt
	res.Dof = o.Data.Len() - len(prms) - 2
	for i, prm := range prms {
		e := o.paramError(prms, popt, i, fopt)
		res.Params = append(res.Params, FittedParameter{Name: prm.N, V: popt[i], Emin: -e, Emax: e})
	}
	o.apply(prms, popt) // leave the model at the optimum
	res.Fevals += 2 * len(prms)
	ea, eb := math.Sqrt(varA), math.Sqrt(varB)
	res.Params = append(res.Params,
		FittedParameter{Name: "slope", V: a, Emin: -ea, Emax: ea},
		FittedParameter{Name: "background", V: b, Emin: -eb, Emax: eb})

	res.Q = append([]float64{}, o.Data.Q...)
	res.IData = append([]float64{}, o.Data.I...)
	res.IErr = append([]float64{}, o.Data.Serr...)
	res.IModel = make([]float64, len(spliced))
	for i := range spliced {
		res.IModel[i] = a*spliced[i] + b
	}
	res.Residuals = lls.Residuals(a, b)
	return
}

// paramError estimates the 1-sigma error of parameter i from the local
// curvature of chi² (Δchi² = 1 rule)
func (o *SmartFitter) paramError(prms dbf.Params, popt []float64, i int, fopt float64) float64 {
	span := prms[i].Max - prms[i].Min
	h := 1e-2 * span
	if h == 0 {
		return 0
	}
	p := make([]float64, len(popt))
	copy(p, popt)
	p[i] = popt[i] + h
	fp := o.evaluate(prms, p)
	p[i] = popt[i] - h
	fm := o.evaluate(prms, p)
	d2 := (fp - 2.0*fopt + fm) / (h * h)
	if d2 <= 0 || math.IsInf(d2, 0) || math.IsNaN(d2) {
		return span
	}
	return math.Sqrt(2.0 / d2)
}
