// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Objective evaluates the fit target at a parameter vector. evaluations may
// return +Inf for rejected steps
type Objective func(p []float64) float64

// Evaluation records one evaluated point (optional for minimizers)
type Evaluation struct {
	P    []float64
	Fval float64
}

// Minimizer searches the box given by the parameter limits. implementations
// are derivative-free; the BFGS and dlib global minimizers remain external
// collaborators behind the same interface
type Minimizer interface {
	Minimize(f Objective, prms dbf.Params) (popt []float64, fopt float64, nevals int, err error)
}

// minimizer factory
var minimizers = make(map[string]func(maxEvals int) Minimizer)

// NewMinimizer allocates a minimizer by name
func NewMinimizer(name string, maxEvals int) (Minimizer, error) {
	alloc, ok := minimizers[name]
	if !ok {
		return nil, chk.Err("unknown minimizer %q", name)
	}
	return alloc(maxEvals), nil
}

func init() {
	minimizers["scan"] = func(maxEvals int) Minimizer { return &Scan{Npts: 20, MaxEvals: maxEvals} }
	minimizers["limited-scan"] = func(maxEvals int) Minimizer {
		return &Scan{Npts: 20, MaxEvals: maxEvals, Limit: 10}
	}
	minimizers["golden"] = func(maxEvals int) Minimizer { return &Golden{Tol: 1e-5, MaxEvals: maxEvals} }
	minimizers["explorer"] = func(maxEvals int) Minimizer { return &Explorer{Npts: 10, MaxEvals: maxEvals} }
}

func start(prms dbf.Params) (p []float64) {
	p = make([]float64, len(prms))
	for i, prm := range prms {
		p[i] = prm.V
	}
	return
}

// Scan evaluates a regular grid along each parameter in turn, keeping the
// best point. with Limit > 0 the scan stops early once the value has
// increased Limit times in a row (the limited-scan variant)
type Scan struct {
	Npts     int // grid points per parameter
	MaxEvals int // evaluation bound
	Limit    int // consecutive increases before stopping; 0 => full scan
}

// Minimize implements the coordinate scan
func (o *Scan) Minimize(f Objective, prms dbf.Params) (popt []float64, fopt float64, nevals int, err error) {
	popt = start(prms)
	fopt = f(popt)
	nevals = 1
	for i, prm := range prms {
		best := popt[i]
		rising := 0
		prev := math.Inf(1)
		for k := 0; k < o.Npts && nevals < o.MaxEvals; k++ {
			v := prm.Min + (prm.Max-prm.Min)*float64(k)/float64(o.Npts-1)
			popt[i] = v
			fv := f(popt)
			nevals++
			if fv < fopt {
				fopt = fv
				best = v
			}
			if o.Limit > 0 {
				if fv > prev {
					rising++
					if rising >= o.Limit {
						break
					}
				} else {
					rising = 0
				}
				prev = fv
			}
		}
		popt[i] = best
	}
	return
}

// Golden runs cyclic golden-section line searches over the parameter box
type Golden struct {
	Tol      float64 // interval tolerance (relative to the box span)
	MaxEvals int     // evaluation bound
	Cycles   int     // coordinate cycles; 0 => 3
}

// Minimize implements cyclic golden-section search
func (o *Golden) Minimize(f Objective, prms dbf.Params) (popt []float64, fopt float64, nevals int, err error) {
	cycles := o.Cycles
	if cycles == 0 {
		cycles = 3
	}
	popt = start(prms)
	fopt = f(popt)
	nevals = 1
	gr := (math.Sqrt(5.0) - 1.0) / 2.0

	for cycle := 0; cycle < cycles; cycle++ {
		for i, prm := range prms {
			save := popt[i]
			lo, hi := prm.Min, prm.Max
			tol := o.Tol * (hi - lo)
			c := hi - gr*(hi-lo)
			d := lo + gr*(hi-lo)
			eval := func(v float64) float64 {
				popt[i] = v
				nevals++
				return f(popt)
			}
			fc, fd := eval(c), eval(d)
			for hi-lo > tol && nevals < o.MaxEvals {
				if fc < fd {
					hi, d, fd = d, c, fc
					c = hi - gr*(hi-lo)
					fc = eval(c)
				} else {
					lo, c, fc = c, d, fd
					d = lo + gr*(hi-lo)
					fd = eval(d)
				}
			}
			best, fbest := c, fc
			if fd < fc {
				best, fbest = d, fd
			}
			if fbest <= fopt {
				popt[i] = best
				fopt = fbest
			} else {
				popt[i] = save // the line search found nothing better
			}
		}
	}
	return
}

// Explorer samples around the current minimum with shrinking steps and
// records its evaluations
type Explorer struct {
	Npts     int // samples per direction and round
	MaxEvals int // evaluation bound
	History  []Evaluation
}

// Minimize implements the minimum exploration
func (o *Explorer) Minimize(f Objective, prms dbf.Params) (popt []float64, fopt float64, nevals int, err error) {
	popt = start(prms)
	record := func(p []float64, fv float64) {
		cp := make([]float64, len(p))
		copy(cp, p)
		o.History = append(o.History, Evaluation{P: cp, Fval: fv})
	}
	fopt = f(popt)
	nevals = 1
	record(popt, fopt)

	for round := 0; round < 4; round++ {
		shrink := math.Pow(0.5, float64(round))
		for i, prm := range prms {
			span := shrink * (prm.Max - prm.Min) / 2.0
			best := popt[i]
			for k := 0; k < o.Npts && nevals < o.MaxEvals; k++ {
				v := popt[i] - span + 2.0*span*float64(k)/float64(o.Npts-1)
				if v < prm.Min || v > prm.Max {
					continue
				}
				save := popt[i]
				popt[i] = v
				fv := f(popt)
				nevals++
				record(popt, fv)
				if fv < fopt {
					fopt = fv
					best = v
				}
				popt[i] = save
			}
			popt[i] = best
		}
	}
	return
}
