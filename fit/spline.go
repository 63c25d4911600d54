// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fit

import "github.com/cpmech/gosl/chk"

// Splice interpolates a model curve (xm, ym) onto the measured x grid by
// piecewise-cubic (natural spline) interpolation. xm must be strictly
// increasing; targets outside [xm[0], xm[n-1]] are clamped to the end values
func Splice(xm, ym, x []float64) (y []float64, err error) {
	n := len(xm)
	if n != len(ym) {
		return nil, chk.Err("dimension mismatch: xm and ym must have the same size (%d != %d)", n, len(ym))
	}
	if n < 3 {
		return nil, chk.Err("dimension mismatch: at least 3 model samples are needed, got %d", n)
	}

	// second derivatives of the natural spline (tridiagonal solve)
	y2 := make([]float64, n)
	u := make([]float64, n)
	for i := 1; i < n-1; i++ {
		sig := (xm[i] - xm[i-1]) / (xm[i+1] - xm[i-1])
		p := sig*y2[i-1] + 2.0
		y2[i] = (sig - 1.0) / p
		u[i] = (ym[i+1]-ym[i])/(xm[i+1]-xm[i]) - (ym[i]-ym[i-1])/(xm[i]-xm[i-1])
		u[i] = (6.0*u[i]/(xm[i+1]-xm[i-1]) - sig*u[i-1]) / p
	}
	for i := n - 2; i >= 0; i-- {
		y2[i] = y2[i]*y2[i+1] + u[i]
	}

	y = make([]float64, len(x))
	for j, xv := range x {
		switch {
		case xv <= xm[0]:
			y[j] = ym[0]
		case xv >= xm[n-1]:
			y[j] = ym[n-1]
		default:
			// locate the bracketing interval by bisection
			lo, hi := 0, n-1
			for hi-lo > 1 {
				mid := (lo + hi) / 2
				if xm[mid] > xv {
					hi = mid
				} else {
					lo = mid
				}
			}
			h := xm[hi] - xm[lo]
			a := (xm[hi] - xv) / h
			b := (xv - xm[lo]) / h
			y[j] = a*ym[lo] + b*ym[hi] + ((a*a*a-a)*y2[lo]+(b*b*b-b)*y2[hi])*h*h/6.0
		}
	}
	return
}
