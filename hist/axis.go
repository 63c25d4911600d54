// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package hist implements the scattering-histogram pipeline: compact
// coordinates, distance kernels, histogram managers, the composite distance
// histogram and the Debye transform
package hist

import "github.com/cpmech/gosl/utl"

// Axis is a uniform sampling of an interval with Bins points from Min to Max
// inclusive
type Axis struct {
	Bins int     // number of samples
	Min  float64 // first sample
	Max  float64 // last sample
}

// Vals returns the sample positions
func (o Axis) Vals() []float64 {
	return utl.LinSpace(o.Min, o.Max, o.Bins)
}

// Step returns the distance between consecutive samples
func (o Axis) Step() float64 {
	if o.Bins < 2 {
		return 0
	}
	return (o.Max - o.Min) / float64(o.Bins-1)
}

// QAxis builds the q axis implied by the settings values
func QAxis(qmin, qmax float64, nq int) Axis {
	return Axis{Bins: nq, Min: qmin, Max: qmax}
}

// DVals returns the bin-centre distances of a histogram with the given bin
// width: d_i = i·w, with d_0 = 0 holding the self terms
func DVals(nbins int, width float64) (d []float64) {
	d = make([]float64, nbins)
	for i := 1; i < nbins; i++ {
		d[i] = float64(i) * width
	}
	return
}
