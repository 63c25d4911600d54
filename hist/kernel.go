// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"math"

	"github.com/cpmech/gosaxs/pool"
)

// Kernel computes binned pairwise distances on the worker pool. distances are
// evaluated in single precision; bin indices round to the nearest integer
// with the inverse bin width precomputed
type Kernel struct {
	P       *pool.Pool // worker pool
	NBins   int        // histogram length
	InvBW   float64    // 1/binwidth
	JobSize int        // outer-loop iterations per job
}

// NewKernel creates a kernel over the default pool
func NewKernel(nbins int, binwidth float64, jobsize int) *Kernel {
	if jobsize < 1 {
		jobsize = 128
	}
	return &Kernel{P: pool.Default(), NBins: nbins, InvBW: 1.0 / binwidth, JobSize: jobsize}
}

// Self computes the self-correlation histogram of one buffer: w_i·w_j for all
// i < j counted twice, plus Σw_i² in bin 0
func (o *Kernel) Self(c CompactCoordinates) Dist1 {
	locals := o.fanout(c.N, func(worker, i0, i1 int, bins Dist1) {
		data := c.Data
		invbw := float32(o.InvBW)
		for i := i0; i < i1; i++ {
			xi, yi, zi, wi := data[4*i], data[4*i+1], data[4*i+2], data[4*i+3]
			for j := i + 1; j < c.N; j++ {
				dx := data[4*j] - xi
				dy := data[4*j+1] - yi
				dz := data[4*j+2] - zi
				d := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
				bins[int(d*invbw+0.5)] += 2 * float64(wi*data[4*j+3])
			}
		}
	})
	res := o.reduce(locals)
	for i := 0; i < c.N; i++ {
		w := c.W(i)
		res[0] += w * w
	}
	return res
}

// Cross computes the cross-correlation histogram of two buffers: w_i·w_j for
// all i, j
func (o *Kernel) Cross(a, b CompactCoordinates) Dist1 {
	locals := o.fanout(a.N, func(worker, i0, i1 int, bins Dist1) {
		da, db := a.Data, b.Data
		invbw := float32(o.InvBW)
		for i := i0; i < i1; i++ {
			xi, yi, zi, wi := da[4*i], da[4*i+1], da[4*i+2], da[4*i+3]
			for j := 0; j < b.N; j++ {
				dx := db[4*j] - xi
				dy := db[4*j+1] - yi
				dz := db[4*j+2] - zi
				d := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
				bins[int(d*invbw+0.5)] += float64(wi * db[4*j+3])
			}
		}
	})
	return o.reduce(locals)
}

// SelfWeighted is Self with per-bin distance-weighted centres
func (o *Kernel) SelfWeighted(c CompactCoordinates) WDist1 {
	locals := o.fanoutW(c.N, func(worker, i0, i1 int, bins WDist1) {
		data := c.Data
		invbw := float32(o.InvBW)
		for i := i0; i < i1; i++ {
			xi, yi, zi, wi := data[4*i], data[4*i+1], data[4*i+2], data[4*i+3]
			for j := i + 1; j < c.N; j++ {
				dx := data[4*j] - xi
				dy := data[4*j+1] - yi
				dz := data[4*j+2] - zi
				d := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
				bins.Add(int(d*invbw+0.5), 2*float64(wi*data[4*j+3]), float64(d))
			}
		}
	})
	res := o.reduceW(locals)
	for i := 0; i < c.N; i++ {
		w := c.W(i)
		res[0].V += w * w
		res[0].N += w * w
	}
	return res
}

// CrossWeighted is Cross with per-bin distance-weighted centres
func (o *Kernel) CrossWeighted(a, b CompactCoordinates) WDist1 {
	locals := o.fanoutW(a.N, func(worker, i0, i1 int, bins WDist1) {
		da, db := a.Data, b.Data
		invbw := float32(o.InvBW)
		for i := i0; i < i1; i++ {
			xi, yi, zi, wi := da[4*i], da[4*i+1], da[4*i+2], da[4*i+3]
			for j := 0; j < b.N; j++ {
				dx := db[4*j] - xi
				dy := db[4*j+1] - yi
				dz := db[4*j+2] - zi
				d := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
				bins.Add(int(d*invbw+0.5), float64(wi*db[4*j+3]), float64(d))
			}
		}
	})
	return o.reduceW(locals)
}

// fanout partitions [0, n) into jobs writing into worker-local bin buffers;
// no shared writes occur until the reduction on the calling goroutine
func (o *Kernel) fanout(n int, run func(worker, i0, i1 int, bins Dist1)) []Dist1 {
	nw := o.P.NumWorkers()
	locals := make([]Dist1, nw)
	for w := 0; w < nw; w++ {
		locals[w] = make(Dist1, o.NBins)
	}
	var futures []*pool.Future
	for i0 := 0; i0 < n; i0 += o.JobSize {
		i0, i1 := i0, i0+o.JobSize
		if i1 > n {
			i1 = n
		}
		futures = append(futures, o.P.Submit(func(worker int) {
			run(worker, i0, i1, locals[worker])
		}))
	}
	pool.WaitAll(futures)
	return locals
}

func (o *Kernel) fanoutW(n int, run func(worker, i0, i1 int, bins WDist1)) []WDist1 {
	nw := o.P.NumWorkers()
	locals := make([]WDist1, nw)
	for w := 0; w < nw; w++ {
		locals[w] = make(WDist1, o.NBins)
	}
	var futures []*pool.Future
	for i0 := 0; i0 < n; i0 += o.JobSize {
		i0, i1 := i0, i0+o.JobSize
		if i1 > n {
			i1 = n
		}
		futures = append(futures, o.P.Submit(func(worker int) {
			run(worker, i0, i1, locals[worker])
		}))
	}
	pool.WaitAll(futures)
	return locals
}

// reduce merges the worker-local buffers; the merge is associative and
// commutative so order is irrelevant
func (o *Kernel) reduce(locals []Dist1) Dist1 {
	res := make(Dist1, o.NBins)
	for _, l := range locals {
		res.AddDist(l)
	}
	return res
}

func (o *Kernel) reduceW(locals []WDist1) WDist1 {
	res := make(WDist1, o.NBins)
	for _, l := range locals {
		res.AddDist(l)
	}
	return res
}
