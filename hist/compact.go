// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"github.com/cpmech/gosaxs/ffs"
	"github.com/cpmech/gosaxs/inp"
	"github.com/cpmech/gosaxs/mol"
)

// CompactCoordinates packs atoms as (x, y, z, w) float32 lanes so the inner
// distance loops load both endpoints with unit stride and no branches. the
// entry count is padded to a multiple of four with zero weights
type CompactCoordinates struct {
	N    int       // number of real entries
	Data []float32 // 4·padded(N) values, [x0 y0 z0 w0 x1 y1 z1 w1 ...]
	Type []ffs.Type // form-factor tag per real entry
}

func pad4(n int) int { return (n + 3) &^ 3 }

// NewCompactAtoms packs the atoms of the given bodies in body order
func NewCompactAtoms(bodies []*mol.Body) (o CompactCoordinates) {
	n := 0
	for _, b := range bodies {
		n += len(b.Atoms)
	}
	o.N = n
	o.Data = make([]float32, 4*pad4(n))
	o.Type = make([]ffs.Type, n)
	i := 0
	for _, b := range bodies {
		for k := range b.Atoms {
			a := &b.Atoms[k]
			o.set(i, a.X, a.Y, a.Z, a.W)
			o.Type[i] = a.Type
			i++
		}
	}
	return
}

// NewCompactWaters packs a water layer
func NewCompactWaters(waters []mol.Water) (o CompactCoordinates) {
	o.N = len(waters)
	o.Data = make([]float32, 4*pad4(o.N))
	o.Type = make([]ffs.Type, o.N)
	for i := range waters {
		w := &waters[i]
		o.set(i, w.X, w.Y, w.Z, w.W)
		o.Type[i] = ffs.O
	}
	return
}

// NewCompactPoints packs bare weighted points (the grid-based excluded-volume
// pseudo-atoms)
func NewCompactPoints(pts [][3]float64, w float64) (o CompactCoordinates) {
	o.N = len(pts)
	o.Data = make([]float32, 4*pad4(o.N))
	o.Type = make([]ffs.Type, o.N)
	for i, p := range pts {
		o.set(i, p[0], p[1], p[2], w)
		o.Type[i] = ffs.EXV
	}
	return
}

func (o *CompactCoordinates) set(i int, x, y, z, w float64) {
	o.Data[4*i] = float32(x)
	o.Data[4*i+1] = float32(y)
	o.Data[4*i+2] = float32(z)
	o.Data[4*i+3] = float32(w)
}

// W returns the weight of entry i
func (o *CompactCoordinates) W(i int) float64 { return float64(o.Data[4*i+3]) }

// appendCompact concatenates two buffers into a freshly padded one
func appendCompact(a, b CompactCoordinates) (o CompactCoordinates) {
	o.N = a.N + b.N
	o.Data = make([]float32, 4*pad4(o.N))
	o.Type = make([]ffs.Type, o.N)
	copy(o.Data, a.Data[:4*a.N])
	copy(o.Data[4*a.N:], b.Data[:4*b.N])
	copy(o.Type, a.Type)
	copy(o.Type[a.N:], b.Type)
	return
}

// ApplySimpleExv converts weights to effective scattering weights by
// subtracting the displaced-solvent charge, w ← w − ρ·V(type). used by the
// simple excluded-volume model; UNKNOWN entries use the average volume
func (o *CompactCoordinates) ApplySimpleExv(stg *inp.Settings) {
	for i := 0; i < o.N; i++ {
		v := ffs.DisplacedVolume(o.Type[i])
		o.Data[4*i+3] -= float32(ffs.RhoWater * v)
	}
}
