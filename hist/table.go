// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"math"
	"sync"

	"github.com/cpmech/gosaxs/ffs"
	"github.com/cpmech/gosl/chk"
)

// sincTaylorCutoff selects the Taylor fallback of Sinc
const sincTaylorCutoff = 1e-3

// Sinc computes sin(x)/x with a Taylor expansion below the cutoff,
//  1 - x²/6 + x⁴/120
func Sinc(x float64) float64 {
	if math.Abs(x) < sincTaylorCutoff {
		x2 := x * x
		return 1.0 - x2/6.0 + x2*x2/120.0
	}
	return math.Sin(x) / x
}

// DebyeTable is an immutable lookup table of sinc(q·d) over a q-axis and a
// set of distance samples
type DebyeTable struct {
	Nq, Nd int
	v      []float64 // row-major: v[iq*Nd+id]
}

// NewDebyeTable builds a table for the given q and d samples and checks it
// against a short sanity pattern (first and last samples)
func NewDebyeTable(qvals, dvals []float64) (o *DebyeTable) {
	o = new(DebyeTable)
	o.Nq = len(qvals)
	o.Nd = len(dvals)
	o.v = make([]float64, o.Nq*o.Nd)
	for iq, q := range qvals {
		row := o.v[iq*o.Nd : (iq+1)*o.Nd]
		for id, d := range dvals {
			row[id] = Sinc(q * d)
		}
	}
	if o.Nq > 0 && o.Nd > 0 {
		if o.v[0] != Sinc(qvals[0]*dvals[0]) || o.v[len(o.v)-1] != Sinc(qvals[o.Nq-1]*dvals[o.Nd-1]) {
			chk.Panic("debye table failed the sanity pattern")
		}
	}
	return
}

// Lookup returns sinc(q_iq · d_id)
func (o *DebyeTable) Lookup(iq, id int) float64 { return o.v[iq*o.Nd+id] }

// Row returns the d-row for one q index
func (o *DebyeTable) Row(iq int) []float64 { return o.v[iq*o.Nd : (iq+1)*o.Nd] }

// process-wide tables are built once per (q-axis, number of bins, bin width)
// and shared; only the weighted-centre tables of a Composite are owned
type defaultTableKey struct {
	nq       int
	qmin     float64
	qmax     float64
	nd       int
	binwidth float64
}

var (
	defaultTables   = make(map[defaultTableKey]*DebyeTable)
	defaultTablesMu sync.Mutex
)

// GetDebyeTable returns a shared table for a q-axis and a nominal d-axis
// (bin centres i·width). weighted d-centres always get per-call tables
func GetDebyeTable(q Axis, nbins int, binwidth float64) *DebyeTable {
	key := defaultTableKey{nq: q.Bins, qmin: q.Min, qmax: q.Max, nd: nbins, binwidth: binwidth}
	defaultTablesMu.Lock()
	defer defaultTablesMu.Unlock()
	if t, ok := defaultTables[key]; ok {
		return t
	}
	t := NewDebyeTable(q.Vals(), DVals(nbins, binwidth))
	defaultTables[key] = t
	return t
}

// shared form-factor product tables keyed by q-axis
var (
	productTables   = make(map[Axis]*ffs.ProductTable)
	productTablesMu sync.Mutex
)

func getProductTable(q Axis) *ffs.ProductTable {
	productTablesMu.Lock()
	defer productTablesMu.Unlock()
	if t, ok := productTables[q]; ok {
		return t
	}
	t := ffs.NewProductTable(q.Vals())
	productTables[q] = t
	return t
}
