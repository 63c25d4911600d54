// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Dataset holds a measured scattering curve (q, I, σ_I [, σ_q])
type Dataset struct {
	Q    []float64 // momentum transfer [Å⁻¹]
	I    []float64 // measured intensity
	Serr []float64 // intensity error
	Qerr []float64 // momentum transfer error; empty for 3-column files
}

// Len returns the number of points
func (o *Dataset) Len() int { return len(o.Q) }

// ReadDataset reads a 3- or 4-column measured curve. qUnit is "A" for Å⁻¹ or
// "nm" for nm⁻¹ (values are converted to Å⁻¹). lines that do not parse as
// numbers are skipped with a one-shot warning
func ReadDataset(fname, qUnit string) (o *Dataset, err error) {
	buf, err := os.ReadFile(fname)
	if err != nil {
		return nil, chk.Err("io error: cannot read data file %q:\n%v", fname, err)
	}
	scale := 1.0
	switch qUnit {
	case "", "A", "A-1", "1/A":
	case "nm", "nm-1", "1/nm":
		scale = 0.1
	default:
		return nil, chk.Err("parse error: unknown q unit %q", qUnit)
	}
	o = new(Dataset)
	ncols := 0
	for _, line := range strings.Split(string(buf), "\n") {
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		tokens := strings.Fields(line)
		if len(tokens) < 3 {
			continue
		}
		vals, ok := atofs(tokens)
		if !ok {
			WarnOnce("dataset-skip:"+fname, "skipping non-numeric line(s) in %q", fname)
			continue
		}
		if ncols == 0 {
			ncols = len(vals)
			if ncols > 4 {
				ncols = 4
			}
		}
		if len(vals) < ncols {
			return nil, chk.Err("dimension mismatch: expected %d columns, got %d", ncols, len(vals))
		}
		o.Q = append(o.Q, vals[0]*scale)
		o.I = append(o.I, vals[1])
		o.Serr = append(o.Serr, vals[2])
		if ncols == 4 {
			o.Qerr = append(o.Qerr, vals[3]*scale)
		}
	}
	if o.Len() == 0 {
		return nil, chk.Err("parse error: no data points in %q", fname)
	}
	return
}

// Restrict clips the dataset to [qmin, qmax] and drops the first skip points
func (o *Dataset) Restrict(qmin, qmax float64, skip int) {
	var q, I, serr, qerr []float64
	for i := range o.Q {
		if i < skip || o.Q[i] < qmin || o.Q[i] > qmax {
			continue
		}
		q = append(q, o.Q[i])
		I = append(I, o.I[i])
		serr = append(serr, o.Serr[i])
		if len(o.Qerr) > 0 {
			qerr = append(qerr, o.Qerr[i])
		}
	}
	o.Q, o.I, o.Serr, o.Qerr = q, I, serr, qerr
}

// atofs converts tokens to floats, reporting failure instead of panicking
func atofs(tokens []string) (vals []float64, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	vals = make([]float64, len(tokens))
	for i, t := range tokens {
		vals[i] = io.Atof(t)
	}
	return vals, true
}
