// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hyd

import (
	"sort"

	"github.com/cpmech/gosaxs/inp"
	"github.com/cpmech/gosaxs/mol"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/rnd"
)

// Culler reduces a generated water set to roughly the target count
type Culler interface {
	Cull(waters []mol.Water, target int) []mol.Water
}

// culling factory
var cullers = make(map[string]func(stg *inp.Settings) Culler)

// NewCuller allocates a culling strategy by name
func NewCuller(name string, stg *inp.Settings) (Culler, error) {
	alloc, ok := cullers[name]
	if !ok {
		return nil, chk.Err("unknown culling strategy %q", name)
	}
	return alloc(stg), nil
}

func init() {
	cullers["none"] = func(stg *inp.Settings) Culler { return noCull{} }
	cullers["counter"] = func(stg *inp.Settings) Culler { return counterCull{} }
	cullers["random-counter"] = func(stg *inp.Settings) Culler { return randomCounterCull{seed: stg.Seed} }
	cullers["outlier"] = func(stg *inp.Settings) Culler { return outlierCull{} }
	cullers["random-outlier"] = func(stg *inp.Settings) Culler { return randomOutlierCull{seed: stg.Seed} }
}

// noCull keeps everything
type noCull struct{}

func (noCull) Cull(waters []mol.Water, target int) []mol.Water { return waters }

// counterCull keeps every n-th water
type counterCull struct{}

func (counterCull) Cull(waters []mol.Water, target int) []mol.Water {
	if target <= 0 || len(waters) <= target {
		return waters
	}
	kept := make([]mol.Water, 0, target)
	step := float64(len(waters)) / float64(target)
	for pos := 0.0; int(pos) < len(waters) && len(kept) < target; pos += step {
		kept = append(kept, waters[int(pos)])
	}
	return kept
}

// randomCounterCull keeps waters with probability target/n, reproducibly
type randomCounterCull struct {
	seed int
}

func (o randomCounterCull) Cull(waters []mol.Water, target int) []mol.Water {
	if target <= 0 || len(waters) <= target {
		return waters
	}
	rnd.Init(o.seed)
	p := float64(target) / float64(len(waters))
	kept := make([]mol.Water, 0, target)
	for i := range waters {
		if rnd.Float64(0, 1) < p {
			kept = append(kept, waters[i])
		}
	}
	return kept
}

// outlierCull smooths the radial distribution: waters are ranked by distance
// to the centroid and kept at evenly spaced quantiles, trimming the extremes
type outlierCull struct{}

func (outlierCull) Cull(waters []mol.Water, target int) []mol.Water {
	if target <= 0 || len(waters) <= target {
		return waters
	}
	idx := rankByCentroidDistance(waters)
	kept := make([]mol.Water, 0, target)
	step := float64(len(idx)) / float64(target)
	for pos := 0.0; int(pos) < len(idx) && len(kept) < target; pos += step {
		kept = append(kept, waters[idx[int(pos)]])
	}
	return kept
}

// randomOutlierCull is outlierCull with a reproducible jitter on the quantile
// positions
type randomOutlierCull struct {
	seed int
}

func (o randomOutlierCull) Cull(waters []mol.Water, target int) []mol.Water {
	if target <= 0 || len(waters) <= target {
		return waters
	}
	rnd.Init(o.seed)
	idx := rankByCentroidDistance(waters)
	kept := make([]mol.Water, 0, target)
	step := float64(len(idx)) / float64(target)
	for pos := 0.0; len(kept) < target; pos += step {
		p := int(pos + rnd.Float64(0, step))
		if p >= len(idx) {
			p = len(idx) - 1
		}
		kept = append(kept, waters[idx[p]])
	}
	return kept
}

func rankByCentroidDistance(waters []mol.Water) []int {
	var cx, cy, cz float64
	for i := range waters {
		cx += waters[i].X
		cy += waters[i].Y
		cz += waters[i].Z
	}
	n := float64(len(waters))
	cx, cy, cz = cx/n, cy/n, cz/n
	d2 := make([]float64, len(waters))
	idx := make([]int, len(waters))
	for i := range waters {
		dx, dy, dz := waters[i].X-cx, waters[i].Y-cy, waters[i].Z-cz
		d2[i] = dx*dx + dy*dy + dz*dz
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return d2[idx[a]] < d2[idx[b]] })
	return idx
}
