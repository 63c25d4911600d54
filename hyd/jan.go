// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hyd

import (
	"github.com/cpmech/gosaxs/grid"
	"github.com/cpmech/gosaxs/inp"
	"github.com/cpmech/gosaxs/mol"
)

// Jan scans ±r_eff bins along each cardinal axis from every occupied cell of
// the bounding box and emits a water wherever the displaced cell is free
type Jan struct {
	stg *inp.Settings
}

func init() {
	allocators["jan"] = func(stg *inp.Settings, m *mol.Molecule) Strategy {
		return &Jan{stg: stg}
	}
}

// NoCulling implements the strategy post-condition
func (o *Jan) NoCulling() bool { return false }

// Generate implements the cardinal-axis scan
func (o *Jan) Generate(g *grid.Grid, atoms []grid.Member[mol.AtomFF]) (waters []mol.Water, err error) {
	rEff := int((o.stg.RVol + o.stg.RHydration + o.stg.ShellCorr) * g.InvW)
	if rEff < 1 {
		rEff = 1
	}
	min, max := g.BoundingBoxIndex()

	addLoc := func(i, j, k int) {
		x, y, z := g.ToXYZ(i, j, k)
		waters = append(waters, mol.NewWater(x, y, z))
	}
	clamp := func(v, n int) int {
		if v < 0 {
			return 0
		}
		if v > n-1 {
			return n - 1
		}
		return v
	}

	for i := min[0]; i < max[0]; i++ {
		im, ip := clamp(i-rEff, g.N[0]), clamp(i+rEff, g.N[0])
		for j := min[1]; j < max[1]; j++ {
			jm, jp := clamp(j-rEff, g.N[1]), clamp(j+rEff, g.N[1])
			for k := min[2]; k < max[2]; k++ {
				if g.At(i, j, k).IsOnlyEmptyOrVolume() {
					continue
				}
				km, kp := clamp(k-rEff, g.N[2]), clamp(k+rEff, g.N[2])

				// collisions for x ± r_eff
				if g.At(im, j, k).IsOnlyEmptyOrVolume() {
					addLoc(im, j, k)
				}
				if g.At(ip, j, k).IsOnlyEmptyOrVolume() {
					addLoc(ip, j, k)
				}

				// collisions for y ± r_eff
				if g.At(i, jm, k).IsOnlyEmptyOrVolume() {
					addLoc(i, jm, k)
				}
				if g.At(i, jp, k).IsOnlyEmptyOrVolume() {
					addLoc(i, jp, k)
				}

				// collisions for z ± r_eff
				if g.At(i, j, km).IsOnlyEmptyOrVolume() {
					addLoc(i, j, km)
				}
				if g.At(i, j, kp).IsOnlyEmptyOrVolume() {
					addLoc(i, j, kp)
				}
			}
		}
	}
	return
}
