// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hyd

import (
	"github.com/cpmech/gosaxs/grid"
	"github.com/cpmech/gosaxs/inp"
	"github.com/cpmech/gosaxs/mol"
)

// minimum separation between placed waters [Å]
const waterSeparation = 3.0

// Radial casts rays from each atom centre along the generated radial lines
// and places a water at the first grid cell that is empty, sits just outside
// the surface shell, and has no earlier water within the minimum separation
type Radial struct {
	stg *inp.Settings
}

func init() {
	allocators["radial"] = func(stg *inp.Settings, m *mol.Molecule) Strategy {
		return &Radial{stg: stg}
	}
	allocators["axes"] = func(stg *inp.Settings, m *mol.Molecule) Strategy {
		return &Axes{stg: stg}
	}
}

// NoCulling implements the strategy post-condition
func (o *Radial) NoCulling() bool { return false }

// Generate implements the radial scan
func (o *Radial) Generate(g *grid.Grid, atoms []grid.Member[mol.AtomFF]) (waters []mol.Water, err error) {
	st := grid.GetStencils(g.W, o.stg.RVol+o.stg.RHydration)
	return castRays(g, atoms, st.Dirs, o.stg), nil
}

// Axes is the restricted form of Radial using only the six axis-aligned
// directions
type Axes struct {
	stg *inp.Settings
}

// NoCulling implements the strategy post-condition
func (o *Axes) NoCulling() bool { return false }

// Generate implements the axis scan
func (o *Axes) Generate(g *grid.Grid, atoms []grid.Member[mol.AtomFF]) (waters []mol.Water, err error) {
	dirs := [][3]float64{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
	return castRays(g, atoms, dirs, o.stg), nil
}

// castRays walks each direction outward from every atom centre and places at
// most one water per ray: the first empty cell right after leaving the atom's
// stamped shell
func castRays(g *grid.Grid, atoms []grid.Member[mol.AtomFF], dirs [][3]float64, stg *inp.Settings) (waters []mol.Water) {
	sep2 := waterSeparation * waterSeparation
	nsteps := int((stg.RVol+2.0*stg.RHydration)*g.InvW) + 3
	for m := range atoms {
		am := &atoms[m]
		for _, d := range dirs {
			prevStamped := true // the centre cell belongs to the atom
			for s := 1; s <= nsteps; s++ {
				r := float64(s)
				i := am.I + roundStep(d[0], r)
				j := am.J + roundStep(d[1], r)
				k := am.K + roundStep(d[2], r)
				if !g.InRange(i, j, k) {
					break
				}
				cs := g.At(i, j, k)
				if cs.IsAtomAreaOrVolume() || cs.IsAtomCenter() {
					prevStamped = true
					continue
				}
				if !cs.IsEmpty() {
					break // water or foreign occupancy blocks the ray
				}
				if !prevStamped {
					break // drifted away from the surface without placing
				}
				// first empty cell after the surface shell
				x, y, z := g.ToXYZ(i, j, k)
				if !tooClose(waters, x, y, z, sep2) {
					waters = append(waters, mol.NewWater(x, y, z))
				}
				break
			}
		}
	}
	return
}

// roundStep rounds a directional offset away from zero
func roundStep(d, r float64) int {
	v := d * r
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func tooClose(waters []mol.Water, x, y, z, sep2 float64) bool {
	for i := range waters {
		dx, dy, dz := waters[i].X-x, waters[i].Y-y, waters[i].Z-z
		if dx*dx+dy*dy+dz*dz < sep2 {
			return true
		}
	}
	return false
}
