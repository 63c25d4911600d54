// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hyd

import (
	"github.com/cpmech/gosaxs/grid"
	"github.com/cpmech/gosaxs/inp"
	"github.com/cpmech/gosaxs/mol"
)

// Pepsi fills every empty cell of the shell [r, r+width(Rg)] around each atom
// with a water, following the Pepsi-SAXS construction. no culling step runs
// after this strategy
type Pepsi struct {
	stg *inp.Settings
	m   *mol.Molecule
}

func init() {
	allocators["pepsi"] = func(stg *inp.Settings, m *mol.Molecule) Strategy {
		return &Pepsi{stg: stg, m: m}
	}
}

// NoCulling is authoritative: the generated shell is the hydration layer
func (o *Pepsi) NoCulling() bool { return true }

// distance from the atom to the hydration shell [Å]
const pepsiShellOffset = 3.0

// shellWidth interpolates the shell width between 3 Å and 5 Å over
// Rg ∈ [15, 20]
func shellWidth(rg float64) float64 {
	w := 3.0 + (rg-15.0)*(5.0-3.0)/(20.0-15.0)
	if w < 3 {
		return 3
	}
	if w > 5 {
		return 5
	}
	return w
}

// Generate fills the shell and marks each placed cell as a water centre
func (o *Pepsi) Generate(g *grid.Grid, atoms []grid.Member[mol.AtomFF]) (waters []mol.Water, err error) {
	width := shellWidth(o.m.Rg())
	maxR := pepsiShellOffset + width
	maxR2 := maxR * maxR
	minR2 := pepsiShellOffset * pepsiShellOffset
	rb := int(maxR*g.InvW) + 1

	for m := range atoms {
		am := &atoms[m]
		for di := -rb; di <= rb; di++ {
			for dj := -rb; dj <= rb; dj++ {
				for dk := -rb; dk <= rb; dk++ {
					i, j, k := am.I+di, am.J+dj, am.K+dk
					if !g.InRange(i, j, k) {
						continue
					}
					if !g.At(i, j, k).IsEmpty() {
						continue
					}
					x, y, z := g.ToXYZ(i, j, k)
					dx, dy, dz := x-am.X, y-am.Y, z-am.Z
					if d2 := dx*dx + dy*dy + dz*dz; d2 >= minR2 && d2 < maxR2 {
						waters = append(waters, mol.NewWater(x, y, z))
						if err = g.AddWater(waters[len(waters)-1]); err != nil {
							return nil, err
						}
					}
				}
			}
		}
	}
	return
}
