// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package hyd implements the hydration generator: strategies placing explicit
// waters on the grid, and the culling strategies reducing them to the target
// count
package hyd

import (
	"math"

	"github.com/cpmech/gosaxs/grid"
	"github.com/cpmech/gosaxs/inp"
	"github.com/cpmech/gosaxs/mol"
	"github.com/cpmech/gosl/chk"
)

// Strategy places waters given the grid and the atom members of one body (or
// of the whole molecule for global hydration)
type Strategy interface {
	Generate(g *grid.Grid, atoms []grid.Member[mol.AtomFF]) (waters []mol.Water, err error)
	NoCulling() bool // strategy post-condition forbids a culling step
}

// strategy factory
var allocators = make(map[string]func(stg *inp.Settings, m *mol.Molecule) Strategy)

// NewStrategy allocates a hydration strategy by name
func NewStrategy(name string, stg *inp.Settings, m *mol.Molecule) (Strategy, error) {
	alloc, ok := allocators[name]
	if !ok {
		return nil, chk.Err("unknown hydration strategy %q", name)
	}
	return alloc(stg, m), nil
}

// Generator drives one hydration pass: ensure the grid, generate, cull, and
// attach the waters
type Generator struct {
	Stg      *inp.Settings
	Strategy Strategy
	Culling  Culler
}

// NewGenerator builds the generator configured by the settings
func NewGenerator(stg *inp.Settings, m *mol.Molecule) (o *Generator, err error) {
	o = new(Generator)
	o.Stg = stg
	if o.Strategy, err = NewStrategy(stg.Placement, stg, m); err != nil {
		return nil, err
	}
	culling := stg.Culling
	if o.Strategy.NoCulling() {
		culling = "none"
	}
	if o.Culling, err = NewCuller(culling, stg); err != nil {
		return nil, err
	}
	return
}

// TargetCount computes the water-count heuristic from the grid volume: the
// molecule is taken as a sphere and the count follows its surface area,
//  N = water_scaling · 4π · r^2.5
func TargetCount(stg *inp.Settings, g *grid.Grid) int {
	vol := g.Volume()
	r := math.Cbrt(3.0 * vol / (4.0 * math.Pi))
	return int(stg.WaterScaling * 4.0 * math.Pi * math.Pow(r, 2.5))
}

// Hydrate generates the global hydration layer for the molecule. any previous
// waters are cleared first; the molecule's hydration flag is signalled
func (o *Generator) Hydrate(m *mol.Molecule) (err error) {
	g, ok := m.Grid().(*grid.Grid)
	if !ok || g == nil {
		if g, err = grid.New(o.Stg, m.Bodies); err != nil {
			return err
		}
		m.SetGrid(g)
	} else {
		g.ClearWaters()
	}
	g.ExpandVolume()

	waters, err := o.Strategy.Generate(g, g.AMembers)
	if err != nil {
		return err
	}
	// strategies forbidding culling register their waters during generation
	if !o.Strategy.NoCulling() {
		waters = o.Culling.Cull(waters, TargetCount(o.Stg, g))
		for _, w := range waters {
			if err = g.AddWater(w); err != nil {
				return err
			}
		}
	}
	m.SetGlobalHydration(waters)
	return
}

// HydrateBodies generates one hydration layer per body, attaching the waters
// to their bodies
func (o *Generator) HydrateBodies(m *mol.Molecule) (err error) {
	g, ok := m.Grid().(*grid.Grid)
	if !ok || g == nil {
		if g, err = grid.New(o.Stg, m.Bodies); err != nil {
			return err
		}
		m.SetGrid(g)
	} else {
		g.ClearWaters()
	}
	g.ExpandVolume()

	target := TargetCount(o.Stg, g)
	for _, b := range m.Bodies {
		waters, err := o.Strategy.Generate(g, g.BodyMembers(b.UID()))
		if err != nil {
			return err
		}
		if !o.Strategy.NoCulling() {
			waters = o.Culling.Cull(waters, target)
			for _, w := range waters {
				if err = g.AddWater(w); err != nil {
					return err
				}
			}
		}
		b.SetHydration(waters)
	}
	return
}
