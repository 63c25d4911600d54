// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"
	"sync"
)

// Offset is a relative bin position
type Offset struct {
	DX, DY, DZ int
}

// Stencils holds the four radial-shell offset sets at radii r, 3r, 5r and 7r,
// plus the unit directions they were generated from. Shells[k][i] is the bin
// offset of direction i at shell radius k. one octant is generated and
// reflected so the shells are symmetric under all sign flips
type Stencils struct {
	Shells [4][]Offset  // [4][ndirs] bin offsets, aligned with Dirs
	Dirs   [][3]float64 // unit directions (shared by all shells)
}

// stencil cache keyed by (width, radius); stencils are immutable once built
var (
	stencilCache   = make(map[[2]float64]*Stencils)
	stencilCacheMu sync.Mutex
)

// divisions of the quarter circle used when generating directions
const stencilDivisions = 8

// GetStencils returns the cached stencils for a grid width and base radius
func GetStencils(width, radius float64) *Stencils {
	key := [2]float64{width, radius}
	stencilCacheMu.Lock()
	defer stencilCacheMu.Unlock()
	if s, ok := stencilCache[key]; ok {
		return s
	}
	s := generateStencils(width, radius)
	stencilCache[key] = s
	return s
}

func generateStencils(width, radius float64) (o *Stencils) {
	o = new(Stencils)
	ang := 0.5 * math.Pi / stencilDivisions

	// generate one octant and reflect to keep the sphere symmetric; floating
	// point errors would otherwise move bins between octants
	var sphere [][3]float64
	for theta := 0.0; theta <= 0.5*math.Pi+1e-12; theta += ang {
		for phi := 0.0; phi <= 0.5*math.Pi+1e-12; phi += ang {
			x := math.Cos(phi) * math.Sin(theta)
			y := math.Sin(phi) * math.Sin(theta)
			z := math.Cos(theta)
			sphere = append(sphere,
				[3]float64{x, y, z}, [3]float64{-x, y, z}, [3]float64{x, -y, z}, [3]float64{-x, -y, z},
				[3]float64{x, y, -z}, [3]float64{-x, y, -z}, [3]float64{x, -y, -z}, [3]float64{-x, -y, -z})
		}
	}

	// deduplicate after clamping near-zero components
	var dirs [][3]float64
	for _, p := range sphere {
		for i := 0; i < 3; i++ {
			if math.Abs(p[i]) < 1e-5 {
				p[i] = 0
			}
		}
		dup := false
		for _, d := range dirs {
			dx, dy, dz := d[0]-p[0], d[1]-p[1], d[2]-p[2]
			if dx*dx+dy*dy+dz*dz < 1e-10 {
				dup = true
				break
			}
		}
		if !dup {
			dirs = append(dirs, p)
		}
	}
	o.Dirs = dirs

	invw := 1.0 / width
	radii := [4]float64{radius, 3 * radius, 5 * radius, 7 * radius}
	for k, r := range radii {
		o.Shells[k] = make([]Offset, len(dirs))
		for i, d := range dirs {
			o.Shells[k][i] = Offset{
				DX: int(math.Round(r * d[0] * invw)),
				DY: int(math.Round(r * d[1] * invw)),
				DZ: int(math.Round(r * d[2] * invw)),
			}
		}
	}
	return
}

// SphereOffsets returns all bin offsets within the given radius [Å] for a grid
// width. used by the volume expansion
func SphereOffsets(width, radius float64) (offsets []Offset) {
	rb := int(math.Ceil(radius / width))
	r2 := radius * radius
	for i := -rb; i <= rb; i++ {
		for j := -rb; j <= rb; j++ {
			for k := -rb; k <= rb; k++ {
				x, y, z := float64(i)*width, float64(j)*width, float64(k)*width
				if x*x+y*y+z*z <= r2 {
					offsets = append(offsets, Offset{i, j, k})
				}
			}
		}
	}
	return
}
