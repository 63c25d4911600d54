// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hist

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// ExvModel is one excluded-volume method: a Gaussian envelope G(q) applied to
// the exv form factors, with method-specific parameters and scaling limits
type ExvModel interface {
	Name() string
	RequiresFF() bool             // needs resolved form factors (rejects UNKNOWN atoms)
	Limits() (lo, hi float64)     // admissible excluded-volume scaling cx
	Factor(q, cx, V float64) float64 // envelope G(q); V is the average displaced volume
}

// exv method factory
var exvModels = make(map[string]func() ExvModel)

// NewExvModel allocates an excluded-volume model by name
func NewExvModel(name string) (ExvModel, error) {
	alloc, ok := exvModels[name]
	if !ok {
		return nil, chk.Err("unknown excluded-volume method %q", name)
	}
	return alloc(), nil
}

func init() {
	exvModels["simple"] = func() ExvModel { return simpleExv{} }
	exvModels["average"] = func() ExvModel { return averageExv{} }
	exvModels["fraser"] = func() ExvModel { return fraserExv{} }
	exvModels["crysol"] = func() ExvModel { return crysolExv{} }
	exvModels["foxs"] = func() ExvModel { return foxsExv{} }
	exvModels["pepsi"] = func() ExvModel { return pepsiExv{} }
	exvModels["grid"] = func() ExvModel { return gridExv{} }
}

// simpleExv subtracts the displaced charge from the atom weights before the
// kernels run; no q-dependent envelope remains
type simpleExv struct{}

func (simpleExv) Name() string                    { return "simple" }
func (simpleExv) RequiresFF() bool                { return false }
func (simpleExv) Limits() (float64, float64)      { return 1, 1 }
func (simpleExv) Factor(q, cx, V float64) float64 { return 1 }

// averageExv scales the per-type exv form factors linearly by cx, as fraserExv
// does; no single average exv form factor is used
type averageExv struct{}

func (averageExv) Name() string                    { return "average" }
func (averageExv) RequiresFF() bool                { return true }
func (averageExv) Limits() (float64, float64)      { return 0.9, 1.1 }
func (averageExv) Factor(q, cx, V float64) float64 { return cx }

// fraserExv uses the per-type Gaussian-sphere exv form factors with a linear
// amplitude scaling
type fraserExv struct{}

func (fraserExv) Name() string                    { return "fraser" }
func (fraserExv) RequiresFF() bool                { return true }
func (fraserExv) Limits() (float64, float64)      { return 0.9, 1.1 }
func (fraserExv) Factor(q, cx, V float64) float64 { return cx }

// crysolExv applies the CRYSOL expansion factor
//  G(q) = cx³ · exp(-c·(cx²-1)·q²)    c = V^(2/3)/(4π)
type crysolExv struct{}

func (crysolExv) Name() string               { return "crysol" }
func (crysolExv) RequiresFF() bool           { return true }
func (crysolExv) Limits() (float64, float64) { return 0.8, 1.265 }
func (crysolExv) Factor(q, cx, V float64) float64 {
	c := math.Pow(V, 2.0/3.0) / (4.0 * math.Pi)
	return cx * cx * cx * math.Exp(-c*(cx*cx-1.0)*q*q)
}

// foxsExv applies the FoXS envelope with the sphere-packing prefactor
type foxsExv struct{}

func (foxsExv) Name() string               { return "foxs" }
func (foxsExv) RequiresFF() bool           { return true }
func (foxsExv) Limits() (float64, float64) { return 0.95, 1.05 }
func (foxsExv) Factor(q, cx, V float64) float64 {
	rm2 := math.Pow(V, 2.0/3.0)
	c := math.Pow(4.0*math.Pi/3.0, 1.5) * rm2 / (16.0 * math.Pi)
	return cx * cx * cx * math.Exp(-c*(cx*cx-1.0)*q*q)
}

// pepsiExv applies the Pepsi-SAXS envelope: linear amplitude with a soft
// Gaussian correction
type pepsiExv struct{}

func (pepsiExv) Name() string               { return "pepsi" }
func (pepsiExv) RequiresFF() bool           { return true }
func (pepsiExv) Limits() (float64, float64) { return 0.9, 1.1 }
func (pepsiExv) Factor(q, cx, V float64) float64 {
	c := math.Pow(V, 2.0/3.0) / (4.0 * math.Pi)
	return cx * math.Exp(-c*(cx*cx-1.0)*q*q)
}

// gridExv returns the linear factor cx; the shape is carried by the grid
// pseudo-atoms. the plain composite multiplies the whole intensity by it, so
// the pseudo-atoms are not scaled separately from the atoms and waters
type gridExv struct{}

func (gridExv) Name() string                    { return "grid" }
func (gridExv) RequiresFF() bool                { return false }
func (gridExv) Limits() (float64, float64)      { return 0.8, 1.25 }
func (gridExv) Factor(q, cx, V float64) float64 { return cx }
