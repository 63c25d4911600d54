// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ffs

import "math"

// RhoWater is the electron density of bulk water [e/Å³]
const RhoWater = 0.334

// displaced volumes [Å³] after Fraser, MacRae & Suzuki (Traube values as
// adopted by CRYSOL)
var displacedVolume = []float64{
	5.15,          // H
	16.44,         // C
	16.44 + 5.15,  // CH
	16.44 + 10.30, // CH2
	16.44 + 15.45, // CH3
	2.49,          // N
	2.49 + 5.15,   // NH
	2.49 + 10.30,  // NH2
	2.49 + 15.45,  // NH3
	9.13,          // O
	9.13 + 5.15,   // OH
	19.86,         // S
	19.86 + 5.15,  // SH
	16.44,         // OTHER (argon-like)
	AvgDisplacedVolume, // UNKNOWN (average; usable by the simple model only)
}

// AvgDisplacedVolume is the default average displaced volume per scatterer [Å³]
const AvgDisplacedVolume = 18.0

// DisplacedVolume returns the solvent volume displaced by a scatterer of the
// given type [Å³]
func DisplacedVolume(t Type) float64 {
	if t < 0 || int(t) >= len(displacedVolume) {
		return AvgDisplacedVolume
	}
	return displacedVolume[t]
}

// ExvFormFactor is the Gaussian-sphere excluded-volume form factor from
// Fraser, MacRae & Suzuki:
//  f_x(q) = q0 · exp(-exponent·q²)    q0 = V·ρ_water    exponent = V^(2/3)/(4π)
type ExvFormFactor struct {
	Exponent float64 // Gaussian decay [Å²]
	Q0       float64 // forward scattering == displaced charge [e]
}

// NewExvFormFactor creates an excluded-volume form factor for the given
// displaced volume [Å³]
func NewExvFormFactor(volume float64) ExvFormFactor {
	return ExvFormFactor{
		Exponent: math.Pow(volume, 2.0/3.0) / (4.0 * math.Pi),
		Q0:       volume * RhoWater,
	}
}

// EvaluateNormalized computes f_x(q)/f_x(0)
func (o *ExvFormFactor) EvaluateNormalized(q float64) float64 {
	return math.Exp(-o.Exponent * q * q)
}

// Evaluate computes f_x(q)
func (o *ExvFormFactor) Evaluate(q float64) float64 {
	return o.Q0 * o.EvaluateNormalized(q)
}

// exv form factors per type, built once at package load
var exvTable [NumTypes]ExvFormFactor

// EvalExv computes the normalised excluded-volume form factor for an arbitrary
// displaced volume
func EvalExv(volume, q float64) float64 {
	f := NewExvFormFactor(volume)
	return f.EvaluateNormalized(q)
}

// GetExv returns the excluded-volume form factor of a concrete type
func GetExv(t Type) *ExvFormFactor {
	if t < 0 || int(t) >= NumTypes {
		t = OTHER
	}
	return &exvTable[t]
}

func init() {
	for t := 0; t < NumTypes; t++ {
		exvTable[t] = NewExvFormFactor(DisplacedVolume(Type(t)))
	}
}
