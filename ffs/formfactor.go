// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ffs implements atomic and excluded-volume form factors
//  References:
//   [1] Waasmaier D and Kirfel A (1995) New analytical scattering-factor functions
//       for free atoms and ions, Acta Crystallographica A51, 416-431
//   [2] Fraser RDB, MacRae TP and Suzuki E (1978) An improved method for calculating
//       the contribution of solvent to the X-ray diffraction pattern of biological
//       molecules, Journal of Applied Crystallography 11, 693-694
package ffs

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Type identifies the effective scatterer of an atom or atomic group
type Type int

// form factor types. the closed set of group types is resolved at input time;
// EXV tags the excluded-volume pseudo-atom used by the grid-based models
const (
	H Type = iota
	C
	CH
	CH2
	CH3
	N
	NH
	NH2
	NH3
	O
	OH
	S
	SH
	OTHER
	UNKNOWN
	EXV
)

// NumTypes is the number of concrete atomic types (excluding UNKNOWN and EXV)
const NumTypes = int(OTHER) + 1

// typenames maps types to names
var typenames = []string{"H", "C", "CH", "CH2", "CH3", "N", "NH", "NH2", "NH3", "O", "OH", "S", "SH", "OTHER", "UNKNOWN", "EXV"}

// String returns the name of this type
func (t Type) String() string {
	if t < 0 || int(t) >= len(typenames) {
		return "INVALID"
	}
	return typenames[t]
}

// TypeByName returns the type with the given name. returns UNKNOWN if absent
func TypeByName(name string) Type {
	for i, n := range typenames {
		if n == name {
			return Type(i)
		}
	}
	return UNKNOWN
}

// FormFactor implements the five-Gaussian analytical form factor from [1]
//  f(q) = Σ_k a[k]·exp(-b[k]·(q/4π)²) + c
// Evaluate returns the curve normalised to 1 at q = 0
type FormFactor struct {
	A  [5]float64 // Gaussian amplitudes
	B  [5]float64 // Gaussian exponents [Å²]
	C  float64    // constant term
	f0 float64    // f(0) == Σa + c
}

// NewFormFactor returns a form factor with the normalisation constant set
func NewFormFactor(a, b [5]float64, c float64) FormFactor {
	o := FormFactor{A: a, B: b, C: c}
	o.f0 = a[0] + a[1] + a[2] + a[3] + a[4] + c
	return o
}

// F0 returns the forward scattering f(0), i.e. the effective number of electrons
func (o *FormFactor) F0() float64 { return o.f0 }

// Evaluate computes the normalised form factor at q [Å⁻¹]
func (o *FormFactor) Evaluate(q float64) float64 {
	// the tabulated exponents are expressed in s = q/4π
	s2 := q * q / (16.0 * math.Pi * math.Pi)
	sum := o.C
	for k := 0; k < 5; k++ {
		sum += o.A[k] * math.Exp(-o.B[k]*s2)
	}
	return sum / o.f0
}

// five-Gaussian coefficients from [1]
var (
	ffH = NewFormFactor(
		[5]float64{0.413048, 0.294953, 0.187491, 0.080701, 0.023736},
		[5]float64{15.569946, 32.398468, 5.711404, 61.889874, 1.334118},
		0.000049)
	ffC = NewFormFactor(
		[5]float64{2.657506, 1.078079, 1.490909, -4.241070, 0.713791},
		[5]float64{14.780758, 0.776775, 42.086843, -0.000294, 0.239535},
		4.297983)
	ffN = NewFormFactor(
		[5]float64{11.893780, 3.277479, 1.858092, 0.858927, 0.912985},
		[5]float64{0.000158, 10.232723, 30.344690, 0.656065, 0.217287},
		-11.804902)
	ffO = NewFormFactor(
		[5]float64{2.960427, 2.508818, 0.637853, 0.722838, 1.142756},
		[5]float64{14.182259, 5.936858, 0.112726, 34.958481, 0.390240},
		0.027014)
	ffS = NewFormFactor(
		[5]float64{6.372157, 5.154568, 1.473732, 1.635073, 1.209372},
		[5]float64{1.514347, 22.092528, 0.061373, 55.445176, 0.646925},
		0.154722)
	// argon stands in for unrecognised scatterers
	ffAr = NewFormFactor(
		[5]float64{7.188004, 6.638454, 0.454180, 1.929593, 1.523654},
		[5]float64{0.956221, 15.339877, 15.339862, 39.043824, 0.062409},
		0.265954)
)

// nHydrogens returns the number of attached hydrogens folded into a group type
func nHydrogens(t Type) float64 {
	switch t {
	case CH, NH, OH, SH:
		return 1
	case CH2, NH2:
		return 2
	case CH3, NH3:
		return 3
	}
	return 0
}

// base returns the heavy-atom form factor of a (possibly grouped) type
func base(t Type) *FormFactor {
	switch t {
	case H:
		return &ffH
	case C, CH, CH2, CH3:
		return &ffC
	case N, NH, NH2, NH3:
		return &ffN
	case O, OH:
		return &ffO
	case S, SH:
		return &ffS
	}
	return &ffAr
}

// Charge returns the effective forward scattering (electron count) of a type,
// with attached hydrogens folded in
func Charge(t Type) float64 {
	return base(t).F0() + nHydrogens(t)*ffH.F0()
}

// Eval computes the normalised atomic form factor of a type at q. group types
// combine the heavy atom with its hydrogens weighted by forward scattering
func Eval(t Type, q float64) float64 {
	if t == EXV {
		return EvalExv(AvgDisplacedVolume, q)
	}
	nh := nHydrogens(t)
	if nh == 0 {
		return base(t).Evaluate(q)
	}
	zb := base(t).F0()
	zh := nh * ffH.F0()
	return (zb*base(t).Evaluate(q) + zh*ffH.Evaluate(q)) / (zb + zh)
}

// Get returns the form factor of a concrete type. UNKNOWN types are rejected
// so that the form-factor-resolved models cannot silently mix in garbage
func Get(t Type) (*FormFactor, error) {
	if t == UNKNOWN {
		return nil, chk.Err("unknown atom: cannot resolve UNKNOWN form factor")
	}
	return base(t), nil
}

// TypeFromElement maps a chemical element symbol to a form factor type
func TypeFromElement(element string) Type {
	switch element {
	case "H":
		return H
	case "C":
		return C
	case "N":
		return N
	case "O":
		return O
	case "S":
		return S
	case "":
		return UNKNOWN
	}
	return OTHER
}
