// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mol

import "math"

// Symmetry describes a rigid repetition of a body: an optional translation,
// an optional external rotation (axis + angle), an optional internal rotation
// (Euler triple) and a repeat count. the generated transform pivots the
// internal rotation on the body's centre of mass and applies the external
// rotation afterwards
type Symmetry struct {
	Translate [3]float64 // translation per repeat [Å]
	Axis      [3]float64 // external rotation axis
	Angle     float64    // external rotation angle per repeat [rad]
	Euler     [3]float64 // internal rotation (z-x-z Euler triple) [rad]
	Repeats   int        // number of generated copies
}

// mat3 is a 3x3 rotation matrix in row-major order
type mat3 [9]float64

func matIdentity() mat3 { return mat3{1, 0, 0, 0, 1, 0, 0, 0, 1} }

func matMul(a, b mat3) (c mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s := 0.0
			for k := 0; k < 3; k++ {
				s += a[3*i+k] * b[3*k+j]
			}
			c[3*i+j] = s
		}
	}
	return
}

func (m mat3) apply(x, y, z float64) (float64, float64, float64) {
	return m[0]*x + m[1]*y + m[2]*z,
		m[3]*x + m[4]*y + m[5]*z,
		m[6]*x + m[7]*y + m[8]*z
}

// matAxisAngle builds the rotation about a (normalised internally) axis
func matAxisAngle(axis [3]float64, angle float64) mat3 {
	n := math.Sqrt(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2])
	if n == 0 || angle == 0 {
		return matIdentity()
	}
	x, y, z := axis[0]/n, axis[1]/n, axis[2]/n
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	return mat3{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c,
	}
}

// matEuler builds the z-x-z intrinsic rotation from an Euler triple
func matEuler(e [3]float64) mat3 {
	rz1 := matAxisAngle([3]float64{0, 0, 1}, e[0])
	rx := matAxisAngle([3]float64{1, 0, 0}, e[1])
	rz2 := matAxisAngle([3]float64{0, 0, 1}, e[2])
	return matMul(rz1, matMul(rx, rz2))
}

// Transform computes the transform of the k-th repeat (1-based) given the
// pivot (the body's centre of mass). the returned function maps a position
func (o *Symmetry) Transform(k int, pivot [3]float64) func(x, y, z float64) (float64, float64, float64) {
	internal := matIdentity()
	external := matIdentity()
	for i := 0; i < k; i++ {
		internal = matMul(internal, matEuler(o.Euler))
		external = matMul(external, matAxisAngle(o.Axis, o.Angle))
	}
	tx := o.Translate[0] * float64(k)
	ty := o.Translate[1] * float64(k)
	tz := o.Translate[2] * float64(k)
	return func(x, y, z float64) (float64, float64, float64) {
		// internal rotation about the pivot
		x, y, z = internal.apply(x-pivot[0], y-pivot[1], z-pivot[2])
		x, y, z = x+pivot[0], y+pivot[1], z+pivot[2]
		// external rotation, then translation
		x, y, z = external.apply(x, y, z)
		return x + tx, y + ty, z + tz
	}
}
