// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"

	"github.com/cpmech/gosaxs/ffs"
	"github.com/cpmech/gosaxs/inp"
	"github.com/cpmech/gosaxs/mol"
	"github.com/cpmech/gosl/chk"
)

// van-der-Waals radii [Å] indexed by heavy-atom element of the form factor
func vdwRadius(t ffs.Type) float64 {
	switch t {
	case ffs.H:
		return 1.20
	case ffs.C, ffs.CH, ffs.CH2, ffs.CH3:
		return 1.70
	case ffs.N, ffs.NH, ffs.NH2, ffs.NH3:
		return 1.55
	case ffs.O, ffs.OH:
		return 1.52
	case ffs.S, ffs.SH:
		return 1.80
	}
	return 1.70
}

// Grid is a dense 3-D array of cell states over the molecule's padded
// bounding box, plus the member maps of its occupants
type Grid struct {
	Stg  *inp.Settings // configuration
	W    float64       // cell width [Å]
	InvW float64       // 1/W
	Min  [3]float64    // Cartesian position of bin (0,0,0)
	N    [3]int        // bins per axis

	AMembers []Member[mol.AtomFF] // atom members, contiguous per body
	WMembers []Member[mol.Water]  // water members

	cells     []State     // state bytes, x-major
	bodyStart map[int]int // body uid => first index into AMembers
	bodyLen   map[int]int // body uid => number of atom members
}

// New creates a grid sized to the given bodies plus padding and adds them all
func New(stg *inp.Settings, bodies []*mol.Body) (o *Grid, err error) {
	lo := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	n := 0
	for _, b := range bodies {
		for i := range b.Atoms {
			a := &b.Atoms[i]
			p := [3]float64{a.X, a.Y, a.Z}
			for d := 0; d < 3; d++ {
				lo[d] = math.Min(lo[d], p[d])
				hi[d] = math.Max(hi[d], p[d])
			}
			n++
		}
	}
	if n == 0 {
		return nil, chk.Err("bad state: cannot build a grid without atoms")
	}

	o = new(Grid)
	o.Stg = stg
	o.W = stg.GridWidth
	o.InvW = 1.0 / o.W
	o.bodyStart = make(map[int]int)
	o.bodyLen = make(map[int]int)

	for d := 0; d < 3; d++ {
		span := hi[d] - lo[d]
		pad := stg.GridScaling*span + 5.0*o.W
		min := lo[d] - pad
		bins := int(math.Ceil((span + 2.0*pad) * o.InvW))
		if bins < stg.GridMinBins {
			extra := float64(stg.GridMinBins-bins) * o.W / 2.0
			min -= extra
			bins = stg.GridMinBins
		}
		o.Min[d] = min
		o.N[d] = bins
	}
	o.cells = make([]State, o.N[0]*o.N[1]*o.N[2])

	for _, b := range bodies {
		if err = o.AddBody(b); err != nil {
			return nil, err
		}
	}
	return
}

// index flattens a bin triple
func (o *Grid) index(i, j, k int) int { return (i*o.N[1]+j)*o.N[2] + k }

// InRange reports whether a bin triple lies inside the grid
func (o *Grid) InRange(i, j, k int) bool {
	return i >= 0 && j >= 0 && k >= 0 && i < o.N[0] && j < o.N[1] && k < o.N[2]
}

// At returns the state of a cell
func (o *Grid) At(i, j, k int) State { return o.cells[o.index(i, j, k)] }

// ToBins maps a Cartesian position to its bin triple
func (o *Grid) ToBins(x, y, z float64) (i, j, k int) {
	i = int(math.Floor((x - o.Min[0]) * o.InvW))
	j = int(math.Floor((y - o.Min[1]) * o.InvW))
	k = int(math.Floor((z - o.Min[2]) * o.InvW))
	return
}

// ToXYZ maps a bin triple to the Cartesian position of its corner
func (o *Grid) ToXYZ(i, j, k int) (x, y, z float64) {
	return o.Min[0] + float64(i)*o.W, o.Min[1] + float64(j)*o.W, o.Min[2] + float64(k)*o.W
}

// AddBody records every atom of the body: its bin position and the A_CENTER
// flag. the shells are stamped later by ExpandVolume. returns an out-of-range
// error if the body does not fit; the grid is not resized or regenerated
func (o *Grid) AddBody(b *mol.Body) (err error) {
	if _, ok := o.bodyStart[b.UID()]; ok {
		return chk.Err("bad state: body %d is already in the grid", b.UID())
	}
	start := len(o.AMembers)
	for i := range b.Atoms {
		a := b.Atoms[i]
		bi, bj, bk := o.ToBins(a.X, a.Y, a.Z)
		if !o.InRange(bi, bj, bk) {
			o.AMembers = o.AMembers[:start]
			return chk.Err("out of range: atom at (%g,%g,%g) falls outside the grid", a.X, a.Y, a.Z)
		}
		o.cells[o.index(bi, bj, bk)] |= ACenter
		o.AMembers = append(o.AMembers, Member[mol.AtomFF]{Obj: a, X: a.X, Y: a.Y, Z: a.Z, I: bi, J: bj, K: bk})
	}
	o.bodyStart[b.UID()] = start
	o.bodyLen[b.UID()] = len(b.Atoms)
	return
}

// RemoveBody removes the body's members and reverts only the cells they
// contributed to: cleared bits shared with surviving members are re-stamped
func (o *Grid) RemoveBody(uid int) (err error) {
	start, ok := o.bodyStart[uid]
	if !ok {
		return chk.Err("bad state: body %d is not in the grid", uid)
	}
	count := o.bodyLen[uid]

	// clear the removed members' cells wholesale
	for m := start; m < start+count; m++ {
		o.clearAtom(&o.AMembers[m])
	}
	o.AMembers = append(o.AMembers[:start], o.AMembers[start+count:]...)
	delete(o.bodyStart, uid)
	delete(o.bodyLen, uid)
	for u, s := range o.bodyStart {
		if s > start {
			o.bodyStart[u] = s - count
		}
	}

	// re-stamp the survivors whose shells may have overlapped
	for m := range o.AMembers {
		o.cells[o.index(o.AMembers[m].I, o.AMembers[m].J, o.AMembers[m].K)] |= ACenter
		if o.AMembers[m].Expanded {
			o.expandAtom(&o.AMembers[m])
		}
	}
	for m := range o.WMembers {
		o.cells[o.index(o.WMembers[m].I, o.WMembers[m].J, o.WMembers[m].K)] |= WCenter
		if o.WMembers[m].Expanded {
			o.expandWater(&o.WMembers[m])
		}
	}
	return
}

// BodyMembers returns the contiguous atom-member block of a body
func (o *Grid) BodyMembers(uid int) []Member[mol.AtomFF] {
	start, ok := o.bodyStart[uid]
	if !ok {
		return nil
	}
	return o.AMembers[start : start+o.bodyLen[uid]]
}

// AddWater records a water member and stamps its centre bin
func (o *Grid) AddWater(w mol.Water) (err error) {
	bi, bj, bk := o.ToBins(w.X, w.Y, w.Z)
	if !o.InRange(bi, bj, bk) {
		return chk.Err("out of range: water at (%g,%g,%g) falls outside the grid", w.X, w.Y, w.Z)
	}
	o.cells[o.index(bi, bj, bk)] |= WCenter
	o.WMembers = append(o.WMembers, Member[mol.Water]{Obj: w, X: w.X, Y: w.Y, Z: w.Z, I: bi, J: bj, K: bk})
	return
}

// RemoveWater removes the m-th water member, reverting only the cells it
// contributed to; overlapping shells of surviving waters are re-stamped
func (o *Grid) RemoveWater(m int) (err error) {
	if m < 0 || m >= len(o.WMembers) {
		return chk.Err("out of range: water member %d (have %d)", m, len(o.WMembers))
	}
	w := &o.WMembers[m]
	o.cells[o.index(w.I, w.J, w.K)] &^= WCenter
	if w.Expanded {
		for _, off := range SphereOffsets(o.W, o.Stg.RHydration) {
			i, j, k := w.I+off.DX, w.J+off.DY, w.K+off.DZ
			if o.InRange(i, j, k) {
				o.cells[o.index(i, j, k)] &^= WArea
			}
		}
	}
	o.WMembers = append(o.WMembers[:m], o.WMembers[m+1:]...)
	for n := range o.WMembers {
		o.cells[o.index(o.WMembers[n].I, o.WMembers[n].J, o.WMembers[n].K)] |= WCenter
		if o.WMembers[n].Expanded {
			o.expandWater(&o.WMembers[n])
		}
	}
	return
}

// ClearWaters removes all water members and their cell flags
func (o *Grid) ClearWaters() {
	for i := range o.cells {
		o.cells[i] &^= WCenter | WArea
	}
	o.WMembers = o.WMembers[:0]
}

// ExpandVolume stamps the volume and surface shells of every member not yet
// expanded. expanding twice is a no-op
func (o *Grid) ExpandVolume() {
	for m := range o.AMembers {
		if !o.AMembers[m].Expanded {
			o.expandAtom(&o.AMembers[m])
			o.AMembers[m].Expanded = true
		}
	}
	for m := range o.WMembers {
		if !o.WMembers[m].Expanded {
			o.expandWater(&o.WMembers[m])
			o.WMembers[m].Expanded = true
		}
	}
}

// expandAtom ORs VOLUME into cells within the vdW radius and A_AREA into the
// shell between the vdW radius and the effective radius
func (o *Grid) expandAtom(m *Member[mol.AtomFF]) {
	rvdw := vdwRadius(m.Obj.Type)
	ra := o.Stg.RVol
	if ra < rvdw {
		ra = rvdw
	}
	r2 := rvdw * rvdw
	for _, off := range SphereOffsets(o.W, ra) {
		i, j, k := m.I+off.DX, m.J+off.DY, m.K+off.DZ
		if !o.InRange(i, j, k) {
			continue
		}
		x, y, z := float64(off.DX)*o.W, float64(off.DY)*o.W, float64(off.DZ)*o.W
		if x*x+y*y+z*z <= r2 {
			o.cells[o.index(i, j, k)] |= Volume
		} else {
			o.cells[o.index(i, j, k)] |= AArea
		}
	}
}

// expandWater ORs W_AREA into cells within the hydration radius
func (o *Grid) expandWater(m *Member[mol.Water]) {
	for _, off := range SphereOffsets(o.W, o.Stg.RHydration) {
		i, j, k := m.I+off.DX, m.J+off.DY, m.K+off.DZ
		if !o.InRange(i, j, k) {
			continue
		}
		o.cells[o.index(i, j, k)] |= WArea
	}
}

// clearAtom removes the flags an atom member contributed (centre, volume and
// shell); shared cells are re-stamped by the caller
func (o *Grid) clearAtom(m *Member[mol.AtomFF]) {
	o.cells[o.index(m.I, m.J, m.K)] &^= ACenter
	if !m.Expanded {
		return
	}
	ra := math.Max(o.Stg.RVol, vdwRadius(m.Obj.Type))
	for _, off := range SphereOffsets(o.W, ra) {
		i, j, k := m.I+off.DX, m.J+off.DY, m.K+off.DZ
		if o.InRange(i, j, k) {
			o.cells[o.index(i, j, k)] &^= Volume | AArea
		}
	}
}

// BoundingBoxIndex returns the smallest index box containing all atom centres
func (o *Grid) BoundingBoxIndex() (min, max [3]int) {
	min = [3]int{o.N[0], o.N[1], o.N[2]}
	max = [3]int{0, 0, 0}
	for m := range o.AMembers {
		b := [3]int{o.AMembers[m].I, o.AMembers[m].J, o.AMembers[m].K}
		for d := 0; d < 3; d++ {
			if b[d] < min[d] {
				min[d] = b[d]
			}
			if b[d]+1 > max[d] {
				max[d] = b[d] + 1
			}
		}
	}
	return
}

// Volume computes the Ångström³ volume of the union of VOLUME cells
func (o *Grid) Volume() float64 {
	n := 0
	for _, s := range o.cells {
		if s&Volume != 0 {
			n++
		}
	}
	return float64(n) * o.W * o.W * o.W
}

// SurfaceCells returns the Cartesian positions of all surface cells (atom
// shell without volume). no excluded-volume method samples them; the grid
// method uses VolumeCells
func (o *Grid) SurfaceCells() (pts [][3]float64) {
	for i := 0; i < o.N[0]; i++ {
		for j := 0; j < o.N[1]; j++ {
			for k := 0; k < o.N[2]; k++ {
				if o.cells[o.index(i, j, k)].IsSurface() {
					x, y, z := o.ToXYZ(i, j, k)
					pts = append(pts, [3]float64{x, y, z})
				}
			}
		}
	}
	return
}

// VolumeCells returns the Cartesian positions of all cells flagged VOLUME or
// A_CENTER; the grid excluded-volume method places exv pseudo-atoms there
func (o *Grid) VolumeCells() (pts [][3]float64) {
	for i := 0; i < o.N[0]; i++ {
		for j := 0; j < o.N[1]; j++ {
			for k := 0; k < o.N[2]; k++ {
				if o.cells[o.index(i, j, k)]&(Volume|ACenter) != 0 {
					x, y, z := o.ToXYZ(i, j, k)
					pts = append(pts, [3]float64{x, y, z})
				}
			}
		}
	}
	return
}
