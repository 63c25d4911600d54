// Copyright 2017 The Gosaxs Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mol

// StateManager keeps track of changes in each body so the partial histogram
// manager only recalculates what is necessary. flags are or-accumulated
// between clears. a single thread (the manager's caller) reads the flags;
// writers are assumed to serialise with it
type StateManager struct {
	internally        []bool   // body atoms changed identity but not position
	externally        []bool   // body moved or rotated
	symmetry          [][]bool // per-body, per-symmetry-descriptor change
	modifiedHydration bool     // hydration layer regenerated
}

// NewStateManager creates a manager for n bodies
func NewStateManager(n int) (o *StateManager) {
	o = new(StateManager)
	o.internally = make([]bool, n)
	o.externally = make([]bool, n)
	o.symmetry = make([][]bool, n)
	return
}

// Size returns the number of managed bodies
func (o *StateManager) Size() int { return len(o.internally) }

// InternallyModified marks body i as internally modified
func (o *StateManager) InternallyModified(i int) { o.internally[i] = true }

// ExternallyModified marks body i as externally modified
func (o *StateManager) ExternallyModified(i int) { o.externally[i] = true }

// InternallyModifiedAll marks all bodies as internally modified
func (o *StateManager) InternallyModifiedAll() {
	for i := range o.internally {
		o.internally[i] = true
	}
}

// ExternallyModifiedAll marks all bodies as externally modified
func (o *StateManager) ExternallyModifiedAll() {
	for i := range o.externally {
		o.externally[i] = true
	}
}

// ModifiedHydration marks the hydration layer as modified
func (o *StateManager) ModifiedHydration() { o.modifiedHydration = true }

// ModifiedSymmetry marks the j-th symmetry descriptor of body i as modified
func (o *StateManager) ModifiedSymmetry(i, j int) {
	for len(o.symmetry[i]) <= j {
		o.symmetry[i] = append(o.symmetry[i], false)
	}
	o.symmetry[i][j] = true
}

// IsInternallyModified reports whether body i's atoms changed identity
func (o *StateManager) IsInternallyModified(i int) bool { return o.internally[i] }

// IsExternallyModified reports whether body i moved or rotated
func (o *StateManager) IsExternallyModified(i int) bool { return o.externally[i] }

// IsModifiedHydration reports whether the hydration layer was regenerated
func (o *StateManager) IsModifiedHydration() bool { return o.modifiedHydration }

// IsModifiedSymmetry reports whether the j-th symmetry of body i changed
func (o *StateManager) IsModifiedSymmetry(i, j int) bool {
	if j >= len(o.symmetry[i]) {
		return false
	}
	return o.symmetry[i][j]
}

// IsModified reports whether anything changed since the last reset
func (o *StateManager) IsModified() bool {
	if o.modifiedHydration {
		return true
	}
	for i := range o.internally {
		if o.internally[i] || o.externally[i] {
			return true
		}
		for _, s := range o.symmetry[i] {
			if s {
				return true
			}
		}
	}
	return false
}

// ResetToFalse clears all flags. called by the partial histogram manager at
// the end of calculate-all
func (o *StateManager) ResetToFalse() {
	for i := range o.internally {
		o.internally[i] = false
		o.externally[i] = false
		for j := range o.symmetry[i] {
			o.symmetry[i][j] = false
		}
	}
	o.modifiedHydration = false
}

// Signaller is the body-side handle to the state manager: a non-owning
// reference plus the body index. mutating body methods send their change kind
// through it
type Signaller struct {
	mgr *StateManager // non-owning
	idx int           // body index
}

// InternalChange signals that atoms changed identity but not position
func (o *Signaller) InternalChange() {
	if o.mgr != nil {
		o.mgr.InternallyModified(o.idx)
	}
}

// ExternalChange signals that the body moved or rotated
func (o *Signaller) ExternalChange() {
	if o.mgr != nil {
		o.mgr.ExternallyModified(o.idx)
	}
}

// HydrationChange signals that the body's water layer was regenerated
func (o *Signaller) HydrationChange() {
	if o.mgr != nil {
		o.mgr.ModifiedHydration()
	}
}

// SymmetryChange signals that the j-th symmetry descriptor changed
func (o *Signaller) SymmetryChange(j int) {
	if o.mgr != nil {
		o.mgr.ModifiedSymmetry(o.idx, j)
	}
}
