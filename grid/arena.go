// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/arena.go
// Summary: Slot arena giving lines a stable, generation-checked identity.

package grid

// LineRef is a stable handle to a line. It stays valid while the line moves
// between the live region and scrollback, and goes stale the moment the
// line is evicted: the slot's generation bumps on release, so a stale ref
// can never alias a recycled slot.
type LineRef struct {
	slot int
	gen  uint32
}

// InvalidRef is the zero-value-adjacent "no line" handle.
var InvalidRef = LineRef{slot: -1}

// Valid reports whether the ref ever pointed at a line. It says nothing
// about whether that line still exists; resolve against the buffer for that.
func (r LineRef) Valid() bool { return r.slot >= 0 }

type arenaSlot struct {
	line *Line
	gen  uint32
}

// lineArena owns line storage. Slots are recycled through a free list so
// heavy scrolling does not churn the slot table.
type lineArena struct {
	slots []arenaSlot
	free  []int
}

func (a *lineArena) alloc(width int) LineRef {
	var slot int
	if n := len(a.free); n > 0 {
		slot = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, arenaSlot{})
		slot = len(a.slots) - 1
	}
	a.slots[slot].line = newLine(width)
	return LineRef{slot: slot, gen: a.slots[slot].gen}
}

// get resolves a ref to its line, or nil when the ref is stale.
func (a *lineArena) get(r LineRef) *Line {
	if r.slot < 0 || r.slot >= len(a.slots) {
		return nil
	}
	s := a.slots[r.slot]
	if s.gen != r.gen || s.line == nil {
		return nil
	}
	return s.line
}

// release drops the line and invalidates every outstanding ref to it.
func (a *lineArena) release(r LineRef) {
	if r.slot < 0 || r.slot >= len(a.slots) {
		return
	}
	s := &a.slots[r.slot]
	if s.gen != r.gen {
		return
	}
	s.line = nil // clear ref so GC can reclaim the cells
	s.gen++
	a.free = append(a.free, r.slot)
}
