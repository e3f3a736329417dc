// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: selection/tracker.go
// Summary: Resolves anchors back to current row positions.

package selection

import "github.com/framegrace/texelgrid/grid"

// Tracker maps anchors back to linear indices. Resolution builds one
// identity→index map from the buffer's current line sequence and answers
// every anchor from it, so resolving a pair costs one walk, not two.
type Tracker struct {
	buf      *grid.Buffer
	debugLog func(format string, args ...interface{})
}

func NewTracker(buf *grid.Buffer) *Tracker {
	return &Tracker{buf: buf}
}

// SetDebugLog installs a diagnostics callback.
func (t *Tracker) SetDebugLog(fn func(format string, args ...interface{})) {
	t.debugLog = fn
}

// Resolve maps a single anchor to its current position.
func (t *Tracker) Resolve(a Anchor) (Point, bool) {
	pts, ok := t.ResolveAll(a)
	if !ok {
		return Point{}, false
	}
	return pts[0], true
}

// ResolvePair resolves both endpoints of a selection. It fails as a whole
// when either line has been evicted: half a selection is not a selection.
func (t *Tracker) ResolvePair(a, b Anchor) (start, end Point, ok bool) {
	pts, ok := t.ResolveAll(a, b)
	if !ok {
		return Point{}, Point{}, false
	}
	return pts[0], pts[1], true
}

// ResolveAll resolves every anchor against one snapshot of the line
// sequence, or returns false if any anchor's line is gone.
func (t *Tracker) ResolveAll(anchors ...Anchor) ([]Point, bool) {
	refs := t.buf.Refs()
	index := make(map[grid.LineRef]int, len(refs))
	for i, r := range refs {
		index[r] = i
	}
	width := t.buf.Width()
	out := make([]Point, len(anchors))
	for i, a := range anchors {
		idx, found := index[a.Ref]
		if !found {
			if t.debugLog != nil {
				t.debugLog("anchor %d lost: line evicted", i)
			}
			return nil, false
		}
		out[i] = Point{Line: idx, Col: clampInt(a.Col, 0, width-1)}
	}
	return out, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
