// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: selection/anchor.go
// Summary: Content-anchored selection endpoints.

// Package selection turns grid coordinates into text. Endpoints are anchored
// to line identity rather than row numbers, so a selection keeps pointing at
// the same content while output scrolls underneath it; extraction snaps to
// grapheme cluster bounds so a wide character or emoji is never cut in half.
package selection

import "github.com/framegrace/texelgrid/grid"

// Point is a buffer position: a linear line index and a column.
type Point struct {
	Line int
	Col  int
}

// Less orders points by line, then column.
func (p Point) Less(q Point) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// Anchor pins a selection endpoint to a line's identity. The ref survives
// the line moving from the live region into scrollback; it dies with
// eviction. Version records the line content at capture time, so callers
// can tell a scrolled line from an edited one.
type Anchor struct {
	Ref     grid.LineRef
	Col     int
	Version uint64
}

// Capture anchors the line currently at p.Line.
func Capture(buf *grid.Buffer, p Point) (Anchor, bool) {
	ref, ok := buf.RefAt(p.Line)
	if !ok {
		return Anchor{Ref: grid.InvalidRef}, false
	}
	v, _ := buf.VersionOf(ref)
	return Anchor{Ref: ref, Col: p.Col, Version: v}, true
}

// Evicted reports whether the anchored line has been dropped from
// scrollback.
func (a Anchor) Evicted(buf *grid.Buffer) bool {
	_, ok := buf.VersionOf(a.Ref)
	return !ok
}

// Edited reports whether the anchored line's content changed since capture.
// An evicted line counts as edited.
func (a Anchor) Edited(buf *grid.Buffer) bool {
	v, ok := buf.VersionOf(a.Ref)
	return !ok || v != a.Version
}
