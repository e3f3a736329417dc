// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: selection/click.go
// Summary: Multi-click detection for word and line selection.

package selection

import "time"

// ClickType classifies a press in a click sequence.
type ClickType int

const (
	ClickSingle ClickType = iota + 1
	ClickDouble
	ClickTriple
)

func (c ClickType) String() string {
	switch c {
	case ClickDouble:
		return "double"
	case ClickTriple:
		return "triple"
	default:
		return "single"
	}
}

// ClickDetector turns a press stream into single/double/triple clicks.
// Clicks chain only when they land on the same cell within the timeout;
// a fourth click starts a new sequence.
type ClickDetector struct {
	timeout time.Duration
	last    time.Time
	lastPos Point
	count   int
}

func NewClickDetector(timeout time.Duration) *ClickDetector {
	if timeout <= 0 {
		timeout = 400 * time.Millisecond
	}
	return &ClickDetector{timeout: timeout}
}

// Click registers a press at p and returns its place in the sequence.
func (d *ClickDetector) Click(p Point, now time.Time) ClickType {
	if d.count == 0 || now.Sub(d.last) > d.timeout || p != d.lastPos {
		d.count = 0
	}
	d.count++
	if d.count > 3 {
		d.count = 1
	}
	d.last = now
	d.lastPos = p
	switch d.count {
	case 2:
		return ClickDouble
	case 3:
		return ClickTriple
	default:
		return ClickSingle
	}
}

// Reset forgets the current sequence.
func (d *ClickDetector) Reset() {
	d.count = 0
}
