// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: selection/state.go
// Summary: Selection state machine driven by mouse events.

package selection

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// State is the machine's phase.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateMultiClickHeld
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateMultiClickHeld:
		return "multi-click-held"
	case StateFinished:
		return "finished"
	default:
		return "idle"
	}
}

// Machine drives selection from mouse events. It owns a click detector for
// double/triple clicks and keeps its endpoints as content anchors, so a
// drag in progress stays glued to its text while the buffer scrolls under
// it. Alt-drag selects a block; Ctrl-double-click runs smart selection.
//
// Not safe for concurrent use; drive it from the input loop.
type Machine struct {
	engine  *Engine
	tracker *Tracker
	clicks  *ClickDetector

	state        State
	mode         Mode
	anchor, head Anchor

	debugLog func(format string, args ...interface{})
}

func NewMachine(e *Engine) *Machine {
	return &Machine{
		engine:  e,
		tracker: NewTracker(e.Buffer()),
		clicks:  NewClickDetector(e.cfg.MultiClickTimeout),
	}
}

// SetDebugLog installs a diagnostics callback.
func (m *Machine) SetDebugLog(fn func(format string, args ...interface{})) {
	m.debugLog = fn
}

// State returns the current phase.
func (m *Machine) State() State { return m.state }

// Active reports whether there is a selection to render.
func (m *Machine) Active() bool {
	return m.state == StateDragging || m.state == StateMultiClickHeld || m.state == StateFinished
}

// MouseDown starts or extends a selection at p.
func (m *Machine) MouseDown(p Point, mod tcell.ModMask, now time.Time) {
	buf := m.engine.Buffer()
	switch m.clicks.Click(p, now) {
	case ClickDouble:
		var start, end Point
		var ok bool
		if mod&tcell.ModCtrl != 0 {
			start, end, _, ok = m.engine.SmartWordAt(p)
		} else {
			start, end, ok = m.engine.WordAt(p)
		}
		if !ok {
			m.reset()
			return
		}
		m.holdRange(start, end)
	case ClickTriple:
		start, end, ok := m.engine.LogicalLineAt(p)
		if !ok {
			m.reset()
			return
		}
		m.holdRange(start, end)
	default:
		m.mode = ModeNormal
		if mod&tcell.ModAlt != 0 {
			m.mode = ModeBlock
		}
		a, ok := Capture(buf, p)
		if !ok {
			m.reset()
			return
		}
		m.anchor, m.head = a, a
		m.state = StateDragging
	}
	if m.debugLog != nil {
		m.debugLog("mouse down at %d:%d -> %v", p.Line, p.Col, m.state)
	}
}

func (m *Machine) holdRange(start, end Point) {
	buf := m.engine.Buffer()
	a, okA := Capture(buf, start)
	b, okB := Capture(buf, end)
	if !okA || !okB {
		m.reset()
		return
	}
	m.mode = ModeNormal
	m.anchor, m.head = a, b
	m.state = StateMultiClickHeld
}

// MouseMove extends the selection head during a drag.
func (m *Machine) MouseMove(p Point) {
	if m.state != StateDragging && m.state != StateMultiClickHeld {
		return
	}
	if h, ok := Capture(m.engine.Buffer(), p); ok {
		m.head = h
	}
}

// MouseUp completes the gesture and returns the selected text. A click
// that never moved yields no selection.
func (m *Machine) MouseUp(p Point, now time.Time) (string, bool) {
	switch m.state {
	case StateDragging:
		if h, ok := Capture(m.engine.Buffer(), p); ok {
			m.head = h
		}
		if m.anchor == m.head {
			m.reset()
			return "", false
		}
	case StateMultiClickHeld:
		// Bounds were set at click time; release just commits them.
	default:
		return "", false
	}
	text, ok := m.Text()
	if !ok {
		m.reset()
		return "", false
	}
	m.state = StateFinished
	return text, ok
}

// Text extracts the current selection's text, trimmed for the clipboard.
func (m *Machine) Text() (string, bool) {
	start, end, ok := m.Range()
	if !ok {
		return "", false
	}
	return m.engine.ExtractTextTrimmed(start, end, m.mode), true
}

// Range resolves the selection endpoints to current positions, in document
// order. It fails once either endpoint's line has been evicted.
func (m *Machine) Range() (start, end Point, ok bool) {
	if !m.Active() {
		return Point{}, Point{}, false
	}
	start, end, ok = m.tracker.ResolvePair(m.anchor, m.head)
	if !ok {
		return Point{}, Point{}, false
	}
	if end.Less(start) {
		start, end = end, start
	}
	return start, end, true
}

// Mode returns the selection shape of the gesture in progress.
func (m *Machine) Mode() Mode { return m.mode }

// Cancel abandons any selection.
func (m *Machine) Cancel() {
	m.reset()
	m.clicks.Reset()
}

func (m *Machine) reset() {
	m.state = StateIdle
	m.anchor = Anchor{}
	m.head = Anchor{}
}
