// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: selection/engine.go
// Summary: Text extraction between two buffer positions.

package selection

import (
	"strings"
	"time"

	"github.com/framegrace/texelgrid/grapheme"
	"github.com/framegrace/texelgrid/grid"
)

// Mode selects the extraction shape.
type Mode int

const (
	// ModeNormal flows through line ends like a text editor selection.
	ModeNormal Mode = iota
	// ModeBlock takes the rectangle between the two corner columns.
	ModeBlock
)

// Config tunes selection behavior. Zero fields fall back to defaults.
type Config struct {
	// WordSeparators lists the characters that end a word for double-click
	// selection. Cells outside this set, including unclassified symbols,
	// count as word characters.
	WordSeparators string
	// SmartWindow is the radius, in runes around the click, that smart
	// selection scans for URLs, emails and paths.
	SmartWindow int
	// MultiClickTimeout is the double/triple click window.
	MultiClickTimeout time.Duration
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		WordSeparators:    " \t\"'`(){}[]<>,;|=&!?*",
		SmartWindow:       150,
		MultiClickTimeout: 400 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.WordSeparators == "" {
		c.WordSeparators = d.WordSeparators
	}
	if c.SmartWindow <= 0 {
		c.SmartWindow = d.SmartWindow
	}
	if c.MultiClickTimeout <= 0 {
		c.MultiClickTimeout = d.MultiClickTimeout
	}
	return c
}

// Engine extracts text from a buffer between selection endpoints. Both
// endpoints are inclusive cells; the engine snaps them outward to grapheme
// cluster bounds so a selection never splits a wide character.
type Engine struct {
	buf *grid.Buffer
	cfg Config
}

func NewEngine(buf *grid.Buffer, cfg Config) *Engine {
	return &Engine{buf: buf, cfg: cfg.withDefaults()}
}

// Buffer returns the engine's underlying buffer.
func (e *Engine) Buffer() *grid.Buffer { return e.buf }

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// ExtractText returns the text between a and b in the given mode. Endpoint
// order does not matter; out-of-range positions clamp. Normal mode joins
// rows with newlines; block mode concatenates the same column slice of
// every row with no separator. Cell padding past the written content comes
// back as-is; ExtractTextTrimmed strips it.
func (e *Engine) ExtractText(a, b Point, mode Mode) string {
	return e.extract(a, b, mode, false)
}

// ExtractTextTrimmed is ExtractText with trailing blanks stripped from
// each row, so a multi-line copy does not drag cell padding into the
// clipboard.
func (e *Engine) ExtractTextTrimmed(a, b Point, mode Mode) string {
	return e.extract(a, b, mode, true)
}

func (e *Engine) extract(a, b Point, mode Mode, trim bool) string {
	a, b = e.normalize(a, b)
	if mode == ModeBlock {
		return e.extractBlock(a, b, trim)
	}
	return e.extractNormal(a, b, trim)
}

func (e *Engine) normalize(a, b Point) (Point, Point) {
	total := e.buf.TotalLines()
	width := e.buf.Width()
	a.Line = clampInt(a.Line, 0, total-1)
	b.Line = clampInt(b.Line, 0, total-1)
	a.Col = clampInt(a.Col, 0, width-1)
	b.Col = clampInt(b.Col, 0, width-1)
	if b.Less(a) {
		a, b = b, a
	}
	// Snap outward to cluster bounds.
	if s, _, ok := e.GraphemeBounds(a); ok {
		a.Col = s
	}
	if _, end, ok := e.GraphemeBounds(b); ok {
		b.Col = end
	}
	return a, b
}

func (e *Engine) extractNormal(a, b Point, trim bool) string {
	var out strings.Builder
	for line := a.Line; line <= b.Line; line++ {
		from, to := 0, e.buf.Width()-1
		if line == a.Line {
			from = a.Col
		}
		if line == b.Line {
			to = b.Col
		}
		segment := e.rowSlice(line, from, to)
		if trim {
			segment = strings.TrimRight(segment, " ")
		}
		out.WriteString(segment)
		if line < b.Line {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func (e *Engine) extractBlock(a, b Point, trim bool) string {
	left, right := a.Col, b.Col
	if right < left {
		left, right = right, left
	}
	var out strings.Builder
	for line := a.Line; line <= b.Line; line++ {
		segment := e.rowSlice(line, left, right)
		if trim {
			segment = strings.TrimRight(segment, " ")
		}
		out.WriteString(segment)
	}
	return out.String()
}

// rowSlice extracts the text of cells [from, to] on one row. Continuation
// cells contribute nothing: a wide character whose lead sits left of the
// slice is dropped rather than halved. Control characters are skipped.
func (e *Engine) rowSlice(line, from, to int) string {
	cells, ok := e.buf.CellsAt(line)
	if !ok {
		return ""
	}
	if from < 0 {
		from = 0
	}
	buf := make([]rune, 0, to-from+1)
	for i := from; i <= to && i < len(cells); i++ {
		c := cells[i]
		if c.Rune != 0 && c.Rune < ' ' {
			continue
		}
		buf = c.AppendRunes(buf)
	}
	return string(buf)
}

// GraphemeBounds returns the first and last cell column of the grapheme
// cluster occupying p, so callers can snap any column to character bounds.
func (e *Engine) GraphemeBounds(p Point) (start, end int, ok bool) {
	runes, ok := e.buf.RunesAt(p.Line)
	if !ok {
		return 0, 0, false
	}
	a := grapheme.Classify(runes, p.Col, e.buf.AmbiguousWide())
	return a.Start, a.End() - 1, true
}
