// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: selection/smart.go
// Summary: Smart selection of URLs, emails, quoted strings and paths.

package selection

import (
	"regexp"
	"strings"
)

// Recognized token shapes, in priority order. The first pattern whose match
// covers the click wins, so a URL inside quotes selects as a URL.
var (
	urlPattern    = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]*://[^\s]+|www\.[^\s]+`)
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9][A-Za-z0-9.-]*\.[A-Za-z]{2,}`)
	quotedPattern = regexp.MustCompile(`"[^"]*"|'[^']*'`)
	pathPattern   = regexp.MustCompile(`(?:~|\.\.?)?/[^\s"'<>|]+`)
)

var smartPatterns = []*regexp.Regexp{urlPattern, emailPattern, quotedPattern, pathPattern}

// trimMatch drops sentence punctuation that the greedy patterns swallow: a
// URL at the end of a sentence should not include the period, and a
// parenthesized link should not include the closing paren it never opened.
func trimMatch(s string) string {
	s = strings.TrimRight(s, ".,;:!?")
	for strings.HasSuffix(s, ")") && strings.Count(s, ")") > strings.Count(s, "(") {
		s = s[:len(s)-1]
	}
	return s
}

// SmartWordAt recognizes the token under p: URL, then email, then quoted
// string, then filesystem path, falling back to plain word selection. It
// scans a window of SmartWindow runes either side of the click on the
// logical line, so a click anywhere on a wrapped URL finds the whole URL
// without rescanning an arbitrarily long line.
func (e *Engine) SmartWordAt(p Point) (start, end Point, text string, ok bool) {
	runes, pos, _, found := e.logicalRunes(p.Line)
	if !found || len(runes) == 0 {
		return e.fallbackWord(p)
	}
	leadCol, _, boundsOK := e.GraphemeBounds(p)
	if !boundsOK {
		return e.fallbackWord(p)
	}
	clickIdx := -1
	for i, q := range pos {
		if q.Line == p.Line && q.Col == leadCol {
			clickIdx = i
			break
		}
	}
	if clickIdx < 0 {
		return e.fallbackWord(p)
	}

	lo := clickIdx - e.cfg.SmartWindow
	if lo < 0 {
		lo = 0
	}
	hi := clickIdx + e.cfg.SmartWindow + 1
	if hi > len(runes) {
		hi = len(runes)
	}
	win := runes[lo:hi]
	winStr := string(win)
	// byteAt[i] is the byte offset of win[i] in winStr.
	byteAt := make([]int, len(win)+1)
	off := 0
	for i, r := range win {
		byteAt[i] = off
		off += len(string(r))
	}
	byteAt[len(win)] = off
	clickByte := byteAt[clickIdx-lo]

	for _, pat := range smartPatterns {
		for _, m := range pat.FindAllStringIndex(winStr, -1) {
			if clickByte < m[0] || clickByte >= m[1] {
				continue
			}
			matched := trimMatch(winStr[m[0]:m[1]])
			if matched == "" || clickByte >= m[0]+len(matched) {
				// The click landed on punctuation the trim removed.
				continue
			}
			startIdx := lo + runeIndexOf(byteAt, m[0])
			endIdx := lo + runeIndexOf(byteAt, m[0]+len(matched)) - 1
			start = pos[startIdx]
			end = pos[endIdx]
			if _, last, snapOK := e.GraphemeBounds(end); snapOK {
				end.Col = last
			}
			return start, end, matched, true
		}
	}
	return e.fallbackWord(p)
}

func (e *Engine) fallbackWord(p Point) (Point, Point, string, bool) {
	start, end, ok := e.WordAt(p)
	if !ok {
		return Point{}, Point{}, "", false
	}
	return start, end, e.ExtractText(start, end, ModeNormal), true
}

// runeIndexOf maps a byte offset back to its rune index in byteAt.
func runeIndexOf(byteAt []int, b int) int {
	for i, off := range byteAt {
		if off >= b {
			return i
		}
	}
	return len(byteAt) - 1
}
