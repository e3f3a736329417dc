// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grapheme/segment.go
// Summary: Grapheme cluster segmentation with terminal width rules.

package grapheme

import (
	"unicode/utf16"

	"github.com/rivo/uniseg"
)

const (
	zwj           = 0x200D
	regionalIndLo = 0x1F1E6
	regionalIndHi = 0x1F1FF
	skinToneLo    = 0x1F3FB
	skinToneHi    = 0x1F3FF
)

// Cluster is one user-perceived character: the cluster text plus the sizes
// a grid needs to lay it out and index into it.
type Cluster struct {
	Text     string
	Runes    []rune
	Width    int    // rendered columns
	UTF16Len int    // UTF-16 code units, for callers tracking wire offsets
}

// Segment splits s into grapheme clusters. Boundary detection follows
// UAX #29 via uniseg; widths apply the terminal conventions on top:
// ZWJ sequences, flag pairs and skin-tone modified emoji all collapse to a
// single two-column cluster, and variation selectors override the base
// width in either direction.
//
// Segment is idempotent: re-segmenting the concatenated cluster texts
// yields the same boundaries.
func Segment(s string, ambiguousWide bool) []Cluster {
	if s == "" {
		return nil
	}
	var out []Cluster
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		out = append(out, Cluster{
			Text:     g.Str(),
			Runes:    runes,
			Width:    clusterWidth(runes, ambiguousWide),
			UTF16Len: utf16Len(runes),
		})
	}
	return out
}

// ClusterWidth returns the rendered width of a single cluster's runes.
func ClusterWidth(runes []rune, ambiguousWide bool) int {
	return clusterWidth(runes, ambiguousWide)
}

func clusterWidth(runes []rune, ambiguousWide bool) int {
	if len(runes) == 0 {
		return 0
	}
	// A regional indicator pair is a flag: always two columns, never four.
	if len(runes) == 2 && isRegionalIndicator(runes[0]) && isRegionalIndicator(runes[1]) {
		return 2
	}
	width := 0
	for i, r := range runes {
		switch {
		case r == zwj:
			// Joined emoji sequence renders as one glyph.
			return 2
		case r == vs16:
			return 2
		case r == vs15:
			return 1
		case r >= skinToneLo && r <= skinToneHi:
			return 2
		}
		if i == 0 {
			width = RuneWidth(r, ambiguousWide)
		}
	}
	if width < 1 {
		width = 1
	}
	return width
}

func isRegionalIndicator(r rune) bool {
	return r >= regionalIndLo && r <= regionalIndHi
}

func utf16Len(runes []rune) int {
	n := 0
	for _, r := range runes {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++ // lone surrogate half occupies one unit
		}
	}
	return n
}
