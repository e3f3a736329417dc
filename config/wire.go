// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/wire.go
// Summary: Builds component configuration from config sections.

package config

import (
	"github.com/framegrace/texelgrid/grid"
	"github.com/framegrace/texelgrid/search"
	"github.com/framegrace/texelgrid/selection"
)

// GridOptions converts the grid and classifier sections into buffer
// options.
func (c Config) GridOptions() []grid.Option {
	return []grid.Option{
		grid.WithScrollback(c.GetInt(SectionGrid, "scrollback_lines", grid.DefaultScrollback)),
		grid.WithEvictionBatch(c.GetInt(SectionGrid, "eviction_batch", grid.DefaultEvictionBatch)),
		grid.WithAmbiguousWide(c.GetBool(SectionClassifier, "ambiguous_wide", false)),
	}
}

// SelectionConfig converts the selection section into engine tuning.
func (c Config) SelectionConfig() selection.Config {
	d := selection.DefaultConfig()
	return selection.Config{
		WordSeparators:    c.GetString(SectionSelection, "word_separators", d.WordSeparators),
		SmartWindow:       c.GetInt(SectionSelection, "smart_window", d.SmartWindow),
		MultiClickTimeout: c.GetDuration(SectionSelection, "multiclick_timeout_ms", d.MultiClickTimeout),
	}
}

// SearchEnabled reports whether the scrollback search index should run.
func (c Config) SearchEnabled() bool {
	return c.GetBool(SectionSearch, "enabled", true)
}

// SearchConfig converts the search section into index tuning.
func (c Config) SearchConfig() search.Config {
	d := search.DefaultConfig()
	return search.Config{
		DSN:           c.GetString(SectionSearch, "dsn", d.DSN),
		BatchSize:     c.GetInt(SectionSearch, "batch_size", d.BatchSize),
		BatchTimeout:  c.GetDuration(SectionSearch, "batch_timeout", d.BatchTimeout),
		ChannelBuffer: c.GetInt(SectionSearch, "channel_buffer", d.ChannelBuffer),
	}
}
