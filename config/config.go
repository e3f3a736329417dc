// Copyright © 2026 Texelgrid contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: JSON section configuration for the grid core.

// Package config holds tuning for the buffer, classifier, selection and
// search layers as JSON sections. Missing sections and keys fall back to
// defaults; nothing here errors at use time.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

// Section names understood by the core.
const (
	SectionGrid       = "grid"
	SectionClassifier = "classifier"
	SectionSelection  = "selection"
	SectionSearch     = "search"
)

// New returns an empty config with defaults registered.
func New() Config {
	c := Config{}
	c.registerCoreDefaults()
	return c
}

// Parse decodes a JSON document and registers defaults for anything it
// leaves out.
func Parse(data []byte) (Config, error) {
	c := Config{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	c.registerCoreDefaults()
	return c, nil
}

// Load reads a JSON config from r.
func Load(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// LoadFile reads a JSON config file. A missing file yields defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

func (c Config) registerCoreDefaults() {
	c.RegisterDefaults(SectionGrid, Section{
		"scrollback_lines": 10000,
		"eviction_batch":   64,
	})
	c.RegisterDefaults(SectionClassifier, Section{
		"ambiguous_wide": false,
	})
	c.RegisterDefaults(SectionSelection, Section{
		"word_separators":       " \t\"'`(){}[]<>,;|=&!?*",
		"smart_window":          150,
		"multiclick_timeout_ms": 400,
	})
	c.RegisterDefaults(SectionSearch, Section{
		"enabled":       true,
		"dsn":           ":memory:?_pragma=temp_store(MEMORY)",
		"batch_size":    100,
		"batch_timeout": "5s",
	})
}
