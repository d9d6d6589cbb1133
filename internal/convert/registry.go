// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"fmt"

	"github.com/tfctl/colpick/internal/columns"
	"github.com/tfctl/colpick/internal/config"
	"github.com/tfctl/colpick/internal/log"
)

type entry struct {
	name string
	fn   Func
}

// Registry resolves the converter of each column. Columns without a
// registration use Default.
type Registry struct {
	entries map[int]entry
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[int]entry)}
}

// Register assigns the builtin converter name to col.
func (r *Registry) Register(col int, name string) error {
	fn, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("unknown converter %q for column %d (have %v)", name, col, Names())
	}
	r.RegisterFunc(col, name, fn)
	return nil
}

// RegisterFunc assigns a custom converter to col.
func (r *Registry) RegisterFunc(col int, name string, fn Func) {
	if r.entries == nil {
		r.entries = make(map[int]entry)
	}
	r.entries[col] = entry{name: name, fn: fn}
}

// Name returns the converter name used for col.
func (r *Registry) Name(col int) string {
	if e, ok := r.entries[col]; ok {
		return e.name
	}
	return "default"
}

// ToDisplay converts v with col's converter. Failures are returned as
// *ConversionError.
func (r *Registry) ToDisplay(col int, v any) (string, error) {
	e, ok := r.entries[col]
	if !ok {
		e = entry{name: "default", fn: Default}
	}

	s, err := e.fn(v)
	if err != nil {
		return "", &ConversionError{Column: col, Converter: e.name, Value: v, Err: err}
	}
	return s, nil
}

// FromColumns builds a Registry for cols. A converter named in the column
// definition wins over the config entry converters.<title>.
func FromColumns(cols columns.List) (*Registry, error) {
	r := NewRegistry()

	configured, err := config.GetStringMap("converters")
	if err != nil {
		log.Debugf("no converters configured: %v", err)
	}

	for _, col := range cols {
		name := col.Converter
		if name == "" {
			name = configured[col.Title]
		}
		if name == "" {
			continue
		}
		if err := r.Register(col.Index, name); err != nil {
			return nil, err
		}
		log.Debugf("converter registered: column=%s index=%d converter=%s", col.Title, col.Index, name)
	}

	return r, nil
}
