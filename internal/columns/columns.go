// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package columns

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tfctl/colpick/internal/driller"
	"github.com/tfctl/colpick/internal/log"
)

// Column describes one column of the tabular view.
type Column struct {
	// Index is the column's position in its List.
	Index int `yaml:"index" json:"Index"`
	// Key is the dot path of the value within a row.
	Key string `yaml:"key" json:"Key"`
	// Title is the column title, used for output headers and as the name
	// under which selections, filters and config refer to the column.
	Title string `yaml:"title" json:"Title"`
	// Include is false for columns used only for filtering or sorting.
	Include bool `yaml:"include" json:"Include"`
	// Converter names the display converter, empty for the configured
	// default.
	Converter string `yaml:"converter" json:"Converter"`

	path driller.Path
}

// List is an ordered set of columns.
type List []Column

// Set parses a comma separated --attrs value and appends or updates columns.
// Each entry is key[:title[:converter]]. A leading "!" on the key hides the
// column from output. The title defaults to the last segment of the key.
// Re-specifying an existing key or title updates that column in place.
func (l *List) Set(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	const (
		keyIdx = iota
		titleIdx
		converterIdx
	)

specloop:
	for _, spec := range strings.Split(value, ",") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}

		col := Column{Include: true}
		fields := strings.Split(spec, ":")

		col.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(col.Key, "!") {
			col.Include = false
			col.Key = col.Key[1:]
		}

		path, err := driller.Compile(col.Key)
		if err != nil {
			return fmt.Errorf("invalid column %q: %w", spec, err)
		}
		col.path = path
		col.Key = strings.TrimPrefix(col.Key, ".")

		if len(fields) > titleIdx && strings.TrimSpace(fields[titleIdx]) != "" {
			col.Title = strings.TrimSpace(fields[titleIdx])
		} else {
			segments := strings.Split(col.Key, ".")
			col.Title = strings.TrimSuffix(segments[len(segments)-1], "[]")
		}

		if len(fields) > converterIdx {
			col.Converter = strings.TrimSpace(fields[converterIdx])
		}
		log.Tracef("column parsed: key=%s title=%s converter=%s include=%v",
			col.Key, col.Title, col.Converter, col.Include)

		for i := range *l {
			if (*l)[i].Key == col.Key || (*l)[i].Title == col.Key || (*l)[i].Title == col.Title {
				col.Index = i
				(*l)[i] = col
				log.Tracef("column updated: index=%d", i)
				continue specloop
			}
		}

		col.Index = len(*l)
		*l = append(*l, col)
	}

	return nil
}

// New builds a List from literal columns, assigning indexes and compiling
// their key paths.
func New(cols ...Column) (List, error) {
	l := make(List, len(cols))
	for i, col := range cols {
		path, err := driller.Compile(col.Key)
		if err != nil {
			return nil, fmt.Errorf("invalid column %q: %w", col.Key, err)
		}
		col.Index = i
		col.Key = strings.TrimPrefix(col.Key, ".")
		col.path = path
		if col.Title == "" {
			col.Title = col.Key
		}
		l[i] = col
	}
	return l, nil
}

// String renders the list in --attrs form.
func (l *List) String() string {
	result := make([]string, 0, len(*l))
	for _, col := range *l {
		key := col.Key
		if !col.Include {
			key = "!" + key
		}
		result = append(result, fmt.Sprintf("%s:%s:%s", key, col.Title, col.Converter))
	}
	return strings.Join(result, ",")
}

// Lookup resolves a column by title, falling back to key.
func (l List) Lookup(name string) (Column, bool) {
	for _, col := range l {
		if col.Title == name {
			return col, true
		}
	}
	for _, col := range l {
		if col.Key == name {
			return col, true
		}
	}
	return Column{}, false
}

// Titles returns the titles of the included columns.
func (l List) Titles() []string {
	var titles []string
	for _, col := range l {
		if col.Include {
			titles = append(titles, col.Title)
		}
	}
	return titles
}

// Value reads column col of row. Missing values are returned as nil.
func (l List) Value(row gjson.Result, col int) (any, error) {
	if col < 0 || col >= len(l) {
		return nil, fmt.Errorf("column index %d out of range [0,%d)", col, len(l))
	}
	c := l[col]
	if c.path.String() == "" {
		// Columns built as literals rather than through Set.
		p, err := driller.Compile(c.Key)
		if err != nil {
			return nil, err
		}
		c.path = p
	}
	return c.path.Get(row).Value(), nil
}
