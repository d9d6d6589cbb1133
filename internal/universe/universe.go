// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package universe

import (
	"sort"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/tfctl/colpick/internal/columns"
	"github.com/tfctl/colpick/internal/convert"
	"github.com/tfctl/colpick/internal/log"
	"github.com/tfctl/colpick/internal/selection"
)

// Provider reports the tracked columns and their candidate values.
type Provider interface {
	// Columns returns the tracked column indexes in ascending order.
	Columns() []int
	// Values returns every candidate value of col. Untracked columns return
	// nil.
	Values(col int) []any
}

// Static is a Provider over literal value lists.
type Static map[int][]any

// Columns implements Provider.
func (s Static) Columns() []int {
	cols := make([]int, 0, len(s))
	for col := range s {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

// Values implements Provider.
func (s Static) Values(col int) []any {
	return s[col]
}

// DatasetProvider derives the universe of each tracked column from the
// distinct values found in a dataset. Results are memoised per column until
// Invalidate is called.
type DatasetProvider struct {
	rows      []gjson.Result
	cols      columns.List
	converter convert.Converter
	tracked   []int

	mu    sync.Mutex
	cache map[int][]any
}

// NewDatasetProvider tracks the given columns of rows. The converter orders
// the values by display text; values it cannot display sort last in their
// first-seen order.
func NewDatasetProvider(rows []gjson.Result, cols columns.List, conv convert.Converter, tracked ...int) *DatasetProvider {
	t := make([]int, 0, len(tracked))
	seen := make(map[int]bool, len(tracked))
	for _, col := range tracked {
		if col < 0 || col >= len(cols) || seen[col] {
			log.Warnf("universe: ignoring column %d", col)
			continue
		}
		seen[col] = true
		t = append(t, col)
	}
	sort.Ints(t)

	return &DatasetProvider{
		rows:      rows,
		cols:      cols,
		converter: conv,
		tracked:   t,
		cache:     make(map[int][]any),
	}
}

// Columns implements Provider.
func (p *DatasetProvider) Columns() []int {
	return append([]int(nil), p.tracked...)
}

// Values implements Provider. Rows lacking the column contribute nil.
func (p *DatasetProvider) Values(col int) []any {
	if !p.isTracked(col) {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if vs, ok := p.cache[col]; ok {
		return vs
	}

	set := selection.NewValueSet()
	for _, row := range p.rows {
		v, err := p.cols.Value(row, col)
		if err != nil {
			log.Debugf("universe: column=%d: %v", col, err)
			continue
		}
		set.Add(v)
	}

	vs := p.sorted(col, set.Members())
	p.cache[col] = vs
	log.Debugf("universe computed: column=%d values=%d", col, len(vs))
	return vs
}

// Counts returns how many rows carry each value of col, keyed by
// selection.Key.
func (p *DatasetProvider) Counts(col int) map[string]int {
	counts := make(map[string]int)
	if !p.isTracked(col) {
		return counts
	}
	for _, row := range p.rows {
		v, err := p.cols.Value(row, col)
		if err != nil {
			continue
		}
		counts[selection.Key(v)]++
	}
	return counts
}

// Invalidate drops every memoised universe.
func (p *DatasetProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[int][]any)
}

func (p *DatasetProvider) isTracked(col int) bool {
	i := sort.SearchInts(p.tracked, col)
	return i < len(p.tracked) && p.tracked[i] == col
}

func (p *DatasetProvider) sorted(col int, vs []any) []any {
	if p.converter == nil {
		return vs
	}

	type keyed struct {
		text string
		ok   bool
		v    any
	}
	ks := make([]keyed, len(vs))
	for i, v := range vs {
		text, err := p.converter.ToDisplay(col, v)
		ks[i] = keyed{text: text, ok: err == nil, v: v}
	}

	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].ok != ks[j].ok {
			return ks[i].ok
		}
		return ks[i].ok && ks[i].text < ks[j].text
	})

	out := make([]any, len(ks))
	for i, k := range ks {
		out[i] = k.v
	}
	return out
}
