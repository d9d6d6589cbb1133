// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"io"
	"slices"

	"github.com/tfctl/colpick/internal/columns"
	"github.com/tfctl/colpick/internal/convert"
	"github.com/tfctl/colpick/internal/log"
	"github.com/tfctl/colpick/internal/selection"
	"github.com/tfctl/colpick/internal/universe"
)

// ComboColumns returns the multi-select columns: those named by --combo plus
// every column given a value set in specs. Unknown names in specs are left
// for ResolveSelections to report.
func ComboColumns(cols columns.List, combo string, specs []selection.Spec) ([]int, error) {
	idxs, err := ColumnIndexes(cols, combo)
	if err != nil {
		return nil, fmt.Errorf("--combo: %w", err)
	}
	for _, spec := range specs {
		if !spec.Set {
			continue
		}
		if col, ok := cols.Lookup(spec.Key); ok && !slices.Contains(idxs, col.Index) {
			idxs = append(idxs, col.Index)
		}
	}
	slices.Sort(idxs)
	return idxs, nil
}

// ResolveSelections maps parsed --select specs onto a selection map, the
// way a multi-select editor reports its state. Set tokens are matched
// against the display text of the column's candidate values in u; a token
// with no candidate is reported on warn and dropped. Columns tracked by u
// but not mentioned start out with every candidate selected. Scalar specs
// pass their text through unchanged.
func ResolveSelections(specs []selection.Spec, cols columns.List, u universe.Provider, conv convert.Converter, warn io.Writer) selection.Map {
	sel := selection.Map{}

	for _, spec := range specs {
		col, ok := cols.Lookup(spec.Key)
		if !ok {
			log.Errorf("select key not found: %s", spec.Key)
			fmt.Fprintf(warn, "warning: select column not found: %s\n", spec.Key)
			continue
		}

		if !spec.Set {
			sel[col.Index] = selection.Scalar(spec.Tokens[0])
			continue
		}

		byText := make(map[string][]any)
		for _, v := range u.Values(col.Index) {
			text, err := conv.ToDisplay(col.Index, v)
			if err != nil {
				log.Debugf("select candidate skipped: col=%s err=%v", col.Title, err)
				continue
			}
			byText[text] = append(byText[text], v)
		}

		members := selection.NewValueSet()
		for _, tok := range spec.Tokens {
			vs, ok := byText[tok]
			if !ok {
				log.Debugf("select token unmatched: col=%s token=%q", col.Title, tok)
				fmt.Fprintf(warn, "warning: %s has no value %q\n", col.Title, tok)
				continue
			}
			for _, v := range vs {
				members.Add(v)
			}
		}
		sel[col.Index] = selection.FromSet(members)
	}

	for _, col := range u.Columns() {
		if _, ok := sel[col]; !ok {
			sel[col] = selection.Set(u.Values(col)...)
		}
	}

	log.Debugf("selections resolved: %s", sel)
	return sel
}
