// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"github.com/tfctl/colpick/internal/log"
	"github.com/tfctl/colpick/internal/selection"
	"github.com/tfctl/colpick/internal/universe"
)

// Reduce elides the selections that restrict nothing and decides whether
// nothing can pass at all. The returned bool is true for "match nothing", in
// which case the map is nil.
//
// For every column tracked by u, a missing selection or an empty value set
// matches nothing, and a value set as large as the column's universe is
// dropped. Scalars and smaller sets are kept. Columns u does not track are
// kept as they are. sel is never modified.
func Reduce(sel selection.Map, u universe.Provider) (selection.Map, bool) {
	if len(sel) == 0 {
		log.Debugf("reduce: empty selection, match nothing")
		return nil, true
	}

	reduced := sel.Clone()
	for _, col := range u.Columns() {
		v, ok := reduced[col]
		if !ok || v.IsEmptySet() {
			log.Debugf("reduce: column=%d present=%v, match nothing", col, ok)
			return nil, true
		}

		if v.IsSet() && v.Len() == len(u.Values(col)) {
			log.Debugf("reduce: column=%d all %d values selected, dropped", col, v.Len())
			delete(reduced, col)
			continue
		}

		log.Tracef("reduce: column=%d kept %s", col, v)
	}

	log.Debugf("reduce: %d of %d columns remain", len(reduced), len(sel))
	return reduced, false
}
