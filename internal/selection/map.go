// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package selection

import (
	"fmt"
	"sort"
	"strings"
)

// Map holds the active filter input per column index.
type Map map[int]Value

// Clone returns a deep copy. Mutating the copy, or any ValueSet inside it,
// never affects m.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for col, v := range m {
		out[col] = v.clone()
	}
	return out
}

// Columns returns the column indexes in ascending order.
func (m Map) Columns() []int {
	cols := make([]int, 0, len(m))
	for col := range m {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

func (m Map) String() string {
	parts := make([]string, 0, len(m))
	for _, col := range m.Columns() {
		parts = append(parts, fmt.Sprintf("%d=%s", col, m[col]))
	}
	return strings.Join(parts, " ")
}
