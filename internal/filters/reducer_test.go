// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tfctl/colpick/internal/selection"
	"github.com/tfctl/colpick/internal/universe"
)

func TestReduce(t *testing.T) {
	u := universe.Static{
		1: {"a", "b"},
		3: {"v1", "v2", "v3", "v4", "v5"},
	}

	tests := []struct {
		name        string
		sel         selection.Map
		wantNothing bool
		wantColumns []int
	}{
		{
			name:        "empty selection",
			sel:         selection.Map{},
			wantNothing: true,
		},
		{
			name:        "nil selection",
			wantNothing: true,
		},
		{
			name: "empty set short-circuits regardless of other columns",
			sel: selection.Map{
				1: selection.Set("a"),
				3: selection.Set(),
			},
			wantNothing: true,
		},
		{
			name:        "tracked column missing",
			sel:         selection.Map{1: selection.Set("a")},
			wantNothing: true,
		},
		{
			name: "full universe dropped",
			sel: selection.Map{
				1: selection.Set("a"),
				3: selection.Set("v1", "v2", "v3", "v4", "v5"),
			},
			wantColumns: []int{1},
		},
		{
			name: "everything selected leaves an empty map",
			sel: selection.Map{
				1: selection.Set("b", "a"),
				3: selection.Set("v5", "v4", "v3", "v2", "v1"),
			},
			wantColumns: []int{},
		},
		{
			name: "scalar kept",
			sel: selection.Map{
				1: selection.Scalar("a"),
				3: selection.Set("v1", "v2", "v3", "v4", "v5"),
			},
			wantColumns: []int{1},
		},
		{
			name: "unknown columns untouched",
			sel: selection.Map{
				1: selection.Set("a", "b"),
				3: selection.Set("v1"),
				7: selection.Set(),
				8: selection.Set("x"),
			},
			wantColumns: []int{3, 7, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, nothing := Reduce(tt.sel, u)
			assert.Equal(t, tt.wantNothing, nothing)
			if tt.wantNothing {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.wantColumns, got.Columns())
			for _, col := range got.Columns() {
				assert.Equal(t, tt.sel[col].String(), got[col].String())
			}
		})
	}
}

func TestReduceDoesNotMutateSelection(t *testing.T) {
	u := universe.Static{3: {"v1", "v2"}}
	sel := selection.Map{
		3: selection.Set("v1", "v2"),
		4: selection.Set("x"),
	}

	reduced, nothing := Reduce(sel, u)
	assert.False(t, nothing)
	assert.NotContains(t, reduced, 3)

	assert.Len(t, sel, 2)
	assert.Contains(t, sel, 3)
	assert.Equal(t, 2, sel[3].Len())
}

func TestReduceNoTrackedColumns(t *testing.T) {
	sel := selection.Map{0: selection.Scalar("web")}

	got, nothing := Reduce(sel, universe.Static{})
	assert.False(t, nothing)
	assert.Equal(t, []int{0}, got.Columns())
}
