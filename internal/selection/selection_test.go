// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSetSemantics(t *testing.T) {
	s := NewValueSet("b", "a", "b", 1, "1", nil, nil)

	assert.Equal(t, 5, s.Len())
	assert.Equal(t, []any{"b", "a", 1, "1", nil}, s.Members(), "first insertion order")
	assert.True(t, s.Contains(1))
	assert.True(t, s.Contains("1"))
	assert.True(t, s.Contains(nil))
	assert.False(t, s.Contains(2))

	assert.False(t, s.Add("a"), "duplicate does not change the set")
	assert.True(t, s.Add("c"))
	assert.Equal(t, 6, s.Len())
}

func TestNilValueSet(t *testing.T) {
	var s *ValueSet
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Members())
	assert.False(t, s.Contains("a"))

	var zero ValueSet
	assert.True(t, zero.Add("a"))
	assert.Equal(t, 1, zero.Len())
}

func TestValue(t *testing.T) {
	tests := []struct {
		name      string
		value     Value
		isSet     bool
		emptySet  bool
		length    int
		values    []any
		contains  any
		wantMatch bool
		str       string
	}{
		{
			name:      "scalar",
			value:     Scalar("x"),
			length:    1,
			values:    []any{"x"},
			contains:  "x",
			wantMatch: true,
			str:       "x",
		},
		{
			name:      "set",
			value:     Set("a", "b", "a"),
			isSet:     true,
			length:    2,
			values:    []any{"a", "b"},
			contains:  "b",
			wantMatch: true,
			str:       "{a, b}",
		},
		{
			name:     "empty set",
			value:    Set(),
			isSet:    true,
			emptySet: true,
			length:   0,
			values:   []any{},
			contains: "a",
			str:      "{}",
		},
		{
			name:     "from nil set",
			value:    FromSet(nil),
			isSet:    true,
			emptySet: true,
			values:   []any{},
			contains: nil,
			str:      "{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isSet, tt.value.IsSet())
			assert.Equal(t, tt.emptySet, tt.value.IsEmptySet())
			assert.Equal(t, tt.length, tt.value.Len())
			assert.ElementsMatch(t, tt.values, tt.value.Values())
			assert.Equal(t, tt.wantMatch, tt.value.Contains(tt.contains))
			assert.Equal(t, tt.str, tt.value.String())
		})
	}
}

func TestFromSetCopies(t *testing.T) {
	s := NewValueSet("a")
	v := FromSet(s)
	s.Add("b")

	assert.Equal(t, 1, v.Len())
}

func TestMapClone(t *testing.T) {
	orig := Map{
		1: Set("a", "b"),
		2: Scalar("x"),
	}

	clone := orig.Clone()
	delete(clone, 2)
	clone[1].set.Add("c")
	clone[3] = Set()

	assert.Len(t, orig, 2)
	assert.Equal(t, 2, orig[1].Len(), "value sets are deep copied")
	assert.Equal(t, []int{1, 3}, clone.Columns())
	assert.Equal(t, "1={a, b} 2=x", orig.String())
}

func TestParseSpecs(t *testing.T) {
	tests := []struct {
		name  string
		delim string
		exprs []string
		want  []Spec
	}{
		{
			name:  "value set",
			exprs: []string{"status=active|pending"},
			want:  []Spec{{Key: "status", Set: true, Tokens: []string{"active", "pending"}}},
		},
		{
			name:  "empty value set",
			exprs: []string{"status="},
			want:  []Spec{{Key: "status", Set: true}},
		},
		{
			name:  "empty string member",
			exprs: []string{"owner=|ops"},
			want:  []Spec{{Key: "owner", Set: true, Tokens: []string{"", "ops"}}},
		},
		{
			name:  "scalar",
			exprs: []string{"name~web-.*"},
			want:  []Spec{{Key: "name", Tokens: []string{"web-.*"}}},
		},
		{
			name:  "value may contain operators",
			exprs: []string{"expr=a=b|c~d"},
			want:  []Spec{{Key: "expr", Set: true, Tokens: []string{"a=b", "c~d"}}},
		},
		{
			name:  "custom delimiter",
			delim: ";",
			exprs: []string{"region=eu|west;us"},
			want:  []Spec{{Key: "region", Set: true, Tokens: []string{"eu|west", "us"}}},
		},
		{
			name:  "later expression wins",
			exprs: []string{"a=x", "b=y", "a=z"},
			want: []Spec{
				{Key: "a", Set: true, Tokens: []string{"z"}},
				{Key: "b", Set: true, Tokens: []string{"y"}},
			},
		},
		{
			name:  "malformed skipped",
			exprs: []string{"novalue", "=x", " =y", "ok=1"},
			want:  []Spec{{Key: "ok", Set: true, Tokens: []string{"1"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.delim != "" {
				t.Setenv("COLPICK_SELECT_DELIM", tt.delim)
			}
			got := ParseSpecs(tt.exprs)
			require.Len(t, got, len(tt.want))
			assert.Equal(t, tt.want, got)
		})
	}
}
