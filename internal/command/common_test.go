// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/colpick/internal/columns"
	"github.com/tfctl/colpick/internal/convert"
	"github.com/tfctl/colpick/internal/selection"
	"github.com/tfctl/colpick/internal/universe"
)

// withAttrs runs fn inside a command parsed from args.
func withAttrs(t *testing.T, args []string, fn func(cmd *cli.Command)) {
	t.Helper()
	cmd := &cli.Command{
		Name:  "test",
		Flags: []cli.Flag{&cli.StringFlag{Name: "attrs"}},
		Action: func(_ context.Context, cmd *cli.Command) error {
			fn(cmd)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func TestBuildColumns(t *testing.T) {
	rows := gjson.Parse(`[{"name":"web1","status":"active","size":10}]`).Array()

	tests := []struct {
		name     string
		args     []string
		defaults []string
		rows     []gjson.Result
		want     []string
		wantErr  string
	}{
		{name: "first row keys", rows: rows, want: []string{"name", "status", "size"}},
		{name: "attrs", args: []string{"--attrs", "size,name:host"}, rows: rows, want: []string{"size", "host"}},
		{name: "defaults then attrs", defaults: []string{"name"}, args: []string{"--attrs", "status"}, want: []string{"name", "status"}},
		{name: "no rows no attrs", wantErr: "no columns"},
		{name: "bad attrs", args: []string{"--attrs", "a[x"}, wantErr: "--attrs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withAttrs(t, tt.args, func(cmd *cli.Command) {
				cols, err := BuildColumns(cmd, tt.rows, tt.defaults...)
				if tt.wantErr != "" {
					assert.ErrorContains(t, err, tt.wantErr)
					return
				}
				require.NoError(t, err)
				var titles []string
				for _, c := range cols {
					titles = append(titles, c.Title)
				}
				assert.Equal(t, tt.want, titles)
			})
		})
	}
}

func testColumns(t *testing.T) columns.List {
	t.Helper()
	var cols columns.List
	require.NoError(t, cols.Set("name,status,region:zone"))
	return cols
}

func TestColumnIndexes(t *testing.T) {
	cols := testColumns(t)

	got, err := ColumnIndexes(cols, "zone, name,,region")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 2}, got)

	_, err = ColumnIndexes(cols, "owner")
	assert.ErrorContains(t, err, "unknown column: owner")
}

func TestComboColumns(t *testing.T) {
	cols := testColumns(t)
	specs := []selection.Spec{
		{Key: "zone", Set: true, Tokens: []string{"eu"}},
		{Key: "name", Tokens: []string{"web.*"}},
		{Key: "owner", Set: true},
	}

	got, err := ComboColumns(cols, "status", specs)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got, "scalar and unknown columns are not combos")

	got, err = ComboColumns(cols, "zone", specs)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, got, "no duplicates")

	_, err = ComboColumns(cols, "nope", nil)
	assert.ErrorContains(t, err, "--combo")
}

func TestResolveSelections(t *testing.T) {
	cols := testColumns(t)
	u := universe.Static{
		1: {"active", "pending", "", nil},
		2: {"eu", "us"},
	}
	conv := convert.NewRegistry()

	var warn bytes.Buffer
	sel := ResolveSelections([]selection.Spec{
		{Key: "status", Set: true, Tokens: []string{"", "active", "gone"}},
		{Key: "name", Tokens: []string{"web.*"}},
		{Key: "owner", Set: true, Tokens: []string{"me"}},
	}, cols, u, conv, &warn)

	require.Len(t, sel, 3)
	assert.True(t, sel[1].IsSet())
	assert.ElementsMatch(t, []any{"", nil, "active"}, sel[1].Values())
	assert.False(t, sel[0].IsSet())
	assert.Equal(t, "web.*", sel[0].Scalar())
	assert.Equal(t, 2, sel[2].Len(), "unmentioned combo column selects everything")

	assert.Contains(t, warn.String(), `status has no value "gone"`)
	assert.Contains(t, warn.String(), "select column not found: owner")
}

func TestResolveSelectionsEmptySet(t *testing.T) {
	cols := testColumns(t)
	u := universe.Static{1: {"active"}}

	sel := ResolveSelections([]selection.Spec{{Key: "status", Set: true}}, cols, u, convert.NewRegistry(), &bytes.Buffer{})
	assert.True(t, sel[1].IsEmptySet())
}

func TestValidators(t *testing.T) {
	assert.NoError(t, FlagValidators("json", OutputValidator))
	assert.ErrorContains(t, FlagValidators("csv", OutputValidator), "must be one of")

	assert.NoError(t, NonNegativeValidator(0))
	assert.Error(t, NonNegativeValidator(-1))
	assert.Error(t, NonNegativeValidator("2"))

	assert.NoError(t, SelectValidator([]string{"status=a|b", "status=", "name~web"}))
	assert.ErrorContains(t, SelectValidator([]string{"status"}), "invalid select")
	assert.Error(t, SelectValidator([]string{"=a"}))
}

func TestNameSpacedValueChainFlagFromConfigFile(t *testing.T) {
	s := &cli.StringFlag{Name: "sort"}
	NameSpacedValueChainFlagFromConfigFile("filter", "colpick.yaml", s)
	assert.Len(t, s.Sources.Chain, 2)

	b := &cli.BoolFlag{Name: "chop"}
	NameSpacedValueChainFlagFromConfigFile("", "colpick.yaml", b)
	assert.Len(t, b.Sources.Chain, 1, "no namespace, global key only")

	i := &cli.IntFlag{Name: "padding"}
	NameSpacedValueChainFlagFromConfigFile("filter", "", i)
	assert.Empty(t, i.Sources.Chain, "no config file")
}
