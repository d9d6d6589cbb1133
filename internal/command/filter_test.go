// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/tfctl/colpick/internal/config"
	"github.com/tfctl/colpick/internal/convert"
	"github.com/tfctl/colpick/internal/filters"
)

const hosts = "testdata/hosts.json"

type runResult struct {
	out    string
	errOut string
	err    error
}

// useConfig points COLPICK_CFG_FILE at a testdata file and resets the global
// config afterwards.
func useConfig(t *testing.T, name string) {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("testdata", name))
	require.NoError(t, err)
	t.Setenv("COLPICK_CFG_FILE", path)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })
}

// runApp builds and runs the app with args, reading stdin from in.
func runApp(t *testing.T, in io.Reader, args ...string) runResult {
	t.Helper()

	full := append([]string{"colpick"}, args...)
	app, err := InitApp(context.Background(), full)
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	if in != nil {
		app.Reader = in
	}

	err = app.Run(context.Background(), full)
	return runResult{out: out.String(), errOut: errOut.String(), err: err}
}

// names returns the name column of a JSON output.
func names(t *testing.T, out string) []string {
	t.Helper()
	require.True(t, gjson.Valid(out), "output is JSON: %s", out)
	var got []string
	for _, n := range gjson.Get(out, "#.name").Array() {
		got = append(got, n.String())
	}
	return got
}

func TestFilterSelect(t *testing.T) {
	useConfig(t, "colpick.yaml")

	tests := []struct {
		name       string
		args       []string
		want       []string
		wantErrOut string
	}{
		{
			name: "no selection",
			args: []string{},
			want: []string{"web1", "web2", "db1", "cache1", "queue1"},
		},
		{
			name: "one value",
			args: []string{"--select", "status=active"},
			want: []string{"web1", "db1"},
		},
		{
			name: "empty set matches nothing",
			args: []string{"--select", "status="},
			want: nil,
		},
		{
			name: "empty text selects blank and missing",
			args: []string{"--select", "status=|pending"},
			want: []string{"web2", "cache1", "queue1"},
		},
		{
			name: "every value selected",
			args: []string{"--select", "status=active|pending|"},
			want: []string{"web1", "web2", "db1", "cache1", "queue1"},
		},
		{
			name: "two columns",
			args: []string{"--select", "status=active", "--select", "region=us"},
			want: []string{"db1"},
		},
		{
			name: "one empty column wins",
			args: []string{"--select", "status=active", "--select", "region="},
			want: nil,
		},
		{
			name: "scalar pattern",
			args: []string{"--select", "name~web.*"},
			want: []string{"web1", "web2"},
		},
		{
			name: "display text of converted column",
			args: []string{"--select", "size=2.0 kB|512 B"},
			want: []string{"web1", "cache1"},
		},
		{
			name: "with static filter",
			args: []string{"--select", "region=us|eu", "--filter", "size>1500"},
			want: []string{"web1", "db1"},
		},
		{
			name:       "unknown value warns and matches nothing",
			args:       []string{"--select", "status=bogus"},
			want:       nil,
			wantErrOut: `status has no value "bogus"`,
		},
		{
			name:       "unknown column warns",
			args:       []string{"--select", "owner=me", "--select", "region=ap"},
			want:       []string{"queue1"},
			wantErrOut: "select column not found: owner",
		},
		{
			name: "combo column without selection",
			args: []string{"--combo", "region"},
			want: []string{"web1", "web2", "db1", "cache1", "queue1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"filter", hosts, "--attrs", "name,status,size,region", "-o", "json"}, tt.args...)
			r := runApp(t, nil, args...)
			require.NoError(t, r.err)
			assert.Equal(t, tt.want, names(t, r.out))
			if tt.wantErrOut != "" {
				assert.Contains(t, r.errOut, tt.wantErrOut)
			}
		})
	}
}

func TestFilterErrors(t *testing.T) {
	useConfig(t, "colpick.yaml")

	t.Run("conversion error", func(t *testing.T) {
		r := runApp(t, nil, "filter", hosts, "--attrs", "name,status::bytes", "--select", "status~act")
		require.Error(t, r.err)
		var ce *convert.ConversionError
		assert.True(t, errors.As(r.err, &ce))
		assert.Empty(t, r.out)
	})

	t.Run("criterion error", func(t *testing.T) {
		r := runApp(t, nil, "filter", hosts, "--attrs", "name", "--select", "name~web(")
		require.Error(t, r.err)
		var ce *filters.CriterionError
		assert.True(t, errors.As(r.err, &ce))
	})

	t.Run("unknown combo column", func(t *testing.T) {
		r := runApp(t, nil, "filter", hosts, "--combo", "owner")
		assert.ErrorContains(t, r.err, "unknown column: owner")
	})

	t.Run("invalid select", func(t *testing.T) {
		r := runApp(t, nil, "filter", hosts, "--select", "status")
		assert.ErrorContains(t, r.err, "invalid select")
	})

	t.Run("missing source", func(t *testing.T) {
		r := runApp(t, nil, "filter", "testdata/missing.json")
		assert.Error(t, r.err)
	})

	t.Run("bad output", func(t *testing.T) {
		r := runApp(t, nil, "filter", hosts, "-o", "csv")
		assert.ErrorContains(t, r.err, "must be one of")
	})
}

func TestFilterText(t *testing.T) {
	useConfig(t, "colpick.yaml")

	r := runApp(t, nil, "filter", hosts, "--attrs", "name,size,fqdn,!region", "--select", "region=eu",
		"--count", "--chop", "--titles", "--sort", "name")
	require.NoError(t, r.err)

	assert.Contains(t, r.out, "cache1")
	assert.Contains(t, r.out, "512 B")
	assert.Contains(t, r.out, "..eu.web1")
	assert.Contains(t, r.out, "2 of 5 rows")
	assert.NotContains(t, r.out, "db1")
	assert.Less(t, strings.Index(r.out, "cache1"), strings.Index(r.out, "web1"))
}

// langs holds display values carrying regular expression metacharacters.
const langs = `[{"name":"go (1.22)"},{"name":"rust"},{"name":"c++"}]`

func TestFilterQuoteMeta(t *testing.T) {
	useConfig(t, "colpick.yaml")

	run := func(args ...string) runResult {
		full := append([]string{"filter", "--attrs", "name", "-o", "json"}, args...)
		return runApp(t, strings.NewReader(langs), full...)
	}

	r := run("--select", "name=go (1.22)|c++")
	require.NoError(t, r.err)
	assert.Equal(t, []string{"go (1.22)", "c++"}, names(t, r.out))

	r = run("--select", "name~r.st")
	require.NoError(t, r.err)
	assert.Equal(t, []string{"rust"}, names(t, r.out), "scalar stays a pattern")

	r = run("--select", "name=go (1.22)|rust", "--quote-meta=false")
	require.NoError(t, r.err)
	assert.Equal(t, []string{"rust"}, names(t, r.out))

	r = run("--select", "name=c++", "--quote-meta=false")
	var ce *filters.CriterionError
	assert.True(t, errors.As(r.err, &ce))
}

func TestFilterConfigSources(t *testing.T) {
	useConfig(t, "literal.yaml")

	// quote_meta: false turns selected values back into patterns.
	r := runApp(t, strings.NewReader(langs), "filter", "--attrs", "name", "-o", "json", "--select", "name=c++")
	var ce *filters.CriterionError
	assert.True(t, errors.As(r.err, &ce))

	r = runApp(t, strings.NewReader(langs), "filter", "--attrs", "name", "-o", "json", "--select", "name=c++", "--quote-meta")
	require.NoError(t, r.err)
	assert.Equal(t, []string{"c++"}, names(t, r.out))

	// chop comes from filter.chop.
	r = runApp(t, nil, "filter", hosts, "--attrs", "fqdn", "--select", "fqdn=com.example.us.db1")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "..us.db1")
}

func TestFilterStdinAndParent(t *testing.T) {
	useConfig(t, "colpick.yaml")

	doc, err := os.ReadFile("testdata/nested.json")
	require.NoError(t, err)

	r := runApp(t, bytes.NewReader(doc), "filter", "--parent", "inventory.hosts",
		"--attrs", "name,meta.tier", "--select", "tier=back", "-o", "json")
	require.NoError(t, r.err)
	assert.Equal(t, []string{"db1"}, names(t, r.out))
}

func TestFilterDefaultColumns(t *testing.T) {
	useConfig(t, "colpick.yaml")

	r := runApp(t, nil, "filter", hosts, "--select", "region=ap", "-o", "yaml")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "name: queue1")
	assert.Contains(t, r.out, "fqdn: com.example.ap.queue1")
}

func TestFilterRawAndSchema(t *testing.T) {
	useConfig(t, "colpick.yaml")

	r := runApp(t, nil, "filter", hosts, "--select", "name=db1", "-o", "raw")
	require.NoError(t, r.err)
	assert.Equal(t, "db1", gjson.Get(r.out, "0.name").String())
	assert.Equal(t, int64(8192), gjson.Get(r.out, "0.size").Int())

	r = runApp(t, nil, "filter", hosts, "--schema")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "region")
	assert.Contains(t, r.out, "number")
}
