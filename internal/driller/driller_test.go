// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package driller

import (
	"embed"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// drillerTestCase represents a single test case for TestPathGet.
type drillerTestCase struct {
	Name        string                 `yaml:"name"`
	JSON        map[string]interface{} `yaml:"json"`
	Path        string                 `yaml:"path"`
	ExpectedStr string                 `yaml:"expectedStr"`
	IsNil       bool                   `yaml:"isNil"`
	IsArray     bool                   `yaml:"isArray"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func TestPathGet(t *testing.T) {
	var tests []drillerTestCase
	require.NoError(t, loadTestData("driller_cases.yaml", &tests))
	require.NotEmpty(t, tests)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			jsonBytes, err := json.Marshal(tt.JSON)
			require.NoError(t, err)

			p, err := Compile(tt.Path)
			require.NoError(t, err)
			result := p.Get(gjson.ParseBytes(jsonBytes))

			if tt.IsNil {
				assert.False(t, result.Exists(), "unexpected value %v", result.Value())
				return
			}

			require.True(t, result.Exists())
			if tt.IsArray {
				assert.True(t, result.IsArray())
				return
			}
			assert.Equal(t, tt.ExpectedStr, result.String())
		})
	}
}

func TestCompileErrors(t *testing.T) {
	for _, path := range []string{"", ".", "a..b", "a[x]", "a b"} {
		t.Run(path, func(t *testing.T) {
			_, err := Compile(path)
			assert.Error(t, err)
		})
	}

	assert.Panics(t, func() { MustCompile("a[") })
	assert.Equal(t, ".name", MustCompile(".name").String())
}
