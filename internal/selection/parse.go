// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package selection

import (
	"os"
	"regexp"
	"strings"

	"github.com/tfctl/colpick/internal/log"
)

// specRegex splits a --select expression into column key, operator and
// remainder. "=" introduces a value set, "~" a single scalar criterion.
var specRegex = regexp.MustCompile(`^([^=~]+)([=~])(.*)$`)

// Spec is a parsed --select expression. Tokens are display strings; mapping
// them back onto canonical values is up to the caller, which knows the
// column universe.
type Spec struct {
	Key    string   `yaml:"key" json:"Key"`
	Set    bool     `yaml:"set" json:"Set"`
	Tokens []string `yaml:"tokens" json:"Tokens"`
}

// ParseSpecs parses select expressions of the forms
//
//	status=active|pending   value set with two members
//	status=                 empty value set (nothing passes)
//	status=|active          value set containing "" and "active"
//	name~web-.*             scalar criterion
//
// The set delimiter defaults to "|" and can be overridden with
// COLPICK_SELECT_DELIM. Malformed expressions are logged and skipped. A later
// expression for the same key replaces an earlier one.
func ParseSpecs(exprs []string) []Spec {
	delim := "|"
	if d, ok := os.LookupEnv("COLPICK_SELECT_DELIM"); ok && d != "" {
		delim = d
	}

	var specs []Spec
	seen := make(map[string]int)

	for _, expr := range exprs {
		parts := specRegex.FindStringSubmatch(expr)
		if parts == nil {
			log.Errorf("invalid select: %s", expr)
			continue
		}

		key := strings.TrimSpace(parts[1])
		if key == "" {
			log.Errorf("invalid select: empty key in %s", expr)
			continue
		}

		spec := Spec{Key: key, Set: parts[2] == "="}
		switch {
		case !spec.Set:
			spec.Tokens = []string{parts[3]}
		case parts[3] != "":
			spec.Tokens = strings.Split(parts[3], delim)
		}
		log.Tracef("select parsed: key=%s set=%v tokens=%q", spec.Key, spec.Set, spec.Tokens)

		if i, ok := seen[key]; ok {
			specs[i] = spec
			continue
		}
		seen[key] = len(specs)
		specs = append(specs, spec)
	}

	return specs
}
