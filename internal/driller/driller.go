// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// segmentRegex matches a single path segment: a key with an optional array
// selector, "[]" (whole array, unwrapped when it has one element) or "[n]".
var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+)?\])?$`)

// segment is one compiled step of a Path.
type segment struct {
	key   string
	index int // -1 when no explicit index was given
}

// Path is a compiled dot path.
type Path struct {
	raw      string
	segments []segment
}

// Compile parses a dot path. A leading "." is accepted and ignored.
func Compile(path string) (Path, error) {
	trimmed := strings.TrimPrefix(path, ".")
	if trimmed == "" {
		return Path{}, fmt.Errorf("empty path")
	}

	p := Path{raw: path}
	for _, part := range strings.Split(trimmed, ".") {
		matches := segmentRegex.FindStringSubmatch(part)
		if matches == nil {
			return Path{}, fmt.Errorf("invalid path segment %q in %q", part, path)
		}

		index := -1
		if matches[3] != "" {
			i, err := strconv.Atoi(matches[3])
			if err != nil {
				return Path{}, fmt.Errorf("invalid index in %q: %w", part, err)
			}
			index = i
		}
		p.segments = append(p.segments, segment{key: matches[1], index: index})
	}

	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(path string) Path {
	p, err := Compile(path)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the path as given to Compile.
func (p Path) String() string { return p.raw }

// Get walks the path from row. Missing keys and out of range indexes yield
// the zero gjson.Result, which reports !Exists().
func (p Path) Get(row gjson.Result) gjson.Result {
	current := row
	for _, s := range p.segments {
		val := current.Get(s.key)
		if val.IsArray() {
			arr := val.Array()
			switch {
			case s.index == -1:
				if len(arr) == 1 {
					val = arr[0]
				}
				// Otherwise keep the whole list.
			case s.index < len(arr):
				val = arr[s.index]
			default:
				return gjson.Result{}
			}
		} else if s.index >= 0 {
			return gjson.Result{}
		}
		current = val
	}
	return current
}
