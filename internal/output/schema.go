// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/tfctl/colpick/internal/log"
)

// schemaTag is one key path discovered in the dataset (--schema flag).
type schemaTag struct {
	Name string
	Kind string
}

// print renders the tag into its display form.
func (t schemaTag) print() string {
	return fmt.Sprintf("%-40s %s", t.Name, t.Kind)
}

// maxSchemaDepth limits how deep nested objects are walked.
const maxSchemaDepth = 2

// DumpSchema writes the sorted key paths found in rows, usable as --attrs
// keys, to w. If w is nil, os.Stdout is used.
func DumpSchema(rows []gjson.Result, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w,
		`Key paths found in the dataset. Use them in --attrs, e.g.
--attrs 'spec.name:name,size::bytes'.`)
	fmt.Fprintln(w, "")

	seen := make(map[string]schemaTag)
	for _, row := range rows {
		for _, tag := range dumpSchemaWalker("", row, 0) {
			if prev, ok := seen[tag.Name]; ok && prev.Kind != tag.Kind {
				tag.Kind = "mixed"
			}
			seen[tag.Name] = tag
		}
	}
	if len(seen) == 0 {
		log.Debugf("no keys found in %d rows", len(rows))
		return
	}

	tags := make([]schemaTag, 0, len(seen))
	for _, tag := range seen {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })

	for _, tag := range tags {
		fmt.Fprintln(w, tag.print())
	}
}

// dumpSchemaWalker walks an object, descending into nested objects and the
// first element of arrays of objects.
func dumpSchemaWalker(holder string, value gjson.Result, depth int) []schemaTag {
	var tags []schemaTag
	if !value.IsObject() {
		return tags
	}

	value.ForEach(func(key, field gjson.Result) bool {
		name := key.String()
		if holder != "" {
			name = holder + "." + name
		}

		kind := kindOf(field)
		if field.IsArray() {
			name += "[]"
		}
		tags = append(tags, schemaTag{Name: name, Kind: kind})

		if depth < maxSchemaDepth {
			switch {
			case field.IsObject():
				tags = append(tags, dumpSchemaWalker(name, field, depth+1)...)
			case field.IsArray():
				if first := field.Get("0"); first.IsObject() {
					tags = append(tags, dumpSchemaWalker(name, first, depth+1)...)
				}
			}
		}
		return true
	})

	return tags
}

func kindOf(v gjson.Result) string {
	switch {
	case v.IsArray():
		return "array"
	case v.IsObject():
		return "object"
	}
	switch v.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "bool"
	default:
		return "null"
	}
}
