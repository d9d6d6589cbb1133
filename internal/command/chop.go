// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import "strings"

// chopPrefix shortens dot-delimited string values, column by column, by
// replacing the leading segments shared by every record with "..". At least
// two shared segments are needed before anything is chopped, and at least two
// segments always remain.
func chopPrefix(records []map[string]interface{}) {
	if len(records) == 0 {
		return
	}

	type dotted struct {
		record   int
		segments []string
	}

	byColumn := make(map[string][]dotted)
	for i, record := range records {
		for title, v := range record {
			if s, ok := v.(string); ok {
				byColumn[title] = append(byColumn[title], dotted{record: i, segments: strings.Split(s, ".")})
			}
		}
	}

	for title, values := range byColumn {
		first := values[0].segments

		shortest := len(first)
		for _, v := range values {
			shortest = min(shortest, len(v.segments))
		}

		common := 0
	scan:
		for ; common < shortest; common++ {
			for _, v := range values {
				if v.segments[common] != first[common] {
					break scan
				}
			}
		}

		common = min(common, shortest-2)
		if common < 2 {
			continue
		}

		prefix := strings.Join(first[:common], ".") + "."
		for _, v := range values {
			s := strings.Join(v.segments, ".")
			if strings.HasPrefix(s, prefix) {
				records[v.record][title] = ".." + s[len(prefix):]
			}
		}
	}
}
