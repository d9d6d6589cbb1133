// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package matcher

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/tidwall/gjson"
)

// Matcher decides whether a row passes.
type Matcher interface {
	String() string

	// Matches reports whether row passes this matcher.
	Matches(row gjson.Result) bool
}

type matchNothing struct{}

func (matchNothing) String() string { return "(MatchNothing)" }

func (matchNothing) Matches(gjson.Result) bool { return false }

type matchAll struct{}

func (matchAll) String() string { return "(MatchAll)" }

func (matchAll) Matches(gjson.Result) bool { return true }

var (
	// MatchNothing rejects every row. It is the sentinel installed when a
	// column selection leaves nothing that could pass.
	MatchNothing Matcher = matchNothing{}

	// MatchAll accepts every row.
	MatchAll Matcher = matchAll{}
)

// Evaluate returns the indexes of the rows m accepts.
func Evaluate(rows []gjson.Result, m Matcher) *roaring.Bitmap {
	visible := roaring.New()
	for i, row := range rows {
		if m.Matches(row) {
			visible.Add(uint32(i))
		}
	}
	return visible
}
