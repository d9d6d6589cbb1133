// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package view keeps the set of visible rows in step with a composite
// matcher.
//
// The colpick commands read Rows, Len and Total. Visible and IsVisible are
// for library callers that keep the full row slice and only need the
// membership test, e.g. to mark rather than drop filtered rows.
package view

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/tidwall/gjson"

	"github.com/tfctl/colpick/internal/log"
	"github.com/tfctl/colpick/internal/matcher"
)

// View is a filtered window over rows. Every change to the composite
// re-evaluates it.
type View struct {
	rows      []gjson.Result
	composite *matcher.Composite
	visible   *roaring.Bitmap
	refreshes int
}

// New evaluates composite over rows and subscribes to its changes.
func New(rows []gjson.Result, composite *matcher.Composite) *View {
	v := &View{rows: rows, composite: composite}
	composite.OnChange(v.Refresh)
	v.Refresh()
	return v
}

// Refresh re-evaluates the composite.
func (v *View) Refresh() {
	v.visible = matcher.Evaluate(v.rows, v.composite)
	v.refreshes++
	log.Debugf("view refreshed: visible=%d of %d matcher=%s", v.visible.GetCardinality(), len(v.rows), v.composite)
}

// Rows returns the visible rows in dataset order.
func (v *View) Rows() []gjson.Result {
	out := make([]gjson.Result, 0, v.visible.GetCardinality())
	it := v.visible.Iterator()
	for it.HasNext() {
		out = append(out, v.rows[it.Next()])
	}
	return out
}

// Len returns the number of visible rows.
func (v *View) Len() int {
	return int(v.visible.GetCardinality())
}

// Total returns the number of rows, visible or not.
func (v *View) Total() int {
	return len(v.rows)
}

// Visible returns a copy of the visible row indexes.
func (v *View) Visible() *roaring.Bitmap {
	return v.visible.Clone()
}

// IsVisible reports whether row i passes the composite.
func (v *View) IsVisible(i int) bool {
	return i >= 0 && v.visible.Contains(uint32(i))
}
