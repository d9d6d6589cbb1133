// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package universe supplies the full candidate value list of each tracked
// column.
//
// A column is tracked when it is filtered through a value-set selection.
// The filter reducer compares the size of a selection against the size of
// the column's universe to decide whether the selection restricts anything,
// so a Provider must return the same list for a column until it is
// invalidated.
//
// A colpick command loads its rows once, so it never calls
// DatasetProvider.Invalidate. Library callers that refresh the rows behind a
// provider call Invalidate before the next filter cycle.
package universe
