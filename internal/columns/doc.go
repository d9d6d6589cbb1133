// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package columns turns --attrs specifications into an indexed column list.
// The position of a column in the List is its column index, the identity
// used by selections, universes and converters. A List also acts as the
// column accessor that reads a column's value out of a gjson row.
package columns
