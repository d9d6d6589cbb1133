// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package convert maps canonical cell values to their display text.
//
// A Func converts one value and fails with ErrUnsupported when the value is
// outside its domain. A Registry picks the Func for each column index, from
// the column definition, the "converters" config map or the default. Display
// text is what filter criteria are built from and what row values are
// matched against, so the same Registry must serve both sides.
package convert
