// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters composes row filters from per-column value selections and
// --filter expressions.
//
// Column selections:
//
// A selection.Map holds, per column index, either a value set (the values
// ticked in a multi-select column filter) or a single scalar. Applying it is
// a three step cycle run by ComboStrategy.ApplyFilter:
//
//   - Reduce consults the column universe. An empty map, or a tracked column
//     that is missing or has an empty set, means no row can pass and the
//     matcher.MatchNothing sentinel is added to the composite. A set holding
//     every value of its column restricts nothing and is dropped.
//   - CriterionBuilder converts each remaining selection to pattern text:
//     {"a","b"} becomes "(a|b)", {""} becomes "(^$)" and the scalar "x"
//     stays "x". With QuoteMeta set members are escaped, so {"c++"} becomes
//     "(c\+\+)"; scalars are never escaped.
//   - StaticStrategy compiles each criterion as a pattern matching the whole
//     display text of its column and replaces the composite's members with
//     one ColumnMatcher per column plus the static filters.
//
// A conversion or compile failure aborts the cycle before the composite is
// touched.
//
// Filter expressions:
//
// BuildFilters parses a comma-delimited (COLPICK_FILTER_DELIM overrides the
// delimiter) list of key-operator-target expressions. The key names a
// column by title or key. Operators are:
//
//   - = : exact match (numeric for numbers)
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than
//   - > : greater than
//   - @ : contains substring, or array/map membership
//   - / : regular expression match
//
// Every operator can be negated with a leading "!", e.g. "name!@test". A bare
// key keeps rows that have a value for it. Static filters built from these
// expressions survive every column criteria installation.
//
// Library API:
//
// NewComboStrategyWith accepts any Installer and composite, for callers that
// install criteria somewhere other than a StaticStrategy.
// RemoveStaticFilter detaches a single static filter at runtime. The colpick
// commands use neither.
package filters
