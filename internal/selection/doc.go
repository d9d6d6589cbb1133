// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package selection models the per-column filter input handed to the column
// filter strategies.
//
// A Map is keyed by column index. Each Value is either a Scalar, an ordinary
// single-value criterion, or a ValueSet, the values a user ticked in a
// multi-select column filter. The distinction is made once, when the map is
// built, so the filter code never inspects dynamic types.
//
// ValueSets have set semantics: duplicate members collapse and only
// membership matters. Iteration follows first insertion so the criterion
// built from a set is stable for identical input.
package selection
