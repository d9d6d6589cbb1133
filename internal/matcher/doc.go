// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package matcher holds the row matchers filters are expressed as and the
// Composite set they are installed into.
//
// A Composite is the logical AND of its members; an empty Composite passes
// every row. Membership has set semantics, so installing the same matcher
// twice, notably the MatchNothing sentinel on repeated empty selections,
// leaves a single member. Listeners registered with OnChange run after every
// effective change so views can re-evaluate.
//
// MatchAll is the counterpart of MatchNothing for library callers that need
// an explicit pass-everything member; the colpick commands express "no
// restriction" with an empty Composite instead.
package matcher
