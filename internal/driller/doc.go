// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller navigates JSON rows with a flexible dot path so a column
// definition can address nested values, e.g. "spec.ports[0].name" or
// "tags[]". Paths are compiled once per column and evaluated per row.
package driller
