// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package dataset loads the rows to be filtered.
//
// A source is a file path, "-" for stdin, or an s3://bucket/key URI. Each
// source holds a JSON document; Parent selects the array of rows within it
// using gjson path syntax (e.g. "data" or "items.#.spec"). A document that
// resolves to an object is a single row.
package dataset
