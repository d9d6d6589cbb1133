// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for colpick. It wires flags,
// validators, actions, and shell completion for subcommands.
//
// The filter command stands in for a multi-select column editor: --select
// tokens are matched against the display text of each column's distinct
// values and handed to the column filter strategies as value sets.
package command
