// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for colpick's user
// configuration. The configuration is a YAML document located in the user's
// configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/colpick.yaml or $HOME/.config/colpick.yaml
//   - Windows: %APPDATA%/colpick.yaml
//
// COLPICK_CFG_FILE overrides the location. Besides command defaults, the
// file carries the per-column display converters used when filter criteria
// are built:
//
//	converters:
//	  size: bytes
//	  created: time
//	filter:
//	  quote_meta: true
package config
