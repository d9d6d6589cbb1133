// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/tfctl/colpick/internal/config"
)

// Meta contains runtime metadata shared by commands: the CLI arguments, the
// loaded configuration, the root context and the starting working directory.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
}

// Namespace is the config namespace of the invoked command, the first
// argument after the binary.
func (m Meta) Namespace() string {
	return m.Config.Namespace
}
