// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/colpick/internal/aws"
	"github.com/tfctl/colpick/internal/cacheutil"
	"github.com/tfctl/colpick/internal/columns"
	"github.com/tfctl/colpick/internal/dataset"
	"github.com/tfctl/colpick/internal/log"
	"github.com/tfctl/colpick/internal/meta"
	"github.com/tfctl/colpick/internal/output"
)

// BuildColumns constructs the column list from defaults and --attrs. With
// neither, the top-level keys of the first row become the columns, in
// document order. Keys that are not usable as paths are skipped.
func BuildColumns(cmd *cli.Command, rows []gjson.Result, defaults ...string) (columns.List, error) {
	var cols columns.List
	for _, d := range defaults {
		if err := cols.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := cols.Set(extras); err != nil {
			return nil, fmt.Errorf("--attrs: %w", err)
		}
	}

	if len(cols) == 0 && len(rows) > 0 {
		rows[0].ForEach(func(key, _ gjson.Result) bool {
			if err := cols.Set(key.String()); err != nil {
				log.Debugf("column skipped: key=%q err=%v", key.String(), err)
			}
			return true
		})
	}

	if len(cols) == 0 {
		return nil, fmt.Errorf("no columns: use --attrs")
	}
	return cols, nil
}

// ColumnIndexes resolves comma separated column names (titles or keys) to
// column indexes.
func ColumnIndexes(cols columns.List, names string) ([]int, error) {
	var idxs []int
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		col, ok := cols.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown column: %s", name)
		}
		idxs = append(idxs, col.Index)
	}
	return idxs, nil
}

// DumpSchemaIfRequested writes the key paths of rows when --schema is set,
// and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, rows []gjson.Result) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(rows, outWriter(cmd))
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// LoadRows loads the positional sources of cmd, stdin when there are none.
func LoadRows(ctx context.Context, cmd *cli.Command) ([]gjson.Result, error) {
	var opts []aws.Option
	if profile := cmd.String("profile"); profile != "" {
		opts = append(opts, aws.WithProfile(profile))
	}
	if region := cmd.String("region"); region != "" {
		opts = append(opts, aws.WithRegion(region))
	}

	loader := &dataset.Loader{
		Parent:     cmd.String("parent"),
		Stdin:      cmd.Root().Reader,
		AWSOptions: opts,
		Endpoint:   cmd.String("endpoint"),
	}

	if hours := cmd.Int("cache-hours"); hours > 0 {
		loader.Cache = cacheutil.New(time.Duration(hours) * time.Hour)
		if err := loader.Cache.Purge(); err != nil {
			log.WithError(err).Warnf("cache purge failed")
		}
	}

	rows, err := loader.LoadAll(ctx, cmd.Args().Slice())
	if err != nil {
		return nil, err
	}
	log.Debugf("rows loaded: count=%d", len(rows))
	return rows, nil
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr colpick <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "colpick", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// outWriter is the root command's writer, where rendered rows go.
func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// errWriter is the root command's error writer, used for user warnings.
func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
