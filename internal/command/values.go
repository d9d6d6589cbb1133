// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/colpick/internal/columns"
	"github.com/tfctl/colpick/internal/config"
	"github.com/tfctl/colpick/internal/convert"
	"github.com/tfctl/colpick/internal/log"
	"github.com/tfctl/colpick/internal/meta"
	"github.com/tfctl/colpick/internal/output"
	"github.com/tfctl/colpick/internal/selection"
	"github.com/tfctl/colpick/internal/universe"
)

// valueColumns are the columns of the values listing.
const valueColumns = "value,count::comma"

// valuesCommandAction is the action handler for the "values" subcommand. It
// lists the distinct values of one column, as a multi-select editor would
// offer them, with the number of rows holding each.
func valuesCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "values") {
		return nil
	}

	config.Config.Namespace = "values"

	rows, err := LoadRows(ctx, cmd)
	if err != nil {
		return err
	}

	if DumpSchemaIfRequested(cmd, rows) {
		return nil
	}

	cols, err := BuildColumns(cmd, rows)
	if err != nil {
		return err
	}

	reg, err := convert.FromColumns(cols)
	if err != nil {
		return err
	}

	col, ok := cols.Lookup(cmd.String("column"))
	if !ok {
		return fmt.Errorf("unknown column: %s", cmd.String("column"))
	}

	u := universe.NewDatasetProvider(rows, cols, reg, col.Index)
	doc, err := valuesDocument(u, col, reg)
	if err != nil {
		return err
	}

	var listing columns.List
	if err := listing.Set(valueColumns); err != nil {
		return err
	}
	listingReg, err := convert.FromColumns(listing)
	if err != nil {
		return err
	}

	cmd.Metadata["header"] = fmt.Sprintf("%s: %d values", col.Title, len(u.Values(col.Index)))

	return output.SliceDiceSpit(gjson.ParseBytes(doc).Array(), listing, listingReg, cmd, outWriter(cmd), nil)
}

// valuesDocument renders the universe of col as a JSON array of
// {"value": display text, "count": rows} objects, in universe order.
func valuesDocument(u *universe.DatasetProvider, col columns.Column, conv convert.Converter) ([]byte, error) {
	type entry struct {
		Value string `json:"value"`
		Count int    `json:"count"`
	}

	counts := u.Counts(col.Index)
	values := u.Values(col.Index)
	entries := make([]entry, 0, len(values))
	for _, v := range values {
		text, err := conv.ToDisplay(col.Index, v)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{Value: text, Count: counts[selection.Key(v)]})
	}
	return json.Marshal(entries)
}

// valuesCommandBuilder constructs the cli.Command for "values".
func valuesCommandBuilder(meta meta.Meta) *cli.Command {
	ns := "values"
	return &cli.Command{
		Name:      "values",
		Usage:     "list the distinct values of a column",
		UsageText: "colpick values [source...] --column name [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "column",
				Aliases:  []string{"C"},
				Usage:    "column to list",
				Required: true,
			},
		}, NewGlobalFlags(ns, meta.Config.Source)...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, cmd)
		},
		Action: valuesCommandAction,
	}
}
