// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/colpick/internal/config"
	"github.com/tfctl/colpick/internal/convert"
	"github.com/tfctl/colpick/internal/filters"
	"github.com/tfctl/colpick/internal/log"
	"github.com/tfctl/colpick/internal/matcher"
	"github.com/tfctl/colpick/internal/meta"
	"github.com/tfctl/colpick/internal/output"
	"github.com/tfctl/colpick/internal/selection"
	"github.com/tfctl/colpick/internal/universe"
	"github.com/tfctl/colpick/internal/view"
)

// filterCommandAction is the action handler for the "filter" subcommand. It
// loads the sources, resolves --select into per-column value sets, applies
// them together with the --filter expressions and renders the visible rows.
func filterCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "filter") {
		return nil
	}

	config.Config.Namespace = "filter"

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
	log.Debugf("columns: %s", cols.String())

	reg, err := convert.FromColumns(cols)
	if err != nil {
		return err
	}

	specs := selection.ParseSpecs(cmd.StringSlice("select"))
	combo, err := ComboColumns(cols, cmd.String("combo"), specs)
	if err != nil {
		return err
	}

	composite := matcher.NewComposite()
	v := view.New(rows, composite)

	static := filters.NewStaticStrategy(composite, cols, reg)
	for _, sm := range filters.StaticMatchers(cmd.String("filter"), cols) {
		static.AddStaticFilter(sm)
	}

	if len(specs) > 0 || len(combo) > 0 {
		u := universe.NewDatasetProvider(rows, cols, reg, combo...)
		sel := ResolveSelections(specs, cols, u, reg, errWriter(cmd))

		builder := filters.CriterionBuilder{
			Converter: reg,
			QuoteMeta: quoteMeta(cmd),
		}
		strategy := filters.NewComboStrategy(u, builder, static)
		if err := strategy.ApplyFilter(sel); err != nil {
			return err
		}
		log.Debugf("filter applied: state=%s composite=%s", strategy.State(), composite)
	}

	if cmd.Bool("count") {
		cmd.Metadata["footer"] = fmt.Sprintf("%d of %d rows", v.Len(), v.Total())
	}

	postProcess := func(records []map[string]interface{}) error {
		if cmd.Bool("chop") {
			chopPrefix(records)
		}
		return nil
	}

	return output.SliceDiceSpit(v.Rows(), cols, reg, cmd, outWriter(cmd), postProcess)
}

// filterCommandBuilder constructs the cli.Command for "filter", wiring
// metadata, flags, and action/validator handlers.
func filterCommandBuilder(meta meta.Meta) *cli.Command {
	ns := "filter"
	return &cli.Command{
		Name:      "filter",
		Usage:     "filter rows by per-column value selections",
		UsageText: "colpick filter [source...] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NameSpacedValueChainFlagFromConfigFile(ns, meta.Config.Source, &cli.BoolFlag{
				Name:  "chop",
				Usage: "chop dotted prefixes shared by every row",
				Value: false,
			}),
			&cli.StringFlag{
				Name:  "combo",
				Usage: "comma-separated list of multi-select columns",
			},
			&cli.BoolFlag{
				Name:  "count",
				Usage: "print the visible and total row counts",
				Value: false,
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "comma-separated list of filters to apply to results",
			},
			&cli.BoolFlag{
				Name:  "quote-meta",
				Usage: "match column=a|b values literally, --quote-meta=false treats them as patterns",
				Value: true,
			},
			&cli.StringSliceFlag{
				Name:    "select",
				Aliases: []string{"S"},
				Usage:   "column=a|b selects values, column= selects none, column~text matches a pattern",
				Validator: func(value []string) error {
					return FlagValidators(value, SelectValidator)
				},
			},
		}, NewGlobalFlags(ns, meta.Config.Source)...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, cmd)
		},
		Action: filterCommandAction,
	}
}

// quoteMeta honors an explicit --quote-meta, then config key quote_meta.
// Selected values are display text, so they are quoted unless told otherwise.
func quoteMeta(cmd *cli.Command) bool {
	if cmd.IsSet("quote-meta") {
		return cmd.Bool("quote-meta")
	}
	q, err := config.GetBool("quote_meta", true)
	if err != nil {
		log.Warnf("config quote_meta: %v", err)
	}
	return q
}
