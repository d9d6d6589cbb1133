// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/colpick/internal/columns"
	"github.com/tfctl/colpick/internal/config"
	"github.com/tfctl/colpick/internal/convert"
	"github.com/tfctl/colpick/internal/log"
)

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// Records extracts every column of every row, keyed by column title.
func Records(rows []gjson.Result, cols columns.List) []map[string]interface{} {
	records := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		record := make(map[string]interface{}, len(cols))
		for _, col := range cols {
			v, err := cols.Value(row, col.Index)
			if err != nil {
				log.Debugf("records: %v", err)
			}
			record[col.Title] = v
		}
		records = append(records, record)
	}
	return records
}

// SliceDiceSpit sorts and renders the visible rows according to the
// --output, --sort, --titles, --color and --padding flags of cmd. Output is
// written to w, os.Stdout when nil. The optional postProcess callback lets
// commands rewrite the sorted records before text rendering.
func SliceDiceSpit(rows []gjson.Result,
	cols columns.List,
	conv convert.Converter,
	cmd *cli.Command,
	w io.Writer,
	postProcess func([]map[string]interface{}) error) error {

	if w == nil {
		w = os.Stdout
	}

	// If raw, dump the rows as they came and go home.
	output := cmd.String("output")
	if output == "raw" {
		raws := make([]string, 0, len(rows))
		for _, row := range rows {
			raws = append(raws, row.Raw)
		}
		_, err := fmt.Fprintf(w, "[%s]\n", strings.Join(raws, ","))
		return err
	}

	records := Records(rows, cols)
	SortDataset(records, cmd.String("sort"))

	switch output {
	case "json":
		// Included columns only. Key order is lost in the map.
		out := make([]map[string]interface{}, 0, len(records))
		for _, record := range records {
			m := make(map[string]interface{})
			for _, col := range cols {
				if col.Include {
					m[col.Title] = record[col.Title]
				}
			}
			out = append(out, m)
		}
		jsonOutput, err := json.Marshal(out)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		out := make([]yaml.MapSlice, 0, len(records))
		for _, record := range records {
			var ms yaml.MapSlice
			for _, col := range cols {
				if col.Include {
					ms = append(ms, yaml.MapItem{Key: col.Title, Value: record[col.Title]})
				}
			}
			out = append(out, ms)
		}
		yamlOutput, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	case "text", "":
		if postProcess != nil {
			if err := postProcess(records); err != nil {
				log.Errorf("PostProcess: %v", err)
			}
		}
		TableWriter(records, cols, conv, cmd, w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options. Cells show each column's display text. Output
// is written to w. If w is nil, os.Stdout is used.
func TableWriter(
	resultSet []map[string]interface{},
	cols columns.List,
	conv convert.Converter,
	cmd *cli.Command,
	w io.Writer) {

	if w == nil {
		w = os.Stdout
	}

	// We return early if there are no results to display.
	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if colorEnabled(cmd) {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(cols))
		for _, col := range cols {
			if !col.Include {
				continue
			}
			row = append(row, cell(conv, col.Index, result[col.Title]))
		}
		rows = append(rows, row)
	}

	if cmd.Metadata["header"] != nil {
		fmt.Fprintln(w, headerStyle.Render(cmd.Metadata["header"].(string)))
	}

	pad := cmd.Int("padding")
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if cmd.Bool("titles") {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(cols.Titles()...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if cmd.Metadata["footer"] != nil {
		fmt.Fprintln(w, headerStyle.Render(cmd.Metadata["footer"].(string)))
	}
}

// cell returns the display text of v, falling back to its plain form when
// the column converter rejects it.
func cell(conv convert.Converter, col int, v interface{}) string {
	if conv != nil {
		text, err := conv.ToDisplay(col, v)
		if err == nil {
			if text == "" {
				return "-"
			}
			return text
		}
		log.Debugf("cell: %v", err)
	}
	return InterfaceToString(v, "-")
}

// colorEnabled honors an explicit --color. Otherwise color is used when
// stdout is a terminal and NO_COLOR is unset.
func colorEnabled(cmd *cli.Command) bool {
	if cmd.IsSet("color") {
		return cmd.Bool("color")
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme. If not found, pick a
	// reasonable default based on terminal background.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
