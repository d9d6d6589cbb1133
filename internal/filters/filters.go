// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tfctl/colpick/internal/columns"
	"github.com/tfctl/colpick/internal/convert"
	"github.com/tfctl/colpick/internal/log"
	"github.com/tfctl/colpick/internal/matcher"
)

// filterRegex is the pattern used to parse filter expressions into key,
// operator, and target components. Operators are one of = ^ ~ < > @ or /,
// optionally prefixed with '!'. Examples: "name" (key only), "name=value"
// (key + operator + target), "name=" (key + operator, no target).
var filterRegex = regexp.MustCompile(`^([^!?=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression including the key, operand,
// optional negation and value to match against.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// String renders the filter back into expression form.
func (f Filter) String() string {
	op := f.Operand
	if f.Negate {
		op = "!" + op
	}
	return f.Key + op + f.Value
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid specs (unsupported operand or malformed expression) are skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for situations where the value
	// contains commas.
	delim := ","
	if d, ok := os.LookupEnv("COLPICK_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Errorf("invalid filter: %s", filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		operand := parts[2]
		target := parts[3]

		if key == "" {
			log.Errorf("invalid filter: empty key in %s", filterSpec)
			continue
		}

		// A bare key means "has a value".
		if operand == "" {
			operand = "!="
			target = ""
		}

		negate := strings.HasPrefix(operand, "!")
		operand = strings.TrimPrefix(operand, "!")

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   target,
		})
	}

	return filters
}

// Matcher binds f to the column its key names. The key is resolved by
// column title first, then by column key.
func (f Filter) Matcher(cols columns.List) (matcher.Matcher, error) {
	col, ok := cols.Lookup(f.Key)
	if !ok {
		return nil, fmt.Errorf("filter key not found: %s", f.Key)
	}
	return &expressionMatcher{filter: f, column: col.Index, accessor: cols}, nil
}

// StaticMatchers builds matchers for every filter in spec. Filters naming an
// unknown column are logged and skipped.
func StaticMatchers(spec string, cols columns.List) []matcher.Matcher {
	var ms []matcher.Matcher
	for _, f := range BuildFilters(spec) {
		m, err := f.Matcher(cols)
		if err != nil {
			log.Errorf("%v", err)
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			continue
		}
		ms = append(ms, m)
	}
	return ms
}

// expressionMatcher applies one Filter to a single column.
type expressionMatcher struct {
	filter   Filter
	column   int
	accessor Accessor
}

func (m *expressionMatcher) String() string {
	return "(" + m.filter.String() + ")"
}

// Matches returns true if the row's column value satisfies the filter.
func (m *expressionMatcher) Matches(row gjson.Result) bool {
	value, err := m.accessor.Value(row, m.column)
	if err != nil {
		log.Debugf("filter %s: %v", m.filter, err)
		return false
	}

	if value == nil {
		return false
	}

	switch v := value.(type) {
	case string:
		return checkStringOperand(v, m.filter)
	case bool:
		return checkStringOperand(strconv.FormatBool(v), m.filter)
	}
	if num, ok := convert.ToFloat64(value); ok {
		return checkNumericOperand(num, m.filter)
	}
	if m.filter.Operand == "@" {
		return checkContainsOperand(value, m.filter)
	}
	return true
}

// checkContainsOperand evaluates a membership style filter (operand '@')
// against slice or map values.
func checkContainsOperand(value interface{}, filter Filter) bool {
	switch val := value.(type) {
	case []any:
		for _, item := range val {
			if item == filter.Value {
				return !filter.Negate
			}
		}
		return filter.Negate
	case map[string]any:
		_, found := val[filter.Value]
		return found == !filter.Negate
	default:
		log.Errorf("unsupported type for contains filtering: %T", value)
		return false
	}
}

// checkNumericOperand compares a numeric value against the filter value using
// numeric semantics. Supported operands: =, >, < and the negated form via
// filter.Negate (e.g., != is represented as Negate + "=").
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		// "count!=" asks for a present value.
		if filter.Value == "" && filter.Operand == "=" {
			return filter.Negate
		}
		log.Errorf("invalid numeric value: %s", filter.Value)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		log.Errorf("unsupported numeric operand: %s", filter.Operand)
		return false
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}
