// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// ErrUnsupported is wrapped by converters when a value is outside their
// domain.
var ErrUnsupported = errors.New("unsupported value")

// Func converts a single canonical value to display text.
type Func func(v any) (string, error)

// Converter is the per-column conversion capability used by the filter
// strategies.
type Converter interface {
	ToDisplay(col int, v any) (string, error)
}

// ConversionError reports a value a column's converter cannot represent.
type ConversionError struct {
	Column    int
	Converter string
	Value     any
	Err       error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("column %d: %s converter cannot display %v (%T): %v",
		e.Column, e.Converter, e.Value, e.Value, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// builtins holds the named converters available to column definitions and
// config.
var builtins = map[string]Func{
	"default": Default,
	"bytes":   Bytes,
	"comma":   Comma,
	"time":    Time,
	"ago":     Ago,
	"lower":   Lower,
	"upper":   Upper,
}

// Lookup returns the builtin converter registered under name.
func Lookup(name string) (Func, bool) {
	f, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// Names returns the builtin converter names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default is total: strings pass through, integral numbers print without a
// fraction, nil is the empty string and composites are rendered as JSON.
func Default(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return formatFloat(v), nil
	case float32:
		return formatFloat(float64(v)), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case json.Number:
		return v.String(), nil
	case fmt.Stringer:
		return v.String(), nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v), nil
	}
	return string(b), nil
}

// Bytes renders a byte count in SI units, e.g. 2048 -> "2.0 kB".
func Bytes(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	n, ok := ToFloat64(v)
	if !ok || n < 0 {
		return "", ErrUnsupported
	}
	return humanize.Bytes(uint64(n)), nil
}

// Comma renders an integral number with thousands separators.
func Comma(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	n, ok := ToFloat64(v)
	if !ok {
		return "", ErrUnsupported
	}
	if n != math.Trunc(n) {
		return humanize.Commaf(n), nil
	}
	return humanize.Comma(int64(n)), nil
}

// Time renders an RFC3339 timestamp in the local zone.
func Time(v any) (string, error) {
	t, err := toTime(v)
	if err != nil || t.IsZero() {
		return "", err
	}
	return t.Local().Format("2006-01-02T15:04:05MST"), nil
}

// Ago renders an RFC3339 timestamp relative to now, e.g. "3 days ago".
func Ago(v any) (string, error) {
	t, err := toTime(v)
	if err != nil || t.IsZero() {
		return "", err
	}
	return humanize.Time(t), nil
}

// Lower lower-cases string values.
func Lower(v any) (string, error) {
	s, err := Default(v)
	return strings.ToLower(s), err
}

// Upper upper-cases string values.
func Upper(v any) (string, error) {
	s, err := Default(v)
	return strings.ToUpper(s), err
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func toTime(v any) (time.Time, error) {
	switch v := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		return t, nil
	}
	return time.Time{}, ErrUnsupported
}

// ToFloat64 normalizes numeric values and numeric strings to float64.
func ToFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
