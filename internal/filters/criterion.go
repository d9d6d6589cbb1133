// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tfctl/colpick/internal/convert"
	"github.com/tfctl/colpick/internal/selection"
)

// EmptyPattern stands in for an empty display text inside a set criterion.
const EmptyPattern = "^$"

// CriterionBuilder turns a column selection into the pattern text handed to
// the static filter installer.
type CriterionBuilder struct {
	Converter convert.Converter
	// QuoteMeta escapes regular expression metacharacters in the converted
	// text of set members. Scalar criteria are always patterns.
	QuoteMeta bool
}

// Build returns the criterion for value in column col. A value set becomes
// one group of alternatives in set order, e.g. "(a|b)" or "(^$)". A scalar
// becomes its bare display text.
func (b CriterionBuilder) Build(col int, value selection.Value) (string, error) {
	if !value.IsSet() {
		return b.text(col, value.Scalar())
	}

	members := value.Values()
	alts := make([]string, 0, len(members))
	for _, v := range members {
		text, err := b.text(col, v)
		if err != nil {
			return "", err
		}
		switch {
		case text == "":
			text = EmptyPattern
		case b.QuoteMeta:
			text = regexp.QuoteMeta(text)
		}
		alts = append(alts, text)
	}
	return "(" + strings.Join(alts, "|") + ")", nil
}

// BuildAll builds the criterion of every column in sel. The first failure
// aborts and nothing is returned.
func (b CriterionBuilder) BuildAll(sel selection.Map) (map[int]string, error) {
	criteria := make(map[int]string, len(sel))
	for _, col := range sel.Columns() {
		crit, err := b.Build(col, sel[col])
		if err != nil {
			return nil, err
		}
		criteria[col] = crit
	}
	return criteria, nil
}

func (b CriterionBuilder) text(col int, v any) (string, error) {
	text, err := b.Converter.ToDisplay(col, v)
	if err != nil {
		var ce *convert.ConversionError
		if !errors.As(err, &ce) {
			err = &convert.ConversionError{Column: col, Value: v, Err: err}
		}
		return "", err
	}
	return text, nil
}

// CriterionError reports a criterion that does not compile as a pattern.
type CriterionError struct {
	Column    int
	Criterion string
	Err       error
}

func (e *CriterionError) Error() string {
	return fmt.Sprintf("column %d: invalid criterion %q: %v", e.Column, e.Criterion, e.Err)
}

func (e *CriterionError) Unwrap() error { return e.Err }
