// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/tfctl/colpick/internal/convert"
	"github.com/tfctl/colpick/internal/log"
	"github.com/tfctl/colpick/internal/matcher"
)

// Accessor reads the value of one column from a row. columns.List is the
// usual implementation.
type Accessor interface {
	Value(row gjson.Result, col int) (any, error)
}

// StaticStrategy installs per-column criteria and static filters into a
// composite matcher. It owns the composite: every installation replaces the
// composite's members as one unit.
type StaticStrategy struct {
	composite *matcher.Composite
	accessor  Accessor
	converter convert.Converter

	columns []matcher.Matcher
	statics []matcher.Matcher
}

// NewStaticStrategy returns a strategy installing into composite.
func NewStaticStrategy(composite *matcher.Composite, accessor Accessor, converter convert.Converter) *StaticStrategy {
	return &StaticStrategy{
		composite: composite,
		accessor:  accessor,
		converter: converter,
	}
}

// Composite returns the composite the strategy installs into.
func (s *StaticStrategy) Composite() *matcher.Composite {
	return s.composite
}

// InstallColumnCriteria replaces the installed column matchers with one
// ColumnMatcher per criterion. Every criterion is compiled before anything is
// touched; a *CriterionError leaves the composite unchanged. The
// replacement also drops any other member, the match nothing sentinel
// included, keeping only the static filters.
func (s *StaticStrategy) InstallColumnCriteria(criteria map[int]string) error {
	cols := make([]int, 0, len(criteria))
	for col := range criteria {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	ms := make([]matcher.Matcher, 0, len(cols))
	for _, col := range cols {
		m, err := NewColumnMatcher(col, criteria[col], s.accessor, s.converter)
		if err != nil {
			return err
		}
		ms = append(ms, m)
	}

	s.columns = ms
	s.install()
	log.Debugf("installed column criteria: columns=%v statics=%d", cols, len(s.statics))
	return nil
}

// AddStaticFilter adds m to the filters kept across column installations.
func (s *StaticStrategy) AddStaticFilter(m matcher.Matcher) {
	if m == nil {
		return
	}
	for _, existing := range s.statics {
		if matcher.Same(existing, m) {
			return
		}
	}
	s.statics = append(s.statics, m)
	s.composite.Add(m)
}

// RemoveStaticFilter removes a filter added with AddStaticFilter.
func (s *StaticStrategy) RemoveStaticFilter(m matcher.Matcher) bool {
	for i, existing := range s.statics {
		if matcher.Same(existing, m) {
			s.statics = append(s.statics[:i], s.statics[i+1:]...)
			s.composite.Remove(m)
			return true
		}
	}
	return false
}

// ClearStaticFilters removes every static filter.
func (s *StaticStrategy) ClearStaticFilters() {
	if len(s.statics) == 0 {
		return
	}
	s.statics = nil
	s.install()
}

// Reset removes the column matchers and anything else installed besides
// the static filters.
func (s *StaticStrategy) Reset() {
	s.columns = nil
	s.install()
	log.Debugf("column filters reset: statics=%d", len(s.statics))
}

func (s *StaticStrategy) install() {
	ms := make([]matcher.Matcher, 0, len(s.columns)+len(s.statics))
	ms = append(ms, s.columns...)
	ms = append(ms, s.statics...)
	s.composite.Replace(ms...)
}

// ColumnMatcher passes rows whose display text in Column fully matches
// Criterion.
type ColumnMatcher struct {
	Column    int
	Criterion string

	re        *regexp.Regexp
	accessor  Accessor
	converter convert.Converter
}

// NewColumnMatcher compiles criterion as a pattern anchored at both ends.
func NewColumnMatcher(col int, criterion string, accessor Accessor, converter convert.Converter) (*ColumnMatcher, error) {
	re, err := regexp.Compile("^(?:" + criterion + ")$")
	if err != nil {
		return nil, &CriterionError{Column: col, Criterion: criterion, Err: err}
	}
	return &ColumnMatcher{
		Column:    col,
		Criterion: criterion,
		re:        re,
		accessor:  accessor,
		converter: converter,
	}, nil
}

func (m *ColumnMatcher) String() string {
	return fmt.Sprintf("(%d =~ %s)", m.Column, m.Criterion)
}

// Matches implements matcher.Matcher. A value that cannot be read or
// displayed does not match.
func (m *ColumnMatcher) Matches(row gjson.Result) bool {
	v, err := m.accessor.Value(row, m.Column)
	if err != nil {
		log.Debugf("column matcher: column=%d: %v", m.Column, err)
		return false
	}
	text, err := m.converter.ToDisplay(m.Column, v)
	if err != nil {
		log.Debugf("column matcher: %v", err)
		return false
	}
	return m.re.MatchString(text)
}
