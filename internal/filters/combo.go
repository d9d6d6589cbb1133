// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"

	"github.com/tfctl/colpick/internal/log"
	"github.com/tfctl/colpick/internal/matcher"
	"github.com/tfctl/colpick/internal/selection"
	"github.com/tfctl/colpick/internal/universe"
)

// State is a step of a filter apply cycle.
type State int

const (
	Idle State = iota
	Reducing
	MatchNothingInstalled
	CriteriaBuilt
	PerColumnInstalled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Reducing:
		return "Reducing"
	case MatchNothingInstalled:
		return "MatchNothingInstalled"
	case CriteriaBuilt:
		return "CriteriaBuilt"
	case PerColumnInstalled:
		return "PerColumnInstalled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Installer installs one criterion per column as a single unit.
type Installer interface {
	InstallColumnCriteria(criteria map[int]string) error
}

// ComboStrategy applies multi-select column selections. A selection that
// leaves nothing to pass installs matcher.MatchNothing; anything else is
// reduced, turned into criteria and handed to the Installer.
//
// ComboStrategy only ever adds the sentinel. Removing it is the Installer's
// job, which StaticStrategy does on every installation and on Reset.
// Callers serialise ApplyFilter calls.
type ComboStrategy struct {
	universe  universe.Provider
	builder   CriterionBuilder
	installer Installer
	composite *matcher.Composite

	state State
	last  State
}

// NewComboStrategy returns a ComboStrategy that installs through static and
// adds the sentinel to static's composite.
func NewComboStrategy(u universe.Provider, builder CriterionBuilder, static *StaticStrategy) *ComboStrategy {
	return &ComboStrategy{
		universe:  u,
		builder:   builder,
		installer: static,
		composite: static.Composite(),
	}
}

// NewComboStrategyWith wires an arbitrary Installer and composite.
func NewComboStrategyWith(u universe.Provider, builder CriterionBuilder, installer Installer, composite *matcher.Composite) *ComboStrategy {
	return &ComboStrategy{
		universe:  u,
		builder:   builder,
		installer: installer,
		composite: composite,
	}
}

// ApplyFilter runs one apply cycle for sel. Criteria for every column are
// built before anything is installed, so a *convert.ConversionError or
// *CriterionError leaves the composite as it was. sel is not modified.
func (c *ComboStrategy) ApplyFilter(sel selection.Map) error {
	defer c.transition(Idle)

	c.last = Idle
	c.transition(Reducing)
	reduced, nothing := Reduce(sel, c.universe)
	if nothing {
		c.composite.Add(matcher.MatchNothing)
		c.transition(MatchNothingInstalled)
		c.last = MatchNothingInstalled
		return nil
	}

	criteria, err := c.builder.BuildAll(reduced)
	if err != nil {
		return fmt.Errorf("apply filter: %w", err)
	}
	c.transition(CriteriaBuilt)

	if err := c.installer.InstallColumnCriteria(criteria); err != nil {
		return fmt.Errorf("apply filter: %w", err)
	}
	c.transition(PerColumnInstalled)
	c.last = PerColumnInstalled
	return nil
}

// State returns the state the last apply cycle finished in: Idle before
// the first cycle and after a failed one.
func (c *ComboStrategy) State() State {
	return c.last
}

func (c *ComboStrategy) transition(to State) {
	log.Tracef("combo: %s -> %s", c.state, to)
	c.state = to
}
