// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package matcher

import (
	"reflect"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tfctl/colpick/internal/log"
)

// Composite is a set of matchers combined with logical AND.
type Composite struct {
	members   []Matcher
	listeners []func()
}

// NewComposite returns a Composite holding ms.
func NewComposite(ms ...Matcher) *Composite {
	c := &Composite{}
	for _, m := range ms {
		c.insert(m)
	}
	return c
}

// OnChange registers fn to run after every effective change.
func (c *Composite) OnChange(fn func()) {
	c.listeners = append(c.listeners, fn)
}

// Add installs m. Adding a member that is already present is a no-op and
// does not notify.
func (c *Composite) Add(m Matcher) {
	if !c.insert(m) {
		log.Tracef("composite add skipped: member=%s", m)
		return
	}
	log.Debugf("composite add: member=%s len=%d", m, len(c.members))
	c.notify()
}

// Remove uninstalls m and reports whether it was present.
func (c *Composite) Remove(m Matcher) bool {
	for i, member := range c.members {
		if Same(member, m) {
			c.members = append(c.members[:i], c.members[i+1:]...)
			log.Debugf("composite remove: member=%s len=%d", m, len(c.members))
			c.notify()
			return true
		}
	}
	return false
}

// Replace swaps the whole membership for ms and notifies once, so
// listeners never observe a partially installed set.
func (c *Composite) Replace(ms ...Matcher) {
	c.members = nil
	for _, m := range ms {
		c.insert(m)
	}
	log.Debugf("composite replace: len=%d", len(c.members))
	c.notify()
}

// Reset removes every member.
func (c *Composite) Reset() {
	if len(c.members) == 0 {
		return
	}
	c.Replace()
}

// Contains reports whether m is a member.
func (c *Composite) Contains(m Matcher) bool {
	for _, member := range c.members {
		if Same(member, m) {
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (c *Composite) Len() int { return len(c.members) }

// Members returns a copy of the members in installation order.
func (c *Composite) Members() []Matcher {
	out := make([]Matcher, len(c.members))
	copy(out, c.members)
	return out
}

// Matches reports whether every member accepts row.
func (c *Composite) Matches(row gjson.Result) bool {
	for _, m := range c.members {
		if !m.Matches(row) {
			return false
		}
	}
	return true
}

func (c *Composite) String() string {
	if len(c.members) == 0 {
		return "(AND)"
	}
	parts := make([]string, 0, len(c.members))
	for _, m := range c.members {
		parts = append(parts, m.String())
	}
	return "(AND " + strings.Join(parts, " ") + ")"
}

func (c *Composite) insert(m Matcher) bool {
	if m == nil || c.Contains(m) {
		return false
	}
	c.members = append(c.members, m)
	return true
}

func (c *Composite) notify() {
	for _, fn := range c.listeners {
		fn()
	}
}

// Same compares matchers by identity. Matchers of non-comparable dynamic
// types are only ever equal to themselves by pointer, which an interface
// cannot express, so they compare unequal.
func Same(a, b Matcher) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
