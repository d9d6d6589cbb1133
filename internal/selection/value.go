// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package selection

import (
	"fmt"
	"strings"
)

// ValueSet is an insertion ordered set of scalar values.
type ValueSet struct {
	members []any
	index   map[string]struct{}
}

// NewValueSet returns a set holding vs with duplicates removed.
func NewValueSet(vs ...any) *ValueSet {
	s := &ValueSet{index: make(map[string]struct{}, len(vs))}
	for _, v := range vs {
		s.Add(v)
	}
	return s
}

// Add inserts v unless an equal member is already present. It reports
// whether the set changed.
func (s *ValueSet) Add(v any) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	k := Key(v)
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = struct{}{}
	s.members = append(s.members, v)
	return true
}

// Contains reports membership of v.
func (s *ValueSet) Contains(v any) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[Key(v)]
	return ok
}

// Len returns the number of distinct members.
func (s *ValueSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}

// Members returns a copy of the members in iteration order.
func (s *ValueSet) Members() []any {
	if s == nil {
		return nil
	}
	out := make([]any, len(s.members))
	copy(out, s.members)
	return out
}

// Clone returns an independent copy of s.
func (s *ValueSet) Clone() *ValueSet {
	return NewValueSet(s.Members()...)
}

// Key returns the identity used for set membership: the dynamic type plus
// the formatted value, so 1 (int) and "1" (string) stay distinct.
func Key(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T\x00%v", v, v)
}

type kind int

const (
	kindScalar kind = iota
	kindSet
)

// Value is either a single scalar or a ValueSet.
type Value struct {
	kind   kind
	scalar any
	set    *ValueSet
}

// Scalar wraps a single value.
func Scalar(v any) Value {
	return Value{kind: kindScalar, scalar: v}
}

// Set wraps the given members as a ValueSet. Set() is the empty selection.
func Set(vs ...any) Value {
	return Value{kind: kindSet, set: NewValueSet(vs...)}
}

// FromSet wraps an existing ValueSet. The set is cloned.
func FromSet(s *ValueSet) Value {
	if s == nil {
		return Set()
	}
	return Value{kind: kindSet, set: s.Clone()}
}

// IsSet reports whether v is a ValueSet.
func (v Value) IsSet() bool { return v.kind == kindSet }

// IsEmptySet reports whether v is a ValueSet without members.
func (v Value) IsEmptySet() bool { return v.kind == kindSet && v.set.Len() == 0 }

// Len returns the member count of a set, or 1 for a scalar.
func (v Value) Len() int {
	if v.kind == kindSet {
		return v.set.Len()
	}
	return 1
}

// Scalar returns the wrapped scalar. It is nil for sets.
func (v Value) Scalar() any { return v.scalar }

// Values returns the set members, or the scalar as a single element.
func (v Value) Values() []any {
	if v.kind == kindSet {
		return v.set.Members()
	}
	return []any{v.scalar}
}

// Contains reports whether x is a member of the set, or equals the scalar.
func (v Value) Contains(x any) bool {
	if v.kind == kindSet {
		return v.set.Contains(x)
	}
	return Key(v.scalar) == Key(x)
}

func (v Value) String() string {
	if v.kind == kindScalar {
		return fmt.Sprintf("%v", v.scalar)
	}
	parts := make([]string, 0, v.set.Len())
	for _, m := range v.set.members {
		parts = append(parts, fmt.Sprintf("%v", m))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// clone returns a Value that shares nothing mutable with v.
func (v Value) clone() Value {
	if v.kind == kindSet {
		return Value{kind: kindSet, set: v.set.Clone()}
	}
	return v
}
