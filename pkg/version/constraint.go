// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package version

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConstraint is returned when a version constraint cannot be parsed.
var ErrInvalidConstraint = errors.New("invalid version constraint")

// Operator is a comparison operator used inside a range constraint.
type Operator string

const (
	OpEqual          Operator = "="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
)

// operators is ordered so that two-character operators are matched first.
var operators = []Operator{OpGreaterOrEqual, OpLessOrEqual, OpGreater, OpLess, OpEqual}

// Bound is one term of a range constraint, e.g. ">=3.19".
type Bound struct {
	Op      Operator
	Version Version
}

func (b Bound) String() string {
	return string(b.Op) + b.Version.String()
}

func (b Bound) allows(v Version) bool {
	c := v.Compare(b.Version)
	switch b.Op {
	case OpGreater:
		return c > 0
	case OpGreaterOrEqual:
		return c >= 0
	case OpLess:
		return c < 0
	case OpLessOrEqual:
		return c <= 0
	default:
		return c == 0
	}
}

// Constraint is a version requirement in the package registry syntax. It is
// either a pinned version ("3.11.3", "1.1.1w") or a bracketed range whose
// bounds must all hold ("[>=3.19 <4]").
type Constraint struct {
	pinned *Version
	bounds []Bound
}

// ParseConstraint parses a version constraint string.
func ParseConstraint(s string) (Constraint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Constraint{}, fmt.Errorf("%w: empty", ErrInvalidConstraint)
	}

	if !strings.HasPrefix(s, "[") {
		v, err := ParseVersion(s)
		if err != nil {
			return Constraint{}, fmt.Errorf("%w: %q: %w", ErrInvalidConstraint, s, err)
		}
		return Constraint{pinned: &v}, nil
	}

	if !strings.HasSuffix(s, "]") {
		return Constraint{}, fmt.Errorf("%w: unterminated range %q", ErrInvalidConstraint, s)
	}

	terms := strings.FieldsFunc(s[1:len(s)-1], func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(terms) == 0 {
		return Constraint{}, fmt.Errorf("%w: empty range %q", ErrInvalidConstraint, s)
	}

	c := Constraint{bounds: make([]Bound, 0, len(terms))}
	for _, term := range terms {
		b, err := parseBound(term)
		if err != nil {
			return Constraint{}, fmt.Errorf("%w: %q: %w", ErrInvalidConstraint, s, err)
		}
		c.bounds = append(c.bounds, b)
	}
	return c, nil
}

func parseBound(term string) (Bound, error) {
	op := OpEqual
	for _, candidate := range operators {
		if strings.HasPrefix(term, string(candidate)) {
			op = candidate
			term = term[len(candidate):]
			break
		}
	}
	v, err := ParseVersion(term)
	if err != nil {
		return Bound{}, err
	}
	return Bound{Op: op, Version: v}, nil
}

// MustParseConstraint is ParseConstraint for hardcoded values; it panics on error.
func MustParseConstraint(s string) Constraint {
	c, err := ParseConstraint(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseConstraint: %v", err))
	}
	return c
}

// IsRange reports whether the constraint is a bracketed range.
func (c Constraint) IsRange() bool {
	return c.pinned == nil && len(c.bounds) > 0
}

// IsZero reports whether the constraint is the zero value (no requirement).
func (c Constraint) IsZero() bool {
	return c.pinned == nil && len(c.bounds) == 0
}

// Pinned returns the pinned version and true when the constraint is not a range.
func (c Constraint) Pinned() (Version, bool) {
	if c.pinned == nil {
		return Version{}, false
	}
	return *c.pinned, true
}

// Bounds returns a copy of the range bounds.
func (c Constraint) Bounds() []Bound {
	out := make([]Bound, len(c.bounds))
	copy(out, c.bounds)
	return out
}

// Allows reports whether v satisfies the constraint. The zero constraint
// allows every version.
func (c Constraint) Allows(v Version) bool {
	if c.pinned != nil {
		return v.Compare(*c.pinned) == 0
	}
	for _, b := range c.bounds {
		if !b.allows(v) {
			return false
		}
	}
	return true
}

// String returns the canonical registry form of the constraint.
func (c Constraint) String() string {
	if c.pinned != nil {
		return c.pinned.String()
	}
	if len(c.bounds) == 0 {
		return ""
	}
	terms := make([]string, 0, len(c.bounds))
	for _, b := range c.bounds {
		terms = append(terms, b.String())
	}
	return "[" + strings.Join(terms, " ") + "]"
}

// Equal reports whether both constraints have the same canonical form.
func (c Constraint) Equal(other Constraint) bool {
	return c.String() == other.String()
}

// MarshalText implements encoding.TextMarshaler.
func (c Constraint) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text decodes to
// the zero constraint.
func (c *Constraint) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = Constraint{}
		return nil
	}
	parsed, err := ParseConstraint(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
