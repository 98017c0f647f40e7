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

package options

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/NVIDIA/native-recipe/pkg/recipe"
)

// Set is the option values of one configuration run. Every option of the
// schema has a concrete value unless a normalization rule removed it.
// A Set is only changed by Normalize, which works on a copy.
type Set struct {
	order   []string
	values  map[string]Value
	removed []string
}

// NewSet merges raw caller values over the schema defaults. Unknown option
// names and illegal values are rejected with INVALID_REQUEST.
func NewSet(schema []recipe.OptionSpec, raw map[string]string) (*Set, error) {
	s := &Set{
		order:  make([]string, 0, len(schema)),
		values: make(map[string]Value, len(schema)),
	}
	known := make(map[string]recipe.OptionSpec, len(schema))
	for _, spec := range schema {
		known[spec.Name] = spec
	}

	var unknown []string
	for name := range raw {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown option(s): %s", strings.Join(unknown, ", ")),
			map[string]any{"unknown": unknown})
	}

	for _, spec := range schema {
		literal := spec.Default
		if v, ok := raw[spec.Name]; ok {
			literal = v
		}
		val, err := parseValue(spec, literal)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid value for option %s", spec.Name), err,
				map[string]any{"option": spec.Name, "value": literal})
		}
		s.order = append(s.order, spec.Name)
		s.values[spec.Name] = val
	}
	return s, nil
}

// Defaults returns the Set holding the recipe defaults.
func Defaults(rec *recipe.Recipe) (*Set, error) {
	return NewSet(rec.Options, nil)
}

// Get returns the value of name.
func (s *Set) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Has reports whether name is present.
func (s *Set) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Bool returns the boolean value of name; false when absent or not boolean.
func (s *Set) Bool(name string) bool {
	return s.values[name].Bool()
}

// Lookup returns the literal value of name for condition matching.
func (s *Set) Lookup(name string) (string, bool) {
	v, ok := s.values[name]
	if !ok {
		return "", false
	}
	return v.String(), true
}

// Names returns the present option names in schema order.
func (s *Set) Names() []string {
	out := make([]string, 0, len(s.order))
	for _, name := range s.order {
		if _, ok := s.values[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// Removed returns the options removed by normalization, in removal order.
func (s *Set) Removed() []string {
	return append([]string(nil), s.removed...)
}

// Len returns the number of present options.
func (s *Set) Len() int {
	return len(s.values)
}

// Literals returns the present options as name to literal.
func (s *Set) Literals() map[string]string {
	out := make(map[string]string, len(s.values))
	for name, v := range s.values {
		out[name] = v.String()
	}
	return out
}

// Equal reports whether two sets hold the same options and values.
func (s *Set) Equal(other *Set) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.values) != len(other.values) {
		return false
	}
	for name, v := range s.values {
		if ov, ok := other.values[name]; !ok || ov != v {
			return false
		}
	}
	return true
}

func (s *Set) clone() *Set {
	out := &Set{
		order:   append([]string(nil), s.order...),
		values:  make(map[string]Value, len(s.values)),
		removed: append([]string(nil), s.removed...),
	}
	for k, v := range s.values {
		out.values[k] = v
	}
	return out
}

func (s *Set) remove(name string) {
	if _, ok := s.values[name]; !ok {
		return
	}
	delete(s.values, name)
	s.removed = append(s.removed, name)
}

func (s *Set) force(name string, v Value) {
	if _, ok := s.values[name]; !ok {
		return
	}
	s.values[name] = v
}

// MarshalJSON encodes the set as an object of present options.
func (s *Set) MarshalJSON() ([]byte, error) {
	out := make(map[string]Value, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return json.Marshal(out)
}

// MarshalYAML encodes the set as a mapping of present options.
func (s *Set) MarshalYAML() (any, error) {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v.Scalar()
	}
	return out, nil
}

// Parse turns "name=value" assignments into a raw option map. Later
// assignments win. A "pkg:name=value" scope prefix is accepted and dropped
// when pkg matches scope (or is "*").
func Parse(assignments []string, scope string) (map[string]string, error) {
	out := make(map[string]string, len(assignments))
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid option %q: expected name=value", a),
				map[string]any{"option": a})
		}
		if pkg, opt, scoped := strings.Cut(name, ":"); scoped {
			if pkg != "*" && pkg != scope {
				continue
			}
			name = opt
		}
		out[name] = strings.TrimSpace(value)
	}
	return out, nil
}
