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

	"github.com/NVIDIA/native-recipe/pkg/recipe"
)

// Value is a concrete option value: a boolean or an enumerated string.
type Value struct {
	kind recipe.OptionType
	b    bool
	s    string
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{kind: recipe.OptionTypeBool, b: b}
}

// Enum returns an enumerated Value.
func Enum(s string) Value {
	return Value{kind: recipe.OptionTypeEnum, s: s}
}

// parseValue parses raw against spec.
func parseValue(spec recipe.OptionSpec, raw string) (Value, error) {
	switch spec.Type {
	case recipe.OptionTypeBool:
		b, err := recipe.ParseBool(raw)
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case recipe.OptionTypeEnum:
		if !spec.Accepts(raw) {
			return Value{}, fmt.Errorf("%q is not one of %v", raw, spec.Values)
		}
		return Enum(raw), nil
	default:
		return Value{}, fmt.Errorf("unknown option type %q", spec.Type)
	}
}

// IsBool reports whether v holds a boolean.
func (v Value) IsBool() bool {
	return v.kind == recipe.OptionTypeBool
}

// Bool returns the boolean held by v; false for enumerated values.
func (v Value) Bool() bool {
	return v.kind == recipe.OptionTypeBool && v.b
}

// String renders the value as written in recipes and profiles.
func (v Value) String() string {
	if v.IsBool() {
		return recipe.FormatBool(v.b)
	}
	return v.s
}

// Scalar returns the value as a bool or a string.
func (v Value) Scalar() any {
	if v.IsBool() {
		return v.b
	}
	return v.s
}

// MarshalJSON encodes booleans as JSON booleans and enums as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Scalar())
}

// MarshalYAML encodes the value the same way as MarshalJSON.
func (v Value) MarshalYAML() (any, error) {
	return v.Scalar(), nil
}
