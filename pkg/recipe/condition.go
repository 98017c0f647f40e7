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

package recipe

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/native-recipe/pkg/platform"
)

// ParseBool parses the boolean literals accepted for options: true/false,
// yes/no, on/off and 1/0, in any case.
func ParseBool(s string) (bool, error) {
	switch platform.Fold(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}

// FormatBool renders b the way option values are written ("True"/"False").
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// LiteralEqual compares two option literals. Booleans compare by value so
// "true" equals "True"; anything else compares exactly.
func LiteralEqual(a, b string) bool {
	ab, aErr := ParseBool(a)
	bb, bErr := ParseBool(b)
	if aErr == nil && bErr == nil {
		return ab == bb
	}
	return a == b
}

// OptionLookup exposes option values to condition matching.
type OptionLookup interface {
	Lookup(name string) (string, bool)
}

// Condition is a conjunction over the platform OS and option values.
// The zero Condition always matches.
type Condition struct {
	// OS lists the families the condition applies to. Empty means any.
	OS []string `json:"os,omitempty" yaml:"os,omitempty"`
	// NotOS lists families the condition excludes.
	NotOS []string `json:"notOS,omitempty" yaml:"notOS,omitempty"`
	// Options must all be present with the given values.
	Options map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

// IsZero reports whether the condition has no terms.
func (c Condition) IsZero() bool {
	return len(c.OS) == 0 && len(c.NotOS) == 0 && len(c.Options) == 0
}

// Matches evaluates the condition. opts may be nil when the condition has
// no option terms.
func (c Condition) Matches(family platform.OS, opts OptionLookup) bool {
	if len(c.OS) > 0 && !containsOS(c.OS, family) {
		return false
	}
	if containsOS(c.NotOS, family) {
		return false
	}
	for name, want := range c.Options {
		if opts == nil {
			return false
		}
		got, ok := opts.Lookup(name)
		if !ok || !LiteralEqual(got, want) {
			return false
		}
	}
	return true
}

func containsOS(list []string, family platform.OS) bool {
	for _, candidate := range list {
		if platform.OS(candidate).Is(family) {
			return true
		}
	}
	return false
}
