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
	"strconv"
	"strings"
)

// ErrInvalidStandard is returned for language-standard values that are not
// two-digit years with an optional "gnu" prefix.
var ErrInvalidStandard = errors.New("invalid language standard")

// Standard is a C++ language standard level ("17", "gnu20").
type Standard struct {
	// Year is the four-digit year the standard was published (1998, 2017, ...).
	Year int
	// GNU is set for the "gnuXX" dialects.
	GNU bool
	raw string
}

// ParseStandard parses a standard setting such as "17", "gnu17" or "98".
// Two-digit values of 90 and above map to the 1900s.
func ParseStandard(s string) (Standard, error) {
	raw := strings.TrimSpace(s)
	digits := strings.ToLower(raw)
	gnu := strings.HasPrefix(digits, "gnu")
	digits = strings.TrimPrefix(digits, "gnu")
	digits = strings.TrimPrefix(digits, "c++")

	if len(digits) != 2 {
		return Standard{}, fmt.Errorf("%w: %q", ErrInvalidStandard, s)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return Standard{}, fmt.Errorf("%w: %q", ErrInvalidStandard, s)
	}

	year := 2000 + n
	if n >= 90 {
		year = 1900 + n
	}
	return Standard{Year: year, GNU: gnu, raw: raw}, nil
}

// MustParseStandard is ParseStandard for hardcoded values; it panics on error.
func MustParseStandard(s string) Standard {
	st, err := ParseStandard(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseStandard: %v", err))
	}
	return st
}

// AtLeast reports whether s is the same or a later standard than min.
// The GNU dialect flag does not affect ordering.
func (s Standard) AtLeast(min Standard) bool {
	return s.Year >= min.Year
}

// String returns the value the standard was parsed from.
func (s Standard) String() string {
	if s.raw != "" {
		return s.raw
	}
	prefix := ""
	if s.GNU {
		prefix = "gnu"
	}
	return fmt.Sprintf("%s%02d", prefix, s.Year%100)
}
