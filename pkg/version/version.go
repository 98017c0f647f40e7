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

// Error types for version parsing failures
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 3 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
	ErrNegativeComponent = errors.New("version component cannot be negative")
)

// Version is a compiler or package version with Major, Minor, and Patch
// components. Precision records how many components were given ("9" has
// precision 1, "11.0.3" has precision 3). Anything that trails the numeric
// part ("w" in "1.1.1w", "-rc1" in "3.2.0-rc1") is kept in Extras.
type Version struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor,omitempty" yaml:"minor,omitempty"`
	Patch int `json:"patch,omitempty" yaml:"patch,omitempty"`

	// Precision indicates how many components are significant (1, 2, or 3)
	Precision int `json:"precision,omitempty" yaml:"precision,omitempty"`

	// Extras stores trailing metadata like "w" or "-rc1"
	Extras string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// NewVersion creates a new Version with the specified major, minor, and patch values.
// The precision is automatically set to 3 (all components are significant).
func NewVersion(major, minor, patch int) Version {
	return Version{
		Major:     major,
		Minor:     minor,
		Patch:     patch,
		Precision: 3,
	}
}

// String returns the Version respecting its precision, followed by Extras.
func (v Version) String() string {
	var s string
	switch v.Precision {
	case 1:
		s = strconv.Itoa(v.Major)
	case 2:
		s = fmt.Sprintf("%d.%d", v.Major, v.Minor)
	default:
		s = fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return s + v.Extras
}

// ParseVersion parses a version string into a Version.
// Supported formats: "9", "11.0", "1.2.3", "v1.2.3", "1.1.1w", "1.2.3-suffix",
// "1.2.3+metadata". The "v" prefix is optional and stripped if present.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, ErrEmptyVersion
	}

	s = strings.TrimPrefix(s, "v")
	var v Version

	// Extras start at a '-' or '+' that follows a digit. A leading '-' is a
	// negative component, not extras.
	mainPart := s
	for i, ch := range s {
		if (ch == '-' || ch == '+') && i > 0 {
			prevCh := s[i-1]
			if prevCh >= '0' && prevCh <= '9' {
				mainPart = s[:i]
				v.Extras = s[i:]
				break
			}
		}
	}

	parts := strings.Split(mainPart, ".")
	if len(parts) > 3 {
		return Version{}, ErrTooManyComponents
	}

	for i, part := range parts {
		if part == "" {
			return Version{}, fmt.Errorf("%w: empty component", ErrNonNumeric)
		}

		// The last component may carry a letter suffix ("1w").
		if i == len(parts)-1 {
			digits := strings.TrimRightFunc(part, isLetter)
			if digits != part && digits != "" && !strings.HasPrefix(digits, "-") {
				v.Extras = part[len(digits):] + v.Extras
				part = digits
			}
		}

		num, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		if num < 0 {
			return Version{}, fmt.Errorf("%w: %d", ErrNegativeComponent, num)
		}

		switch i {
		case 0:
			v.Major = num
		case 1:
			v.Minor = num
		case 2:
			v.Patch = num
		}
	}

	v.Precision = len(parts)
	return v, nil
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// MustParseVersion parses a version string and panics if parsing fails.
// Only use this for hardcoded strings or in tests.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseVersion: %v", err))
	}
	return v
}

// EqualsOrNewer returns true if v is equal to or newer than other.
// Comparison is performed up to the lower precision of the two versions,
// so "11.0.3" satisfies a minimum of "11".
func (v Version) EqualsOrNewer(other Version) bool {
	return v.Compare(other) >= 0
}

// Less reports whether v is strictly older than other, at the lower
// precision of the two versions.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Compare returns -1 if v < other, 0 if v == other, 1 if v > other.
// Only the components significant in both versions are compared. Extras are
// compared lexically when all significant components are equal, which orders
// "1.1.1" before "1.1.1w".
func (v Version) Compare(other Version) int {
	precision := v.Precision
	if other.Precision < precision {
		precision = other.Precision
	}
	if precision == 0 {
		precision = 3
	}

	if c := cmpInt(v.Major, other.Major); c != 0 || precision == 1 {
		return c
	}
	if c := cmpInt(v.Minor, other.Minor); c != 0 || precision == 2 {
		return c
	}
	if c := cmpInt(v.Patch, other.Patch); c != 0 {
		return c
	}
	if v.Precision == other.Precision {
		return strings.Compare(v.Extras, other.Extras)
	}
	return 0
}

// AtLeast reports whether v meets the minimum. Components are compared at
// the minimum's precision; components v does not declare count as 0, so
// "10" does not meet "10.1" while "11.0.3" meets "11".
func (v Version) AtLeast(minimum Version) bool {
	precision := minimum.Precision
	if precision == 0 {
		precision = 3
	}
	if c := cmpInt(v.Major, minimum.Major); c != 0 || precision == 1 {
		return c >= 0
	}
	if c := cmpInt(v.Minor, minimum.Minor); c != 0 || precision == 2 {
		return c >= 0
	}
	if c := cmpInt(v.Patch, minimum.Patch); c != 0 {
		return c > 0
	}
	return strings.Compare(v.Extras, minimum.Extras) >= 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// IsValid returns true if the version has valid values.
// All components must be non-negative and precision must be 1, 2, or 3.
func (v Version) IsValid() bool {
	if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
		return false
	}
	return v.Precision >= 1 && v.Precision <= 3
}
