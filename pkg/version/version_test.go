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
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Version
		wantErr  error
	}{
		{
			name:     "major only",
			input:    "9",
			expected: Version{Major: 9, Precision: 1},
		},
		{
			name:     "msvc toolset",
			input:    "192",
			expected: Version{Major: 192, Precision: 1},
		},
		{
			name:     "major minor",
			input:    "11.0",
			expected: Version{Major: 11, Minor: 0, Precision: 2},
		},
		{
			name:     "full version with prefix",
			input:    "v3.11.3",
			expected: Version{Major: 3, Minor: 11, Patch: 3, Precision: 3},
		},
		{
			name:     "letter suffix",
			input:    "1.1.1w",
			expected: Version{Major: 1, Minor: 1, Patch: 1, Precision: 3, Extras: "w"},
		},
		{
			name:     "pre-release suffix",
			input:    "3.2.0-rc1",
			expected: Version{Major: 3, Minor: 2, Patch: 0, Precision: 3, Extras: "-rc1"},
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrEmptyVersion,
		},
		{
			name:    "too many components",
			input:   "1.2.3.4",
			wantErr: ErrTooManyComponents,
		},
		{
			name:    "non numeric",
			input:   "abc",
			wantErr: ErrNonNumeric,
		},
		{
			name:    "empty component",
			input:   "1..2",
			wantErr: ErrNonNumeric,
		},
		{
			name:    "negative",
			input:   "-1",
			wantErr: ErrNegativeComponent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseVersion(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseVersion(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"9", "9"},
		{"11.0", "11.0"},
		{"v1.2.3", "1.2.3"},
		{"1.1.1w", "1.1.1w"},
		{"75.1", "75.1"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MustParseVersion(tt.input).String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"numeric not lexical", "9", "10", -1},
		{"major precision wildcard", "11.0.3", "11", 0},
		{"older minor", "10.9", "11", -1},
		{"newer", "13.2", "9", 1},
		{"patch", "1.2.3", "1.2.4", -1},
		{"letter suffix orders after bare", "1.1.1w", "1.1.1", 1},
		{"equal", "192", "192", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := MustParseVersion(tt.a)
			b := MustParseVersion(tt.b)
			if got := a.Compare(b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if got := a.Less(b); got != (tt.want < 0) {
				t.Errorf("Less(%s, %s) = %v", tt.a, tt.b, got)
			}
			if got := a.EqualsOrNewer(b); got != (tt.want >= 0) {
				t.Errorf("EqualsOrNewer(%s, %s) = %v", tt.a, tt.b, got)
			}
		})
	}
}

func TestVersionAtLeast(t *testing.T) {
	tests := []struct {
		version string
		minimum string
		want    bool
	}{
		{"10", "10.1", false},
		{"10.0", "10.1", false},
		{"10.0.9", "10.1", false},
		{"10.1", "10.1", true},
		{"10.2", "10.1", true},
		{"11", "10.1", true},
		{"11.0.3", "11", true},
		{"10.9", "11", false},
		{"9", "10", false},
		{"192", "192", true},
		{"1.1.1", "1.1.1w", false},
		{"1.1.1w", "1.1.1", true},
		{"3.2", "3.2.1", false},
	}
	for _, tt := range tests {
		t.Run(tt.version+">="+tt.minimum, func(t *testing.T) {
			got := MustParseVersion(tt.version).AtLeast(MustParseVersion(tt.minimum))
			if got != tt.want {
				t.Errorf("AtLeast(%s, %s) = %v, want %v", tt.version, tt.minimum, got, tt.want)
			}
		})
	}
}

func TestVersionIsValid(t *testing.T) {
	if !NewVersion(1, 2, 3).IsValid() {
		t.Error("expected NewVersion to be valid")
	}
	if (Version{Major: 1}).IsValid() {
		t.Error("expected zero precision to be invalid")
	}
	if (Version{Major: -1, Precision: 1}).IsValid() {
		t.Error("expected negative major to be invalid")
	}
}

func TestMustParseVersionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid version")
		}
	}()
	MustParseVersion("not-a-version")
}

func FuzzParseVersion(f *testing.F) {
	for _, seed := range []string{"9", "11.0.3", "1.1.1w", "v3.2.0-rc1", "", "1.2.3.4", "-1"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		v, err := ParseVersion(input)
		if err != nil {
			return
		}
		if !v.IsValid() {
			t.Errorf("ParseVersion(%q) returned invalid version: %+v", input, v)
		}
		_ = v.Compare(NewVersion(1, 2, 3))
		_ = v.String()
	})
}
