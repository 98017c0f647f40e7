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

package platform

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns s with full Unicode case folding. A Caser keeps state, so
// each call gets its own.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// EqualFold compares two identifiers with full Unicode case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// OS is an operating system family.
type OS string

// OS constants for supported families. Values follow the package manager's
// settings model.
const (
	OSUnknown OS = ""
	Windows   OS = "Windows"
	Linux     OS = "Linux"
	Macos     OS = "Macos"
	FreeBSD   OS = "FreeBSD"
	Android   OS = "Android"
	IOS       OS = "iOS"
)

var knownOS = []OS{Android, FreeBSD, IOS, Linux, Macos, Windows}

var osAliases = map[string]OS{
	"darwin": Macos,
	"macos":  Macos,
	"osx":    Macos,
	"win32":  Windows,
	"win":    Windows,
}

// ParseOS parses an OS family name case-insensitively. Go's GOOS names
// (darwin, windows, linux) are accepted as aliases.
func ParseOS(s string) (OS, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return OSUnknown, nil
	}
	for _, family := range knownOS {
		if EqualFold(trimmed, string(family)) {
			return family, nil
		}
	}
	if family, ok := osAliases[Fold(trimmed)]; ok {
		return family, nil
	}
	return OSUnknown, fmt.Errorf("invalid os: %s", s)
}

// GetOSTypes returns all supported OS families sorted alphabetically.
func GetOSTypes() []string {
	out := make([]string, 0, len(knownOS))
	for _, family := range knownOS {
		out = append(out, string(family))
	}
	return out
}

// Is reports whether o names the same family as other, ignoring case.
func (o OS) Is(other OS) bool {
	return EqualFold(string(o), string(other))
}

// String returns the string representation of the OS.
func (o OS) String() string {
	return string(o)
}

// BuildType is the build configuration.
type BuildType string

// BuildType constants.
const (
	BuildTypeUnset          BuildType = ""
	BuildTypeDebug          BuildType = "Debug"
	BuildTypeRelease        BuildType = "Release"
	BuildTypeRelWithDebInfo BuildType = "RelWithDebInfo"
	BuildTypeMinSizeRel     BuildType = "MinSizeRel"
)

var knownBuildTypes = []BuildType{BuildTypeDebug, BuildTypeMinSizeRel, BuildTypeRelWithDebInfo, BuildTypeRelease}

// ParseBuildType parses a build type case-insensitively.
func ParseBuildType(s string) (BuildType, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return BuildTypeUnset, nil
	}
	for _, bt := range knownBuildTypes {
		if EqualFold(trimmed, string(bt)) {
			return bt, nil
		}
	}
	return BuildTypeUnset, fmt.Errorf("invalid build type: %s", s)
}

// GetBuildTypes returns all supported build types sorted alphabetically.
func GetBuildTypes() []string {
	out := make([]string, 0, len(knownBuildTypes))
	for _, bt := range knownBuildTypes {
		out = append(out, string(bt))
	}
	return out
}

// String returns the string representation of the BuildType.
func (b BuildType) String() string {
	return string(b)
}

var archAliases = map[string]string{
	"amd64":   "x86_64",
	"x64":     "x86_64",
	"386":     "x86",
	"i386":    "x86",
	"i686":    "x86",
	"arm64":   "armv8",
	"aarch64": "armv8",
	"arm":     "armv7",
}

// NormalizeArch maps Go and common vendor architecture names onto the
// package manager's names. Unknown names are returned unchanged.
func NormalizeArch(arch string) string {
	a := strings.TrimSpace(arch)
	if mapped, ok := archAliases[Fold(a)]; ok {
		return mapped
	}
	return a
}
