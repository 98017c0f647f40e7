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

	"github.com/NVIDIA/native-recipe/pkg/header"
	"github.com/NVIDIA/native-recipe/pkg/platform"
	"github.com/NVIDIA/native-recipe/pkg/version"
)

// Recipe is the declarative description of a native package: its option
// schema, the platform rules applied to those options, and the tables that
// map a configuration onto requirements, toolchain variables and exported
// package metadata. A loaded Recipe is read-only.
type Recipe struct {
	header.Header `json:",inline" yaml:",inline"`

	Package      PackageInfo      `json:"package" yaml:"package"`
	Settings     []string         `json:"settings,omitempty" yaml:"settings,omitempty"`
	Options      []OptionSpec     `json:"options" yaml:"options"`
	Normalize    []Rule           `json:"normalize,omitempty" yaml:"normalize,omitempty"`
	Validation   ValidationSpec   `json:"validation" yaml:"validation"`
	Requirements RequirementsSpec `json:"requirements" yaml:"requirements"`
	Toolchain    ToolchainSpec    `json:"toolchain" yaml:"toolchain"`
	PackageInfo  PackageInfoSpec  `json:"packageInfo" yaml:"packageInfo"`
}

// PackageInfo identifies the package.
type PackageInfo struct {
	Name           string   `json:"name" yaml:"name"`
	Version        string   `json:"version" yaml:"version"`
	License        string   `json:"license,omitempty" yaml:"license,omitempty"`
	URL            string   `json:"url,omitempty" yaml:"url,omitempty"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	Topics         []string `json:"topics,omitempty" yaml:"topics,omitempty"`
	ExportsSources []string `json:"exportsSources,omitempty" yaml:"exportsSources,omitempty"`
}

// OptionType is the value domain of an option.
type OptionType string

// OptionType constants.
const (
	OptionTypeBool OptionType = "bool"
	OptionTypeEnum OptionType = "enum"
)

// OptionSpec declares one option with its default.
type OptionSpec struct {
	Name        string     `json:"name" yaml:"name"`
	Type        OptionType `json:"type" yaml:"type"`
	Default     string     `json:"default" yaml:"default"`
	Values      []string   `json:"values,omitempty" yaml:"values,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
}

// Accepts reports whether raw is a legal value for the option.
func (o OptionSpec) Accepts(raw string) bool {
	switch o.Type {
	case OptionTypeBool:
		_, err := ParseBool(raw)
		return err == nil
	case OptionTypeEnum:
		for _, v := range o.Values {
			if v == raw {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Rule is one normalization step. When its condition matches, the listed
// options are removed and the Set values forced, in that order.
type Rule struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	When        Condition         `json:"when" yaml:"when"`
	Remove      []string          `json:"remove,omitempty" yaml:"remove,omitempty"`
	Set         map[string]string `json:"set,omitempty" yaml:"set,omitempty"`
}

// ValidationSpec holds the fixed validation tables.
type ValidationSpec struct {
	// MinStandard is the minimum language standard, checked only when the
	// platform declares one.
	MinStandard string `json:"minStandard,omitempty" yaml:"minStandard,omitempty"`
	// CompilerMinimums maps a compiler identity to its minimum version.
	CompilerMinimums map[string]string `json:"compilerMinimums,omitempty" yaml:"compilerMinimums,omitempty"`
	// AllowedCompilers is the compiler allow-list. Empty allows every compiler.
	AllowedCompilers []string `json:"allowedCompilers,omitempty" yaml:"allowedCompilers,omitempty"`
	// Relaxations widen the allow-list on specific operating systems.
	Relaxations []Relaxation `json:"relaxations,omitempty" yaml:"relaxations,omitempty"`
}

// Relaxation accepts, on one OS, any compiler whose identity contains Contains.
type Relaxation struct {
	OS       string `json:"os" yaml:"os"`
	Contains string `json:"contains" yaml:"contains"`
}

// RequirementsSpec lists what a configuration depends on.
type RequirementsSpec struct {
	Baseline   []string               `json:"baseline,omitempty" yaml:"baseline,omitempty"`
	Components []ComponentRequirement `json:"components,omitempty" yaml:"components,omitempty"`
	Tools      []ToolRequirement      `json:"tools,omitempty" yaml:"tools,omitempty"`
}

// ComponentRequirement is added when the named boolean option is true.
// Unresolvable requirements have no managed package and are reported as
// gaps instead of being fetched.
type ComponentRequirement struct {
	Option       string `json:"option" yaml:"option"`
	Requires     string `json:"requires" yaml:"requires"`
	Unresolvable bool   `json:"unresolvable,omitempty" yaml:"unresolvable,omitempty"`
	Reason       string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// ToolRequirement is a build-time tool needed when its condition matches.
type ToolRequirement struct {
	Requires string    `json:"requires" yaml:"requires"`
	When     Condition `json:"when,omitempty" yaml:"when,omitempty"`
}

// ToolchainSpec maps a configuration onto toolchain variables.
type ToolchainSpec struct {
	Variables []VariableSpec `json:"variables" yaml:"variables"`
}

// VariableSpec produces one toolchain variable. Exactly one source is set:
// Option copies an option's value, Setting copies a platform setting and
// Value is a fixed scalar. The variable is omitted when its condition does
// not match or its source is absent.
type VariableSpec struct {
	Name    string    `json:"name" yaml:"name"`
	Option  string    `json:"option,omitempty" yaml:"option,omitempty"`
	Setting string    `json:"setting,omitempty" yaml:"setting,omitempty"`
	Value   any       `json:"value,omitempty" yaml:"value,omitempty"`
	When    Condition `json:"when,omitempty" yaml:"when,omitempty"`
}

// PackageInfoSpec describes what a successful build exports.
type PackageInfoSpec struct {
	Libs        []string            `json:"libs" yaml:"libs"`
	SystemLibs  map[string][]string `json:"systemLibs,omitempty" yaml:"systemLibs,omitempty"`
	Identifiers Identifiers         `json:"identifiers" yaml:"identifiers"`
}

// Identifiers are the consumer-facing lookup names of the package.
type Identifiers struct {
	FileName   string `json:"cmake_file_name" yaml:"cmake_file_name"`
	TargetName string `json:"cmake_target_name" yaml:"cmake_target_name"`
}

// Ref returns the recipe reference, e.g. "openmp-server/1.4.0".
func (r *Recipe) Ref() string {
	return r.Package.Name + "/" + r.Package.Version
}

// Option returns the spec for name.
func (r *Recipe) Option(name string) (OptionSpec, bool) {
	for _, o := range r.Options {
		if o.Name == name {
			return o, true
		}
	}
	return OptionSpec{}, false
}

// SystemLibsFor returns the system libraries exported on family, or nil.
func (p PackageInfoSpec) SystemLibsFor(family platform.OS) []string {
	for key, libs := range p.SystemLibs {
		if platform.OS(key).Is(family) {
			return libs
		}
	}
	return nil
}

// Reference is a parsed "name/version" requirement string.
type Reference struct {
	Name       string
	Constraint version.Constraint
}

// ParseReference parses "name/constraint". A bare name is accepted when
// allowBare is set; its constraint is zero.
func ParseReference(s string, allowBare bool) (Reference, error) {
	trimmed := strings.TrimSpace(s)
	name, rest, found := strings.Cut(trimmed, "/")
	if name == "" {
		return Reference{}, fmt.Errorf("invalid reference %q: missing name", s)
	}
	if !found {
		if !allowBare {
			return Reference{}, fmt.Errorf("invalid reference %q: missing version", s)
		}
		return Reference{Name: name}, nil
	}
	c, err := version.ParseConstraint(rest)
	if err != nil {
		return Reference{}, fmt.Errorf("invalid reference %q: %w", s, err)
	}
	return Reference{Name: name, Constraint: c}, nil
}

// String renders the reference in "name/constraint" form.
func (r Reference) String() string {
	if r.Constraint.IsZero() {
		return r.Name
	}
	return r.Name + "/" + r.Constraint.String()
}
