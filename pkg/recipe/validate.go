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

	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/NVIDIA/native-recipe/pkg/header"
	"github.com/NVIDIA/native-recipe/pkg/platform"
	"github.com/NVIDIA/native-recipe/pkg/version"
)

// Validate checks the recipe's internal consistency. It does not evaluate
// any configuration; a recipe that passes can be used for every platform.
func (r *Recipe) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if r.Kind != "" && r.Kind != header.KindPackageRecipe {
		add("kind must be %s, got %s", header.KindPackageRecipe, r.Kind)
	}
	if r.Package.Name == "" {
		add("package.name is required")
	}
	if r.Package.Version == "" {
		add("package.version is required")
	} else if _, err := version.ParseVersion(r.Package.Version); err != nil {
		add("package.version: %v", err)
	}

	options := make(map[string]OptionSpec, len(r.Options))
	for i, o := range r.Options {
		switch {
		case o.Name == "":
			add("options[%d]: name is required", i)
			continue
		case options[o.Name].Name != "":
			add("options[%d]: duplicate option %q", i, o.Name)
			continue
		}
		switch o.Type {
		case OptionTypeBool:
		case OptionTypeEnum:
			if len(o.Values) == 0 {
				add("option %q: enum requires values", o.Name)
			}
		default:
			add("option %q: unknown type %q", o.Name, o.Type)
		}
		if !o.Accepts(o.Default) {
			add("option %q: default %q is not a legal value", o.Name, o.Default)
		}
		options[o.Name] = o
	}

	checkCondition := func(where string, c Condition) {
		for _, family := range append(append([]string{}, c.OS...), c.NotOS...) {
			if _, err := platform.ParseOS(family); err != nil || family == "" {
				add("%s: unknown os %q", where, family)
			}
		}
		for name, value := range c.Options {
			spec, ok := options[name]
			if !ok {
				add("%s: unknown option %q", where, name)
				continue
			}
			if !spec.Accepts(value) {
				add("%s: %q is not a legal value for %q", where, value, name)
			}
		}
	}

	for i, rule := range r.Normalize {
		where := fmt.Sprintf("normalize[%d]", i)
		if rule.Name != "" {
			where = fmt.Sprintf("normalize %q", rule.Name)
		}
		checkCondition(where, rule.When)
		for _, name := range rule.Remove {
			if _, ok := options[name]; !ok {
				add("%s: remove references unknown option %q", where, name)
			}
		}
		for name, value := range rule.Set {
			spec, ok := options[name]
			if !ok {
				add("%s: set references unknown option %q", where, name)
				continue
			}
			if !spec.Accepts(value) {
				add("%s: %q is not a legal value for %q", where, value, name)
			}
		}
	}

	if r.Validation.MinStandard != "" {
		if _, err := version.ParseStandard(r.Validation.MinStandard); err != nil {
			add("validation.minStandard: %v", err)
		}
	}
	for id, minimum := range r.Validation.CompilerMinimums {
		if _, err := version.ParseVersion(minimum); err != nil {
			add("validation.compilerMinimums[%s]: %v", id, err)
		}
	}
	for i, rel := range r.Validation.Relaxations {
		if _, err := platform.ParseOS(rel.OS); err != nil || rel.OS == "" {
			add("validation.relaxations[%d]: unknown os %q", i, rel.OS)
		}
		if strings.TrimSpace(rel.Contains) == "" {
			add("validation.relaxations[%d]: contains is required", i)
		}
	}

	seen := make(map[string]string)
	checkRef := func(where, ref string, allowBare bool) {
		parsed, err := ParseReference(ref, allowBare)
		if err != nil {
			add("%s: %v", where, err)
			return
		}
		if prev, ok := seen[parsed.Name]; ok && prev != parsed.Constraint.String() {
			add("%s: %q conflicts with %s/%s", where, ref, parsed.Name, prev)
			return
		}
		seen[parsed.Name] = parsed.Constraint.String()
	}
	for i, ref := range r.Requirements.Baseline {
		checkRef(fmt.Sprintf("requirements.baseline[%d]", i), ref, false)
	}
	for i, c := range r.Requirements.Components {
		where := fmt.Sprintf("requirements.components[%d]", i)
		spec, ok := options[c.Option]
		switch {
		case !ok:
			add("%s: unknown option %q", where, c.Option)
		case spec.Type != OptionTypeBool:
			add("%s: option %q is not boolean", where, c.Option)
		}
		checkRef(where, c.Requires, c.Unresolvable)
	}
	tools := make(map[string]string)
	for i, tool := range r.Requirements.Tools {
		where := fmt.Sprintf("requirements.tools[%d]", i)
		checkCondition(where, tool.When)
		parsed, err := ParseReference(tool.Requires, false)
		if err != nil {
			add("%s: %v", where, err)
			continue
		}
		if prev, ok := tools[parsed.Name]; ok && prev != parsed.Constraint.String() {
			add("%s: %q conflicts with %s/%s", where, tool.Requires, parsed.Name, prev)
		}
		tools[parsed.Name] = parsed.Constraint.String()
	}

	names := make(map[string]bool)
	for i, v := range r.Toolchain.Variables {
		where := fmt.Sprintf("toolchain.variables[%d]", i)
		if v.Name == "" {
			add("%s: name is required", where)
		} else if names[v.Name] {
			add("%s: duplicate variable %q", where, v.Name)
		}
		names[v.Name] = true
		checkCondition(where, v.When)

		sources := 0
		if v.Option != "" {
			sources++
			if _, ok := options[v.Option]; !ok {
				add("%s: unknown option %q", where, v.Option)
			}
		}
		if v.Setting != "" {
			sources++
			if !isKnownSetting(v.Setting) {
				add("%s: unknown setting %q", where, v.Setting)
			}
		}
		if v.Value != nil {
			sources++
			if !isScalar(v.Value) {
				add("%s: value must be a boolean, string or number", where)
			}
		}
		if sources != 1 {
			add("%s: exactly one of option, setting or value is required", where)
		}
	}

	if len(r.PackageInfo.Libs) == 0 {
		add("packageInfo.libs requires at least one library")
	}
	for family := range r.PackageInfo.SystemLibs {
		if _, err := platform.ParseOS(family); err != nil || family == "" {
			add("packageInfo.systemLibs: unknown os %q", family)
		}
	}
	if r.PackageInfo.Identifiers.FileName == "" || r.PackageInfo.Identifiers.TargetName == "" {
		add("packageInfo.identifiers requires cmake_file_name and cmake_target_name")
	}

	if len(problems) > 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("recipe %s is invalid: %s", r.Ref(), strings.Join(problems, "; ")),
			map[string]any{"problems": problems})
	}
	return nil
}

func isKnownSetting(s string) bool {
	switch s {
	case platform.SettingOS, platform.SettingArch, platform.SettingCompiler,
		platform.SettingCompilerVersion, platform.SettingCompilerCppstd, platform.SettingBuildType:
		return true
	default:
		return false
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case bool, string, int, int64, uint64, float64:
		return true
	default:
		return false
	}
}
