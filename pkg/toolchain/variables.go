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

package toolchain

import (
	"log/slog"
	"sort"

	"github.com/NVIDIA/native-recipe/pkg/options"
	"github.com/NVIDIA/native-recipe/pkg/platform"
	"github.com/NVIDIA/native-recipe/pkg/recipe"
)

// Variables is the toolchain variable mapping handed to the build
// generator. Values are bool or string scalars.
type Variables map[string]any

// Names returns the variable names in sorted order.
func (v Variables) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is set.
func (v Variables) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// Build maps a normalized option set and platform onto toolchain variables.
// A variable is omitted when its condition does not match or its source
// option or setting is absent. Build never fails.
func Build(rec *recipe.Recipe, opts *options.Set, plat platform.Descriptor) Variables {
	vars := make(Variables)
	if rec == nil {
		return vars
	}
	settings := plat.Settings()

	for _, spec := range rec.Toolchain.Variables {
		if !spec.When.Matches(plat.OS(), lookup(opts)) {
			continue
		}
		switch {
		case spec.Option != "":
			if opts == nil {
				continue
			}
			if v, ok := opts.Get(spec.Option); ok {
				vars[spec.Name] = v.Scalar()
			}
		case spec.Setting != "":
			if s, ok := settings[spec.Setting]; ok {
				vars[spec.Name] = s
			}
		case spec.Value != nil:
			vars[spec.Name] = spec.Value
		}
	}

	slog.Debug("toolchain variables built", "recipe", rec.Ref(), "platform", plat.String(), "count", len(vars))
	return vars
}

// lookup avoids handing a typed nil *options.Set to condition matching.
func lookup(opts *options.Set) recipe.OptionLookup {
	if opts == nil {
		return nil
	}
	return opts
}
