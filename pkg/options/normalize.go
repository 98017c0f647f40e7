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
	"log/slog"

	"github.com/NVIDIA/native-recipe/pkg/platform"
	"github.com/NVIDIA/native-recipe/pkg/recipe"
)

// Normalize applies the recipe's platform rules to raw and returns the
// normalized Set. Rules run in declaration order and each one sees the
// result of the previous ones. Normalize forces values and never fails;
// raw is not modified.
func Normalize(rec *recipe.Recipe, raw *Set, plat platform.Descriptor) *Set {
	out := raw.clone()
	for _, rule := range rec.Normalize {
		if !rule.When.Matches(plat.OS(), out) {
			continue
		}
		for _, name := range rule.Remove {
			out.remove(name)
		}
		for name, literal := range rule.Set {
			spec, ok := rec.Option(name)
			if !ok {
				continue
			}
			v, err := parseValue(spec, literal)
			if err != nil {
				// recipe validation rejects illegal literals
				continue
			}
			out.force(name, v)
		}
		slog.Debug("normalization rule applied",
			"rule", rule.Name,
			"os", plat.OS().String(),
			"removed", rule.Remove,
		)
	}
	return out
}
