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

// Package recipe holds the declarative description of a native package.
//
// A Recipe carries everything the configuration pipeline needs as data:
//
//   - package: name, version, license and exported sources
//   - options: the schema of build switches with their defaults
//   - normalize: platform rules applied to options, in order
//   - validation: minimum standard, per-compiler minimum versions and the
//     compiler allow-list with OS-specific relaxations
//   - requirements: baseline, per-component and tool requirements
//   - toolchain: how options, settings and fixed values become toolchain
//     variables
//   - packageInfo: exported libraries, per-OS system libraries and the
//     consumer-facing identifiers
//
// Adding a platform or a compiler is a change to these tables, not to code.
//
// The openmp-server recipe is embedded and parsed once:
//
//	rec, err := recipe.Default()
//
// User recipes are read from YAML or JSON files or http(s) URLs and checked
// with Validate before use:
//
//	rec, err := recipe.Load(ctx, "recipes/mylib.yaml")
//
// Conditions used by rules, tool requirements and toolchain variables are
// conjunctions over the target OS and option values:
//
//	when:
//	  notOS: [Linux]
//	  options:
//	    shared: "True"
package recipe
