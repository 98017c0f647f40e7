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

// Package options holds the option values of a configuration run and the
// normalizer that adapts them to the target platform.
//
// A Set is created once from caller input merged over the recipe defaults:
//
//	raw, err := options.Parse([]string{"shared=True"}, rec.Package.Name)
//	set, err := options.NewSet(rec.Options, raw)
//
// Normalize then applies the recipe's rules for the platform and returns a
// new Set in which every remaining option has a concrete value:
//
//	normalized := options.Normalize(rec, set, plat)
//
// Rules may remove an option (fPIC on Windows) or force its value
// (build_abi_check_tool off outside Linux). Removed options are reported by
// Set.Removed.
package options
