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

// Package dependency maps a normalized option set onto the ordered list of
// package requirements handed to the dependency fetcher.
//
// The list always starts with the recipe baseline, in recipe order, so the
// baseline prefix is the same for every option combination. Each enabled
// component appends its own requirement. A component whose dependency has
// no managed package is still listed, as a marker with StatusUnresolvable,
// so the caller can provision it manually:
//
//	reqs, err := dependency.Resolve(rec, normalized)
//	for _, gap := range dependency.Gaps(reqs) {
//		fmt.Printf("provide %s manually: %s\n", gap.Name, gap.Reason)
//	}
//
// Build-time tools (cmake, ninja) are resolved separately with
// ResolveTools since they depend on the platform rather than the options.
package dependency
