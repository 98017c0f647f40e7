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

// Package toolchain builds the variable mapping passed to the native build
// generator from a normalized option set and the target platform.
//
// Each component option maps to a variable of the same meaning carrying the
// option's normalized value. Fixed variables (language standard, standard
// required, minimum Windows SDK) come from the recipe, some restricted to
// an operating system:
//
//	vars := toolchain.Build(rec, normalized, plat)
//	os.WriteFile(toolchain.CMakeFileName, toolchain.RenderCMake(vars), 0o644)
package toolchain
