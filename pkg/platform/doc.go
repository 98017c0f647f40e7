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

// Package platform describes the build target: operating system family,
// architecture, compiler identity and version, declared language standard
// and build type.
//
// A Descriptor is an immutable value. It is built once per configuration
// run, from explicit values, a settings map or the host:
//
//	plat, err := platform.New(
//	    platform.WithOS("Linux"),
//	    platform.WithCompiler("clang"),
//	    platform.WithCompilerVersion("14"),
//	)
//
//	plat, err := platform.FromSettings(map[string]string{
//	    "os": "Windows", "compiler": "clang-cl", "compiler.version": "16",
//	})
//
//	host := platform.Detect()
//
// Names are matched case-insensitively (Unicode case folding), so "linux",
// "LINUX" and "Linux" all parse to platform.Linux.
package platform
