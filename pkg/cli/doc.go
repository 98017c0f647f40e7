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

// Package cli implements the nrc command line.
//
// # Commands
//
// recipe - Print a package recipe:
//
//	nrc recipe [--recipe openmp-server] [--list]
//
// validate - Check a platform against the recipe's configuration rules:
//
//	nrc validate --os Linux --compiler clang --compiler-version 14 --cppstd 17
//
// Reports every rule as passed, failed or skipped and exits non-zero when a
// rule fails.
//
// deps, toolchain, metadata - Print one part of a planned configuration:
//
//	nrc deps --profile ci/linux.yaml -O build_unicode_component=True
//	nrc toolchain --os Windows --compiler clang-cl --cmake
//	nrc metadata --os Macos --compiler apple-clang
//
// configure - Run the configuration lifecycle:
//
//	nrc configure --profile ci/linux.yaml [--output ./bundle | --output oci://ghcr.io/org/repo:tag]
//
// Without --output the configuration is printed. With a directory the
// fetch manifest, toolchain files, package metadata and checksums are
// written there. An oci:// reference packages the bundle and pushes it.
//
// matrix - Plan many target platforms concurrently:
//
//	nrc matrix --matrix ci/matrix.yaml [--concurrency 8]
//
// # Platform Input
//
// Settings come from the host, then the --profile file, then the setting
// flags (--os, --arch, --compiler, --compiler-version, --cppstd,
// --build-type). Options are given with -O name=value and extra
// requirements with --require name/version. Every input flag also reads an
// NRC_* environment variable.
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (env LOG_LEVEL)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// Documents are written as YAML (default), JSON or a flattened table with
// --format/-t, to stdout or the --output/-o file.
//
// # Exit Codes
//
// 0 on success, 1 on any error, 2 when interrupted.
package cli
