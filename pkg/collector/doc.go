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

// Package collector probes the host toolchain.
//
// platform.Detect only knows what the running binary and the environment
// tell it: OS, architecture and the compiler named by CC. The Collector
// goes one step further and runs the compiler with --version to learn its
// identity and version:
//
//	c := collector.New(collector.WithTimeout(5 * time.Second))
//	host, err := c.Collect(ctx)
//	if err != nil {
//	    // host still carries the Detect result
//	    slog.Warn("compiler probe failed", "error", err)
//	}
//
// Probing is best-effort. MSVC's cl.exe has no --version flag and is never
// probed. Collect always returns a usable descriptor; the error only
// reports that the probe could not refine it.
package collector
