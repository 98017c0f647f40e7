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

// Package lifecycle drives a configuration run end to end.
//
// A run is a fixed sequence of pure stages followed by handoffs to external
// collaborators:
//
//	normalize -> validate -> resolve -> toolchain -> metadata
//	    -> Fetcher -> Generator -> Builder -> Packager
//
// Plan executes only the pure stages and returns the resulting
// Configuration, so a configuration can be inspected (dry run) without
// invoking anything. Run plans and then hands off. A validation failure
// stops the run before any collaborator sees a partial result:
//
//	d := lifecycle.New(
//		lifecycle.WithVersion(version),
//		lifecycle.WithFetcher(b),
//		lifecycle.WithGenerator(b),
//		lifecycle.WithPackager(b),
//	)
//	cfg, err := d.Run(ctx, lifecycle.Input{Platform: plat, Options: raw})
//
// Unresolvable requirements do not fail a run; they are listed in
// Configuration.Gaps unless Input.Strict is set.
//
// Runs share no state, so RunMatrix configures independent inputs in
// parallel and reports each outcome separately.
package lifecycle
