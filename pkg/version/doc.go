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

// Package version parses and compares compiler versions, package version
// constraints and C++ language standards.
//
// # Versions
//
// A Version has one to three numeric components. Comparison is precision
// aware: only the components present in both operands are significant, so a
// compiler minimum of "11" is met by "11.0.3" and "9" is older than "10".
//
//	v, err := version.ParseVersion("11.0.3")
//	min := version.MustParseVersion("11")
//	v.Less(min) // false
//
// Letter suffixes and pre-release tails are kept in Extras, which lets
// registry versions such as "1.1.1w" round-trip unchanged.
//
// # Constraints
//
// A Constraint is either a pinned version ("3.47.0") or a bracketed range of
// bounds that must all hold ("[>=3.19 <4]"):
//
//	c := version.MustParseConstraint("[>=3.19 <4]")
//	c.Allows(version.MustParseVersion("3.28.1")) // true
//	c.String()                                   // "[>=3.19 <4]"
//
// # Language standards
//
// ParseStandard accepts "17", "gnu17" and "98" style values and orders them
// by publication year, so "98" precedes "11".
package version
