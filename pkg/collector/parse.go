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

package collector

import (
	"regexp"
	"strings"
)

// Compiler is the identity and version parsed from a compiler banner.
type Compiler struct {
	ID      string
	Version string
}

var (
	appleClangRe = regexp.MustCompile(`Apple (?:LLVM|clang) version (\d+(?:\.\d+){0,2})`)
	clangRe      = regexp.MustCompile(`clang version (\d+(?:\.\d+){0,2})`)
	intelRe      = regexp.MustCompile(`Intel\(R\).*Compiler.* (\d+(?:\.\d+){0,2})`)
	dottedRe     = regexp.MustCompile(`\b(\d+\.\d+(?:\.\d+)?)\b`)
)

// ParseCompiler reads the output of "<compiler> --version". Only the first
// line identifies the compiler; later lines are checked for the GNU
// copyright notice some distributions print instead of "(GCC)".
func ParseCompiler(output string) (Compiler, bool) {
	first, rest, _ := strings.Cut(strings.TrimSpace(output), "\n")
	first = strings.TrimSpace(first)
	if first == "" {
		return Compiler{}, false
	}

	if m := appleClangRe.FindStringSubmatch(first); m != nil {
		return Compiler{ID: "apple-clang", Version: m[1]}, true
	}
	if m := clangRe.FindStringSubmatch(first); m != nil {
		return Compiler{ID: "clang", Version: m[1]}, true
	}
	if m := intelRe.FindStringSubmatch(first); m != nil {
		return Compiler{ID: "intel-cc", Version: m[1]}, true
	}

	if isGNU(first, rest) {
		// gcc (Ubuntu 11.4.0-1ubuntu1~22.04) 11.4.0: the release is the last
		// dotted version on the line.
		all := dottedRe.FindAllString(first, -1)
		if len(all) == 0 {
			return Compiler{ID: "gcc"}, true
		}
		return Compiler{ID: "gcc", Version: all[len(all)-1]}, true
	}
	return Compiler{}, false
}

func isGNU(first, rest string) bool {
	lower := strings.ToLower(first)
	for _, prefix := range []string{"gcc", "g++", "cc ", "c++ "} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return strings.Contains(first, "(GCC)") || strings.Contains(rest, "Free Software Foundation")
}
