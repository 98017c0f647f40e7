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

package platform

import (
	"os"
	"runtime"
	"strings"
)

// EnvCompiler is consulted by Detect for the compiler identity.
const EnvCompiler = "CC"

var goosToOS = map[string]OS{
	"windows": Windows,
	"linux":   Linux,
	"darwin":  Macos,
	"freebsd": FreeBSD,
	"android": Android,
	"ios":     IOS,
}

// Detect describes the host: OS and architecture from the running binary,
// compiler identity from the CC environment variable. The compiler version
// and language standard are left unset.
func Detect() Descriptor {
	return detect(runtime.GOOS, runtime.GOARCH, os.Getenv)
}

func detect(goos, goarch string, getenv func(string) string) Descriptor {
	d := Descriptor{
		os:   goosToOS[goos],
		arch: NormalizeArch(goarch),
	}
	if d.os == Macos {
		d.compiler = "apple-clang"
	}
	if cc := getenv(EnvCompiler); cc != "" {
		d.compiler = compilerFromPath(cc, d.os)
	}
	return d
}

// compilerLaunchers are wrappers that may precede the compiler in CC.
var compilerLaunchers = map[string]bool{
	"ccache":  true,
	"sccache": true,
	"distcc":  true,
}

// CompilerExecutable returns the compiler executable named by a CC value,
// dropping launchers such as ccache and any flags: "ccache clang -m32"
// yields "clang". It returns "" when no executable remains.
func CompilerExecutable(cc string) string {
	for _, field := range strings.Fields(cc) {
		if strings.HasPrefix(field, "-") {
			return ""
		}
		if compilerLaunchers[executableBase(field)] {
			continue
		}
		return field
	}
	return ""
}

// executableBase returns the lower-case file name of exe without ".exe".
func executableBase(exe string) string {
	if i := strings.LastIndexAny(exe, `/\`); i >= 0 {
		exe = exe[i+1:]
	}
	return strings.TrimSuffix(strings.ToLower(exe), ".exe")
}

// compilerFromPath maps a CC value to a compiler identity.
func compilerFromPath(cc string, family OS) string {
	exe := CompilerExecutable(cc)
	if exe == "" {
		return ""
	}
	base := executableBase(exe)

	switch {
	case strings.HasPrefix(base, "clang-cl"):
		return "clang-cl"
	case strings.Contains(base, "clang"):
		if family == Macos {
			return "apple-clang"
		}
		return "clang"
	case strings.Contains(base, "gcc"), base == "cc", strings.HasSuffix(base, "-cc"):
		return "gcc"
	case base == "cl":
		return "msvc"
	case strings.HasPrefix(base, "icx"), strings.HasPrefix(base, "icc"):
		return "intel-cc"
	default:
		return base
	}
}
