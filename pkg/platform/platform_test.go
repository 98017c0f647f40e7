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
	"encoding/json"
	"testing"

	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseOS(t *testing.T) {
	tests := []struct {
		input   string
		want    OS
		wantErr bool
	}{
		{"Linux", Linux, false},
		{"linux", Linux, false},
		{"WINDOWS", Windows, false},
		{"darwin", Macos, false},
		{"Macos", Macos, false},
		{"freebsd", FreeBSD, false},
		{"", OSUnknown, false},
		{"plan9", OSUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOS(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBuildType(t *testing.T) {
	bt, err := ParseBuildType("release")
	require.NoError(t, err)
	assert.Equal(t, BuildTypeRelease, bt)

	bt, err = ParseBuildType("relwithdebinfo")
	require.NoError(t, err)
	assert.Equal(t, BuildTypeRelWithDebInfo, bt)

	_, err = ParseBuildType("fast")
	assert.Error(t, err)
}

func TestNormalizeArch(t *testing.T) {
	assert.Equal(t, "x86_64", NormalizeArch("amd64"))
	assert.Equal(t, "armv8", NormalizeArch("arm64"))
	assert.Equal(t, "armv8", NormalizeArch("AArch64"))
	assert.Equal(t, "x86", NormalizeArch("386"))
	assert.Equal(t, "riscv64", NormalizeArch("riscv64"))
}

func TestNew(t *testing.T) {
	d, err := New(
		WithOS("linux"),
		WithArch("amd64"),
		WithCompiler("clang"),
		WithCompilerVersion("14.0.6"),
		WithStandard("gnu17"),
		WithBuildType("Release"),
	)
	require.NoError(t, err)
	assert.Equal(t, Linux, d.OS())
	assert.Equal(t, "x86_64", d.Arch())
	assert.Equal(t, "clang", d.Compiler())

	v, ok := d.CompilerVersion()
	require.True(t, ok)
	assert.Equal(t, 14, v.Major)

	st, ok := d.Standard()
	require.True(t, ok)
	assert.Equal(t, 2017, st.Year)
	assert.Equal(t, BuildTypeRelease, d.BuildType())
	assert.Equal(t, "Linux-x86_64-clang-14.0.6", d.String())
}

func TestNewUnsetFields(t *testing.T) {
	d, err := New(WithOS("Windows"), WithCompiler("msvc"), WithCompilerVersion(""), WithStandard(""))
	require.NoError(t, err)
	_, ok := d.CompilerVersion()
	assert.False(t, ok)
	_, ok = d.Standard()
	assert.False(t, ok)
}

func TestNewInvalid(t *testing.T) {
	for name, opt := range map[string]Option{
		"os":       WithOS("plan9"),
		"version":  WithCompilerVersion("eleven"),
		"standard": WithStandard("2017"),
		"build":    WithBuildType("fast"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := New(opt)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
		})
	}
}

func TestFromSettingsRoundTrip(t *testing.T) {
	settings := map[string]string{
		SettingOS:              "Windows",
		SettingArch:            "x86_64",
		SettingCompiler:        "clang-cl",
		SettingCompilerVersion: "16",
		SettingCompilerCppstd:  "20",
		SettingBuildType:       "Debug",
	}
	d, err := FromSettings(settings)
	require.NoError(t, err)
	assert.Equal(t, settings, d.Settings())

	_, err = FromSettings(map[string]string{"compiler.libcxx": "libstdc++11"})
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := MustNew(WithOS("Linux"), WithArch("x86_64"), WithCompiler("gcc"), WithCompilerVersion("12"))

	merged := base.Merge(MustNew(WithCompiler("clang")))
	assert.Equal(t, "clang", merged.Compiler())
	_, ok := merged.CompilerVersion()
	assert.False(t, ok, "changing the compiler drops the old version")
	assert.Equal(t, Linux, merged.OS())

	merged = base.Merge(MustNew(WithCompilerVersion("13")))
	v, _ := merged.CompilerVersion()
	assert.Equal(t, 13, v.Major)
	assert.Equal(t, "gcc", merged.Compiler())

	// base is untouched
	v, _ = base.CompilerVersion()
	assert.Equal(t, 12, v.Major)
}

func TestDescriptorEncoding(t *testing.T) {
	d := MustNew(WithOS("Macos"), WithCompiler("apple-clang"), WithCompilerVersion("15"))

	data, err := json.Marshal(d)
	require.NoError(t, err)
	var fromJSON Descriptor
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Equal(t, d.Settings(), fromJSON.Settings())

	out, err := yaml.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), "compiler.version: \"15\"")
	var fromYAML Descriptor
	require.NoError(t, yaml.Unmarshal(out, &fromYAML))
	assert.Equal(t, d.Settings(), fromYAML.Settings())
}

func TestCompilerExecutable(t *testing.T) {
	tests := []struct {
		cc   string
		want string
	}{
		{"clang", "clang"},
		{"/usr/bin/gcc-13", "/usr/bin/gcc-13"},
		{"ccache clang", "clang"},
		{"ccache /opt/llvm/bin/clang++ -stdlib=libc++", "/opt/llvm/bin/clang++"},
		{`C:\tools\sccache.exe cl.exe`, "cl.exe"},
		{"distcc ccache gcc", "gcc"},
		{"gcc -m32", "gcc"},
		{"ccache", ""},
		{"ccache -s", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.cc, func(t *testing.T) {
			assert.Equal(t, tt.want, CompilerExecutable(tt.cc))
		})
	}
}

func TestDetect(t *testing.T) {
	env := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}

	tests := []struct {
		name     string
		goos     string
		goarch   string
		env      map[string]string
		os       OS
		arch     string
		compiler string
	}{
		{"linux clang", "linux", "amd64", map[string]string{"CC": "/usr/bin/clang-15"}, Linux, "x86_64", "clang"},
		{"linux gcc", "linux", "arm64", map[string]string{"CC": "gcc"}, Linux, "armv8", "gcc"},
		{"linux cc", "linux", "amd64", map[string]string{"CC": "cc"}, Linux, "x86_64", "gcc"},
		{"mac default", "darwin", "arm64", nil, Macos, "armv8", "apple-clang"},
		{"mac clang", "darwin", "arm64", map[string]string{"CC": "clang"}, Macos, "armv8", "apple-clang"},
		{"windows clang-cl", "windows", "amd64", map[string]string{"CC": `C:\LLVM\bin\clang-cl.exe`}, Windows, "x86_64", "clang-cl"},
		{"windows cl", "windows", "amd64", map[string]string{"CC": "cl.exe"}, Windows, "x86_64", "msvc"},
		{"linux ccache clang", "linux", "amd64", map[string]string{"CC": "ccache clang"}, Linux, "x86_64", "clang"},
		{"linux sccache gcc with flags", "linux", "amd64", map[string]string{"CC": "/usr/bin/sccache gcc -m32"}, Linux, "x86_64", "gcc"},
		{"mac ccache clang", "darwin", "arm64", map[string]string{"CC": "ccache clang"}, Macos, "armv8", "apple-clang"},
		{"launcher only", "linux", "amd64", map[string]string{"CC": "ccache"}, Linux, "x86_64", ""},
		{"no compiler", "linux", "amd64", nil, Linux, "x86_64", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := detect(tt.goos, tt.goarch, env(tt.env))
			assert.Equal(t, tt.os, d.OS())
			assert.Equal(t, tt.arch, d.Arch())
			assert.Equal(t, tt.compiler, d.Compiler())
			_, ok := d.CompilerVersion()
			assert.False(t, ok)
		})
	}
}
