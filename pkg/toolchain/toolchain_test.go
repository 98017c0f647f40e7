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

package toolchain

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/native-recipe/pkg/options"
	"github.com/NVIDIA/native-recipe/pkg/platform"
	"github.com/NVIDIA/native-recipe/pkg/recipe"
)

func build(t *testing.T, raw map[string]string, plat platform.Descriptor) Variables {
	t.Helper()
	rec, err := recipe.Default()
	require.NoError(t, err)
	set, err := options.NewSet(rec.Options, raw)
	require.NoError(t, err)
	return Build(rec, options.Normalize(rec, set, plat), plat)
}

func TestBuildLinuxAllComponents(t *testing.T) {
	plat := platform.MustNew(platform.WithOS("Linux"), platform.WithCompiler("clang"), platform.WithCompilerVersion("10"))
	vars := build(t, map[string]string{
		"build_sqlite_component":  "True",
		"build_unicode_component": "True",
		"build_abi_check_tool":    "True",
	}, plat)

	assert.Equal(t, true, vars["BUILD_ABI_CHECK_TOOL"])
	assert.Equal(t, true, vars["BUILD_SQLITE_COMPONENT"])
	assert.Equal(t, true, vars["BUILD_UNICODE_COMPONENT"])
	assert.Equal(t, false, vars["BUILD_TEST_COMPONENTS"])
	assert.Equal(t, true, vars["BUILD_SERVER"])
	assert.Equal(t, "17", vars["CMAKE_CXX_STANDARD"])
	assert.Equal(t, true, vars["CMAKE_CXX_STANDARD_REQUIRED"])
	assert.Equal(t, false, vars["BUILD_SHARED_LIBS"])
	assert.Equal(t, true, vars["CMAKE_POSITION_INDEPENDENT_CODE"])
	assert.False(t, vars.Has("CMAKE_SYSTEM_VERSION"))
	assert.False(t, vars.Has("CMAKE_BUILD_TYPE"))
}

func TestBuildAbiCheckOnlyOnLinux(t *testing.T) {
	for _, family := range platform.GetOSTypes() {
		t.Run(family, func(t *testing.T) {
			plat := platform.MustNew(platform.WithOS(family))
			vars := build(t, map[string]string{"build_abi_check_tool": "True"}, plat)
			if family == string(platform.Linux) {
				assert.Equal(t, true, vars["BUILD_ABI_CHECK_TOOL"])
				return
			}
			assert.False(t, vars.Has("BUILD_ABI_CHECK_TOOL"))
		})
	}
}

func TestBuildWindows(t *testing.T) {
	plat := platform.MustNew(platform.WithOS("Windows"), platform.WithCompiler("clang-cl"), platform.WithBuildType("Release"))
	vars := build(t, nil, plat)

	assert.Equal(t, "10.0", vars["CMAKE_SYSTEM_VERSION"])
	assert.Equal(t, "Release", vars["CMAKE_BUILD_TYPE"])
	assert.False(t, vars.Has("CMAKE_POSITION_INDEPENDENT_CODE"), "fPIC is removed on Windows")
}

func TestBuildSharedDropsPositionIndependentCode(t *testing.T) {
	plat := platform.MustNew(platform.WithOS("Linux"))
	vars := build(t, map[string]string{"shared": "True"}, plat)

	assert.Equal(t, true, vars["BUILD_SHARED_LIBS"])
	assert.False(t, vars.Has("CMAKE_POSITION_INDEPENDENT_CODE"))
}

func TestBuildReflectsEveryComponentOption(t *testing.T) {
	rec, err := recipe.Default()
	require.NoError(t, err)
	plat := platform.MustNew(platform.WithOS("Linux"))

	for _, spec := range rec.Toolchain.Variables {
		if spec.Option == "" || spec.Option == "fPIC" {
			continue
		}
		for _, want := range []bool{true, false} {
			set, err := options.NewSet(rec.Options, map[string]string{spec.Option: recipe.FormatBool(want)})
			require.NoError(t, err)
			vars := Build(rec, options.Normalize(rec, set, plat), plat)
			assert.Equal(t, want, vars[spec.Name], "%s=%v", spec.Option, want)
		}
	}
}

func TestBuildNilInputs(t *testing.T) {
	assert.Empty(t, Build(nil, nil, platform.Descriptor{}))

	rec, err := recipe.Default()
	require.NoError(t, err)
	vars := Build(rec, nil, platform.MustNew(platform.WithOS("Linux")))
	assert.Equal(t, "17", vars["CMAKE_CXX_STANDARD"])
	assert.False(t, vars.Has("BUILD_SERVER"))
}

func TestVariablesNames(t *testing.T) {
	vars := Variables{"B": true, "A": "x", "C": false}
	assert.Equal(t, []string{"A", "B", "C"}, vars.Names())
}

func TestRenderCMake(t *testing.T) {
	vars := Variables{
		"BUILD_SERVER":       true,
		"BUILD_TESTS":        false,
		"CMAKE_CXX_STANDARD": "17",
		"QUOTED":             `a "b" $c`,
	}
	out := string(RenderCMake(vars))
	lines := strings.Split(strings.TrimSpace(out), "\n")

	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Equal(t, `set(BUILD_SERVER ON CACHE BOOL "" FORCE)`, lines[1])
	assert.Equal(t, `set(BUILD_TESTS OFF CACHE BOOL "" FORCE)`, lines[2])
	assert.Equal(t, `set(CMAKE_CXX_STANDARD "17" CACHE STRING "" FORCE)`, lines[3])
	assert.Equal(t, `set(QUOTED "a \"b\" \$c" CACHE STRING "" FORCE)`, lines[4])
}

func TestRenderCMakeIsDeterministic(t *testing.T) {
	plat := platform.MustNew(platform.WithOS("Linux"), platform.WithBuildType("Debug"))
	first := RenderCMake(build(t, nil, plat))
	second := RenderCMake(build(t, nil, plat))
	assert.True(t, bytes.Equal(first, second))
}
