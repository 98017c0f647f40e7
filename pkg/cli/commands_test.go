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

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/native-recipe/pkg/bundler"
	"github.com/NVIDIA/native-recipe/pkg/bundler/checksum"
	"github.com/NVIDIA/native-recipe/pkg/defaults"
	"github.com/NVIDIA/native-recipe/pkg/metadata"
	"github.com/NVIDIA/native-recipe/pkg/toolchain"
)

var linuxClang = []string{
	"--os", "Linux",
	"--arch", "x86_64",
	"--compiler", "clang",
	"--compiler-version", "14",
	"--cppstd", "17",
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	return newRootCmd().Run(context.Background(), append([]string{name}, args...))
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc), string(data))
	return doc
}

func args(cmd string, extra ...string) []string {
	out := append([]string{cmd}, linuxClang...)
	return append(out, extra...)
}

func TestRecipeCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "recipe.json")
	require.NoError(t, run(t, "recipe", "-t", "json", "-o", out))

	doc := readJSON(t, out)
	pkg, ok := doc["package"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "openmp-server", pkg["name"])
	assert.Equal(t, "1.4.0", pkg["version"])
}

func TestRecipeCommandUnknownRecipe(t *testing.T) {
	err := run(t, "recipe", "--recipe", "no-such-recipe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load recipe")
}

func TestValidateCommand(t *testing.T) {
	t.Run("pass", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "result.json")
		require.NoError(t, run(t, args("validate", "-t", "json", "-o", out)...))

		doc := readJSON(t, out)
		summary := doc["summary"].(map[string]any)
		assert.Equal(t, "pass", summary["status"])
		assert.EqualValues(t, 3, summary["total"])
	})

	t.Run("fail still writes the report", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "result.json")
		err := run(t, "validate",
			"--os", "Linux", "--compiler", "gcc", "--compiler-version", "13", "--cppstd", "17",
			"-t", "json", "-o", out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")

		doc := readJSON(t, out)
		assert.EqualValues(t, 1, doc["summary"].(map[string]any)["failed"])
	})

	t.Run("invalid option value", func(t *testing.T) {
		err := run(t, args("validate", "-O", "shared=maybe")...)
		require.Error(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := run(t, args("validate", "-t", "xml")...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown output format")
	})
}

func TestDepsCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deps.json")
	require.NoError(t, run(t, args("deps", "-t", "json", "-o", out,
		"-O", "build_unicode_component=True", "--require", "zlib/1.3.1")...))

	doc := readJSON(t, out)
	requires := doc["requires"].([]any)
	require.NotEmpty(t, requires)
	assert.Equal(t, "nlohmann_json/3.11.3", requires[0])
	assert.Contains(t, requires, "icu/75.1")
	assert.Equal(t, "zlib/1.3.1", requires[len(requires)-1])

	manual := doc["manual"].([]any)
	require.Len(t, manual, 1)
	assert.Equal(t, "libelfin", manual[0].(map[string]any)["name"])
}

func TestDepsCommandStrict(t *testing.T) {
	err := run(t, args("deps", "--strict")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "libelfin")
}

func TestDepsCommandRejectsPlatform(t *testing.T) {
	err := run(t, "deps", "--os", "Linux", "--compiler", "clang", "--compiler-version", "14", "--cppstd", "14")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STANDARD_TOO_LOW")
}

func TestToolchainCommand(t *testing.T) {
	t.Run("variables", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "vars.json")
		require.NoError(t, run(t, args("toolchain", "-t", "json", "-o", out)...))

		doc := readJSON(t, out)
		assert.Equal(t, true, doc["BUILD_SERVER"])
		assert.Equal(t, true, doc["BUILD_ABI_CHECK_TOOL"])
		assert.NotContains(t, doc, "CMAKE_SYSTEM_VERSION")
	})

	t.Run("cmake", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), toolchain.CMakeFileName)
		require.NoError(t, run(t, args("toolchain", "--cmake", "-o", out)...))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), `set(BUILD_SERVER ON CACHE BOOL "" FORCE)`)
		assert.Contains(t, string(data), `set(CMAKE_CXX_STANDARD "17" CACHE STRING "" FORCE)`)
	})
}

func TestMetadataCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "meta.json")
	require.NoError(t, run(t, args("metadata", "-t", "json", "-o", out)...))

	doc := readJSON(t, out)
	assert.Equal(t, "OpenMP", doc["cmake_file_name"])
	assert.Equal(t, []any{"pthread", "dl", "rt"}, doc["systemLibs"])
}

func TestConfigureCommand(t *testing.T) {
	t.Run("bundle", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "bundle")
		require.NoError(t, run(t, args("configure", "--output", dir)...))

		for _, f := range []string{
			bundler.RequirementsFileName,
			bundler.ToolchainJSONFileName,
			bundler.ConfigurationFileName,
			toolchain.CMakeFileName,
			metadata.FileName,
			checksum.ChecksumFileName,
		} {
			assert.FileExists(t, filepath.Join(dir, f))
		}

		sums, err := os.ReadFile(filepath.Join(dir, checksum.ChecksumFileName))
		require.NoError(t, err)
		assert.Contains(t, string(sums), bundler.ConfigurationFileName)
		assert.False(t, strings.Contains(string(sums), checksum.ChecksumFileName))
	})

	t.Run("rejected platform writes nothing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "bundle")
		err := run(t, "configure", "--os", "Linux", "--compiler", "gcc", "--compiler-version", "13",
			"--cppstd", "17", "--output", dir)
		require.Error(t, err)
		assert.NoDirExists(t, dir)
	})

	t.Run("invalid oci reference", func(t *testing.T) {
		err := run(t, args("configure", "--output", "oci://Invalid/Repo")...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid OCI reference")
	})
}

const matrixYAML = `concurrency: 2
entries:
  - name: linux-clang
    settings:
      os: Linux
      compiler: clang
      compiler.version: "14"
      compiler.cppstd: "17"
  - name: windows-clang-cl
    settings:
      os: Windows
      compiler: clang-cl
      compiler.cppstd: "17"
`

func TestMatrixCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "matrix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(matrixYAML), 0o600))

	t.Run("all ok", func(t *testing.T) {
		out := filepath.Join(dir, "report.json")
		require.NoError(t, run(t, "matrix", "--matrix", path, "-t", "json", "-o", out))

		doc := readJSON(t, out)
		summary := doc["summary"].(map[string]any)
		assert.EqualValues(t, 2, summary["total"])
		assert.EqualValues(t, 2, summary["succeeded"])

		results := doc["results"].([]any)
		assert.Equal(t, "linux-clang", results[0].(map[string]any)["name"])
		assert.Equal(t, "windows-clang-cl", results[1].(map[string]any)["name"])
	})

	t.Run("rejected entry fails the run", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		content := matrixYAML + `  - name: linux-gcc
    settings:
      os: Linux
      compiler: gcc
      compiler.version: "13"
`
		require.NoError(t, os.WriteFile(bad, []byte(content), 0o600))

		out := filepath.Join(dir, "bad-report.json")
		err := run(t, "matrix", "--matrix", bad, "--concurrency", "1", "-t", "json", "-o", out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 rejected")

		doc := readJSON(t, out)
		assert.EqualValues(t, 2, doc["summary"].(map[string]any)["succeeded"])
	})

	t.Run("missing matrix flag", func(t *testing.T) {
		require.Error(t, run(t, "matrix"))
	})

	t.Run("concurrency usage names the default", func(t *testing.T) {
		var usage string
		for _, f := range matrixCmd().Flags {
			if intFlag, ok := f.(*cli.IntFlag); ok && intFlag.Name == "concurrency" {
				usage = intFlag.Usage
			}
		}
		assert.Contains(t, usage, fmt.Sprintf("then %d", defaults.MatrixConcurrency))
		assert.NotContains(t, usage, "CPU")
	})
}
