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
	"fmt"
	"io"
	"strings"
)

// CMakeFileName is the name of the generated CMake toolchain file.
const CMakeFileName = "conan_toolchain.cmake"

var cmakeEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)

// WriteCMake renders vars as a CMake toolchain file, one cache entry per
// variable in name order. Booleans become ON/OFF BOOL entries, everything
// else a quoted STRING entry.
func WriteCMake(w io.Writer, vars Variables) error {
	if _, err := fmt.Fprintln(w, "# Generated by nrc. Do not edit."); err != nil {
		return err
	}
	for _, name := range vars.Names() {
		if _, err := fmt.Fprintln(w, cmakeLine(name, vars[name])); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

// RenderCMake returns the CMake toolchain file for vars.
func RenderCMake(vars Variables) []byte {
	var buf bytes.Buffer
	// bytes.Buffer writes do not fail
	_ = WriteCMake(&buf, vars)
	return buf.Bytes()
}

func cmakeLine(name string, value any) string {
	if b, ok := value.(bool); ok {
		state := "OFF"
		if b {
			state = "ON"
		}
		return fmt.Sprintf(`set(%s %s CACHE BOOL "" FORCE)`, name, state)
	}
	return fmt.Sprintf(`set(%s "%s" CACHE STRING "" FORCE)`, name, cmakeEscaper.Replace(fmt.Sprint(value)))
}
