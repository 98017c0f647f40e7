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
	"fmt"
	"strings"

	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/NVIDIA/native-recipe/pkg/version"
	"gopkg.in/yaml.v3"
)

// Setting keys used by profiles and the HTTP API.
const (
	SettingOS              = "os"
	SettingArch            = "arch"
	SettingCompiler        = "compiler"
	SettingCompilerVersion = "compiler.version"
	SettingCompilerCppstd  = "compiler.cppstd"
	SettingBuildType       = "build_type"
)

// Descriptor is the immutable set of facts about the build target.
// It is created once per configuration run and passed by value.
type Descriptor struct {
	os              OS
	arch            string
	compiler        string
	compilerVersion *version.Version
	standard        *version.Standard
	buildType       BuildType
}

// Option configures a Descriptor under construction.
type Option func(*builder) error

type builder struct {
	d Descriptor
}

// WithOS sets the operating system family.
func WithOS(family string) Option {
	return func(b *builder) error {
		parsed, err := ParseOS(family)
		if err != nil {
			return err
		}
		b.d.os = parsed
		return nil
	}
}

// WithArch sets the architecture.
func WithArch(arch string) Option {
	return func(b *builder) error {
		b.d.arch = NormalizeArch(arch)
		return nil
	}
}

// WithCompiler sets the compiler identity (e.g. "clang", "Visual Studio").
func WithCompiler(id string) Option {
	return func(b *builder) error {
		b.d.compiler = strings.TrimSpace(id)
		return nil
	}
}

// WithCompilerVersion sets the compiler version. An empty string leaves it unset.
func WithCompilerVersion(v string) Option {
	return func(b *builder) error {
		if strings.TrimSpace(v) == "" {
			b.d.compilerVersion = nil
			return nil
		}
		parsed, err := version.ParseVersion(v)
		if err != nil {
			return fmt.Errorf("invalid compiler version %q: %w", v, err)
		}
		b.d.compilerVersion = &parsed
		return nil
	}
}

// WithStandard sets the declared language standard. An empty string leaves it unset.
func WithStandard(s string) Option {
	return func(b *builder) error {
		if strings.TrimSpace(s) == "" {
			b.d.standard = nil
			return nil
		}
		parsed, err := version.ParseStandard(s)
		if err != nil {
			return err
		}
		b.d.standard = &parsed
		return nil
	}
}

// WithBuildType sets the build configuration.
func WithBuildType(bt string) Option {
	return func(b *builder) error {
		parsed, err := ParseBuildType(bt)
		if err != nil {
			return err
		}
		b.d.buildType = parsed
		return nil
	}
}

// New builds a Descriptor. Invalid values are reported as INVALID_REQUEST.
func New(opts ...Option) (Descriptor, error) {
	b := &builder{}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return Descriptor{}, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid platform", err)
		}
	}
	return b.d, nil
}

// MustNew is like New but panics on error. Intended for tests and tables.
func MustNew(opts ...Option) Descriptor {
	d, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// FromSettings builds a Descriptor from settings keys (os, arch, compiler,
// compiler.version, compiler.cppstd, build_type). Unknown keys are rejected.
func FromSettings(settings map[string]string) (Descriptor, error) {
	opts := make([]Option, 0, len(settings))
	for key, value := range settings {
		switch key {
		case SettingOS:
			opts = append(opts, WithOS(value))
		case SettingArch:
			opts = append(opts, WithArch(value))
		case SettingCompiler:
			opts = append(opts, WithCompiler(value))
		case SettingCompilerVersion:
			opts = append(opts, WithCompilerVersion(value))
		case SettingCompilerCppstd:
			opts = append(opts, WithStandard(value))
		case SettingBuildType:
			opts = append(opts, WithBuildType(value))
		default:
			return Descriptor{}, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("unknown setting %q", key), map[string]any{"setting": key})
		}
	}
	return New(opts...)
}

// Merge returns a copy of d with every field set in override replacing
// the corresponding field of d.
func (d Descriptor) Merge(override Descriptor) Descriptor {
	out := d
	if override.os != OSUnknown {
		out.os = override.os
	}
	if override.arch != "" {
		out.arch = override.arch
	}
	if override.compiler != "" {
		out.compiler = override.compiler
		out.compilerVersion = override.compilerVersion
	}
	if override.compilerVersion != nil {
		out.compilerVersion = override.compilerVersion
	}
	if override.standard != nil {
		out.standard = override.standard
	}
	if override.buildType != BuildTypeUnset {
		out.buildType = override.buildType
	}
	return out
}

// OS returns the operating system family.
func (d Descriptor) OS() OS { return d.os }

// Arch returns the architecture.
func (d Descriptor) Arch() string { return d.arch }

// Compiler returns the compiler identity.
func (d Descriptor) Compiler() string { return d.compiler }

// CompilerVersion returns the compiler version and whether it is set.
func (d Descriptor) CompilerVersion() (version.Version, bool) {
	if d.compilerVersion == nil {
		return version.Version{}, false
	}
	return *d.compilerVersion, true
}

// Standard returns the declared language standard and whether it is set.
func (d Descriptor) Standard() (version.Standard, bool) {
	if d.standard == nil {
		return version.Standard{}, false
	}
	return *d.standard, true
}

// BuildType returns the build configuration.
func (d Descriptor) BuildType() BuildType { return d.buildType }

// Settings returns the descriptor as settings keys. Unset fields are omitted.
func (d Descriptor) Settings() map[string]string {
	out := make(map[string]string)
	if d.os != OSUnknown {
		out[SettingOS] = string(d.os)
	}
	if d.arch != "" {
		out[SettingArch] = d.arch
	}
	if d.compiler != "" {
		out[SettingCompiler] = d.compiler
	}
	if d.compilerVersion != nil {
		out[SettingCompilerVersion] = d.compilerVersion.String()
	}
	if d.standard != nil {
		out[SettingCompilerCppstd] = d.standard.String()
	}
	if d.buildType != BuildTypeUnset {
		out[SettingBuildType] = string(d.buildType)
	}
	return out
}

// String renders the descriptor compactly, e.g. "Linux-x86_64-clang-14".
func (d Descriptor) String() string {
	parts := []string{string(d.os), d.arch, d.compiler}
	if d.compilerVersion != nil {
		parts = append(parts, d.compilerVersion.String())
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "<unset>"
	}
	return strings.Join(out, "-")
}

// MarshalYAML encodes the descriptor as its settings map.
func (d Descriptor) MarshalYAML() (any, error) {
	return d.Settings(), nil
}

// UnmarshalYAML decodes the descriptor from a settings map.
func (d *Descriptor) UnmarshalYAML(node *yaml.Node) error {
	var settings map[string]string
	if err := node.Decode(&settings); err != nil {
		return err
	}
	return d.fromSettings(settings)
}

// MarshalJSON encodes the descriptor as its settings map.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Settings())
}

// UnmarshalJSON decodes the descriptor from a settings map.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var settings map[string]string
	if err := json.Unmarshal(data, &settings); err != nil {
		return err
	}
	return d.fromSettings(settings)
}

func (d *Descriptor) fromSettings(settings map[string]string) error {
	parsed, err := FromSettings(settings)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
