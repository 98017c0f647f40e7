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

package lifecycle

import (
	"context"

	"github.com/NVIDIA/native-recipe/pkg/dependency"
	"github.com/NVIDIA/native-recipe/pkg/header"
	"github.com/NVIDIA/native-recipe/pkg/metadata"
	"github.com/NVIDIA/native-recipe/pkg/options"
	"github.com/NVIDIA/native-recipe/pkg/platform"
	"github.com/NVIDIA/native-recipe/pkg/recipe"
	"github.com/NVIDIA/native-recipe/pkg/toolchain"
)

// Fetcher obtains the requirements of a configuration. It receives the
// full ordered list, unresolvable markers included, and the tool
// requirements.
type Fetcher interface {
	Fetch(ctx context.Context, reqs, tools []dependency.Requirement) error
}

// Generator hands the toolchain variables to the build generator.
type Generator interface {
	Generate(ctx context.Context, vars toolchain.Variables) error
}

// Builder runs the native build of a configuration.
type Builder interface {
	Build(ctx context.Context, cfg *Configuration) error
}

// Packager exports the package metadata after a successful build.
type Packager interface {
	Package(ctx context.Context, meta *metadata.PackageMetadata) error
}

// Input is one configuration request.
type Input struct {
	// Name labels the run in logs and matrix results.
	Name string

	// Recipe is the package recipe. Nil selects the embedded default.
	Recipe *recipe.Recipe

	// Platform is the target platform.
	Platform platform.Descriptor

	// Options are raw caller option values merged over the recipe defaults.
	Options map[string]string

	// Requires are extra "name/version" requirements appended after the
	// recipe's own.
	Requires []string

	// Strict turns unresolvable requirements into an error.
	Strict bool
}

// Configuration is the fully resolved result of a configuration run: the
// inputs handed to the fetch, build generator and packaging collaborators.
type Configuration struct {
	header.Header `json:",inline" yaml:",inline"`

	// ID is derived from the inputs; identical inputs get the same ID.
	ID string `json:"id" yaml:"id"`

	Recipe   string              `json:"recipe" yaml:"recipe"`
	Platform platform.Descriptor `json:"platform" yaml:"platform"`

	// Options are the normalized option values.
	Options *options.Set `json:"options" yaml:"options"`

	// RemovedOptions lists options removed by normalization.
	RemovedOptions []string `json:"removedOptions,omitempty" yaml:"removedOptions,omitempty"`

	Requirements []dependency.Requirement `json:"requirements" yaml:"requirements"`
	Tools        []dependency.Requirement `json:"tools,omitempty" yaml:"tools,omitempty"`

	// Gaps are the requirements that must be provisioned manually.
	Gaps []dependency.Requirement `json:"gaps,omitempty" yaml:"gaps,omitempty"`

	Variables toolchain.Variables       `json:"variables" yaml:"variables"`
	Metadata  *metadata.PackageMetadata `json:"packageMetadata" yaml:"packageMetadata"`
}

// HasGaps reports whether any requirement is unresolvable.
func (c *Configuration) HasGaps() bool {
	return len(c.Gaps) > 0
}
