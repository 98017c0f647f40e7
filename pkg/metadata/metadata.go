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

package metadata

import (
	"github.com/NVIDIA/native-recipe/pkg/header"
	"github.com/NVIDIA/native-recipe/pkg/platform"
	"github.com/NVIDIA/native-recipe/pkg/recipe"
)

// FileName is the name of the metadata document in a bundle.
const FileName = "package-metadata.yaml"

// PackageMetadata is what a successful build exports to consumers.
type PackageMetadata struct {
	header.Header `json:",inline" yaml:",inline"`

	// Package is the recipe reference, e.g. "openmp-server/1.4.0".
	Package string `json:"package" yaml:"package"`

	// OS is the family the system libraries were selected for.
	OS string `json:"os,omitempty" yaml:"os,omitempty"`

	Libs       []string `json:"libs" yaml:"libs"`
	SystemLibs []string `json:"systemLibs" yaml:"systemLibs"`

	// FileName is the identifier used for file-based package lookup.
	FileName string `json:"cmake_file_name" yaml:"cmake_file_name"`

	// TargetName is the identifier used for link-target lookup.
	TargetName string `json:"cmake_target_name" yaml:"cmake_target_name"`
}

// Option configures Build.
type Option func(*PackageMetadata)

// WithVersion stamps the generator version into the document header.
func WithVersion(version string) Option {
	return func(m *PackageMetadata) {
		m.InitReproducible(header.KindPackageMetadata, header.APIVersion, version)
	}
}

// Build returns the package metadata for plat. System libraries come from
// the recipe table for the platform's OS family; unknown families get an
// empty list. Build never fails.
func Build(rec *recipe.Recipe, plat platform.Descriptor, opts ...Option) *PackageMetadata {
	m := &PackageMetadata{
		Libs:       []string{},
		SystemLibs: []string{},
	}
	m.InitReproducible(header.KindPackageMetadata, header.APIVersion, "")
	for _, opt := range opts {
		opt(m)
	}
	if rec == nil {
		return m
	}

	m.Package = rec.Ref()
	m.OS = plat.OS().String()
	m.Libs = append(m.Libs, rec.PackageInfo.Libs...)
	m.SystemLibs = append(m.SystemLibs, rec.PackageInfo.SystemLibsFor(plat.OS())...)
	m.FileName = rec.PackageInfo.Identifiers.FileName
	m.TargetName = rec.PackageInfo.Identifiers.TargetName
	return m
}
