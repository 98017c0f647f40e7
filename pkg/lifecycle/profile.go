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
	"fmt"
	"maps"

	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/NVIDIA/native-recipe/pkg/platform"
	"github.com/NVIDIA/native-recipe/pkg/recipe"
	"github.com/NVIDIA/native-recipe/pkg/serializer"
)

// Profile is the file and request-body form of an Input.
//
//	recipe: openmp-server
//	settings:
//	  os: Linux
//	  compiler: clang
//	  compiler.version: "14"
//	options:
//	  shared: "True"
//	requires:
//	  - zlib/1.3.1
type Profile struct {
	// Recipe is an embedded recipe name, a file path or a URL. Empty
	// selects the default recipe.
	Recipe   string            `json:"recipe,omitempty" yaml:"recipe,omitempty"`
	Settings map[string]string `json:"settings,omitempty" yaml:"settings,omitempty"`
	Options  map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
	Requires []string          `json:"requires,omitempty" yaml:"requires,omitempty"`
	Strict   bool              `json:"strict,omitempty" yaml:"strict,omitempty"`
}

// LoadProfile reads a profile from a YAML or JSON file or URL.
func LoadProfile(ctx context.Context, path string) (*Profile, error) {
	p, err := serializer.FromFile[Profile](ctx, path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("failed to load profile %s", path), err)
	}
	return p, nil
}

// Merge returns a profile with override's values layered over p. Maps are
// merged key by key; requires are appended.
func (p Profile) Merge(override Profile) Profile {
	out := Profile{
		Recipe:   p.Recipe,
		Settings: make(map[string]string, len(p.Settings)+len(override.Settings)),
		Options:  make(map[string]string, len(p.Options)+len(override.Options)),
		Requires: append(append([]string{}, p.Requires...), override.Requires...),
		Strict:   p.Strict || override.Strict,
	}
	if override.Recipe != "" {
		out.Recipe = override.Recipe
	}
	maps.Copy(out.Settings, p.Settings)
	maps.Copy(out.Settings, override.Settings)
	maps.Copy(out.Options, p.Options)
	maps.Copy(out.Options, override.Options)
	return out
}

// Input resolves the profile's recipe and platform into an Input.
func (p Profile) Input(ctx context.Context) (Input, error) {
	rec, err := recipe.Resolve(ctx, p.Recipe)
	if err != nil {
		return Input{}, err
	}
	plat, err := platform.FromSettings(p.Settings)
	if err != nil {
		return Input{}, err
	}
	return Input{
		Recipe:   rec,
		Platform: plat,
		Options:  p.Options,
		Requires: p.Requires,
		Strict:   p.Strict,
	}, nil
}
