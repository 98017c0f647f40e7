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

package recipe

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"sync"

	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/NVIDIA/native-recipe/pkg/serializer"
)

// DefaultName is the package name of the recipe returned by Default.
const DefaultName = "openmp-server"

//go:embed data/*.yaml
var recipeFS embed.FS

var (
	storeOnce   sync.Once
	cachedStore map[string]*Recipe
	cachedErr   error
)

// loadStore parses and validates every embedded recipe once.
func loadStore() (map[string]*Recipe, error) {
	hit := true
	storeOnce.Do(func() {
		hit = false
		recipeCacheMisses.Inc()

		store := make(map[string]*Recipe)
		cachedErr = fs.WalkDir(recipeFS, "data", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || path.Ext(p) != ".yaml" {
				return nil
			}
			content, readErr := recipeFS.ReadFile(p)
			if readErr != nil {
				return fmt.Errorf("failed to read %s: %w", p, readErr)
			}
			r, parseErr := serializer.FromBytes[Recipe](serializer.FormatYAML, content)
			if parseErr != nil {
				return fmt.Errorf("failed to parse %s: %w", p, parseErr)
			}
			if vErr := r.Validate(); vErr != nil {
				return fmt.Errorf("embedded recipe %s: %w", p, vErr)
			}
			store[r.Package.Name] = r
			return nil
		})
		if cachedErr != nil {
			cachedErr = errors.Wrap(errors.ErrCodeInternal, "failed to load embedded recipes", cachedErr)
			return
		}
		cachedStore = store
		slog.Debug("embedded recipes loaded", "count", len(store))
	})
	if hit {
		recipeCacheHits.Inc()
	}
	return cachedStore, cachedErr
}

// Default returns the embedded openmp-server recipe.
func Default() (*Recipe, error) {
	return Get(DefaultName)
}

// Get returns the embedded recipe for a package name.
func Get(name string) (*Recipe, error) {
	store, err := loadStore()
	if err != nil {
		return nil, err
	}
	r, ok := store[name]
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("no embedded recipe for package %q", name),
			map[string]any{"package": name, "available": List()})
	}
	return r, nil
}

// List returns the package names of all embedded recipes, sorted.
func List() []string {
	store, err := loadStore()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(store))
	for name := range store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads a recipe from a YAML or JSON file or an http(s) URL and
// validates it.
func Load(ctx context.Context, source string) (*Recipe, error) {
	r, err := serializer.FromFile[Recipe](ctx, source)
	if err != nil {
		recipeLoadErrors.Inc()
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("failed to load recipe %s", source), err)
	}
	if err := r.Validate(); err != nil {
		recipeLoadErrors.Inc()
		return nil, err
	}
	slog.Debug("recipe loaded", "source", source, "ref", r.Ref())
	return r, nil
}

// Resolve returns the recipe named by source: an embedded package name, a
// file path or a URL. An empty source selects the default recipe.
func Resolve(ctx context.Context, source string) (*Recipe, error) {
	if source == "" {
		return Default()
	}
	if store, err := loadStore(); err == nil {
		if r, ok := store[source]; ok {
			return r, nil
		}
	}
	return Load(ctx, source)
}
