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

package bundler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/NVIDIA/native-recipe/pkg/bundler/checksum"
	"github.com/NVIDIA/native-recipe/pkg/dependency"
	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/NVIDIA/native-recipe/pkg/metadata"
	"github.com/NVIDIA/native-recipe/pkg/serializer"
	"github.com/NVIDIA/native-recipe/pkg/toolchain"
)

// Bundle file names.
const (
	RequirementsFileName  = "requirements.yaml"
	ToolchainJSONFileName = "toolchain.json"
	ConfigurationFileName = "configuration.yaml"
)

// Bundler writes the artifacts of a configuration run into a directory:
// the fetch manifest, the toolchain files and the package metadata. It
// implements the lifecycle Fetcher, Generator and Packager collaborators.
//
// Thread-safety: Bundler is safe for concurrent use, but one bundle
// directory should only receive one configuration.
type Bundler struct {
	dir     string
	version string
	start   time.Time

	mu    sync.Mutex
	files map[string]int64
}

// Option defines a functional option for configuring Bundler.
type Option func(*Bundler)

// WithVersion sets the generator version written into bundle documents.
func WithVersion(version string) Option {
	return func(b *Bundler) {
		b.version = version
	}
}

// New creates a Bundler writing into dir. The directory is created on the
// first write, so a run rejected during planning leaves nothing behind.
func New(dir string, opts ...Option) (*Bundler, error) {
	if dir == "" {
		dir = "."
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("output %s is not a directory", dir))
	}
	b := &Bundler{
		dir:   dir,
		start: time.Now(),
		files: make(map[string]int64),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Dir returns the bundle directory.
func (b *Bundler) Dir() string {
	return b.dir
}

// Manifest is the fetch manifest: what the dependency fetcher must obtain
// and what has to be provisioned by hand.
type Manifest struct {
	Requires     []string           `json:"requires" yaml:"requires"`
	ToolRequires []string           `json:"tool_requires,omitempty" yaml:"tool_requires,omitempty"`
	Manual       []ManualDependency `json:"manual,omitempty" yaml:"manual,omitempty"`
}

// ManualDependency is an unresolvable requirement.
type ManualDependency struct {
	Name   string `json:"name" yaml:"name"`
	Option string `json:"option,omitempty" yaml:"option,omitempty"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// NewManifest splits reqs into fetchable references and manual entries.
func NewManifest(reqs, tools []dependency.Requirement) Manifest {
	m := Manifest{
		Requires:     dependency.Refs(dependency.Resolved(reqs)),
		ToolRequires: dependency.Refs(tools),
	}
	for _, gap := range dependency.Gaps(reqs) {
		m.Manual = append(m.Manual, ManualDependency{
			Name:   gap.Name,
			Option: gap.Option,
			Reason: gap.Reason,
		})
	}
	return m
}

// Fetch writes requirements.yaml.
func (b *Bundler) Fetch(ctx context.Context, reqs, tools []dependency.Requirement) error {
	return b.WriteDocument(ctx, RequirementsFileName, NewManifest(reqs, tools))
}

// Generate writes the CMake toolchain file and its JSON form.
func (b *Bundler) Generate(ctx context.Context, vars toolchain.Variables) error {
	if err := b.writeFile(ctx, toolchain.CMakeFileName, toolchain.RenderCMake(vars)); err != nil {
		return err
	}
	return b.WriteDocument(ctx, ToolchainJSONFileName, vars)
}

// Package writes package-metadata.yaml.
func (b *Bundler) Package(ctx context.Context, meta *metadata.PackageMetadata) error {
	if meta == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "package metadata is required")
	}
	return b.WriteDocument(ctx, metadata.FileName, meta)
}

// WriteDocument serializes doc into the bundle, picking JSON or YAML from
// the file extension.
func (b *Bundler) WriteDocument(ctx context.Context, name string, doc any) error {
	format := serializer.FormatFromPath(name)
	data, err := serializer.Marshal(format, doc)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to serialize %s", name), err)
	}
	return b.writeFile(ctx, name, data)
}

func (b *Bundler) writeFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.ensureDir(); err != nil {
		return err
	}
	path := filepath.Join(b.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to write %s", name), err)
	}

	b.mu.Lock()
	b.files[path] = int64(len(data))
	b.mu.Unlock()

	slog.Debug("wrote bundle file", "path", path, "size_bytes", len(data))
	return nil
}

func (b *Bundler) ensureDir() error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to create output directory", err)
	}
	return nil
}

// Finalize writes checksums.txt for every file written so far and returns
// the bundle summary.
func (b *Bundler) Finalize(ctx context.Context) (*Output, error) {
	b.mu.Lock()
	paths := make([]string, 0, len(b.files))
	var total int64
	for p, size := range b.files {
		paths = append(paths, p)
		total += size
	}
	b.mu.Unlock()
	sort.Strings(paths)

	if err := b.ensureDir(); err != nil {
		return nil, err
	}
	if err := checksum.GenerateChecksums(ctx, b.dir, paths); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to generate checksums", err)
	}

	out := &Output{
		OutputDir:     b.dir,
		Files:         make([]string, 0, len(paths)+1),
		TotalSize:     total,
		TotalDuration: time.Since(b.start),
	}
	for _, p := range paths {
		rel, err := filepath.Rel(b.dir, p)
		if err != nil {
			rel = p
		}
		out.Files = append(out.Files, filepath.ToSlash(rel))
	}
	out.Files = append(out.Files, checksum.ChecksumFileName)
	out.TotalFiles = len(out.Files)

	slog.Debug("bundle finalized",
		"dir", b.dir,
		"files", out.TotalFiles,
		"size_bytes", out.TotalSize)
	return out, nil
}
