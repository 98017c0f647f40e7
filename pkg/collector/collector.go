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

package collector

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/NVIDIA/native-recipe/pkg/defaults"
	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/NVIDIA/native-recipe/pkg/platform"
)

// Runner runs a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Collector probes the host compiler.
type Collector struct {
	compiler string
	timeout  time.Duration
	run      Runner
	detect   func() platform.Descriptor
}

// Option configures a Collector.
type Option func(*Collector)

// WithCompiler sets the compiler executable to probe. Defaults to CC, then
// the platform default (cc, or clang on macOS).
func WithCompiler(path string) Option {
	return func(c *Collector) {
		c.compiler = path
	}
}

// WithTimeout bounds a single probe.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Collector) {
		c.timeout = timeout
	}
}

// WithRunner replaces command execution.
func WithRunner(run Runner) Option {
	return func(c *Collector) {
		c.run = run
	}
}

// WithDetector replaces platform.Detect as the starting descriptor.
func WithDetector(detect func() platform.Descriptor) Option {
	return func(c *Collector) {
		c.detect = detect
	}
}

// New creates a Collector.
func New(opts ...Option) *Collector {
	c := &Collector{
		timeout: defaults.CompilerProbeTimeout,
		run:     runCommand,
		detect:  platform.Detect,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect returns the host descriptor refined with the probed compiler.
// On failure the unrefined descriptor is returned with the error.
func (c *Collector) Collect(ctx context.Context) (platform.Descriptor, error) {
	host := c.detect()

	exe := c.executable(host.OS())
	if exe == "" {
		return host, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.run(ctx, exe, "--version")
	if err != nil {
		return host, errors.Wrap(errors.ErrCodeUnavailable, fmt.Sprintf("failed to run %s --version", exe), err)
	}

	found, ok := ParseCompiler(string(out))
	if !ok {
		return host, errors.New(errors.ErrCodeUnavailable, fmt.Sprintf("unrecognized compiler banner from %s", exe))
	}

	probed, err := platform.New(
		platform.WithCompiler(found.ID),
		platform.WithCompilerVersion(found.Version),
	)
	if err != nil {
		return host, err
	}

	slog.Debug("compiler probed", "executable", exe, "compiler", found.ID, "version", found.Version)
	return host.Merge(probed), nil
}

func (c *Collector) executable(family platform.OS) string {
	exe := c.compiler
	if exe == "" {
		exe = strings.TrimSpace(os.Getenv(platform.EnvCompiler))
	}
	if exe == "" {
		switch {
		case family.Is(platform.Windows):
			return ""
		case family.Is(platform.Macos):
			exe = "clang"
		default:
			exe = "cc"
		}
	}
	exe = platform.CompilerExecutable(exe)
	base := strings.ToLower(exe[strings.LastIndexAny(exe, `/\`)+1:])
	if base == "cl" || base == "cl.exe" {
		return ""
	}
	return exe
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, err
	}
	return exec.CommandContext(ctx, path, args...).CombinedOutput()
}
