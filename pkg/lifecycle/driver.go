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
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/native-recipe/pkg/defaults"
	"github.com/NVIDIA/native-recipe/pkg/dependency"
	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/NVIDIA/native-recipe/pkg/header"
	"github.com/NVIDIA/native-recipe/pkg/metadata"
	"github.com/NVIDIA/native-recipe/pkg/options"
	"github.com/NVIDIA/native-recipe/pkg/recipe"
	"github.com/NVIDIA/native-recipe/pkg/toolchain"
	"github.com/NVIDIA/native-recipe/pkg/validator"
)

// configurationNamespace seeds configuration IDs.
var configurationNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://nrc.nvidia.com/configuration"))

// Driver sequences a configuration run: normalize, validate, resolve,
// build toolchain variables and metadata, then hand off to the
// collaborators. A Driver holds no per-run state and is safe for
// concurrent use.
type Driver struct {
	version        string
	validator      *validator.Validator
	fetcher        Fetcher
	generator      Generator
	builder        Builder
	packager       Packager
	handoffTimeout time.Duration
}

// Option is a functional option for configuring Driver instances.
type Option func(*Driver)

// WithVersion sets the version stamped into generated documents.
func WithVersion(version string) Option {
	return func(d *Driver) {
		d.version = version
	}
}

// WithFetcher sets the dependency fetch collaborator.
func WithFetcher(f Fetcher) Option {
	return func(d *Driver) {
		d.fetcher = f
	}
}

// WithGenerator sets the build generator collaborator.
func WithGenerator(g Generator) Option {
	return func(d *Driver) {
		d.generator = g
	}
}

// WithBuilder sets the native build collaborator.
func WithBuilder(b Builder) Option {
	return func(d *Driver) {
		d.builder = b
	}
}

// WithPackager sets the packaging collaborator.
func WithPackager(p Packager) Option {
	return func(d *Driver) {
		d.packager = p
	}
}

// WithHandoffTimeout bounds each collaborator call. Zero disables the bound.
func WithHandoffTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.handoffTimeout = timeout
	}
}

// New creates a Driver with the provided options.
func New(opts ...Option) *Driver {
	d := &Driver{
		handoffTimeout: defaults.HandoffTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.validator = validator.New(validator.WithVersion(d.version))
	return d
}

// Plan computes the configuration for in without invoking any
// collaborator. When validation fails the ConfigurationError is returned
// and no configuration is produced.
func (d *Driver) Plan(ctx context.Context, in Input) (*Configuration, error) {
	start := time.Now()
	cfg, err := d.plan(ctx, in)
	planDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		recordRun(modePlan, err)
		return nil, err
	}
	recordRun(modePlan, nil)
	return cfg, nil
}

func (d *Driver) plan(ctx context.Context, in Input) (*Configuration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := in.Recipe
	if rec == nil {
		var err error
		if rec, err = recipe.Default(); err != nil {
			return nil, err
		}
	}
	plat := in.Platform

	raw, err := options.NewSet(rec.Options, in.Options)
	if err != nil {
		return nil, err
	}
	normalized := options.Normalize(rec, raw, plat)

	if err := d.validator.Validate(ctx, rec, normalized, plat); err != nil {
		return nil, err
	}

	reqs, err := dependency.Resolve(rec, normalized, in.Requires...)
	if err != nil {
		return nil, err
	}
	tools, err := dependency.ResolveTools(rec, plat)
	if err != nil {
		return nil, err
	}

	cfg := &Configuration{
		ID:             configurationID(rec, in, normalized),
		Recipe:         rec.Ref(),
		Platform:       plat,
		Options:        normalized,
		RemovedOptions: normalized.Removed(),
		Requirements:   reqs,
		Tools:          tools,
		Gaps:           dependency.Gaps(reqs),
		Variables:      toolchain.Build(rec, normalized, plat),
		Metadata:       metadata.Build(rec, plat, metadata.WithVersion(d.version)),
	}
	cfg.InitReproducible(header.KindConfiguration, header.APIVersion, d.version)

	for _, gap := range cfg.Gaps {
		unresolvedGaps.WithLabelValues(gap.Name).Inc()
		slog.Warn("requirement must be provisioned manually",
			"name", gap.Name,
			"option", gap.Option,
			"reason", gap.Reason)
	}
	if in.Strict {
		if err := dependency.GapError(reqs); err != nil {
			return nil, err
		}
	}

	slog.Debug("configuration planned",
		"id", cfg.ID,
		"recipe", cfg.Recipe,
		"platform", plat.String(),
		"requirements", len(reqs),
		"variables", len(cfg.Variables))

	return cfg, nil
}

// Run plans the configuration and hands it to the collaborators in order:
// fetch, generate, build, package. No collaborator is invoked when
// planning fails. Collaborators that were not configured are skipped.
func (d *Driver) Run(ctx context.Context, in Input) (*Configuration, error) {
	start := time.Now()
	cfg, err := d.plan(ctx, in)
	planDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		recordRun(modeRun, err)
		return nil, err
	}

	slog.Info("configuration run started", "id", cfg.ID, "recipe", cfg.Recipe, "platform", cfg.Platform.String())

	steps := []struct {
		name string
		set  bool
		call func(context.Context) error
	}{
		{"fetch", d.fetcher != nil, func(ctx context.Context) error {
			return d.fetcher.Fetch(ctx, cfg.Requirements, cfg.Tools)
		}},
		{"generate", d.generator != nil, func(ctx context.Context) error {
			return d.generator.Generate(ctx, cfg.Variables)
		}},
		{"build", d.builder != nil, func(ctx context.Context) error {
			return d.builder.Build(ctx, cfg)
		}},
		{"package", d.packager != nil, func(ctx context.Context) error {
			return d.packager.Package(ctx, cfg.Metadata)
		}},
	}

	for _, step := range steps {
		if !step.set {
			slog.Debug("handoff skipped, no collaborator", "stage", step.name)
			continue
		}
		if err := d.handoff(ctx, step.name, step.call); err != nil {
			recordRun(modeRun, err)
			return nil, err
		}
	}

	recordRun(modeRun, nil)
	slog.Info("configuration run completed", "id", cfg.ID, "duration", time.Since(start))
	return cfg, nil
}

func (d *Driver) handoff(ctx context.Context, stage string, call func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.handoffTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.handoffTimeout)
		defer cancel()
	}

	start := time.Now()
	slog.Info("handing off", "stage", stage)
	err := call(ctx)
	handoffDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	if err != nil {
		code := errors.ErrCodeInternal
		if ctx.Err() != nil {
			code = errors.ErrCodeTimeout
		}
		return errors.WrapWithContext(code, fmt.Sprintf("%s failed", stage), err,
			map[string]any{"stage": stage})
	}
	return nil
}

// configurationID derives a stable ID from everything that determines the
// configuration.
func configurationID(rec *recipe.Recipe, in Input, opts *options.Set) string {
	var b strings.Builder
	b.WriteString(rec.Ref())

	settings := in.Platform.Settings()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\x00%s=%s", k, settings[k])
	}
	for _, name := range opts.Names() {
		v, _ := opts.Get(name)
		fmt.Fprintf(&b, "\x00%s=%s", name, v.String())
	}
	for _, r := range in.Requires {
		fmt.Fprintf(&b, "\x00%s", r)
	}
	return uuid.NewSHA1(configurationNamespace, []byte(b.String())).String()
}
