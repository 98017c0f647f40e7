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
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/native-recipe/pkg/dependency"
	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/NVIDIA/native-recipe/pkg/header"
	"github.com/NVIDIA/native-recipe/pkg/metadata"
	"github.com/NVIDIA/native-recipe/pkg/platform"
	"github.com/NVIDIA/native-recipe/pkg/serializer"
	"github.com/NVIDIA/native-recipe/pkg/toolchain"
)

// recorder implements every collaborator and records the call order.
type recorder struct {
	mu    sync.Mutex
	calls []string
	fail  string
	reqs  []dependency.Requirement
	vars  toolchain.Variables
	meta  *metadata.PackageMetadata
}

func (r *recorder) record(stage string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, stage)
	if r.fail == stage {
		return stderrors.New(stage + " exploded")
	}
	return nil
}

func (r *recorder) Fetch(_ context.Context, reqs, _ []dependency.Requirement) error {
	r.reqs = reqs
	return r.record("fetch")
}

func (r *recorder) Generate(_ context.Context, vars toolchain.Variables) error {
	r.vars = vars
	return r.record("generate")
}

func (r *recorder) Build(_ context.Context, _ *Configuration) error {
	return r.record("build")
}

func (r *recorder) Package(_ context.Context, meta *metadata.PackageMetadata) error {
	r.meta = meta
	return r.record("package")
}

func newRecordingDriver(r *recorder) *Driver {
	return New(
		WithVersion("test"),
		WithFetcher(r),
		WithGenerator(r),
		WithBuilder(r),
		WithPackager(r),
	)
}

func linuxClang(t *testing.T) platform.Descriptor {
	t.Helper()
	return platform.MustNew(
		platform.WithOS("Linux"),
		platform.WithArch("x86_64"),
		platform.WithCompiler("clang"),
		platform.WithCompilerVersion("10"),
	)
}

func TestPlanAllComponentsOnLinux(t *testing.T) {
	in := Input{
		Platform: linuxClang(t),
		Options: map[string]string{
			"build_sqlite_component":  "True",
			"build_unicode_component": "True",
			"build_abi_check_tool":    "True",
		},
	}

	cfg, err := New(WithVersion("test")).Plan(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, header.KindConfiguration, cfg.Kind)
	assert.Equal(t, "openmp-server/1.4.0", cfg.Recipe)
	assert.Equal(t, []string{
		"nlohmann_json/3.11.3",
		"openssl/1.1.1w",
		"cxxopts/3.2.0",
		"sqlite3/3.47.0",
		"icu/75.1",
		"libelfin",
	}, dependency.Refs(cfg.Requirements))
	require.Len(t, cfg.Gaps, 1)
	assert.Equal(t, "libelfin", cfg.Gaps[0].Name)
	assert.True(t, cfg.HasGaps())
	assert.Equal(t, true, cfg.Variables["BUILD_ABI_CHECK_TOOL"])
	assert.Equal(t, []string{"pthread", "dl", "rt"}, cfg.Metadata.SystemLibs)
	assert.Len(t, cfg.Tools, 2)
	assert.NotEmpty(t, cfg.ID)
}

func TestPlanUnsupportedCompilerOnWindows(t *testing.T) {
	r := &recorder{}
	in := Input{
		Platform: platform.MustNew(
			platform.WithOS("Windows"),
			platform.WithCompiler("unsupported"),
			platform.WithCompilerVersion("1.0"),
		),
	}

	cfg, err := newRecordingDriver(r).Run(context.Background(), in)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Equal(t, errors.ErrCodeUnsupportedCompiler, errors.CodeOf(err))
	assert.Empty(t, r.calls, "no collaborator may run after a validation failure")
}

func TestPlanRejectsUnknownOption(t *testing.T) {
	_, err := New().Plan(context.Background(), Input{
		Platform: linuxClang(t),
		Options:  map[string]string{"no_such_option": "True"},
	})
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestPlanStrictGaps(t *testing.T) {
	in := Input{Platform: linuxClang(t), Strict: true}
	_, err := New().Plan(context.Background(), in)
	assert.Equal(t, errors.ErrCodeUnresolvableDependency, errors.CodeOf(err))

	in.Options = map[string]string{"build_abi_check_tool": "False"}
	cfg, err := New().Plan(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, cfg.HasGaps())
}

func TestPlanIsIdempotent(t *testing.T) {
	d := New()
	in := Input{
		Platform: platform.MustNew(platform.WithOS("Windows"), platform.WithCompiler("clang-cl"), platform.WithCompilerVersion("17")),
		Options:  map[string]string{"shared": "True", "build_unicode_component": "True"},
		Requires: []string{"zlib/1.3.1"},
	}

	first, err := d.Plan(context.Background(), in)
	require.NoError(t, err)
	second, err := d.Plan(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Requirements, second.Requirements)
	assert.Equal(t, first.Tools, second.Tools)
	assert.Equal(t, first.Variables, second.Variables)
	assert.Equal(t, toolchain.RenderCMake(first.Variables), toolchain.RenderCMake(second.Variables))
	assert.True(t, first.Options.Equal(second.Options))
	assert.Equal(t, first.Metadata.SystemLibs, second.Metadata.SystemLibs)

	// The whole document, header included, must serialize identically.
	firstJSON, err := serializer.Marshal(serializer.FormatJSON, first)
	require.NoError(t, err)
	secondJSON, err := serializer.Marshal(serializer.FormatJSON, second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
	firstYAML, err := serializer.Marshal(serializer.FormatYAML, first)
	require.NoError(t, err)
	secondYAML, err := serializer.Marshal(serializer.FormatYAML, second)
	require.NoError(t, err)
	assert.Equal(t, string(firstYAML), string(secondYAML))
	assert.NotContains(t, string(firstYAML), "timestamp")
}

func TestPlanIDDependsOnInputs(t *testing.T) {
	d := New()
	a, err := d.Plan(context.Background(), Input{Platform: linuxClang(t)})
	require.NoError(t, err)
	b, err := d.Plan(context.Background(), Input{Platform: linuxClang(t), Options: map[string]string{"shared": "True"}})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRunHandsOffInOrder(t *testing.T) {
	r := &recorder{}
	cfg, err := newRecordingDriver(r).Run(context.Background(), Input{Platform: linuxClang(t)})
	require.NoError(t, err)

	assert.Equal(t, []string{"fetch", "generate", "build", "package"}, r.calls)
	assert.Equal(t, cfg.Requirements, r.reqs)
	assert.Equal(t, cfg.Variables, r.vars)
	assert.Same(t, cfg.Metadata, r.meta)
}

func TestRunStopsAtFailingHandoff(t *testing.T) {
	r := &recorder{fail: "generate"}
	_, err := newRecordingDriver(r).Run(context.Background(), Input{Platform: linuxClang(t)})
	require.Error(t, err)

	assert.Equal(t, errors.ErrCodeInternal, errors.CodeOf(err))
	assert.Equal(t, []string{"fetch", "generate"}, r.calls)
	assert.Contains(t, err.Error(), "generate exploded")
}

type slowBuilder struct{}

func (slowBuilder) Build(ctx context.Context, _ *Configuration) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRunHandoffTimeout(t *testing.T) {
	d := New(WithBuilder(slowBuilder{}), WithHandoffTimeout(10*time.Millisecond))
	_, err := d.Run(context.Background(), Input{Platform: linuxClang(t)})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTimeout, errors.CodeOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunWithoutCollaborators(t *testing.T) {
	cfg, err := New().Run(context.Background(), Input{Platform: linuxClang(t)})
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestPlanCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Plan(ctx, Input{Platform: linuxClang(t)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, outcomeSuccess, outcome(nil))
	assert.Equal(t, outcomeRejected, outcome(errors.NewConfigurationError(errors.ErrCodeStandardTooLow, "compiler.cppstd", "14", "17")))
	assert.Equal(t, outcomeError, outcome(stderrors.New("boom")))
}
