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
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/native-recipe/pkg/defaults"
	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/NVIDIA/native-recipe/pkg/header"
	"github.com/NVIDIA/native-recipe/pkg/serializer"
)

// Matrix describes a set of independent configuration runs, typically one
// per CI target platform. Entries inherit the matrix-level recipe, options
// and requires.
//
//	concurrency: 4
//	options:
//	  build_unicode_component: "True"
//	entries:
//	  - name: linux-clang
//	    settings: {os: Linux, compiler: clang, compiler.version: "14"}
//	  - name: windows-clang-cl
//	    settings: {os: Windows, compiler: clang-cl}
type Matrix struct {
	Profile     `json:",inline" yaml:",inline"`
	Concurrency int           `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	Entries     []MatrixEntry `json:"entries" yaml:"entries"`
}

// MatrixEntry is one run of a Matrix.
type MatrixEntry struct {
	Name    string `json:"name" yaml:"name"`
	Profile `json:",inline" yaml:",inline"`
}

// LoadMatrix reads a matrix from a YAML or JSON file or URL.
func LoadMatrix(ctx context.Context, path string) (*Matrix, error) {
	m, err := serializer.FromFile[Matrix](ctx, path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, fmt.Sprintf("failed to load matrix %s", path), err)
	}
	if len(m.Entries) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("matrix %s has no entries", path))
	}
	return m, nil
}

// Inputs resolves every entry into an Input, in entry order.
func (m *Matrix) Inputs(ctx context.Context) ([]Input, error) {
	inputs := make([]Input, 0, len(m.Entries))
	for i, e := range m.Entries {
		in, err := m.Profile.Merge(e.Profile).Input(ctx)
		if err != nil {
			return nil, fmt.Errorf("matrix entry %d (%s): %w", i, e.Name, err)
		}
		in.Name = e.Name
		if in.Name == "" {
			in.Name = in.Platform.String()
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// MatrixStatus is the outcome of one matrix entry.
type MatrixStatus string

// MatrixStatus constants.
const (
	MatrixStatusOK       MatrixStatus = "ok"
	MatrixStatusRejected MatrixStatus = "rejected"
	MatrixStatusError    MatrixStatus = "error"
)

// MatrixResult is the report of a matrix run. Results are in input order.
type MatrixResult struct {
	header.Header `json:",inline" yaml:",inline"`

	Summary MatrixSummary   `json:"summary" yaml:"summary"`
	Results []MatrixOutcome `json:"results" yaml:"results"`
}

// MatrixSummary counts matrix outcomes.
type MatrixSummary struct {
	Total     int           `json:"total" yaml:"total"`
	Succeeded int           `json:"succeeded" yaml:"succeeded"`
	Rejected  int           `json:"rejected" yaml:"rejected"`
	Failed    int           `json:"failed" yaml:"failed"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// MatrixOutcome is the result of one entry: a configuration or an error.
type MatrixOutcome struct {
	Name          string         `json:"name" yaml:"name"`
	Platform      string         `json:"platform" yaml:"platform"`
	Status        MatrixStatus   `json:"status" yaml:"status"`
	Configuration *Configuration `json:"configuration,omitempty" yaml:"configuration,omitempty"`
	Error         *OutcomeError  `json:"error,omitempty" yaml:"error,omitempty"`
}

// OutcomeError is the serializable form of a failed entry's error.
type OutcomeError struct {
	Code    errors.ErrorCode `json:"code,omitempty" yaml:"code,omitempty"`
	Message string           `json:"message" yaml:"message"`
	Context map[string]any   `json:"context,omitempty" yaml:"context,omitempty"`
}

// HasFailures reports whether any entry was rejected or failed.
func (r *MatrixResult) HasFailures() bool {
	return r.Summary.Rejected > 0 || r.Summary.Failed > 0
}

// RunMatrix configures every input independently, at most concurrency at a
// time (defaults.MatrixConcurrency when not positive). With execute set the
// collaborators are invoked (Run), otherwise only Plan. One failing entry
// does not stop the others; the returned error is only set when ctx ends
// before all entries ran.
func (d *Driver) RunMatrix(ctx context.Context, inputs []Input, concurrency int, execute bool) (*MatrixResult, error) {
	start := time.Now()
	if concurrency <= 0 {
		concurrency = defaults.MatrixConcurrency
	}

	outcomes := make([]MatrixOutcome, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var (
				cfg *Configuration
				err error
			)
			if execute {
				cfg, err = d.Run(gctx, in)
			} else {
				cfg, err = d.Plan(gctx, in)
			}
			outcomes[i] = newOutcome(in, cfg, err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &MatrixResult{Results: outcomes}
	result.Init(header.KindMatrixResult, header.APIVersion, d.version)
	result.Summary.Total = len(outcomes)
	for _, o := range outcomes {
		switch o.Status {
		case MatrixStatusOK:
			result.Summary.Succeeded++
		case MatrixStatusRejected:
			result.Summary.Rejected++
		case MatrixStatusError:
			result.Summary.Failed++
		}
	}
	result.Summary.Duration = time.Since(start)

	slog.Info("matrix completed",
		"total", result.Summary.Total,
		"succeeded", result.Summary.Succeeded,
		"rejected", result.Summary.Rejected,
		"failed", result.Summary.Failed,
		"duration", result.Summary.Duration)

	return result, nil
}

func newOutcome(in Input, cfg *Configuration, err error) MatrixOutcome {
	o := MatrixOutcome{
		Name:     in.Name,
		Platform: in.Platform.String(),
	}
	if err == nil {
		o.Status = MatrixStatusOK
		o.Configuration = cfg
		return o
	}

	o.Status = MatrixStatusError
	if errors.IsConfigurationError(err) {
		o.Status = MatrixStatusRejected
	}
	o.Error = &OutcomeError{Message: err.Error()}
	var se *errors.StructuredError
	if stderrors.As(err, &se) {
		o.Error.Code = se.Code
		o.Error.Message = se.Message
		o.Error.Context = se.Context
	}
	return o
}
