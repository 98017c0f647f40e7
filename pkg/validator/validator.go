/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/NVIDIA/native-recipe/pkg/header"
	"github.com/NVIDIA/native-recipe/pkg/options"
	"github.com/NVIDIA/native-recipe/pkg/platform"
	"github.com/NVIDIA/native-recipe/pkg/recipe"
	"github.com/NVIDIA/native-recipe/pkg/version"
)

// Requirement identifiers reported by the checks.
const (
	RequirementStandard        = "compiler.cppstd"
	RequirementCompilerVersion = "compiler.version"
	RequirementCompiler        = "compiler"
)

const unset = "<unset>"

// check evaluates one requirement of the recipe against the platform.
type check struct {
	requirement string
	eval        func(rec *recipe.Recipe, plat platform.Descriptor) outcome
}

type outcome struct {
	status   CheckStatus
	observed string
	required string
	message  string
	err      *errors.StructuredError
}

// checks run in this order; Validate stops at the first failure.
var checks = []check{
	{RequirementStandard, checkStandard},
	{RequirementCompilerVersion, checkCompilerVersion},
	{RequirementCompiler, checkCompilerAllowed},
}

// Validator decides whether a normalized configuration can be built on a
// platform.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// New creates a new Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs the checks in order and returns the first failure as a
// configuration error (STANDARD_TOO_LOW, COMPILER_TOO_OLD or
// UNSUPPORTED_COMPILER). It holds no state between calls.
func (v *Validator) Validate(ctx context.Context, rec *recipe.Recipe, opts *options.Set, plat platform.Descriptor) error {
	if rec == nil || opts == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "recipe and options are required")
	}
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			return err
		}
		out := c.eval(rec, plat)
		if out.status == CheckStatusFailed {
			validationFailures.WithLabelValues(string(out.err.Code)).Inc()
			slog.Warn("configuration rejected",
				"recipe", rec.Ref(),
				"requirement", c.requirement,
				"observed", out.observed,
				"required", out.required,
				"code", out.err.Code)
			return out.err
		}
	}
	slog.Debug("configuration valid", "recipe", rec.Ref(), "platform", plat.String(), "options", opts.Len())
	return nil
}

// Check runs every check without short-circuiting and returns the report.
// The returned error is only set when ctx is done.
func (v *Validator) Check(ctx context.Context, rec *recipe.Recipe, plat platform.Descriptor) (*ValidationResult, error) {
	start := time.Now()
	if rec == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "recipe is required")
	}

	result := NewValidationResult()
	result.Init(header.KindValidationResult, header.APIVersion, v.Version)
	result.Recipe = rec.Ref()
	result.Platform = plat.Settings()

	for _, c := range checks {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		out := c.eval(rec, plat)
		cr := CheckResult{
			Requirement: c.requirement,
			Observed:    out.observed,
			Required:    out.required,
			Status:      out.status,
			Message:     out.message,
		}
		switch out.status {
		case CheckStatusPassed:
			result.Summary.Passed++
		case CheckStatusFailed:
			result.Summary.Failed++
			cr.Code = out.err.Code
			cr.Message = out.err.Message
		case CheckStatusSkipped:
			result.Summary.Skipped++
		}
		result.Results = append(result.Results, cr)
	}

	result.Summary.Total = len(checks)
	result.Summary.Duration = time.Since(start)
	result.Summary.Status = ValidationStatusPass
	if result.Summary.Failed > 0 {
		result.Summary.Status = ValidationStatusFail
	}

	slog.Debug("validation completed",
		"passed", result.Summary.Passed,
		"failed", result.Summary.Failed,
		"skipped", result.Summary.Skipped,
		"status", result.Summary.Status,
		"duration", result.Summary.Duration)

	return result, nil
}

func skipped(observed, required, message string) outcome {
	return outcome{status: CheckStatusSkipped, observed: observed, required: required, message: message}
}

func passed(observed, required string) outcome {
	return outcome{status: CheckStatusPassed, observed: observed, required: required}
}

func failed(code errors.ErrorCode, requirement, observed, required string) outcome {
	return outcome{
		status:   CheckStatusFailed,
		observed: observed,
		required: required,
		err:      errors.NewConfigurationError(code, requirement, observed, required),
	}
}

func checkStandard(rec *recipe.Recipe, plat platform.Descriptor) outcome {
	minimum := rec.Validation.MinStandard
	st, ok := plat.Standard()
	if !ok {
		return skipped(unset, minimum, "no language standard declared")
	}
	if minimum == "" {
		return skipped(st.String(), "", "recipe declares no minimum standard")
	}
	floor, err := version.ParseStandard(minimum)
	if err != nil {
		return skipped(st.String(), minimum, fmt.Sprintf("invalid recipe minimum: %v", err))
	}
	if !st.AtLeast(floor) {
		return failed(errors.ErrCodeStandardTooLow, RequirementStandard, st.String(), minimum)
	}
	return passed(st.String(), minimum)
}

// minimumFor looks up the minimum version of a compiler identity, exactly
// first and then case-insensitively.
func minimumFor(rec *recipe.Recipe, compiler string) (string, bool) {
	if m, ok := rec.Validation.CompilerMinimums[compiler]; ok {
		return m, true
	}
	for id, m := range rec.Validation.CompilerMinimums {
		if platform.EqualFold(id, compiler) {
			return m, true
		}
	}
	return "", false
}

func checkCompilerVersion(rec *recipe.Recipe, plat platform.Descriptor) outcome {
	minimum, ok := minimumFor(rec, plat.Compiler())
	if !ok {
		return skipped(plat.Compiler(), "", "no minimum version for compiler")
	}
	v, ok := plat.CompilerVersion()
	if !ok {
		return skipped(unset, minimum, "compiler version not declared")
	}
	floor, err := version.ParseVersion(minimum)
	if err != nil {
		return skipped(v.String(), minimum, fmt.Sprintf("invalid recipe minimum: %v", err))
	}
	if !v.AtLeast(floor) {
		out := failed(errors.ErrCodeCompilerTooOld, RequirementCompilerVersion, v.String(), minimum)
		out.err.Context["compiler"] = plat.Compiler()
		out.err.Message = fmt.Sprintf("%s requires C++%s, which %s %s does not support (minimum %s)",
			rec.Ref(), rec.Validation.MinStandard, plat.Compiler(), v.String(), minimum)
		return out
	}
	return passed(v.String(), minimum)
}

func checkCompilerAllowed(rec *recipe.Recipe, plat platform.Descriptor) outcome {
	allowed := rec.Validation.AllowedCompilers
	required := describeAllowList(rec.Validation)
	compiler := plat.Compiler()
	observed := compiler
	if observed == "" {
		observed = unset
	}
	if len(allowed) == 0 {
		return skipped(observed, "", "recipe declares no compiler allow-list")
	}
	for _, id := range allowed {
		if platform.EqualFold(compiler, id) {
			return passed(observed, required)
		}
	}
	if compiler != "" {
		for _, rel := range rec.Validation.Relaxations {
			if plat.OS().Is(platform.OS(rel.OS)) &&
				strings.Contains(platform.Fold(compiler), platform.Fold(rel.Contains)) {
				return passed(observed, required)
			}
		}
	}
	return failed(errors.ErrCodeUnsupportedCompiler, RequirementCompiler, observed, required)
}

// describeAllowList renders the allow-list, e.g. "clang, apple-clang (Windows: *clang*)".
func describeAllowList(spec recipe.ValidationSpec) string {
	out := strings.Join(spec.AllowedCompilers, ", ")
	if len(spec.Relaxations) == 0 {
		return out
	}
	rels := make([]string, 0, len(spec.Relaxations))
	for _, rel := range spec.Relaxations {
		rels = append(rels, fmt.Sprintf("%s: *%s*", rel.OS, rel.Contains))
	}
	return fmt.Sprintf("%s (%s)", out, strings.Join(rels, ", "))
}
