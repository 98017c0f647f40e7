/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"time"

	"github.com/NVIDIA/native-recipe/pkg/errors"
	"github.com/NVIDIA/native-recipe/pkg/header"
)

// ValidationStatus represents the overall validation outcome.
type ValidationStatus string

const (
	// ValidationStatusPass indicates every check passed or was skipped.
	ValidationStatusPass ValidationStatus = "pass"

	// ValidationStatusFail indicates one or more checks failed.
	ValidationStatusFail ValidationStatus = "fail"
)

// CheckStatus represents the outcome of a single check.
type CheckStatus string

const (
	// CheckStatusPassed indicates the requirement was satisfied.
	CheckStatusPassed CheckStatus = "passed"

	// CheckStatusFailed indicates the requirement was not satisfied.
	CheckStatusFailed CheckStatus = "failed"

	// CheckStatusSkipped indicates the platform does not declare the fact
	// the check needs, or the recipe has no requirement for it.
	CheckStatusSkipped CheckStatus = "skipped"
)

// ValidationResult is the report produced by Check.
type ValidationResult struct {
	header.Header `json:",inline" yaml:",inline"`

	// Recipe is the reference of the validated recipe.
	Recipe string `json:"recipe" yaml:"recipe"`

	// Platform is the settings map of the validated platform.
	Platform map[string]string `json:"platform" yaml:"platform"`

	// Summary contains aggregate validation statistics.
	Summary ValidationSummary `json:"summary" yaml:"summary"`

	// Results contains per-check details in evaluation order.
	Results []CheckResult `json:"results" yaml:"results"`
}

// ValidationSummary contains aggregate statistics about the validation.
type ValidationSummary struct {
	Passed  int              `json:"passed" yaml:"passed"`
	Failed  int              `json:"failed" yaml:"failed"`
	Skipped int              `json:"skipped" yaml:"skipped"`
	Total   int              `json:"total" yaml:"total"`
	Status  ValidationStatus `json:"status" yaml:"status"`

	// Duration is how long the validation took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	// Requirement identifies the check (e.g. "compiler.version").
	Requirement string `json:"requirement" yaml:"requirement"`

	// Observed is the platform value that was checked.
	Observed string `json:"observed,omitempty" yaml:"observed,omitempty"`

	// Required is the value the recipe demands.
	Required string `json:"required,omitempty" yaml:"required,omitempty"`

	Status CheckStatus `json:"status" yaml:"status"`

	// Code is set for failed checks.
	Code errors.ErrorCode `json:"code,omitempty" yaml:"code,omitempty"`

	// Message provides additional context, especially for failures or skipped checks.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// NewValidationResult creates a new ValidationResult with initialized slices.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Results: make([]CheckResult, 0),
	}
}
