/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package validator decides whether a normalized configuration can be built
// on a given platform.
//
// Three checks run in a fixed order:
//
//  1. compiler.cppstd: when the platform declares a language standard it
//     must be at least the recipe minimum (STANDARD_TOO_LOW).
//  2. compiler.version: when the recipe lists a minimum for the compiler
//     identity and the platform declares a version, the version must not
//     be older (COMPILER_TOO_OLD). Versions compare numerically.
//  3. compiler: the compiler must be on the allow-list, or match a
//     per-OS relaxation (UNSUPPORTED_COMPILER).
//
// Validate stops at the first failure and returns it as a
// *errors.StructuredError carrying the requirement, observed and required
// values. Check runs every check and returns a ValidationResult report:
//
//	v := validator.New(validator.WithVersion(version))
//	if err := v.Validate(ctx, rec, opts, plat); err != nil {
//		return err
//	}
//
// Checks whose input is undeclared are skipped rather than failed.
package validator
