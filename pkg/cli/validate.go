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

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/native-recipe/pkg/options"
	"github.com/NVIDIA/native-recipe/pkg/validator"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Check a platform against the recipe's configuration rules",
		Description: `Evaluate every configuration rule of the recipe against the target
platform and report each as passed, failed or skipped:

  compiler.cppstd   declared standard at least the recipe minimum
  compiler.version  compiler version at least the minimum for its identity
  compiler          compiler on the allow-list (with per-OS relaxations)

Unset settings fall back to the host. The command exits non-zero when any
rule fails.

Examples:

  nrc validate --os Linux --compiler clang --compiler-version 14 --cppstd 17
  nrc validate --profile ci/windows.yaml --format json`,
		Flags: append(inputFlags(), outputFlag(), formatFlag()),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			in, err := inputFromCmd(ctx, cmd)
			if err != nil {
				return err
			}

			// Option values are checked even though no rule reads them.
			if _, err := options.NewSet(in.Recipe.Options, in.Options); err != nil {
				return err
			}

			v := validator.New(validator.WithVersion(version))
			result, err := v.Check(ctx, in.Recipe, in.Platform)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			if err := writeDocument(ctx, cmd, result); err != nil {
				return fmt.Errorf("failed to serialize validation result: %w", err)
			}

			slog.Info("validation completed",
				"status", result.Summary.Status,
				"passed", result.Summary.Passed,
				"failed", result.Summary.Failed,
				"skipped", result.Summary.Skipped,
				"duration", result.Summary.Duration)

			if result.Summary.Status == validator.ValidationStatusFail {
				return fmt.Errorf("validation failed: %d rule(s) did not pass", result.Summary.Failed)
			}
			return nil
		},
	}
}
