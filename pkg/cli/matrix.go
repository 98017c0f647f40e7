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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/native-recipe/pkg/defaults"
	"github.com/NVIDIA/native-recipe/pkg/lifecycle"
)

func matrixCmd() *cli.Command {
	return &cli.Command{
		Name:                  "matrix",
		EnableShellCompletion: true,
		Usage:                 "Configure a set of target platforms concurrently",
		Description: `Plan one configuration per matrix entry. Entries are independent: a
rejected entry does not stop the others. The report lists the entries in
file order. The command exits non-zero when any entry was rejected or failed.

Matrix file:

  recipe: openmp-server
  concurrency: 4
  options:
    build_unicode_component: "True"
  entries:
    - name: linux-clang
      settings: {os: Linux, compiler: clang, compiler.version: "14", compiler.cppstd: "17"}
    - name: windows-clang-cl
      settings: {os: Windows, compiler: clang-cl, compiler.cppstd: "17"}

Examples:

  nrc matrix --matrix ci/matrix.yaml
  nrc matrix --matrix ci/matrix.yaml --concurrency 8 --format json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "matrix",
				Aliases:  []string{"m"},
				Required: true,
				Usage:    "Path/URI to the matrix file",
				Sources:  cli.EnvVars("NRC_MATRIX"),
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: fmt.Sprintf("Maximum concurrent entries (default: the matrix value, then %d)", defaults.MatrixConcurrency),
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			m, err := lifecycle.LoadMatrix(ctx, cmd.String("matrix"))
			if err != nil {
				return err
			}
			inputs, err := m.Inputs(ctx)
			if err != nil {
				return err
			}

			concurrency := m.Concurrency
			if cmd.IsSet("concurrency") {
				concurrency = int(cmd.Int("concurrency"))
			}

			d := lifecycle.New(lifecycle.WithVersion(version))
			result, err := d.RunMatrix(ctx, inputs, concurrency, false)
			if err != nil {
				return err
			}

			if err := writeDocument(ctx, cmd, result); err != nil {
				return fmt.Errorf("failed to serialize matrix result: %w", err)
			}
			if result.HasFailures() {
				return fmt.Errorf("matrix failed: %d rejected, %d failed of %d",
					result.Summary.Rejected, result.Summary.Failed, result.Summary.Total)
			}
			return nil
		},
	}
}
