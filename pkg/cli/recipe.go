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

	"github.com/NVIDIA/native-recipe/pkg/recipe"
)

func recipeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "recipe",
		EnableShellCompletion: true,
		Usage:                 "Print a package recipe",
		Description: `Print the package recipe: options and defaults, normalization rules,
validation rules, requirements, toolchain variables and package info.

Examples:

  nrc recipe
  nrc recipe --recipe ./my-recipe.yaml --format json
  nrc recipe --list`,
		Flags: []cli.Flag{
			recipeFlag(),
			&cli.BoolFlag{
				Name:  "list",
				Usage: "List the embedded recipes",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("list") {
				return writeDocument(ctx, cmd, recipe.List())
			}

			rec, err := recipe.Resolve(ctx, cmd.String("recipe"))
			if err != nil {
				return fmt.Errorf("failed to load recipe: %w", err)
			}
			return writeDocument(ctx, cmd, rec)
		},
	}
}
