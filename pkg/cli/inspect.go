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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/native-recipe/pkg/bundler"
	"github.com/NVIDIA/native-recipe/pkg/toolchain"
)

func depsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "deps",
		EnableShellCompletion: true,
		Usage:                 "Print the dependency requirements of a configuration",
		Description: `Print the ordered requirement list handed to the dependency fetcher: the
baseline requirements, then one per enabled component, then any --require
additions. Tool requirements are listed separately. Dependencies without a
managed package are listed under "manual".

Examples:

  nrc deps --os Linux --compiler clang --compiler-version 14 --cppstd 17
  nrc deps -O build_unicode_component=True --format json`,
		Flags: append(inputFlags(), outputFlag(), formatFlag()),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := planFromCmd(ctx, cmd)
			if err != nil {
				return err
			}
			for _, gap := range cfg.Gaps {
				slog.Warn("dependency must be provisioned manually",
					"name", gap.Name, "option", gap.Option, "reason", gap.Reason)
			}
			return writeDocument(ctx, cmd, bundler.NewManifest(cfg.Requirements, cfg.Tools))
		},
	}
}

func toolchainCmd() *cli.Command {
	return &cli.Command{
		Name:                  "toolchain",
		EnableShellCompletion: true,
		Usage:                 "Print the toolchain variables of a configuration",
		Description: `Print the named variables handed to the build generator. With --cmake the
variables are rendered as a CMake toolchain file instead.

Examples:

  nrc toolchain --os Windows --compiler clang-cl --cppstd 17
  nrc toolchain --cmake -o conan_toolchain.cmake`,
		Flags: append(inputFlags(),
			&cli.BoolFlag{
				Name:  "cmake",
				Usage: "Render a CMake toolchain file",
			},
			outputFlag(),
			formatFlag(),
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := planFromCmd(ctx, cmd)
			if err != nil {
				return err
			}
			if !cmd.Bool("cmake") {
				return writeDocument(ctx, cmd, cfg.Variables)
			}
			return writeRaw(cmd, toolchain.RenderCMake(cfg.Variables))
		},
	}
}

func metadataCmd() *cli.Command {
	return &cli.Command{
		Name:                  "metadata",
		EnableShellCompletion: true,
		Usage:                 "Print the package metadata exported after a build",
		Description: `Print the package metadata for the target platform: library names,
OS-specific system libraries and build-system identifiers.

Examples:

  nrc metadata --os Linux --compiler clang --compiler-version 14 --cppstd 17`,
		Flags: append(inputFlags(), outputFlag(), formatFlag()),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := planFromCmd(ctx, cmd)
			if err != nil {
				return err
			}
			return writeDocument(ctx, cmd, cfg.Metadata)
		},
	}
}
