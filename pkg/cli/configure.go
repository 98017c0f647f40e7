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
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/native-recipe/pkg/bundler"
	"github.com/NVIDIA/native-recipe/pkg/defaults"
	"github.com/NVIDIA/native-recipe/pkg/lifecycle"
	"github.com/NVIDIA/native-recipe/pkg/oci"
)

func configureCmd() *cli.Command {
	return &cli.Command{
		Name:                  "configure",
		EnableShellCompletion: true,
		Usage:                 "Run the configuration lifecycle for a target platform",
		Description: `Normalize options, validate the platform, resolve the requirements and
build the toolchain variables and package metadata.

Without --output the configuration is printed and no collaborator runs.
With --output DIR the bundle is written to DIR:

  requirements.yaml         fetch manifest (requires, tool_requires, manual)
  toolchain.json            toolchain variables
  conan_toolchain.cmake     CMake toolchain file
  package-metadata.yaml     exported package metadata
  configuration.yaml        the full configuration
  checksums.txt             SHA256 of the files above

With --output oci://registry/repository[:tag] the bundle is packaged as an
OCI artifact and pushed. The tag defaults to the recipe package version.

Examples:

  nrc configure --os Linux --compiler clang --compiler-version 14 --cppstd 17
  nrc configure --profile ci/linux.yaml --output ./bundle
  nrc configure --profile ci/linux.yaml --output oci://ghcr.io/nvidia/openmp-server`,
		Flags: append(inputFlags(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Bundle directory or oci:// reference (default: print the configuration)",
			},
			formatFlag(),
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS verification when pushing to a registry",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS when pushing to a registry",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			in, err := inputFromCmd(ctx, cmd)
			if err != nil {
				return err
			}

			target := cmd.String("output")
			if target == "" {
				cfg, planErr := plan(ctx, in)
				if planErr != nil {
					return planErr
				}
				return writeDocument(ctx, cmd, cfg)
			}

			ref, err := oci.ParseOutputTarget(target)
			if err != nil {
				return err
			}

			dir := ref.LocalPath
			if ref.IsOCI {
				tmp, tmpErr := os.MkdirTemp("", "nrc-bundle-")
				if tmpErr != nil {
					return fmt.Errorf("failed to create bundle directory: %w", tmpErr)
				}
				defer func() {
					if rmErr := os.RemoveAll(tmp); rmErr != nil {
						slog.Warn("failed to remove bundle directory", "dir", tmp, "error", rmErr)
					}
				}()
				dir = tmp
			}

			out, err := bundle(ctx, dir, in)
			if err != nil {
				return err
			}

			if ref.IsOCI {
				if ref.Tag == "" {
					ref = ref.WithTag(in.Recipe.Package.Version)
				}
				res, pushErr := oci.PackageAndPush(ctx, oci.PushConfig{
					SourceDir:   dir,
					OutputDir:   dir,
					Reference:   ref,
					Version:     version,
					Title:       in.Recipe.Ref(),
					PlainHTTP:   cmd.Bool("plain-http"),
					InsecureTLS: cmd.Bool("insecure-tls"),
				})
				if pushErr != nil {
					return pushErr
				}
				out.Reference = res.Reference
				out.Digest = res.Digest
			}

			fmt.Println(out.Summary())
			return nil
		},
	}
}

// bundle runs the full lifecycle with a Bundler as collaborator and writes
// the configuration document into dir.
func bundle(ctx context.Context, dir string, in lifecycle.Input) (*bundler.Output, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.RunTimeout)
	defer cancel()

	b, err := bundler.New(dir, bundler.WithVersion(version))
	if err != nil {
		return nil, err
	}

	d := lifecycle.New(
		lifecycle.WithVersion(version),
		lifecycle.WithFetcher(b),
		lifecycle.WithGenerator(b),
		lifecycle.WithPackager(b),
	)
	cfg, err := d.Run(ctx, in)
	if err != nil {
		return nil, err
	}
	if cfg.HasGaps() {
		for _, gap := range cfg.Gaps {
			slog.Warn("dependency must be provisioned manually", "name", gap.Name, "reason", gap.Reason)
		}
	}

	if err := b.WriteDocument(ctx, bundler.ConfigurationFileName, cfg); err != nil {
		return nil, err
	}
	return b.Finalize(ctx)
}
