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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/native-recipe/pkg/collector"
	"github.com/NVIDIA/native-recipe/pkg/defaults"
	"github.com/NVIDIA/native-recipe/pkg/lifecycle"
	"github.com/NVIDIA/native-recipe/pkg/options"
	"github.com/NVIDIA/native-recipe/pkg/platform"
	"github.com/NVIDIA/native-recipe/pkg/recipe"
	"github.com/NVIDIA/native-recipe/pkg/serializer"
)

// Flags are built per command: urfave/cli keeps parsed values in the flag
// itself.

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Sources: cli.EnvVars("NRC_FORMAT"),
	}
}

func recipeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "recipe",
		Aliases: []string{"r"},
		Usage: fmt.Sprintf(`Package recipe: an embedded name (%s), a file path or an HTTP/HTTPS URL.
	Defaults to %s.`, strings.Join(recipe.List(), ", "), recipe.DefaultName),
		Sources: cli.EnvVars("NRC_RECIPE"),
	}
}

func profileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage: `Path/URI to a profile with settings, options and requires.
	Flags override the profile.`,
		Sources: cli.EnvVars("NRC_PROFILE"),
	}
}

// settingFlags maps each platform flag to its settings key.
var settingFlags = []struct {
	flag    string
	setting string
	usage   string
}{
	{"os", platform.SettingOS, fmt.Sprintf("Target operating system (supported: %s)", strings.Join(platform.GetOSTypes(), ", "))},
	{"arch", platform.SettingArch, "Target architecture (e.g. x86_64, armv8)"},
	{"compiler", platform.SettingCompiler, "Compiler identity (e.g. clang, apple-clang, gcc, msvc)"},
	{"compiler-version", platform.SettingCompilerVersion, "Compiler version (e.g. 14, 19.3)"},
	{"cppstd", platform.SettingCompilerCppstd, "Declared C++ standard (e.g. 17, gnu20)"},
	{"build-type", platform.SettingBuildType, fmt.Sprintf("Build type (supported: %s)", strings.Join(platform.GetBuildTypes(), ", "))},
}

// inputFlags are the flags shared by every command that plans a
// configuration.
func inputFlags() []cli.Flag {
	flags := []cli.Flag{recipeFlag(), profileFlag()}
	for _, sf := range settingFlags {
		flags = append(flags, &cli.StringFlag{
			Name:    sf.flag,
			Usage:   sf.usage,
			Sources: cli.EnvVars("NRC_" + strings.ToUpper(strings.ReplaceAll(sf.flag, "-", "_"))),
		})
	}
	return append(flags,
		&cli.StringSliceFlag{
			Name:    "option",
			Aliases: []string{"O"},
			Usage:   "Option value as name=value (repeatable), e.g. -O shared=True",
		},
		&cli.StringSliceFlag{
			Name:  "require",
			Usage: "Additional requirement as name/version (repeatable), e.g. --require zlib/1.3.1",
		},
		&cli.BoolFlag{
			Name:    "probe",
			Usage:   "Run the host compiler with --version to detect its identity and version",
			Sources: cli.EnvVars("NRC_PROBE"),
		},
		&cli.BoolFlag{
			Name:    "strict",
			Usage:   "Fail when a required dependency has no managed package",
			Sources: cli.EnvVars("NRC_STRICT"),
		},
	)
}

// parseOutputFormat returns the --format value or an error for unknown ones.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", outFormat)
	}
	return outFormat, nil
}

// profileFromCmd layers the command-line flags over the --profile file.
func profileFromCmd(ctx context.Context, cmd *cli.Command) (lifecycle.Profile, error) {
	var base lifecycle.Profile
	if path := cmd.String("profile"); path != "" {
		slog.Debug("loading profile", "uri", path)
		p, err := lifecycle.LoadProfile(ctx, path)
		if err != nil {
			return lifecycle.Profile{}, err
		}
		base = *p
	}

	opts, err := options.Parse(cmd.StringSlice("option"), "")
	if err != nil {
		return lifecycle.Profile{}, err
	}

	override := lifecycle.Profile{
		Recipe:   cmd.String("recipe"),
		Settings: make(map[string]string),
		Options:  opts,
		Requires: cmd.StringSlice("require"),
		Strict:   cmd.Bool("strict"),
	}
	for _, sf := range settingFlags {
		if v := strings.TrimSpace(cmd.String(sf.flag)); v != "" {
			override.Settings[sf.setting] = v
		}
	}
	return base.Merge(override), nil
}

// inputFromCmd resolves the recipe and platform of a command. Settings not
// given by the profile or flags are taken from the host.
func inputFromCmd(ctx context.Context, cmd *cli.Command) (lifecycle.Input, error) {
	p, err := profileFromCmd(ctx, cmd)
	if err != nil {
		return lifecycle.Input{}, err
	}

	rec, err := recipe.Resolve(ctx, p.Recipe)
	if err != nil {
		return lifecycle.Input{}, err
	}
	given, err := platform.FromSettings(p.Settings)
	if err != nil {
		return lifecycle.Input{}, err
	}
	plat := hostPlatform(ctx, cmd.Bool("probe")).Merge(given)

	slog.Debug("resolved input",
		"recipe", rec.Ref(),
		"platform", plat.String(),
		"options", len(p.Options),
		"requires", len(p.Requires))

	return lifecycle.Input{
		Name:     plat.String(),
		Recipe:   rec,
		Platform: plat,
		Options:  p.Options,
		Requires: p.Requires,
		Strict:   p.Strict,
	}, nil
}

// hostPlatform describes the host, probing the compiler when asked.
func hostPlatform(ctx context.Context, probe bool) platform.Descriptor {
	if !probe {
		return platform.Detect()
	}
	host, err := collector.New().Collect(ctx)
	if err != nil {
		slog.Warn("compiler probe failed, using detected host", "error", err)
	}
	return host
}

// writeDocument serializes doc to --output in --format.
func writeDocument(ctx context.Context, cmd *cli.Command, doc any) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	return ser.Serialize(ctx, doc)
}

// planFromCmd runs a dry-run plan for the command input.
func planFromCmd(ctx context.Context, cmd *cli.Command) (*lifecycle.Configuration, error) {
	if _, err := parseOutputFormat(cmd); err != nil {
		return nil, err
	}
	in, err := inputFromCmd(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return plan(ctx, in)
}

// plan runs a dry-run plan bounded by defaults.PlanTimeout.
func plan(ctx context.Context, in lifecycle.Input) (*lifecycle.Configuration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.PlanTimeout)
	defer cancel()
	return lifecycle.New(lifecycle.WithVersion(version)).Plan(ctx, in)
}

// writeRaw writes data to --output, or stdout when unset.
func writeRaw(cmd *cli.Command, data []byte) error {
	path := cmd.String("output")
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return serializer.WriteToFile(path, data)
}
