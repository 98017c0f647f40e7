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
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/native-recipe/pkg/serializer"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{name: "yaml", format: "yaml", wantFormat: serializer.FormatYAML},
		{name: "json", format: "json", wantFormat: serializer.FormatJSON},
		{name: "table", format: "table", wantFormat: serializer.FormatTable},
		{name: "xml", format: "xml", wantErr: true},
		{name: "empty", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got serializer.Format
			var gotErr error
			cmd := &cli.Command{
				Name:  "test",
				Flags: []cli.Flag{&cli.StringFlag{Name: "format"}},
				Action: func(_ context.Context, cmd *cli.Command) error {
					got, gotErr = parseOutputFormat(cmd)
					return nil
				},
			}

			if err := cmd.Run(context.Background(), []string{"test", "--format", tt.format}); err != nil {
				t.Fatalf("unexpected run error: %v", err)
			}
			if (gotErr != nil) != tt.wantErr {
				t.Fatalf("parseOutputFormat() error = %v, wantErr %v", gotErr, tt.wantErr)
			}
			if got != tt.wantFormat {
				t.Errorf("parseOutputFormat() = %q, want %q", got, tt.wantFormat)
			}
		})
	}
}

func TestCommandsHaveFreshFlags(t *testing.T) {
	a := newRootCmd()
	b := newRootCmd()
	for i := range a.Commands {
		for j := range a.Commands[i].Flags {
			if a.Commands[i].Flags[j] == b.Commands[i].Flags[j] {
				t.Errorf("%s: flag %v shared between command trees",
					a.Commands[i].Name, a.Commands[i].Flags[j].Names())
			}
		}
	}
}
