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

// Package serializer encodes and decodes configurator documents.
//
// Three output formats are supported:
//   - JSON: indented, for API responses and tooling
//   - YAML: for recipes, profiles and files checked into source control
//   - Table: flattened FIELD/VALUE rows for terminals (write only)
//
// Writing:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, cfg); err != nil {
//	    return err
//	}
//
// Reading a profile or recipe from a local path or an http(s) URL, with the
// format taken from the extension:
//
//	p, err := serializer.FromFile[profile.Profile](ctx, "linux-gcc.yaml")
//
// HTTP handlers respond with RespondJSON, which buffers the encoding so a
// failed encode never produces a partial body.
package serializer
