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

// Package bundler writes the artifacts of a configuration run to a
// directory so that external tools can pick them up:
//
//	requirements.yaml       fetch manifest (requires, tool_requires, manual)
//	conan_toolchain.cmake   toolchain variables as CMake cache entries
//	toolchain.json          toolchain variables as JSON
//	package-metadata.yaml   exported libraries and identifiers
//	checksums.txt           SHA-256 of every file above
//
// A Bundler is plugged into the lifecycle driver as fetcher, generator and
// packager:
//
//	b, err := bundler.New(dir, bundler.WithVersion(version))
//	d := lifecycle.New(lifecycle.WithFetcher(b), lifecycle.WithGenerator(b), lifecycle.WithPackager(b))
//	if _, err := d.Run(ctx, in); err != nil {
//		return err
//	}
//	out, err := b.Finalize(ctx)
//
// The finished directory can be pushed to an OCI registry with package oci.
package bundler
