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

// Package oci exports configuration bundles as OCI artifacts.
//
// An output target is either a local directory or an "oci://" reference:
//
//	ref, err := oci.ParseOutputTarget("oci://ghcr.io/nvidia/openmp-server:1.4.0")
//
// Package packs a bundle directory into a local OCI image layout as one
// reproducible tar layer with artifact type ArtifactType. PushFromStore
// copies it to the registry, authenticating with Docker credential helpers
// (~/.docker/config.json). PackageAndPush does both.
//
// Registry and repository names are validated with the distribution
// reference grammar before anything is written.
package oci
