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

// Package header provides the common header embedded in every document the
// configurator emits: package recipes, configurations, package metadata,
// validation reports and matrix results.
//
// A report is stamped once, right before serialization:
//
//	var result validator.ValidationResult
//	result.Init(header.KindValidationResult, header.APIVersion, "v1.0.0")
//
// which serializes as:
//
//	kind: Configuration
//	apiVersion: nrc.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2025-12-30T10:30:00Z"
//	  version: v1.0.0
//
// Timestamps use RFC3339 in UTC. Configurations and package metadata use
// InitReproducible instead and carry no timestamp: they end up in
// checksummed bundles and OCI artifacts. Consumers should check APIVersion and Kind
// before decoding the rest of a document.
package header
