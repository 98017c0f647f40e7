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

// Package api wires the configuration endpoints into the HTTP server.
//
// Endpoints:
//
//	GET  /v1/configure  plan from query parameters
//	POST /v1/configure  plan from a JSON or YAML profile body
//	GET  /v1/recipe     the default recipe, or ?name=<package>
//	GET  /health, /ready, /metrics
//
// Query parameters for GET /v1/configure:
//
//	os, arch, compiler, compiler.version, compiler.cppstd, build_type
//	option=<name>=<value>   repeatable
//	require=<name>/<ver>    repeatable
//	recipe=<package>        embedded recipe name
//	strict=true             reject unresolvable dependencies
//
// A request whose settings fail a configuration rule is answered with
// 422 Unprocessable Entity; the error details carry the requirement, the
// observed value and the required value.
//
// Only embedded recipes are served. Recipe files and URLs are a CLI feature.
package api
