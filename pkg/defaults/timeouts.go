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

package defaults

import "time"

// Lifecycle timeouts for configuration runs.
const (
	// PlanTimeout bounds a single dry-run configuration.
	PlanTimeout = 10 * time.Second

	// RunTimeout bounds a full run including the build handoffs.
	RunTimeout = 30 * time.Minute

	// HandoffTimeout bounds a single fetch, generate, build or package step
	// when the caller supplies no deadline of its own.
	HandoffTimeout = 10 * time.Minute

	// CompilerProbeTimeout bounds running the host compiler with --version.
	CompilerProbeTimeout = 5 * time.Second

	// MatrixConcurrency is the default number of matrix entries configured
	// in parallel.
	MatrixConcurrency = 4
)

// Handler timeouts for HTTP request processing.
const (
	// ConfigureHandlerTimeout is the timeout for configuration requests.
	ConfigureHandlerTimeout = 30 * time.Second

	// ConfigureBuildTimeout is the internal timeout for planning.
	// Should be less than ConfigureHandlerTimeout to allow error handling.
	ConfigureBuildTimeout = 25 * time.Second

	// RecipeCacheTTL is the cache duration advertised for recipe responses.
	RecipeCacheTTL = 10 * time.Minute
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests (remote recipes and profiles).
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second

	// HTTPMaxResponseBytes caps the size of a downloaded document.
	HTTPMaxResponseBytes = 4 << 20
)

// OCI export timeouts.
const (
	// OCIPushTimeout bounds a single artifact push.
	OCIPushTimeout = 5 * time.Minute
)
