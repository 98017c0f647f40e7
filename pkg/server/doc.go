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

// Package server provides the HTTP server shared by the nrcd service.
//
// The server wraps every registered handler with a middleware chain:
//
//	metrics → version → request ID → panic recovery → rate limit → body limit → logging
//
// System endpoints are served without the chain:
//
//	GET /health   liveness probe
//	GET /ready    readiness probe (503 until listening, and again during shutdown)
//	GET /metrics  Prometheus metrics
//
// Usage:
//
//	s := server.New(
//		server.WithName("nrcd"),
//		server.WithVersion(version),
//		server.WithHandler(map[string]http.HandlerFunc{
//			"/v1/configure": handler.HandleConfigure,
//		}),
//	)
//	if err := s.Run(ctx); err != nil {
//		return err
//	}
//
// Errors are written as ErrorResponse documents. WriteErrorFromErr maps a
// structured error code to its HTTP status; configuration rule failures and
// unresolvable dependencies become 422 Unprocessable Entity.
//
// Configuration is read from the environment:
//
//	PORT                      listen port (default 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown bound (default 30)
//
// Exported metrics:
//
//	nrc_http_requests_total{method,path,status}
//	nrc_http_request_duration_seconds{method,path}
//	nrc_http_requests_in_flight
//	nrc_rate_limit_rejects_total
//	nrc_panic_recoveries_total
package server
