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

package lifecycle

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/NVIDIA/native-recipe/pkg/errors"
)

const (
	modePlan = "plan"
	modeRun  = "run"

	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

var (
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nrc_lifecycle_runs_total",
			Help: "Total number of configuration runs by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	planDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nrc_lifecycle_plan_duration_seconds",
			Help:    "Time spent computing a configuration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	handoffDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nrc_lifecycle_handoff_duration_seconds",
			Help:    "Time spent in collaborator handoffs in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	unresolvedGaps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nrc_lifecycle_unresolved_requirements_total",
			Help: "Total number of unresolvable requirements reported by configuration runs",
		},
		[]string{"name"},
	)
)

func recordRun(mode string, err error) {
	runsTotal.WithLabelValues(mode, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.IsConfigurationError(err):
		return outcomeRejected
	default:
		return outcomeError
	}
}
