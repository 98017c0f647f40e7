/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var validationFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "nrc_validation_failures_total",
		Help: "Total number of rejected configurations by error code",
	},
	[]string{"code"},
)
