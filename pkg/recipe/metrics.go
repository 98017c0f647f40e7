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

package recipe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Embedded recipe cache metrics
	recipeCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nrc_recipe_cache_hits_total",
			Help: "Total number of embedded recipe cache hits",
		},
	)
	recipeCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nrc_recipe_cache_misses_total",
			Help: "Total number of embedded recipe cache misses (initial loads)",
		},
	)

	recipeLoadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nrc_recipe_load_errors_total",
			Help: "Total number of external recipes that failed to load or validate",
		},
	)
)
