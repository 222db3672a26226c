// Copyright 2026 The Oxbow Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Grouping counters, labelled by the user supplied grouping name so multiple
// aggregations in one process stay distinguishable.
var (
	ElementsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oxbow",
		Subsystem: "grouping",
		Name:      "elements_total",
		Help:      "Total elements accepted for grouping.",
	}, []string{"grouping"})

	PanesFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oxbow",
		Subsystem: "grouping",
		Name:      "panes_fired_total",
		Help:      "Panes emitted, partitioned by pane timing.",
	}, []string{"grouping", "timing"})

	LateDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oxbow",
		Subsystem: "grouping",
		Name:      "late_dropped_total",
		Help:      "Elements dropped for arriving past the allowed lateness horizon.",
	}, []string{"grouping"})

	WindowsMerged = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "oxbow",
		Subsystem: "grouping",
		Name:      "windows_merged_total",
		Help:      "Source windows folded away by merging window functions.",
	}, []string{"grouping"})
)
