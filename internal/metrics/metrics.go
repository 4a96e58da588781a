/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

const (
	prefix = "manifest_enricher"
)

var (
	UnitInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_unit_invocations_total",
			Help: "Total number of pipeline unit invocations per unit and phase",
		},
		[]string{"unit", "phase"},
	)
	UnitErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_unit_errors_total",
			Help: "Total number of pipeline unit errors per unit and phase",
		},
		[]string{"unit", "phase"},
	)
	Builds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_builds_total",
			Help: "Image builds per platform mode",
		},
		[]string{"mode"},
	)
	ClusterOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_cluster_operations_total",
			Help: "Build prerequisite operations per kind and action",
		},
		[]string{"kind", "action"},
	)
)

func init() {
	metrics.Registry.MustRegister(
		UnitInvocations,
		UnitErrors,
		Builds,
		ClusterOperations,
	)
}
