/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package enricher

import (
	"context"

	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/sap/manifest-enricher/internal/metrics"
	"github.com/sap/manifest-enricher/pkg/resources"
	"github.com/sap/manifest-enricher/pkg/types"
)

// Run the given (ordered) enrichers over the initial resources and return the resulting resources.
// All Create() calls run first, then all Adapt() calls, strictly sequentially and in the given order.
// The initial objects are not modified. If an enricher fails, the whole run is aborted with a ProcessingError
// and no objects are returned.
func Enrich(ctx context.Context, initial []client.Object, enrichers []Enricher) ([]client.Object, error) {
	log := log.FromContext(ctx)

	objects := make([]client.Object, len(initial))
	for i, object := range initial {
		objects[i] = object.DeepCopyObject().(client.Object)
	}
	builder, err := resources.NewBuilder(objects...)
	if err != nil {
		return nil, err
	}

	phases := []struct {
		phase types.Phase
		run   func(Enricher, context.Context, *resources.Builder) error
	}{
		{phase: types.PhaseCreate, run: Enricher.Create},
		{phase: types.PhaseAdapt, run: Enricher.Adapt},
	}

	for _, p := range phases {
		for _, enricher := range enrichers {
			name := enricher.Name()
			log.V(1).Info("running enricher", "unit", name, "phase", p.phase)
			metrics.UnitInvocations.WithLabelValues(name, string(p.phase)).Inc()
			if err := p.run(enricher, ctx, builder); err != nil {
				metrics.UnitErrors.WithLabelValues(name, string(p.phase)).Inc()
				return nil, types.NewProcessingError(err, name, p.phase)
			}
		}
	}

	log.V(1).Info("enrichment completed", "objects", builder.Len())
	return builder.Build(), nil
}
