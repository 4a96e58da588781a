/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package enricher

import (
	"context"

	appsv1 "k8s.io/api/apps/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/sap/manifest-enricher/pkg/resources"
	"github.com/sap/manifest-enricher/pkg/types"
)

const (
	AnnotationsEnricherName  = "kmb-annotations"
	AnnotationsEnricherOrder = 300
)

// AnnotationsEnricher applies the configured annotations to Services, Deployments/ReplicaSets, their pod templates, and Pods.
// Configured annotations overwrite existing ones.
type AnnotationsEnricher struct {
	unit
}

var _ Enricher = &AnnotationsEnricher{}

// Create a new AnnotationsEnricher.
func NewAnnotationsEnricher(context *Context) *AnnotationsEnricher {
	return &AnnotationsEnricher{unit: newUnit(context, AnnotationsEnricherName, AnnotationsEnricherOrder)}
}

func (e *AnnotationsEnricher) Adapt(ctx context.Context, builder *resources.Builder) error {
	config := e.context.Resources.Annotations

	annotate := func(annotations map[string]string) func(object client.Object) error {
		return func(object client.Object) error {
			object.SetAnnotations(resources.PutAll(object.GetAnnotations(), annotations))
			return nil
		}
	}
	for _, target := range []struct {
		groupKind   schema.GroupKind
		annotations map[string]string
	}{
		{groupKind: types.GroupKindService, annotations: config.Service},
		{groupKind: types.GroupKindDeployment, annotations: config.ReplicaSet},
		{groupKind: types.GroupKindReplicaSet, annotations: config.ReplicaSet},
		{groupKind: types.GroupKindPod, annotations: config.Pod},
	} {
		if len(target.annotations) == 0 {
			continue
		}
		if err := builder.ForEachOfKind(target.groupKind, annotate(target.annotations)); err != nil {
			return err
		}
	}

	if len(config.Template) == 0 {
		return nil
	}
	if err := resources.Visit(builder, types.GroupKindDeployment, func(deployment *appsv1.Deployment) error {
		deployment.Spec.Template.Annotations = resources.PutAll(deployment.Spec.Template.Annotations, config.Template)
		return nil
	}); err != nil {
		return err
	}
	return resources.Visit(builder, types.GroupKindReplicaSet, func(replicaSet *appsv1.ReplicaSet) error {
		replicaSet.Spec.Template.Annotations = resources.PutAll(replicaSet.Spec.Template.Annotations, config.Template)
		return nil
	})
}
