/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package enricher

import (
	"context"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/sap/manifest-enricher/pkg/config"
	"github.com/sap/manifest-enricher/pkg/resources"
	"github.com/sap/manifest-enricher/pkg/types"
)

const (
	ProjectLabelsEnricherName  = "kmb-project-labels"
	ProjectLabelsEnricherOrder = 400
)

var projectLabelsProviderKey = config.Key{Name: "provider", Default: types.DefaultProvider}

// ProjectLabelsEnricher adds the project coordinates as labels to all objects (existing labels win).
// Empty Service selectors, and empty Deployment selectors are filled with the same labels (except the version label),
// which are then also added to the pod template.
type ProjectLabelsEnricher struct {
	unit
}

var _ Enricher = &ProjectLabelsEnricher{}

// Create a new ProjectLabelsEnricher.
func NewProjectLabelsEnricher(context *Context) *ProjectLabelsEnricher {
	return &ProjectLabelsEnricher{unit: newUnit(context, ProjectLabelsEnricherName, ProjectLabelsEnricherOrder)}
}

func (e *ProjectLabelsEnricher) Adapt(ctx context.Context, builder *resources.Builder) error {
	labels := e.labels(true)
	selectorLabels := e.labels(false)

	for _, object := range builder.Items() {
		object.SetLabels(resources.PutIfAbsent(object.GetLabels(), labels))
	}

	if err := resources.Visit(builder, types.GroupKindService, func(service *corev1.Service) error {
		if len(service.Spec.Selector) == 0 {
			service.Spec.Selector = resources.PutAll(nil, selectorLabels)
		}
		return nil
	}); err != nil {
		return err
	}

	return resources.Visit(builder, types.GroupKindDeployment, func(deployment *appsv1.Deployment) error {
		if deployment.Spec.Selector == nil || len(deployment.Spec.Selector.MatchLabels) == 0 && len(deployment.Spec.Selector.MatchExpressions) == 0 {
			deployment.Spec.Selector = &metav1.LabelSelector{MatchLabels: resources.PutAll(nil, selectorLabels)}
			deployment.Spec.Template.Labels = resources.PutIfAbsent(deployment.Spec.Template.Labels, selectorLabels)
		}
		return nil
	})
}

func (e *ProjectLabelsEnricher) labels(withVersion bool) map[string]string {
	p := e.context.Project
	labels := map[string]string{
		types.LabelKeyProject:  p.Name,
		types.LabelKeyProvider: e.resolver.GetKey(projectLabelsProviderKey),
		types.LabelKeyGroup:    p.Group,
	}
	if withVersion {
		labels[types.LabelKeyVersion] = p.Version
	}
	for key, value := range labels {
		if value == "" {
			delete(labels, key)
		}
	}
	return labels
}
