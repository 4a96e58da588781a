/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package enricher

import (
	"context"

	corev1 "k8s.io/api/core/v1"

	"github.com/sap/manifest-enricher/pkg/config"
	"github.com/sap/manifest-enricher/pkg/resources"
	"github.com/sap/manifest-enricher/pkg/synthesizer"
	"github.com/sap/manifest-enricher/pkg/types"
)

const (
	ControllerEnricherName  = "kmb-controller"
	ControllerEnricherOrder = 100
)

var controllerPullPolicyKey = config.Key{Name: "pullPolicy", Default: string(corev1.PullIfNotPresent)}

// ControllerEnricher adds a Deployment running the project's images, unless there is a Deployment already.
type ControllerEnricher struct {
	unit
}

var _ Enricher = &ControllerEnricher{}

// Create a new ControllerEnricher.
func NewControllerEnricher(context *Context) *ControllerEnricher {
	return &ControllerEnricher{unit: newUnit(context, ControllerEnricherName, ControllerEnricherOrder)}
}

func (e *ControllerEnricher) Create(ctx context.Context, builder *resources.Builder) error {
	if builder.Has(types.GroupKindDeployment) || len(e.context.Images) == 0 {
		return nil
	}

	defaultReplicas := 1
	if e.context.Resources.Replicas != nil {
		defaultReplicas = int(*e.context.Resources.Replicas)
	}
	replicas, err := e.resolver.GetInt("replicaCount", defaultReplicas)
	if err != nil {
		return err
	}

	deployment, err := synthesizer.SynthesizeDeployment(synthesizer.ControllerConfig{
		Name:       e.resolver.Get("name", e.context.Project.DefaultResourceName()),
		Replicas:   int32(replicas),
		Images:     e.context.Images,
		PullPolicy: corev1.PullPolicy(e.resolver.GetKey(controllerPullPolicyKey)),
	})
	if err != nil {
		return err
	}
	if deployment == nil {
		return nil
	}
	return builder.Add(deployment)
}
