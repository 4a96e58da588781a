/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package enricher

import (
	"github.com/sap/manifest-enricher/pkg/registry"
)

// Registry of enrichers; enrichers are instantiated per pipeline run, within a Context.
type Registry = registry.Registry[*Context, Enricher]

// Create a new Registry, with all builtin enrichers registered.
func NewRegistry() *Registry {
	return registry.New[*Context, Enricher]("enricher").
		Register(ControllerEnricherName, func(c *Context) Enricher { return NewControllerEnricher(c) }).
		Register(ServiceEnricherName, func(c *Context) Enricher { return NewServiceEnricher(c) }).
		Register(AnnotationsEnricherName, func(c *Context) Enricher { return NewAnnotationsEnricher(c) }).
		Register(ProjectLabelsEnricherName, func(c *Context) Enricher { return NewProjectLabelsEnricher(c) }).
		Register(IstioProxyEnricherName, func(c *Context) Enricher { return NewIstioProxyEnricher(c) })
}
