/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package enricher

import (
	"context"

	"github.com/sap/manifest-enricher/pkg/config"
	"github.com/sap/manifest-enricher/pkg/project"
	"github.com/sap/manifest-enricher/pkg/registry"
	"github.com/sap/manifest-enricher/pkg/resources"
)

// Enricher is a pipeline unit adding or adapting resources in two phases.
// The engine first calls Create() on all selected enrichers, and then Adapt() on all of them, in the same order.
type Enricher interface {
	registry.Unit
	// Add missing resources to the builder. Only objects added by preceding enrichers (in this phase) are visible.
	Create(ctx context.Context, builder *resources.Builder) error
	// Adapt any of the resources in the builder, which now contains the complete output of the create phase.
	Adapt(ctx context.Context, builder *resources.Builder) error
}

// Context is the read-only environment of enrichers during one pipeline run.
type Context struct {
	Project   *project.Project
	Resources project.ResourceConfig
	Images    []project.ImageConfiguration
	// Effective (layered) enricher configuration.
	Config *config.ProcessorConfig
	// Process-wide properties; consulted after the project properties.
	SystemProperties config.Properties
}

// Return a configuration resolver for the given enricher.
func (c *Context) Resolver(unit string) *config.Resolver {
	return config.NewResolver(config.EnricherPropertyPrefix, unit, c.Config, c.Project.PropertyMap(), c.SystemProperties)
}
