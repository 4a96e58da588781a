/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package generator

import (
	"context"

	"github.com/sap/manifest-enricher/pkg/config"
	"github.com/sap/manifest-enricher/pkg/project"
	"github.com/sap/manifest-enricher/pkg/registry"
)

// Generator is a pipeline unit operating on the image configurations of a project.
type Generator interface {
	registry.Unit
	// Check whether the generator wants to customize the given image configurations.
	IsApplicable(images []project.ImageConfiguration) bool
	// Return the customized image configurations; the passed slice (and its elements) must not be modified.
	Customize(ctx context.Context, images []project.ImageConfiguration) ([]project.ImageConfiguration, error)
}

// Context is the read-only environment of generators during one pipeline run.
type Context struct {
	Project *project.Project
	// Effective (layered) generator configuration.
	Config *config.ProcessorConfig
	// Process-wide properties; consulted after the project properties.
	SystemProperties config.Properties
}

// Return a configuration resolver for the given generator.
func (c *Context) Resolver(unit string) *config.Resolver {
	return config.NewResolver(config.GeneratorPropertyPrefix, unit, c.Config, c.Project.PropertyMap(), c.SystemProperties)
}
