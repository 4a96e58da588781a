/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package project

import (
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/sap/manifest-enricher/pkg/config"
)

const (
	PackagingPom = "pom"
	ScopeTest    = "test"
)

// Check whether the project has a (non-test) dependency with the given group.
func (p *Project) HasDependency(group string) bool {
	for _, dependency := range p.Dependencies {
		if dependency.Scope == ScopeTest {
			continue
		}
		if dependency.Group == group {
			return true
		}
	}
	return false
}

// Return a DNS compatible resource name, derived from the project name and the given suffixes.
func (p *Project) DefaultResourceName(suffixes ...string) string {
	parts := []string{strcase.ToKebab(p.Name)}
	for _, suffix := range suffixes {
		if suffix != "" {
			parts = append(parts, suffix)
		}
	}
	return strings.Join(parts, "-")
}

// Return the project properties, together with the project coordinates (project.name etc.).
// Explicitly set properties take precedence over coordinates.
func (p *Project) PropertyMap() config.PropertiesMap {
	properties := config.PropertiesMap{
		"project.group":     p.Group,
		"project.name":      p.Name,
		"project.version":   p.Version,
		"project.packaging": p.Packaging,
	}
	for key, value := range p.Properties {
		properties[key] = value
	}
	return properties
}
