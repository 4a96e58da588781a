/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package generator

import (
	"github.com/sap/manifest-enricher/pkg/registry"
)

// Registry of generators; generators are instantiated per pipeline run, within a Context.
type Registry = registry.Registry[*Context, Generator]

// Create a new Registry, with all builtin generators registered.
func NewRegistry() *Registry {
	return registry.New[*Context, Generator]("generator").
		Register(DefaultImageGeneratorName, func(c *Context) Generator { return NewDefaultImageGenerator(c) }).
		Register(ImageLabelsGeneratorName, func(c *Context) Generator { return NewImageLabelsGenerator(c) })
}
