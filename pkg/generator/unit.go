/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package generator

import (
	"github.com/sap/go-generics/slices"

	"github.com/sap/manifest-enricher/pkg/config"
	"github.com/sap/manifest-enricher/pkg/project"
)

type unit struct {
	name     string
	order    int
	context  *Context
	resolver *config.Resolver
}

func newUnit(context *Context, name string, order int) unit {
	return unit{
		name:     name,
		order:    order,
		context:  context,
		resolver: context.Resolver(name),
	}
}

func (u *unit) Name() string {
	return u.name
}

func (u *unit) Order() int {
	return u.order
}

func hasBuildConfiguration(images []project.ImageConfiguration) bool {
	return slices.Any(images, func(image project.ImageConfiguration) bool { return image.Build != nil })
}
