/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package enricher

import (
	"context"

	"github.com/sap/manifest-enricher/pkg/config"
	"github.com/sap/manifest-enricher/pkg/resources"
)

// Common base of the builtin enrichers; both phases are no-ops unless overridden.
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

func (u *unit) Create(ctx context.Context, builder *resources.Builder) error {
	return nil
}

func (u *unit) Adapt(ctx context.Context, builder *resources.Builder) error {
	return nil
}
