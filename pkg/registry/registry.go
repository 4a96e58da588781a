/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sap/go-generics/slices"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/sap/manifest-enricher/pkg/config"
	"github.com/sap/manifest-enricher/pkg/types"
)

// Unit is a named pipeline unit with an ordering key.
type Unit interface {
	// Identifier of the unit, as used in profiles and processor configurations.
	Name() string
	// Ordering key; units with lower keys run first.
	Order() int
}

// Factory instantiates a unit within the given context.
type Factory[C any, T Unit] func(context C) T

type registration[C any, T Unit] struct {
	name    string
	factory Factory[C, T]
}

// Registry is an explicit registration table of unit factories, keyed by identifier.
// Registrations are expected to happen at process start, before any Select() call; a Registry is not safe for concurrent mutation.
type Registry[C any, T Unit] struct {
	kind          string
	registrations []registration[C, T]
}

// Create a new Registry; kind (such as 'enricher') is used in error messages only.
func New[C any, T Unit](kind string) *Registry[C, T] {
	return &Registry[C, T]{kind: kind}
}

// Register a unit factory. Registering the same identifier twice panics.
func (r *Registry[C, T]) Register(name string, factory Factory[C, T]) *Registry[C, T] {
	if r.Has(name) {
		panic(fmt.Sprintf("%s %s already registered", r.kind, name))
	}
	r.registrations = append(r.registrations, registration[C, T]{name: name, factory: factory})
	return r
}

// Check whether a unit with the given identifier is registered.
func (r *Registry[C, T]) Has(name string) bool {
	return slices.Any(r.registrations, func(reg registration[C, T]) bool { return reg.name == name })
}

// Return the registered identifiers, in registration order.
func (r *Registry[C, T]) Names() []string {
	return slices.Collect(r.registrations, func(reg registration[C, T]) string { return reg.name })
}

// Instantiate the units selected by the given processor configuration, ordered by their ordering key
// (ties are broken by registration order).
// If the configuration includes identifiers, exactly these units are selected, otherwise all registered units;
// excluded identifiers are removed afterwards. Included or excluded identifiers which are not registered
// make Select() fail with a ConfigurationError naming the identifier.
func (r *Registry[C, T]) Select(context C, processorConfig *config.ProcessorConfig) ([]T, error) {
	includes := processorConfig.GetIncludes()
	excludes := processorConfig.GetExcludes()

	var unknown []string
	var errs []error
	for _, name := range append(append([]string(nil), includes...), excludes...) {
		if !r.Has(name) && !slices.Contains(unknown, name) {
			unknown = append(unknown, name)
			errs = append(errs, fmt.Errorf("no %s registered with identifier %s", r.kind, name))
		}
	}
	if len(unknown) > 0 {
		return nil, types.NewConfigurationError(utilerrors.NewAggregate(errs), strings.Join(unknown, ","))
	}

	var units []T
	for _, reg := range r.registrations {
		if len(includes) > 0 && !slices.Contains(includes, reg.name) {
			continue
		}
		if slices.Contains(excludes, reg.name) {
			continue
		}
		unit := reg.factory(context)
		if unit.Name() != reg.name {
			panic(fmt.Sprintf("%s %s registered with wrong identifier %s", r.kind, unit.Name(), reg.name))
		}
		units = append(units, unit)
	}
	sort.SliceStable(units, func(i, j int) bool {
		return units[i].Order() < units[j].Order()
	})

	return units, nil
}
