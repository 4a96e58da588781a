/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/sap/manifest-enricher/pkg/types"
)

const (
	EnricherPropertyPrefix  = "kmb.enricher"
	GeneratorPropertyPrefix = "kmb.generator"
)

// Properties is a read-only key-value lookup, such as project properties or process-wide system properties.
type Properties interface {
	Lookup(key string) (string, bool)
}

// PropertiesMap implements Properties in the natural way.
type PropertiesMap map[string]string

var _ Properties = PropertiesMap(nil)

func (p PropertiesMap) Lookup(key string) (string, bool) {
	value, ok := p[key]
	return value, ok
}

// Configuration key of a unit, with a statically declared default.
type Key struct {
	Name    string
	Default string
}

// Resolver resolves configuration values of one unit. Values are probed in the following order:
//   - the explicit (possibly layered) ProcessorConfig entry for the unit and key
//   - the project property <propertyPrefix>.<unit>.<key>
//   - the system property <propertyPrefix>.<unit>.<key>
//   - the supplied default.
//
// If key is empty, the property name degenerates to <propertyPrefix>.<unit>, and the explicit
// configuration is looked up with the empty key; this is meant for units having only one option.
type Resolver struct {
	propertyPrefix    string
	unit              string
	config            *ProcessorConfig
	projectProperties Properties
	systemProperties  Properties
}

// Create a new Resolver; all arguments except unit may be empty or nil.
func NewResolver(propertyPrefix string, unit string, config *ProcessorConfig, projectProperties Properties, systemProperties Properties) *Resolver {
	return &Resolver{
		propertyPrefix:    propertyPrefix,
		unit:              unit,
		config:            config,
		projectProperties: projectProperties,
		systemProperties:  systemProperties,
	}
}

// Return the unit this resolver belongs to.
func (r *Resolver) Unit() string {
	return r.unit
}

// Return the fully composed property name for the given key.
func (r *Resolver) PropertyName(key string) string {
	name := r.unit
	if key != "" {
		name += "." + key
	}
	if r.propertyPrefix != "" {
		name = r.propertyPrefix + "." + name
	}
	return name
}

// Look up the given key; the second return value is false if no source has a value.
func (r *Resolver) Lookup(key string) (string, bool) {
	if value, ok := r.config.GetConfig(r.unit, key); ok {
		return value, true
	}
	name := r.PropertyName(key)
	if r.projectProperties != nil {
		if value, ok := r.projectProperties.Lookup(name); ok {
			return value, true
		}
	}
	if r.systemProperties != nil {
		if value, ok := r.systemProperties.Lookup(name); ok {
			return value, true
		}
	}
	return "", false
}

// Resolve the given key, falling back to defaultValue.
func (r *Resolver) Get(key string, defaultValue string) string {
	if value, ok := r.Lookup(key); ok {
		return value
	}
	return defaultValue
}

// Resolve the given key, falling back to the key's declared default.
func (r *Resolver) GetKey(key Key) string {
	return r.Get(key.Name, key.Default)
}

// Resolve the given key as boolean.
func (r *Resolver) GetBool(key string, defaultValue bool) (bool, error) {
	value, ok := r.Lookup(key)
	if !ok {
		return defaultValue, nil
	}
	b, err := cast.ToBoolE(value)
	if err != nil {
		return false, r.invalid(key, value, err)
	}
	return b, nil
}

// Resolve the given key as integer.
func (r *Resolver) GetInt(key string, defaultValue int) (int, error) {
	value, ok := r.Lookup(key)
	if !ok {
		return defaultValue, nil
	}
	i, err := cast.ToIntE(strings.TrimSpace(value))
	if err != nil {
		return 0, r.invalid(key, value, err)
	}
	return i, nil
}

// Resolve the given key as comma-separated list; blank entries are dropped.
func (r *Resolver) GetStringSlice(key string, defaultValue []string) []string {
	value, ok := r.Lookup(key)
	if !ok {
		return defaultValue
	}
	var result []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}
	return result
}

func (r *Resolver) invalid(key string, value string, err error) error {
	return types.NewConfigurationError(fmt.Errorf("invalid value %q for %s: %s", value, r.PropertyName(key), err), r.unit)
}
