/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"github.com/sap/go-generics/slices"
)

// ProcessorConfig selects and configures the units (enrichers or generators) of a pipeline.
// A ProcessorConfig may be layered over defaults (see WithDefaults()); lookups then probe the
// explicit layer first and fall back to the defaults, the layers themselves are never merged or modified.
type ProcessorConfig struct {
	// Identifiers of units to run; if empty, the includes of the default layer apply;
	// if no layer specifies includes, all registered units are used.
	Includes []string `json:"includes,omitempty"`
	// Identifiers of units to skip; excludes of all layers are combined.
	Excludes []string `json:"excludes,omitempty"`
	// Per-unit configuration, keyed by unit identifier.
	Config map[string]map[string]string `json:"config,omitempty"`

	defaults *ProcessorConfig
}

// Return a new layered ProcessorConfig, with c as explicit layer and the given defaults below it.
// Neither c nor defaults are changed; both may be nil.
func (c *ProcessorConfig) WithDefaults(defaults *ProcessorConfig) *ProcessorConfig {
	if c == nil {
		c = &ProcessorConfig{}
	}
	layered := &ProcessorConfig{
		Includes: c.Includes,
		Excludes: c.Excludes,
		Config:   c.Config,
	}
	if c.defaults == nil {
		layered.defaults = defaults
	} else {
		layered.defaults = c.defaults.WithDefaults(defaults)
	}
	return layered
}

// Look up the configuration value for the given unit and key.
func (c *ProcessorConfig) GetConfig(unit string, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	if values, ok := c.Config[unit]; ok {
		if value, ok := values[key]; ok {
			return value, true
		}
	}
	return c.defaults.GetConfig(unit, key)
}

// Return the effective includes; the first layer specifying includes wins.
func (c *ProcessorConfig) GetIncludes() []string {
	if c == nil {
		return nil
	}
	if len(c.Includes) > 0 {
		return c.Includes
	}
	return c.defaults.GetIncludes()
}

// Return the excludes of all layers (without duplicates, in order of appearance).
func (c *ProcessorConfig) GetExcludes() []string {
	if c == nil {
		return nil
	}
	excludes := append([]string(nil), c.Excludes...)
	for _, exclude := range c.defaults.GetExcludes() {
		if !slices.Contains(excludes, exclude) {
			excludes = append(excludes, exclude)
		}
	}
	return excludes
}

// Check whether neither this layer nor any default layer selects or configures anything.
func (c *ProcessorConfig) IsEmpty() bool {
	if c == nil {
		return true
	}
	return len(c.Includes) == 0 && len(c.Excludes) == 0 && len(c.Config) == 0 && c.defaults.IsEmpty()
}
