/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package profile

import (
	"github.com/sap/manifest-enricher/pkg/config"
)

// Kind of processor configuration held by a profile.
type Kind string

const (
	KindEnricher  Kind = "enricher"
	KindGenerator Kind = "generator"
)

// Name of the profile used if no profile is requested explicitly.
const DefaultProfileName = "default"

// Profile is a named bundle of enricher and generator selections, plus their default configuration.
type Profile struct {
	Name      string                  `json:"name"`
	Enricher  *config.ProcessorConfig `json:"enricher,omitempty"`
	Generator *config.ProcessorConfig `json:"generator,omitempty"`
}

// Return the processor configuration of the given kind (may be nil).
func (p *Profile) ProcessorConfig(kind Kind) *config.ProcessorConfig {
	switch kind {
	case KindEnricher:
		return p.Enricher
	case KindGenerator:
		return p.Generator
	default:
		panic("this cannot happen")
	}
}

// Located is a profile together with the location of the document it was read from.
type Located struct {
	Profile  *Profile
	Location string
}
