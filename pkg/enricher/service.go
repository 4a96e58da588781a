/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package enricher

import (
	"context"
	"strconv"

	"github.com/sap/manifest-enricher/pkg/project"
	"github.com/sap/manifest-enricher/pkg/resources"
	"github.com/sap/manifest-enricher/pkg/synthesizer"
	"github.com/sap/manifest-enricher/pkg/types"
)

const (
	ServiceEnricherName  = "kmb-service"
	ServiceEnricherOrder = 200
)

// ServiceEnricher adds Services, unless there is a Service already.
// Services are synthesized from the configured service declarations; if there are none, one Service is derived
// from the ports exposed by the images. Unnamed services get the default name; if there are several of them,
// all but the first are suffixed with their position among the unnamed ones.
type ServiceEnricher struct {
	unit
}

var _ Enricher = &ServiceEnricher{}

// Create a new ServiceEnricher.
func NewServiceEnricher(context *Context) *ServiceEnricher {
	return &ServiceEnricher{unit: newUnit(context, ServiceEnricherName, ServiceEnricherOrder)}
}

func (e *ServiceEnricher) Create(ctx context.Context, builder *resources.Builder) error {
	if builder.Has(types.GroupKindService) {
		return nil
	}

	configs := make([]project.ServiceConfig, len(e.context.Resources.Services))
	copy(configs, e.context.Resources.Services)
	if len(configs) == 0 {
		config, err := e.serviceFromImages()
		if err != nil {
			return err
		}
		if config != nil {
			configs = append(configs, *config)
		}
	}
	defaultName := e.resolver.Get("name", e.context.Project.DefaultResourceName())
	unnamed := 0
	for i := range configs {
		if configs[i].Name != "" {
			continue
		}
		if unnamed == 0 {
			configs[i].Name = defaultName
		} else {
			configs[i].Name = defaultName + "-" + strconv.Itoa(unnamed)
		}
		unnamed++
	}

	for _, service := range synthesizer.SynthesizeServices(configs, e.context.Resources.Annotations.Service) {
		if err := builder.Add(service); err != nil {
			return err
		}
	}
	return nil
}

func (e *ServiceEnricher) serviceFromImages() (*project.ServiceConfig, error) {
	headless, err := e.resolver.GetBool("headless", false)
	if err != nil {
		return nil, err
	}
	config := &project.ServiceConfig{
		Headless: headless,
		Type:     e.resolver.Get("type", ""),
	}
	for _, image := range e.context.Images {
		if image.Build == nil {
			continue
		}
		for _, spec := range image.Build.Ports {
			port, protocol, err := synthesizer.ParsePort(spec)
			if err != nil {
				return nil, err
			}
			config.Ports = append(config.Ports, project.ServicePort{
				Name:     synthesizer.WellKnownPortName(port),
				Protocol: string(protocol),
				Port:     port,
			})
		}
	}
	if len(config.Ports) == 0 && !config.Headless {
		return nil, nil
	}
	return config, nil
}
