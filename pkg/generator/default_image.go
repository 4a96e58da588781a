/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package generator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sap/go-generics/slices"

	"github.com/sap/manifest-enricher/pkg/config"
	"github.com/sap/manifest-enricher/pkg/project"
	"github.com/sap/manifest-enricher/pkg/types"
)

const (
	DefaultImageGeneratorName  = "kmb-default-image"
	DefaultImageGeneratorOrder = 100
)

// Dependency group of the prometheus JMX exporter; if present, the metrics port is exposed.
const prometheusJmxGroup = "io.prometheus.jmx"

var (
	defaultImageFromKey  = config.Key{Name: "from", Default: "alpine:latest"}
	defaultImagePortsKey = "ports"
)

// DefaultImageGenerator adds an image build configuration for the project, if there is none yet.
type DefaultImageGenerator struct {
	unit
}

var _ Generator = &DefaultImageGenerator{}

// Create a new DefaultImageGenerator.
func NewDefaultImageGenerator(context *Context) *DefaultImageGenerator {
	return &DefaultImageGenerator{unit: newUnit(context, DefaultImageGeneratorName, DefaultImageGeneratorOrder)}
}

func (g *DefaultImageGenerator) IsApplicable(images []project.ImageConfiguration) bool {
	return g.context.Project.Packaging != project.PackagingPom && !hasBuildConfiguration(images)
}

func (g *DefaultImageGenerator) Customize(ctx context.Context, images []project.ImageConfiguration) ([]project.ImageConfiguration, error) {
	p := g.context.Project

	ports := g.resolver.GetStringSlice(defaultImagePortsKey, []string{"8080"})
	if p.HasDependency(prometheusJmxGroup) {
		metricsPort := strconv.Itoa(types.PrometheusPort)
		if !slices.Contains(ports, metricsPort) {
			ports = append(ports, metricsPort)
		}
	}

	name := g.resolver.Get("name", defaultImageName(p))
	if _, err := project.ParseImageName(name); err != nil {
		return nil, err
	}

	return append(images, project.ImageConfiguration{
		Name:  name,
		Alias: g.resolver.Get("alias", p.DefaultResourceName()),
		Build: &project.BuildImageConfiguration{
			From:  g.resolver.GetKey(defaultImageFromKey),
			Ports: ports,
		},
	}), nil
}

func defaultImageName(p *project.Project) string {
	version := p.Version
	if version == "" {
		version = "latest"
	}
	name := p.DefaultResourceName()
	if group := strings.ToLower(p.Group); group != "" {
		name = group + "/" + name
	}
	return fmt.Sprintf("%s:%s", name, version)
}
