/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"context"
	"io/fs"
	"os"

	"github.com/sap/go-generics/slices"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/sap/manifest-enricher/internal/fragments"
	"github.com/sap/manifest-enricher/pkg/config"
	"github.com/sap/manifest-enricher/pkg/enricher"
	"github.com/sap/manifest-enricher/pkg/generator"
	"github.com/sap/manifest-enricher/pkg/profile"
	"github.com/sap/manifest-enricher/pkg/project"
)

type Options struct {
	// Overrides the resource directory of the descriptor.
	ResourceDir string
	// Overrides the profile of the descriptor.
	Profile string
	// Process-wide properties (e.g. from -D flags).
	SystemProperties config.PropertiesMap
	// Bundled profiles; if nil, the profiles built into the binary are used.
	BundledProfiles fs.FS
}

// Pipeline runs generators and enrichers for one build descriptor.
type Pipeline struct {
	descriptor       *project.Descriptor
	resourceDir      string
	profileName      string
	systemProperties config.PropertiesMap
	profiles         *profile.Loader
	generators       *generator.Registry
	enrichers        *enricher.Registry
}

// Create a new Pipeline with the built-in generators and enrichers.
func New(descriptor *project.Descriptor, options Options) *Pipeline {
	resourceDir := descriptor.ResourceDir
	if options.ResourceDir != "" {
		resourceDir = options.ResourceDir
	}
	profileName := descriptor.Profile
	if options.Profile != "" {
		profileName = options.Profile
	}
	profiles := profile.NewLoader(resourceDir)
	if options.BundledProfiles != nil {
		profiles = profile.NewLoaderWithBundled(resourceDir, options.BundledProfiles)
	}
	return &Pipeline{
		descriptor:       descriptor,
		resourceDir:      resourceDir,
		profileName:      profileName,
		systemProperties: options.SystemProperties,
		profiles:         profiles,
		generators:       generator.NewRegistry(),
		enrichers:        enricher.NewRegistry(),
	}
}

func (p *Pipeline) Descriptor() *project.Descriptor {
	return p.descriptor
}

func (p *Pipeline) Profiles() *profile.Loader {
	return p.profiles
}

// Return the image configurations of the project, customized by the selected generators.
func (p *Pipeline) Images(ctx context.Context) ([]project.ImageConfiguration, error) {
	processorConfig, err := p.profiles.Load(p.profileName, profile.KindGenerator, p.descriptor.Generator)
	if err != nil {
		return nil, err
	}
	generators, err := p.generators.Select(&generator.Context{
		Project:          &p.descriptor.Project,
		Config:           processorConfig,
		SystemProperties: p.systemProperties,
	}, processorConfig)
	if err != nil {
		return nil, err
	}
	return generator.NewManager(generators...).Generate(ctx, p.descriptor.Images)
}

// Return the final resource list: resource fragments, enriched by the selected enrichers.
func (p *Pipeline) Resources(ctx context.Context) ([]client.Object, error) {
	log := log.FromContext(ctx)

	images, err := p.Images(ctx)
	if err != nil {
		return nil, err
	}

	processorConfig, err := p.profiles.Load(p.profileName, profile.KindEnricher, p.descriptor.Enricher)
	if err != nil {
		return nil, err
	}
	enrichers, err := p.enrichers.Select(&enricher.Context{
		Project:          &p.descriptor.Project,
		Resources:        p.descriptor.Resources,
		Images:           images,
		Config:           processorConfig,
		SystemProperties: p.systemProperties,
	}, processorConfig)
	if err != nil {
		return nil, err
	}
	log.V(1).Info("selected enrichers", "units", slices.Collect(enrichers, func(e enricher.Enricher) string { return e.Name() }))

	initial, err := p.renderFragments(ctx, images)
	if err != nil {
		return nil, err
	}
	return enricher.Enrich(ctx, initial, enrichers)
}

func (p *Pipeline) renderFragments(ctx context.Context, images []project.ImageConfiguration) ([]client.Object, error) {
	if p.resourceDir == "" {
		return nil, nil
	}
	f, err := fragments.ParseFragments(os.DirFS(p.resourceDir), ".", fragments.Options{
		Properties: []config.Properties{p.descriptor.Project.PropertyMap(), p.systemProperties},
	})
	if err != nil {
		return nil, err
	}
	return f.Render(ctx, p.templateData(images))
}

func (p *Pipeline) templateData(images []project.ImageConfiguration) map[string]any {
	coordinates := p.descriptor.Project
	return map[string]any{
		"project": map[string]any{
			"group":     coordinates.Group,
			"name":      coordinates.Name,
			"version":   coordinates.Version,
			"packaging": coordinates.Packaging,
		},
		"images": slices.Collect(images, func(image project.ImageConfiguration) any { return image.Name }),
	}
}
