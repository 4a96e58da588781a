/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package generator

import (
	"context"

	"github.com/pkg/errors"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/sap/manifest-enricher/internal/metrics"
	"github.com/sap/manifest-enricher/pkg/project"
	"github.com/sap/manifest-enricher/pkg/types"
)

// Manager chains generators; each applicable generator receives the output of the preceding one.
type Manager struct {
	generators []Generator
}

// Create a new Manager running the given (ordered) generators.
func NewManager(generators ...Generator) *Manager {
	return &Manager{generators: generators}
}

// Run the generators over the given image configurations, and return the result.
// The passed images are not modified. If a generator fails, a ProcessingError is returned (and no images).
func (m *Manager) Generate(ctx context.Context, images []project.ImageConfiguration) ([]project.ImageConfiguration, error) {
	log := log.FromContext(ctx)

	images = copyImages(images)
	for i, generator := range m.generators {
		name := generator.Name()
		if !generator.IsApplicable(images) {
			log.V(1).Info("skipping generator (not applicable)", "unit", name)
			continue
		}
		log.V(1).Info("running generator", "unit", name, "phase", types.PhaseCustomize)
		metrics.UnitInvocations.WithLabelValues(name, string(types.PhaseCustomize)).Inc()
		_images, err := generator.Customize(ctx, copyImages(images))
		if err != nil {
			metrics.UnitErrors.WithLabelValues(name, string(types.PhaseCustomize)).Inc()
			return nil, types.NewProcessingError(errors.Wrapf(err, "error calling generator (%d)", i), name, types.PhaseCustomize)
		}
		images = _images
	}
	return images, nil
}

func copyImages(images []project.ImageConfiguration) []project.ImageConfiguration {
	if images == nil {
		return nil
	}
	result := make([]project.ImageConfiguration, len(images))
	for i, image := range images {
		result[i] = image
		if image.Build != nil {
			build := *image.Build
			build.Ports = append([]string(nil), image.Build.Ports...)
			build.Cmd = append([]string(nil), image.Build.Cmd...)
			build.Labels = copyMap(image.Build.Labels)
			build.Env = copyMap(image.Build.Env)
			result[i].Build = &build
		}
	}
	return result
}

func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	result := make(map[string]string, len(m))
	for key, value := range m {
		result[key] = value
	}
	return result
}
