/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package generator

import (
	"context"

	"github.com/sap/manifest-enricher/pkg/project"
	"github.com/sap/manifest-enricher/pkg/resources"
)

const (
	ImageLabelsGeneratorName  = "kmb-image-labels"
	ImageLabelsGeneratorOrder = 200
)

const (
	imageLabelProject = "kmb.project"
	imageLabelVersion = "kmb.version"
	imageLabelGroup   = "kmb.group"
)

// ImageLabelsGenerator adds the project coordinates as labels to all image build configurations (existing labels win).
type ImageLabelsGenerator struct {
	unit
}

var _ Generator = &ImageLabelsGenerator{}

// Create a new ImageLabelsGenerator.
func NewImageLabelsGenerator(context *Context) *ImageLabelsGenerator {
	return &ImageLabelsGenerator{unit: newUnit(context, ImageLabelsGeneratorName, ImageLabelsGeneratorOrder)}
}

func (g *ImageLabelsGenerator) IsApplicable(images []project.ImageConfiguration) bool {
	return hasBuildConfiguration(images)
}

func (g *ImageLabelsGenerator) Customize(ctx context.Context, images []project.ImageConfiguration) ([]project.ImageConfiguration, error) {
	p := g.context.Project
	labels := map[string]string{}
	for key, value := range map[string]string{
		imageLabelProject: p.Name,
		imageLabelVersion: p.Version,
		imageLabelGroup:   p.Group,
	} {
		if value != "" {
			labels[key] = value
		}
	}
	for i := range images {
		if images[i].Build != nil {
			images[i].Build.Labels = resources.PutIfAbsent(images[i].Build.Labels, labels)
		}
	}
	return images, nil
}
