/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package project

import (
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
)

// ImageName is a parsed image reference.
type ImageName struct {
	repository string
	tag        string
}

// Parse the given image reference; a missing tag defaults to 'latest'.
func ParseImageName(image string) (*ImageName, error) {
	tag, err := name.NewTag(image, name.WeakValidation)
	if err != nil {
		return nil, err
	}
	return &ImageName{
		repository: tag.RepositoryStr(),
		tag:        tag.TagStr(),
	}, nil
}

// Return the repository without registry (e.g. 'myorg/app').
func (n *ImageName) Repository() string {
	return n.repository
}

// Return the last path segment of the repository (e.g. 'app').
func (n *ImageName) SimpleName() string {
	return n.repository[strings.LastIndex(n.repository, "/")+1:]
}

func (n *ImageName) Tag() string {
	return n.tag
}
