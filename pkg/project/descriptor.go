/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/drone/envsubst"
	"github.com/pkg/errors"

	kyaml "sigs.k8s.io/yaml"

	"github.com/sap/manifest-enricher/pkg/types"
)

const (
	DefaultDescriptorFilename = "kmb.yaml"
	DefaultResourceDir        = "src/main/kmb"
)

// Load the build descriptor from the given path.
// Relative resource and context directories are resolved against the directory of the descriptor.
func LoadDescriptor(path string) (*Descriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.NewConfigurationError(fmt.Errorf("no such file: %s", path), path)
		}
		return nil, err
	}
	descriptor, err := ParseDescriptor(raw)
	if err != nil {
		return nil, types.NewConfigurationError(err, path)
	}
	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	descriptor.ResourceDir = resolvePath(baseDir, descriptor.ResourceDir)
	for _, image := range descriptor.Images {
		if image.Build != nil {
			if image.Build.ContextDir == "" {
				image.Build.ContextDir = "."
			}
			image.Build.ContextDir = resolvePath(baseDir, image.Build.ContextDir)
		}
	}
	return descriptor, nil
}

// Parse a build descriptor, and expand ${...} references in property values and image configurations.
// References are resolved against the project coordinates (PROJECT_GROUP, PROJECT_NAME, PROJECT_VERSION,
// PROJECT_PACKAGING) and then against the environment; unresolvable references expand to the empty string.
func ParseDescriptor(raw []byte) (*Descriptor, error) {
	descriptor := &Descriptor{}
	if err := kyaml.UnmarshalStrict(raw, descriptor); err != nil {
		return nil, errors.Wrap(err, "error parsing build descriptor")
	}
	if descriptor.Project.Name == "" {
		return nil, fmt.Errorf("missing project name")
	}
	if descriptor.ResourceDir == "" {
		descriptor.ResourceDir = DefaultResourceDir
	}

	coordinates := map[string]string{
		"PROJECT_GROUP":     descriptor.Project.Group,
		"PROJECT_NAME":      descriptor.Project.Name,
		"PROJECT_VERSION":   descriptor.Project.Version,
		"PROJECT_PACKAGING": descriptor.Project.Packaging,
	}
	mapping := func(key string) string {
		if value, ok := coordinates[key]; ok {
			return value
		}
		return os.Getenv(key)
	}
	expand := func(s *string) error {
		value, err := envsubst.Eval(*s, mapping)
		if err != nil {
			return errors.Wrapf(err, "error expanding %q", *s)
		}
		*s = value
		return nil
	}

	expanded := make(map[string]string, len(descriptor.Project.Properties))
	for key, value := range descriptor.Project.Properties {
		if err := expand(&value); err != nil {
			return nil, err
		}
		expanded[key] = value
	}
	if len(expanded) > 0 {
		descriptor.Project.Properties = expanded
	}

	for i := range descriptor.Images {
		image := &descriptor.Images[i]
		if err := expand(&image.Name); err != nil {
			return nil, err
		}
		if image.Build != nil {
			if err := expand(&image.Build.From); err != nil {
				return nil, err
			}
			for key, value := range image.Build.Labels {
				if err := expand(&value); err != nil {
					return nil, err
				}
				image.Build.Labels[key] = value
			}
		}
	}

	return descriptor, nil
}

func resolvePath(baseDir string, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
