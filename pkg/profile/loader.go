/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package profile

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/pkg/errors"
	"github.com/sap/go-generics/slices"

	kyaml "sigs.k8s.io/yaml"

	"github.com/sap/manifest-enricher/internal/fileutils"
	"github.com/sap/manifest-enricher/pkg/config"
	"github.com/sap/manifest-enricher/pkg/types"
)

// Pattern of profile documents, in the resource directory and the bundled location.
const ProfileFilePattern = "profiles*.yaml"

const bundledDir = "bundled"

//go:embed bundled
var bundledFS embed.FS

// Loader looks up profiles in the project resource directory first, and then in the bundled location.
// Within a location, documents are probed in lexical order; inside a document, in declaration order.
// The first profile with a matching name wins.
type Loader struct {
	resourceDir string
	bundled     fs.FS
}

// Create a new Loader; resourceDir may be empty (or not exist), in which case only bundled profiles are found.
func NewLoader(resourceDir string) *Loader {
	return &Loader{
		resourceDir: resourceDir,
		bundled:     must(fs.Sub(bundledFS, bundledDir)),
	}
}

// Create a new Loader with a custom bundled location.
func NewLoaderWithBundled(resourceDir string, bundled fs.FS) *Loader {
	return &Loader{
		resourceDir: resourceDir,
		bundled:     bundled,
	}
}

// Return the effective processor configuration of the given kind: explicit, with the profile's configuration as defaults.
// If name is empty, the default profile is used when found; otherwise explicit is returned as it is (layered over nothing).
// Requesting a named profile which cannot be found, or hitting a malformed profile document, is a ConfigurationError.
func (l *Loader) Load(name string, kind Kind, explicit *config.ProcessorConfig) (*config.ProcessorConfig, error) {
	lookup := name
	if lookup == "" {
		lookup = DefaultProfileName
	}
	located, err := l.Find(lookup)
	if err != nil {
		return nil, err
	}
	if located == nil {
		if name != "" {
			return nil, types.NewConfigurationError(fmt.Errorf("no profile %s found", name), name)
		}
		return explicit.WithDefaults(nil), nil
	}
	return explicit.WithDefaults(located.Profile.ProcessorConfig(kind)), nil
}

// Find the profile with the given name; returns nil if there is none.
func (l *Loader) Find(name string) (*Located, error) {
	var result *Located
	err := l.walk(func(profile *Profile, location string) bool {
		if profile.Name == name {
			result = &Located{Profile: profile, Location: location}
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// List all profiles, in lookup order; profiles shadowed by an earlier profile of the same name are omitted.
func (l *Loader) List() ([]*Located, error) {
	var result []*Located
	err := l.walk(func(profile *Profile, location string) bool {
		if !slices.Any(result, func(located *Located) bool { return located.Profile.Name == profile.Name }) {
			result = append(result, &Located{Profile: profile, Location: location})
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (l *Loader) walk(visit func(profile *Profile, location string) bool) error {
	type source struct {
		fsys   fs.FS
		prefix string
	}
	var sources []source
	if l.resourceDir != "" {
		sources = append(sources, source{fsys: os.DirFS(l.resourceDir), prefix: l.resourceDir + "/"})
	}
	if l.bundled != nil {
		sources = append(sources, source{fsys: l.bundled, prefix: "bundled:"})
	}

	for _, source := range sources {
		files, err := fileutils.Find(source.fsys, ".", fileutils.FindOptions{NamePattern: ProfileFilePattern, FileType: fileutils.FileTypeRegular, MaxDepth: 1})
		if err != nil {
			return err
		}
		for _, file := range files {
			location := source.prefix + file
			raw, err := fs.ReadFile(source.fsys, file)
			if err != nil {
				return err
			}
			profiles, err := parseProfiles(raw)
			if err != nil {
				return types.NewConfigurationError(err, location)
			}
			for _, profile := range profiles {
				if !visit(profile, location) {
					return nil
				}
			}
		}
	}
	return nil
}

func parseProfiles(raw []byte) ([]*Profile, error) {
	var profiles []*Profile
	if err := kyaml.UnmarshalStrict(raw, &profiles); err != nil {
		return nil, errors.Wrap(err, "error parsing profile document")
	}
	for i, profile := range profiles {
		if profile == nil || profile.Name == "" {
			return nil, fmt.Errorf("profile at index %d has no name", i)
		}
	}
	return profiles, nil
}
