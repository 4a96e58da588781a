/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package fragments

import (
	"bytes"
	"context"
	"io/fs"
	"path"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pkg/errors"
	"github.com/sap/go-generics/maps"
	"github.com/sap/go-generics/slices"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/kustomize/api/konfig"
	"sigs.k8s.io/kustomize/api/krusty"
	kustypes "sigs.k8s.io/kustomize/api/types"
	kustfsys "sigs.k8s.io/kustomize/kyaml/filesys"
	kyaml "sigs.k8s.io/yaml"

	"github.com/sap/manifest-enricher/internal/fileutils"
	"github.com/sap/manifest-enricher/internal/templatex"
	"github.com/sap/manifest-enricher/pkg/config"
	"github.com/sap/manifest-enricher/pkg/resources"
)

const (
	DefaultTemplateSuffix = ".tpl"
	IgnoreFilename        = ".kmb-ignore"
	// Profile documents living in the resource directory; these are never treated as fragments.
	ProfileFilePattern = "profiles*.yaml"
)

// Root of the rendered fragments in the in-memory file system.
const renderRoot = "kmb"

type Options struct {
	// Suffix of files to be rendered as go templates (the suffix is stripped); defaults to '.tpl'.
	TemplateSuffix string
	// Properties accessible through the 'property' template function, probed in order.
	Properties []config.Properties
}

// Fragments is a parsed resource directory.
type Fragments struct {
	files        map[string][]byte
	nonTemplates map[string][]byte
	templates    map[string]*template.Template
	kustomizer   *krusty.Kustomizer
}

// Parse the resource fragments contained in dir of fsys. A non-existing dir is not an error, but yields no fragments.
// Files matched by the .kmb-ignore file (gitignore syntax) are skipped, as well as profile documents at top level.
func ParseFragments(fsys fs.FS, dir string, options Options) (*Fragments, error) {
	if options.TemplateSuffix == "" {
		options.TemplateSuffix = DefaultTemplateSuffix
	}
	if dir == "" {
		dir = "."
	}
	dirFS, err := fs.Sub(fsys, path.Clean(dir))
	if err != nil {
		return nil, err
	}

	ignore, err := fileutils.ReadIgnore(dirFS, IgnoreFilename)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading %s", IgnoreFilename)
	}
	files, err := fileutils.ReadFiles(dirFS, ".", fileutils.FindOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "error reading resource directory %s", dir)
	}

	f := &Fragments{
		files:        files,
		nonTemplates: make(map[string][]byte),
		templates:    make(map[string]*template.Template),
		kustomizer: krusty.MakeKustomizer(&krusty.Options{
			LoadRestrictions: kustypes.LoadRestrictionsNone,
			PluginConfig:     kustypes.DisabledPluginConfig(),
		}),
	}

	var t *template.Template
	for _, name := range slices.Sort(maps.Keys(files)) {
		if path.Base(name) == IgnoreFilename || fileutils.IsIgnored(ignore, name, false) {
			continue
		}
		if match, _ := path.Match(ProfileFilePattern, name); match {
			continue
		}
		raw := files[name]
		if strings.HasSuffix(name, options.TemplateSuffix) {
			if t == nil {
				t = template.New(name)
				t.Option("missingkey=zero").
					Funcs(sprig.TxtFuncMap()).
					Funcs(templatex.FuncMap()).
					Funcs(templatex.FuncMapForTemplate(nil)).
					Funcs(templatex.FuncMapForFiles(files)).
					Funcs(templatex.FuncMapForProperties(options.Properties...))
			} else {
				t = t.New(name)
			}
			if _, err := t.Parse(string(raw)); err != nil {
				return nil, errors.Wrapf(err, "error parsing template %s", name)
			}
			f.templates[strings.TrimSuffix(name, options.TemplateSuffix)] = t
		} else {
			f.nonTemplates[name] = raw
		}
	}

	return f, nil
}

// Check whether there is anything to render.
func (f *Fragments) IsEmpty() bool {
	return len(f.templates) == 0 && len(f.nonTemplates) == 0
}

// Render the fragments into a list of (unstructured) objects; templates are executed with the given data.
func (f *Fragments) Render(ctx context.Context, data map[string]any) ([]client.Object, error) {
	log := log.FromContext(ctx)

	if f.IsEmpty() {
		return nil, nil
	}

	fsys := kustfsys.MakeFsInMemory()
	for name, raw := range f.nonTemplates {
		if err := fsys.WriteFile(path.Join(renderRoot, name), raw); err != nil {
			return nil, err
		}
	}

	var t0 *template.Template
	for _, name := range slices.Sort(maps.Keys(f.templates)) {
		t := f.templates[name]
		if t0 == nil {
			var err error
			t0, err = t.Clone()
			if err != nil {
				return nil, err
			}
			t0.Funcs(templatex.FuncMapForTemplate(t0))
		}
		var buf bytes.Buffer
		if err := t0.ExecuteTemplate(&buf, t.Name(), data); err != nil {
			return nil, errors.Wrapf(err, "error rendering template %s", t.Name())
		}
		if err := fsys.WriteFile(path.Join(renderRoot, name), templatex.AdjustTemplateOutput(buf.Bytes())); err != nil {
			return nil, err
		}
	}

	haveKustomization := slices.Any(konfig.RecognizedKustomizationFileNames(), func(name string) bool {
		return fsys.Exists(path.Join(renderRoot, name))
	})
	if !haveKustomization {
		kustomization, err := generateKustomization(fsys, renderRoot)
		if err != nil {
			return nil, err
		}
		if kustomization == nil {
			log.V(1).Info("No resource fragments found")
			return nil, nil
		}
		if err := fsys.WriteFile(path.Join(renderRoot, konfig.DefaultKustomizationFileName()), kustomization); err != nil {
			return nil, err
		}
	}

	resmap, err := f.kustomizer.Run(fsys, renderRoot)
	if err != nil {
		return nil, errors.Wrap(err, "error running kustomize")
	}
	raw, err := resmap.AsYaml()
	if err != nil {
		return nil, err
	}
	objects, err := resources.Decode(raw)
	if err != nil {
		return nil, err
	}
	log.V(1).Info("Rendered resource fragments", "count", len(objects))
	return objects, nil
}

// Generate a kustomization listing all yaml files (not starting with '.') below dir, relative to dir;
// returns nil if there are no such files.
func generateKustomization(fsys kustfsys.FileSystem, dir string) ([]byte, error) {
	var resources []string

	walk := func(filePath string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		base := path.Base(filePath)
		if slices.Contains(konfig.RecognizedKustomizationFileNames(), base) {
			return nil
		}
		if !info.IsDir() && !strings.HasPrefix(base, ".") && (strings.HasSuffix(base, ".yaml") || strings.HasSuffix(base, ".yml")) {
			resources = append(resources, strings.TrimPrefix(filePath, dir+"/"))
		}
		return nil
	}
	if err := fsys.Walk(dir, walk); err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		return nil, nil
	}

	kustomization := kustypes.Kustomization{
		TypeMeta: kustypes.TypeMeta{
			APIVersion: kustypes.KustomizationVersion,
			Kind:       kustypes.KustomizationKind,
		},
		Resources: slices.Sort(resources),
	}
	return kyaml.Marshal(kustomization)
}
