/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package templatex

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/sap/go-generics/maps"
	"github.com/sap/go-generics/slices"
	kyaml "sigs.k8s.io/yaml"

	"github.com/sap/manifest-enricher/pkg/config"
)

const maxIncludeDepth = 1000

// template FuncMap generator for context independent functions
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"toYaml":   toYaml,
		"fromYaml": fromYaml,
		"toJson":   toJson,
		"fromJson": fromJson,
		"required": required,
	}
}

// template FuncMap generator for functions called in a template context
func FuncMapForTemplate(t *template.Template) template.FuncMap {
	return template.FuncMap{
		"include": makeFuncInclude(t),
		"tpl":     makeFuncTpl(t),
	}
}

// template FuncMap generator for functions accessing the files of a resource directory; keys of files are slash separated relative paths
func FuncMapForFiles(files map[string][]byte) template.FuncMap {
	return template.FuncMap{
		"listFiles":  makeFuncListFiles(files),
		"existsFile": makeFuncExistsFile(files),
		"readFile":   makeFuncReadFile(files),
	}
}

// template FuncMap generator for functions accessing properties; properties are probed in the given order
func FuncMapForProperties(properties ...config.Properties) template.FuncMap {
	lookup := func(key string) (string, bool) {
		for _, p := range properties {
			if p == nil {
				continue
			}
			if value, ok := p.Lookup(key); ok {
				return value, true
			}
		}
		return "", false
	}
	return template.FuncMap{
		"property": func(key string, defaultValue ...string) string {
			if value, ok := lookup(key); ok {
				return value
			}
			if len(defaultValue) > 0 {
				return defaultValue[0]
			}
			return ""
		},
		"hasProperty": func(key string) bool {
			_, ok := lookup(key)
			return ok
		},
	}
}

func toYaml(data any) (string, error) {
	raw, err := kyaml.Marshal(data)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(raw), "\n"), nil
}

func fromYaml(data string) (map[string]any, error) {
	var res map[string]any
	if err := kyaml.Unmarshal([]byte(data), &res); err != nil {
		return nil, err
	}
	return res, nil
}

func toJson(data any) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func fromJson(data string) (map[string]any, error) {
	var res map[string]any
	if err := json.Unmarshal([]byte(data), &res); err != nil {
		return nil, err
	}
	return res, nil
}

func required(warn string, data any) (any, error) {
	if data == nil {
		return data, errors.New(warn)
	} else if s, ok := data.(string); ok && s == "" {
		return data, errors.New(warn)
	}
	return data, nil
}

func makeFuncInclude(t *template.Template) func(string, any) (string, error) {
	depth := make(map[string]int)

	return func(name string, data any) (string, error) {
		if t == nil {
			return "", fmt.Errorf("include is not available in this context")
		}
		if depth[name] >= maxIncludeDepth {
			return "", fmt.Errorf("rendering template has a nested reference name: %s", name)
		}
		depth[name]++
		defer func() { depth[name]-- }()
		var buf strings.Builder
		err := t.ExecuteTemplate(&buf, name, data)
		return buf.String(), err
	}
}

func makeFuncTpl(t *template.Template) func(string, any) (string, error) {
	return func(text string, data any) (string, error) {
		if t == nil {
			return "", fmt.Errorf("tpl is not available in this context")
		}
		var buf strings.Builder
		_t, err := t.Clone()
		if err != nil {
			// Clone() should never produce an error
			panic("this cannot happen")
		}
		_t = _t.New("gotpl")
		if _, err := _t.Parse(text); err != nil {
			return "", err
		}
		err = _t.Execute(&buf, data)
		return buf.String(), err
	}
}

func makeFuncListFiles(files map[string][]byte) func(pattern string) ([]string, error) {
	return func(pattern string) ([]string, error) {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		return slices.Sort(slices.Select(maps.Keys(files), func(path string) bool { return g.Match(path) })), nil
	}
}

func makeFuncExistsFile(files map[string][]byte) func(path string) bool {
	return func(path string) bool {
		_, ok := files[path]
		return ok
	}
}

func makeFuncReadFile(files map[string][]byte) func(path string) (string, error) {
	return func(path string) (string, error) {
		data, ok := files[path]
		if !ok {
			return "", errors.Wrapf(fs.ErrNotExist, "error reading %s", path)
		}
		return string(data), nil
	}
}
