/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package resources

import (
	"k8s.io/apimachinery/pkg/runtime"
)

// Deep-merge two maps with the usual logic and return the result.
// The first map (x) must be deeply JSON (i.e. consist deeply of JSON values only).
// The maps given as input will not be changed; both maps can be passed as nil.
func MergeMaps(x, y map[string]any) map[string]any {
	if x == nil {
		x = make(map[string]any)
	} else {
		x = runtime.DeepCopyJSON(x)
	}
	MergeMapInto(x, y)
	return x
}

// Deep-merge second map (y) over first map (x); nested maps are merged, everything else is replaced.
// The first map must not be nil, the second map is allowed to be nil.
func MergeMapInto(x map[string]any, y map[string]any) {
	for k, w := range y {
		if v, ok := x[k].(map[string]any); ok {
			if w, ok := w.(map[string]any); ok {
				MergeMapInto(v, w)
				continue
			}
		}
		x[k] = w
	}
}

// Insert all entries of values into m whose key is not yet present, and return the (possibly newly allocated) map.
// Existing entries are never overwritten.
func PutIfAbsent(m map[string]string, values map[string]string) map[string]string {
	if len(values) == 0 {
		return m
	}
	if m == nil {
		m = make(map[string]string, len(values))
	}
	for key, value := range values {
		if _, ok := m[key]; !ok {
			m[key] = value
		}
	}
	return m
}

// Insert all entries of values into m, overwriting existing entries, and return the (possibly newly allocated) map.
func PutAll(m map[string]string, values map[string]string) map[string]string {
	if len(values) == 0 {
		return m
	}
	if m == nil {
		m = make(map[string]string, len(values))
	}
	for key, value := range values {
		m[key] = value
	}
	return m
}
