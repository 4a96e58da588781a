/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package resources

import (
	"bytes"
	"io"

	"github.com/pkg/errors"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
	"sigs.k8s.io/controller-runtime/pkg/client"
	kyaml "sigs.k8s.io/yaml"

	"github.com/sap/manifest-enricher/pkg/types"
)

// Encode the given objects as a v1/List YAML document. Map keys are sorted, so the output only depends
// on the objects and their order.
func Encode(objects []client.Object) ([]byte, error) {
	items := make([]any, len(objects))
	for i, object := range objects {
		items[i] = object
	}
	list := map[string]any{
		"apiVersion": "v1",
		"kind":       types.KindList,
		"items":      items,
	}
	raw, err := kyaml.Marshal(list)
	if err != nil {
		return nil, errors.Wrap(err, "error encoding resource list")
	}
	return raw, nil
}

// Decode a (multi-document) YAML stream into unstructured objects. Empty documents are skipped;
// documents of kind List are flattened into their items.
func Decode(data []byte) ([]client.Object, error) {
	var objects []client.Object
	decoder := utilyaml.NewYAMLToJSONDecoder(bytes.NewBuffer(data))
	for {
		object := &unstructured.Unstructured{}
		if err := decoder.Decode(&object.Object); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, "error decoding resources")
		}
		if object.Object == nil {
			continue
		}
		if object.IsList() {
			list, err := object.ToList()
			if err != nil {
				return nil, errors.Wrap(err, "error decoding resource list")
			}
			for i := range list.Items {
				objects = append(objects, &list.Items[i])
			}
			continue
		}
		objects = append(objects, object)
	}
	return objects, nil
}
