/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package types

import (
	"fmt"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Represents types which have TypeMeta, and a namespace and a name.
// All types implementing controller-runtime's client.Object obviously implement ObjectKey as well.
type ObjectKey interface {
	GetObjectKind() schema.ObjectKind
	GetNamespace() string
	GetName() string
}

// Return the identity of an object inside a resource list, which is (group kind, namespace, name).
// The API version is not part of the identity.
func IdentityOf(key ObjectKey) string {
	kind := key.GetObjectKind().GroupVersionKind().GroupKind().String()
	if namespace := key.GetNamespace(); namespace != "" {
		return fmt.Sprintf("%s %s/%s", kind, namespace, name(key))
	}
	return fmt.Sprintf("%s %s", kind, name(key))
}

// Return a string representation of an ObjectKey.
func ObjectKeyToString(key ObjectKey) string {
	gvk := key.GetObjectKind().GroupVersionKind()
	namespace := key.GetNamespace()

	if namespace == "" {
		return fmt.Sprintf("%s %s", gvk, name(key))
	} else {
		return fmt.Sprintf("%s %s/%s", gvk, namespace, name(key))
	}
}

func name(key ObjectKey) string {
	if name := key.GetName(); name != "" {
		return name
	}
	return "<unnamed>"
}
