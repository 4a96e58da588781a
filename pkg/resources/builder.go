/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package resources

import (
	"fmt"

	"github.com/pkg/errors"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/sap/manifest-enricher/pkg/types"
)

// Builder is the shared, mutable resource list of one pipeline run.
// Objects are kept in insertion order; the identity of an object is (group kind, namespace, name).
// A Builder is not safe for concurrent use.
type Builder struct {
	objects []client.Object
}

// Create a new Builder, seeded with the given objects.
func NewBuilder(objects ...client.Object) (*Builder, error) {
	b := &Builder{}
	if err := b.Add(objects...); err != nil {
		return nil, err
	}
	return b, nil
}

// Append objects to the builder. Objects must have a kind set (typed objects need their TypeMeta populated).
// Adding an object whose identity is already present fails, and leaves the builder unchanged.
func (b *Builder) Add(objects ...client.Object) error {
	identities := make(map[string]struct{}, len(b.objects)+len(objects))
	for _, object := range b.objects {
		identities[types.IdentityOf(object)] = struct{}{}
	}
	for _, object := range objects {
		if object.GetObjectKind().GroupVersionKind().Kind == "" {
			return fmt.Errorf("object %s has no kind", object.GetName())
		}
		identity := types.IdentityOf(object)
		if _, ok := identities[identity]; ok {
			return fmt.Errorf("duplicate object %s", identity)
		}
		identities[identity] = struct{}{}
	}
	b.objects = append(b.objects, objects...)
	return nil
}

// Check whether the builder contains an object of the given group kind.
func (b *Builder) Has(groupKind schema.GroupKind) bool {
	for _, object := range b.objects {
		if groupKindOf(object) == groupKind {
			return true
		}
	}
	return false
}

// Return the first object with given group kind and name, or nil if there is none.
func (b *Builder) Find(groupKind schema.GroupKind, name string) client.Object {
	for _, object := range b.objects {
		if groupKindOf(object) == groupKind && object.GetName() == name {
			return object
		}
	}
	return nil
}

// Return the objects currently held; the returned slice must not be modified, but its elements may.
func (b *Builder) Items() []client.Object {
	return b.objects
}

func (b *Builder) Len() int {
	return len(b.objects)
}

// Call fn for every object of the given group kind, in list order; the first error aborts the traversal.
func (b *Builder) ForEachOfKind(groupKind schema.GroupKind, fn func(object client.Object) error) error {
	for _, object := range b.objects {
		if groupKindOf(object) != groupKind {
			continue
		}
		if err := fn(object); err != nil {
			return err
		}
	}
	return nil
}

// Return deep copies of all objects, in list order.
func (b *Builder) Build() []client.Object {
	objects := make([]client.Object, len(b.objects))
	for i, object := range b.objects {
		objects[i] = object.DeepCopyObject().(client.Object)
	}
	return objects
}

// Call fn for every object of the given group kind as typed object (such as *appsv1.Deployment).
// Typed objects of matching Go type are passed as they are; unstructured objects are converted to the typed
// representation before, and afterwards the (possibly modified) result is merged over the original content,
// so that fields not modelled by the typed representation survive. Nested maps are merged, lists are replaced.
// As a consequence, fn may add or change fields of unstructured objects, but not remove them.
func Visit[T any, PT interface {
	*T
	client.Object
}](b *Builder, groupKind schema.GroupKind, fn func(object PT) error) error {
	for i, object := range b.objects {
		if groupKindOf(object) != groupKind {
			continue
		}
		switch o := object.(type) {
		case PT:
			if err := fn(o); err != nil {
				return err
			}
		case *unstructured.Unstructured:
			var t T
			typed := PT(&t)
			if err := runtime.DefaultUnstructuredConverter.FromUnstructured(o.Object, typed); err != nil {
				return errors.Wrapf(err, "error converting %s", types.IdentityOf(o))
			}
			if err := fn(typed); err != nil {
				return err
			}
			content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(typed)
			if err != nil {
				return errors.Wrapf(err, "error converting %s", types.IdentityOf(o))
			}
			u := &unstructured.Unstructured{Object: MergeMaps(o.Object, content)}
			u.SetGroupVersionKind(o.GroupVersionKind())
			b.objects[i] = u
		default:
			return fmt.Errorf("unsupported object type %T for %s", object, types.IdentityOf(object))
		}
	}
	return nil
}

func groupKindOf(object client.Object) schema.GroupKind {
	return object.GetObjectKind().GroupVersionKind().GroupKind()
}
