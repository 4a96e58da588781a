/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package resources_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/sap/manifest-enricher/pkg/resources"
	"github.com/sap/manifest-enricher/pkg/types"
)

func service(namespace string, name string) *corev1.Service {
	return &corev1.Service{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name},
	}
}

func unstructuredDeployment(name string, replicas int64) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": "apps/v1",
		"kind":       "Deployment",
		"metadata":   map[string]any{"name": name},
		"spec":       map[string]any{"replicas": replicas},
	}}
}

var _ = Describe("testing: builder.go", func() {
	var builder *resources.Builder

	BeforeEach(func() {
		var err error
		builder, err = resources.NewBuilder(service("", "a"), unstructuredDeployment("d", 1), service("ns", "a"))
		Expect(err).NotTo(HaveOccurred())
	})

	It("should keep insertion order", func() {
		Expect(builder.Len()).To(Equal(3))
		names := []string{}
		for _, object := range builder.Items() {
			names = append(names, fmt.Sprintf("%s/%s", object.GetNamespace(), object.GetName()))
		}
		Expect(names).To(Equal([]string{"/a", "/d", "ns/a"}))
	})

	It("should reject duplicates and leave the builder unchanged", func() {
		err := builder.Add(service("", "b"), service("", "a"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("Service a"))
		Expect(builder.Len()).To(Equal(3))
		Expect(builder.Find(types.GroupKindService, "b")).To(BeNil())
	})

	It("should reject duplicates within one call", func() {
		Expect(builder.Add(service("x", "b"), service("x", "b"))).NotTo(Succeed())
	})

	It("should reject objects without kind", func() {
		Expect(builder.Add(&corev1.Service{ObjectMeta: metav1.ObjectMeta{Name: "x"}})).NotTo(Succeed())
	})

	It("should find objects by kind and name", func() {
		Expect(builder.Has(types.GroupKindService)).To(BeTrue())
		Expect(builder.Has(types.GroupKindPod)).To(BeFalse())
		Expect(builder.Find(types.GroupKindDeployment, "d")).NotTo(BeNil())
		Expect(builder.Find(types.GroupKindDeployment, "a")).To(BeNil())
	})

	It("should traverse objects of one kind", func() {
		var visited []string
		Expect(builder.ForEachOfKind(types.GroupKindService, func(object client.Object) error {
			visited = append(visited, object.GetNamespace())
			return nil
		})).To(Succeed())
		Expect(visited).To(Equal([]string{"", "ns"}))

		err := builder.ForEachOfKind(types.GroupKindService, func(object client.Object) error {
			return fmt.Errorf("stop")
		})
		Expect(err).To(MatchError("stop"))
	})

	It("should visit typed objects in place", func() {
		Expect(resources.Visit(builder, types.GroupKindService, func(s *corev1.Service) error {
			s.Spec.Type = corev1.ServiceTypeNodePort
			return nil
		})).To(Succeed())
		Expect(builder.Find(types.GroupKindService, "a").(*corev1.Service).Spec.Type).To(Equal(corev1.ServiceTypeNodePort))
	})

	It("should visit unstructured objects as typed objects and write them back", func() {
		Expect(resources.Visit(builder, types.GroupKindDeployment, func(d *appsv1.Deployment) error {
			Expect(*d.Spec.Replicas).To(Equal(int32(1)))
			d.Spec.Replicas = ref(int32(3))
			return nil
		})).To(Succeed())
		object, ok := builder.Find(types.GroupKindDeployment, "d").(*unstructured.Unstructured)
		Expect(ok).To(BeTrue())
		Expect(object.GetKind()).To(Equal("Deployment"))
		replicas, found, err := unstructured.NestedInt64(object.Object, "spec", "replicas")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(replicas).To(Equal(int64(3)))
	})

	It("should distinguish kinds of different API groups", func() {
		knative := &unstructured.Unstructured{Object: map[string]any{
			"apiVersion": "serving.knative.dev/v1",
			"kind":       "Service",
			"metadata":   map[string]any{"name": "a"},
		}}
		Expect(builder.Add(knative)).To(Succeed())
		Expect(builder.Find(schema.GroupKind{Group: "serving.knative.dev", Kind: "Service"}, "a")).To(BeIdenticalTo(knative))
		Expect(builder.Find(types.GroupKindService, "a")).To(BeAssignableToTypeOf(&corev1.Service{}))
		Expect(builder.Has(schema.GroupKind{Kind: "Deployment"})).To(BeFalse())
	})

	DescribeTable("visiting unstructured objects",
		func(object *unstructured.Unstructured, path []string, expected any) {
			builder, err := resources.NewBuilder(object)
			Expect(err).NotTo(HaveOccurred())
			Expect(resources.Visit(builder, types.GroupKindDeployment, func(d *appsv1.Deployment) error {
				d.Labels = map[string]string{"visited": "true"}
				return nil
			})).To(Succeed())
			result := builder.Items()[0].(*unstructured.Unstructured)
			value, found, err := unstructured.NestedFieldNoCopy(result.Object, path...)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(value).To(Equal(expected))
		},
		Entry("keeps a same kind object of a foreign group as it is",
			&unstructured.Unstructured{Object: map[string]any{
				"apiVersion": "example.io/v1",
				"kind":       "Deployment",
				"metadata":   map[string]any{"name": "d"},
				"spec":       map[string]any{"strategy": "canary"},
			}},
			[]string{"spec", "strategy"}, "canary"),
		Entry("keeps unknown fields of a Deployment",
			&unstructured.Unstructured{Object: map[string]any{
				"apiVersion": "apps/v1",
				"kind":       "Deployment",
				"metadata":   map[string]any{"name": "d"},
				"spec":       map[string]any{"replicas": int64(2), "futureField": "x"},
			}},
			[]string{"spec", "futureField"}, "x"),
		Entry("writes modified fields of a Deployment back",
			unstructuredDeployment("d", 2),
			[]string{"metadata", "labels", "visited"}, "true"),
	)

	It("should return deep copies on build", func() {
		objects := builder.Build()
		Expect(objects).To(HaveLen(3))
		objects[0].SetName("changed")
		Expect(builder.Items()[0].GetName()).To(Equal("a"))
	})
})

var _ = Describe("testing: util.go", func() {
	It("should insert absent entries only", func() {
		m := resources.PutIfAbsent(map[string]string{"a": "1"}, map[string]string{"a": "2", "b": "2"})
		Expect(m).To(Equal(map[string]string{"a": "1", "b": "2"}))
		Expect(resources.PutIfAbsent(nil, map[string]string{"x": "y"})).To(Equal(map[string]string{"x": "y"}))
		Expect(resources.PutIfAbsent(nil, nil)).To(BeNil())
	})

	It("should overwrite entries", func() {
		Expect(resources.PutAll(map[string]string{"a": "1"}, map[string]string{"a": "2"})).To(Equal(map[string]string{"a": "2"}))
	})

	It("should deep-merge maps without changing the inputs", func() {
		x := map[string]any{"a": map[string]any{"x": int64(1), "y": int64(1)}, "b": int64(1)}
		y := map[string]any{"a": map[string]any{"y": int64(2)}, "b": map[string]any{"z": int64(2)}}
		Expect(resources.MergeMaps(x, y)).To(Equal(map[string]any{"a": map[string]any{"x": int64(1), "y": int64(2)}, "b": map[string]any{"z": int64(2)}}))
		Expect(x).To(Equal(map[string]any{"a": map[string]any{"x": int64(1), "y": int64(1)}, "b": int64(1)}))
		Expect(y).To(Equal(map[string]any{"a": map[string]any{"y": int64(2)}, "b": map[string]any{"z": int64(2)}}))
	})
})

func ref[T any](x T) *T {
	return &x
}
