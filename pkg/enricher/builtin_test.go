/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package enricher_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/sap/manifest-enricher/pkg/config"
	"github.com/sap/manifest-enricher/pkg/enricher"
	"github.com/sap/manifest-enricher/pkg/project"
	"github.com/sap/manifest-enricher/pkg/resources"
	"github.com/sap/manifest-enricher/pkg/types"
)

func run(enricherContext *enricher.Context, initial ...client.Object) []client.Object {
	enrichers, err := enricher.NewRegistry().Select(enricherContext, enricherContext.Config)
	Expect(err).NotTo(HaveOccurred())
	objects, err := enricher.Enrich(context.Background(), initial, enrichers)
	Expect(err).NotTo(HaveOccurred())
	return objects
}

func find[T any, PT interface {
	*T
	client.Object
}](objects []client.Object, groupKind schema.GroupKind) PT {
	builder, err := resources.NewBuilder(objects...)
	Expect(err).NotTo(HaveOccurred())
	var result PT
	Expect(resources.Visit(builder, groupKind, func(object PT) error {
		result = object
		return nil
	})).To(Succeed())
	return result
}

var _ = Describe("testing: builtin enrichers", func() {
	var enricherContext *enricher.Context

	BeforeEach(func() {
		enricherContext = &enricher.Context{
			Project: &project.Project{Group: "example", Name: "MyApp", Version: "1.0"},
			Images: []project.ImageConfiguration{{
				Name:  "example/my-app:1.0",
				Build: &project.BuildImageConfiguration{Ports: []string{"8080", "9779"}},
			}},
			Config: &config.ProcessorConfig{Excludes: []string{enricher.IstioProxyEnricherName}},
		}
	})

	It("should list the builtin enrichers in order", func() {
		enrichers, err := enricher.NewRegistry().Select(enricherContext, nil)
		Expect(err).NotTo(HaveOccurred())
		var names []string
		for _, e := range enrichers {
			names = append(names, e.Name())
		}
		Expect(names).To(Equal([]string{"kmb-controller", "kmb-service", "kmb-annotations", "kmb-project-labels", "kmb-istio-proxy"}))
	})

	It("should synthesize a labeled Deployment and Service from the images", func() {
		objects := run(enricherContext)
		Expect(objects).To(HaveLen(2))

		deployment := find[appsv1.Deployment](objects, types.GroupKindDeployment)
		Expect(deployment.Name).To(Equal("my-app"))
		Expect(*deployment.Spec.Replicas).To(Equal(int32(1)))
		Expect(deployment.Labels).To(Equal(map[string]string{"project": "MyApp", "provider": "kmb", "group": "example", "version": "1.0"}))
		Expect(deployment.Spec.Selector.MatchLabels).To(Equal(map[string]string{"project": "MyApp", "provider": "kmb", "group": "example"}))
		Expect(deployment.Spec.Template.Labels).To(Equal(deployment.Spec.Selector.MatchLabels))
		Expect(deployment.Spec.Template.Spec.Containers[0].ImagePullPolicy).To(Equal(corev1.PullIfNotPresent))

		service := find[corev1.Service](objects, types.GroupKindService)
		Expect(service.Name).To(Equal("my-app"))
		Expect(service.Spec.Ports).To(HaveLen(1))
		Expect(service.Spec.Ports[0].Name).To(Equal("http"))
		Expect(service.Spec.Ports[0].Port).To(Equal(int32(8080)))
		Expect(service.Annotations).To(HaveKeyWithValue(types.AnnotationKeyPrometheusPort, "9779"))
		Expect(service.Annotations).To(HaveKeyWithValue(types.AnnotationKeyPrometheusScrape, "true"))
		Expect(service.Spec.Selector).To(Equal(deployment.Spec.Selector.MatchLabels))
	})

	It("should prefer configured services over image ports", func() {
		enricherContext.Resources.Services = []project.ServiceConfig{{Name: "web", Ports: []project.ServicePort{{Name: "web", Port: 80, TargetPort: 8080}}}}
		service := find[corev1.Service](run(enricherContext), types.GroupKindService)
		Expect(service.Name).To(Equal("web"))
		Expect(service.Spec.Ports[0].Port).To(Equal(int32(80)))
		Expect(service.Annotations).To(BeEmpty())
	})

	It("should resolve explicit configuration over project and system properties", func() {
		enricherContext.Project.Properties = map[string]string{"kmb.enricher.kmb-controller.replicaCount": "3", "kmb.enricher.kmb-controller.name": "from-project"}
		enricherContext.SystemProperties = config.PropertiesMap{"kmb.enricher.kmb-controller.pullPolicy": "Always", "kmb.enricher.kmb-controller.name": "from-system"}
		enricherContext.Config.Config = map[string]map[string]string{"kmb-controller": {"replicaCount": "5"}}
		deployment := find[appsv1.Deployment](run(enricherContext), types.GroupKindDeployment)
		Expect(*deployment.Spec.Replicas).To(Equal(int32(5)))
		Expect(deployment.Name).To(Equal("from-project"))
		Expect(deployment.Spec.Template.Spec.Containers[0].ImagePullPolicy).To(Equal(corev1.PullAlways))
	})

	It("should fail on invalid configuration values", func() {
		enricherContext.Config.Config = map[string]map[string]string{"kmb-controller": {"replicaCount": "many"}}
		enrichers, err := enricher.NewRegistry().Select(enricherContext, enricherContext.Config)
		Expect(err).NotTo(HaveOccurred())
		_, err = enricher.Enrich(context.Background(), nil, enrichers)
		Expect(err).To(MatchError(ContainSubstring("kmb-controller")))
	})

	It("should not add resources of kinds already present", func() {
		existing := &unstructured.Unstructured{Object: map[string]any{
			"apiVersion": "apps/v1",
			"kind":       "Deployment",
			"metadata":   map[string]any{"name": "existing"},
			"spec": map[string]any{
				"selector": map[string]any{"matchLabels": map[string]any{"app": "existing"}},
				"template": map[string]any{
					"metadata": map[string]any{"labels": map[string]any{"app": "existing"}},
					"spec":     map[string]any{"containers": []any{map[string]any{"name": "main", "image": "main"}}},
				},
			},
		}}
		objects := run(enricherContext, existing)
		Expect(objects).To(HaveLen(2))
		deployment := find[appsv1.Deployment](objects, types.GroupKindDeployment)
		Expect(deployment.Name).To(Equal("existing"))
		Expect(deployment.Spec.Selector.MatchLabels).To(Equal(map[string]string{"app": "existing"}))
		Expect(deployment.Labels).To(HaveKeyWithValue("project", "MyApp"))
	})

	It("should leave same-named kinds of other API groups untouched", func() {
		enricherContext.Config = &config.ProcessorConfig{Includes: []string{enricher.ProjectLabelsEnricherName}}
		knative := &unstructured.Unstructured{Object: map[string]any{
			"apiVersion": "serving.knative.dev/v1",
			"kind":       "Service",
			"metadata":   map[string]any{"name": "hello"},
			"spec": map[string]any{
				"template": map[string]any{
					"spec": map[string]any{"containers": []any{map[string]any{"image": "example/hello:1.0"}}},
				},
			},
		}}
		objects := run(enricherContext, knative)
		Expect(objects).To(HaveLen(1))
		object := objects[0].(*unstructured.Unstructured)
		Expect(object.GetAPIVersion()).To(Equal("serving.knative.dev/v1"))
		containers, found, err := unstructured.NestedSlice(object.Object, "spec", "template", "spec", "containers")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(containers).To(Equal([]any{map[string]any{"image": "example/hello:1.0"}}))
		Expect(object.Object["spec"]).NotTo(HaveKey("selector"))
		Expect(object.GetLabels()).To(HaveKeyWithValue("project", "MyApp"))
	})

	It("should keep fields of unstructured Deployments which have no typed counterpart", func() {
		enricherContext.Config = &config.ProcessorConfig{Includes: []string{enricher.ProjectLabelsEnricherName}}
		existing := &unstructured.Unstructured{Object: map[string]any{
			"apiVersion": "apps/v1",
			"kind":       "Deployment",
			"metadata":   map[string]any{"name": "existing"},
			"spec": map[string]any{
				"futureField": map[string]any{"enabled": true},
				"template": map[string]any{
					"spec": map[string]any{"containers": []any{map[string]any{"name": "main", "image": "main"}}},
				},
			},
		}}
		objects := run(enricherContext, existing)
		Expect(objects).To(HaveLen(1))
		object := objects[0].(*unstructured.Unstructured)
		enabled, found, err := unstructured.NestedBool(object.Object, "spec", "futureField", "enabled")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(enabled).To(BeTrue())
		selector, _, err := unstructured.NestedStringMap(object.Object, "spec", "selector", "matchLabels")
		Expect(err).NotTo(HaveOccurred())
		Expect(selector).To(HaveKeyWithValue("project", "MyApp"))
	})

	It("should give unnamed services distinct default names", func() {
		enricherContext.Resources.Services = []project.ServiceConfig{
			{Ports: []project.ServicePort{{Name: "http", Port: 8080}}},
			{Ports: []project.ServicePort{{Name: "admin", Port: 9000}}},
		}
		var names []string
		for _, object := range run(enricherContext) {
			if object.GetObjectKind().GroupVersionKind().GroupKind() == types.GroupKindService {
				names = append(names, object.GetName())
			}
		}
		Expect(names).To(Equal([]string{"my-app", "my-app-1"}))
	})

	It("should apply configured annotations, overwriting existing ones", func() {
		enricherContext.Resources.Annotations = project.AnnotationConfig{
			Service:    map[string]string{types.AnnotationKeyPrometheusPort: "1111", "s": "1"},
			ReplicaSet: map[string]string{"r": "1"},
			Template:   map[string]string{"t": "1"},
		}
		objects := run(enricherContext)
		service := find[corev1.Service](objects, types.GroupKindService)
		Expect(service.Annotations).To(HaveKeyWithValue(types.AnnotationKeyPrometheusPort, "1111"))
		Expect(service.Annotations).To(HaveKeyWithValue("s", "1"))
		deployment := find[appsv1.Deployment](objects, types.GroupKindDeployment)
		Expect(deployment.Annotations).To(Equal(map[string]string{"r": "1"}))
		Expect(deployment.Spec.Template.Annotations).To(Equal(map[string]string{"t": "1"}))
	})

	It("should inject the istio proxy once", func() {
		enricherContext.Config = &config.ProcessorConfig{
			Config: map[string]map[string]string{"kmb-istio-proxy": {"proxyImage": "my/proxy:1"}},
		}
		objects := run(enricherContext)
		deployment := find[appsv1.Deployment](objects, types.GroupKindDeployment)
		containers := deployment.Spec.Template.Spec.Containers
		Expect(containers).To(HaveLen(2))
		Expect(containers[1].Name).To(Equal("proxy"))
		Expect(containers[1].Image).To(Equal("my/proxy:1"))
		Expect(*containers[1].SecurityContext.RunAsUser).To(Equal(int64(1337)))
		Expect(containers[1].Env[2].ValueFrom.FieldRef.FieldPath).To(Equal("status.podIP"))
		Expect(deployment.Spec.Template.Annotations).To(HaveKeyWithValue(types.AnnotationKeyIstioSidecar, "injected"))
		Expect(deployment.Spec.Template.Annotations[types.AnnotationKeyInitContainers]).To(ContainSubstring(`"image":"docker.io/istio/init:0.1.1"`))

		again := run(enricherContext, objects...)
		Expect(find[appsv1.Deployment](again, types.GroupKindDeployment).Spec.Template.Spec.Containers).To(HaveLen(2))
	})

	It("should produce nothing without images and services", func() {
		enricherContext.Images = nil
		Expect(run(enricherContext)).To(BeEmpty())
	})
})
