/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package build_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/sap/manifest-enricher/pkg/build"
	"github.com/sap/manifest-enricher/pkg/project"
	"github.com/sap/manifest-enricher/pkg/types"
)

type fakeCluster struct {
	supported bool
	existing  map[string]bool
	created   []client.Object
	calls     []string
}

var _ build.Cluster = &fakeCluster{}

func newFakeCluster(supported bool) *fakeCluster {
	return &fakeCluster{supported: supported, existing: make(map[string]bool)}
}

func (c *fakeCluster) Target() string {
	return "https://fake:6443"
}

func (c *fakeCluster) SupportsBinaryBuilds(ctx context.Context) (bool, error) {
	c.calls = append(c.calls, "capabilities")
	return c.supported, nil
}

func (c *fakeCluster) FindResource(ctx context.Context, kind string, name string) (bool, error) {
	c.calls = append(c.calls, fmt.Sprintf("find:%s/%s", kind, name))
	return c.existing[kind+"/"+name], nil
}

func (c *fakeCluster) DeleteResource(ctx context.Context, kind string, name string) error {
	c.calls = append(c.calls, fmt.Sprintf("delete:%s/%s", kind, name))
	delete(c.existing, kind+"/"+name)
	return nil
}

func (c *fakeCluster) CreateResources(ctx context.Context, objects []client.Object) error {
	for _, object := range objects {
		kind := object.GetObjectKind().GroupVersionKind().Kind
		c.calls = append(c.calls, fmt.Sprintf("create:%s/%s", kind, object.GetName()))
		c.existing[kind+"/"+object.GetName()] = true
		c.created = append(c.created, object)
	}
	return nil
}

func (c *fakeCluster) SubmitBinaryBuild(ctx context.Context, buildName string, archive []byte) error {
	c.calls = append(c.calls, fmt.Sprintf("submit:%s:%s", buildName, archive))
	return nil
}

type fakeArchiver struct {
	count int
}

func (a *fakeArchiver) Archive(ctx context.Context, image project.ImageConfiguration) ([]byte, error) {
	a.count++
	return []byte("archive"), nil
}

type fakeLocalBuilder struct {
	err    error
	images []string
}

func (b *fakeLocalBuilder) BuildImage(ctx context.Context, image project.ImageConfiguration, archive []byte) error {
	b.images = append(b.images, image.Name)
	return b.err
}

func nestedString(object *unstructured.Unstructured, fields ...string) string {
	value, _, err := unstructured.NestedString(object.Object, fields...)
	Expect(err).NotTo(HaveOccurred())
	return value
}

var _ = Describe("testing: dispatcher.go", func() {
	var ctx context.Context
	var image project.ImageConfiguration
	var archiver *fakeArchiver

	BeforeEach(func() {
		ctx = context.Background()
		image = project.ImageConfiguration{
			Name:  "example/my-app:1.0",
			Build: &project.BuildImageConfiguration{From: "alpine:latest"},
		}
		archiver = &fakeArchiver{}
	})

	newPlan := func(mode string, recreate string) *build.BuildPlan {
		plan, err := build.NewBuildPlan(mode, recreate, "")
		Expect(err).NotTo(HaveOccurred())
		return plan
	}

	It("should reject images without build configuration", func() {
		dispatcher := build.NewDispatcher(newPlan("kubernetes", ""), archiver, &fakeLocalBuilder{}, nil)
		Expect(dispatcher.Build(ctx, project.ImageConfiguration{Name: "example/my-app"})).To(MatchError(ContainSubstring("no build configuration")))
	})

	Context("kubernetes mode", func() {
		It("should build through the local builder", func() {
			local := &fakeLocalBuilder{}
			dispatcher := build.NewDispatcher(newPlan("kubernetes", ""), archiver, local, nil)
			Expect(dispatcher.Build(ctx, image)).To(Succeed())
			Expect(local.images).To(Equal([]string{"example/my-app:1.0"}))
			Expect(archiver.count).To(Equal(1))
		})

		It("should report local build failures as external service errors", func() {
			local := &fakeLocalBuilder{err: errors.New("daemon not reachable")}
			dispatcher := build.NewDispatcher(newPlan("kubernetes", ""), archiver, local, nil)
			err := dispatcher.Build(ctx, image)
			var externalErr types.ExternalServiceError
			Expect(errors.As(err, &externalErr)).To(BeTrue())
			Expect(err).To(MatchError(ContainSubstring("daemon not reachable")))
		})
	})

	Context("openshift mode", func() {
		It("should fail without changing anything if binary builds are not supported", func() {
			cluster := newFakeCluster(false)
			dispatcher := build.NewDispatcher(newPlan("openshift", "all"), archiver, nil, cluster)
			err := dispatcher.Build(ctx, image)
			var capabilityErr types.CapabilityError
			Expect(errors.As(err, &capabilityErr)).To(BeTrue())
			Expect(capabilityErr.Target()).To(Equal("https://fake:6443"))
			Expect(cluster.calls).To(Equal([]string{"capabilities"}))
			Expect(archiver.count).To(BeZero())
		})

		It("should create the build config and image stream, then submit the build", func() {
			cluster := newFakeCluster(true)
			dispatcher := build.NewDispatcher(newPlan("openshift", ""), archiver, nil, cluster)
			Expect(dispatcher.Build(ctx, image)).To(Succeed())
			Expect(cluster.calls).To(Equal([]string{
				"capabilities",
				"find:BuildConfig/my-app-build",
				"find:ImageStream/my-app",
				"create:BuildConfig/my-app-build",
				"create:ImageStream/my-app",
				"submit:my-app-build:archive",
			}))

			buildConfig := cluster.created[0].(*unstructured.Unstructured)
			Expect(buildConfig.GetAPIVersion()).To(Equal("build.openshift.io/v1"))
			Expect(nestedString(buildConfig, "spec", "strategy", "type")).To(Equal("Docker"))
			Expect(nestedString(buildConfig, "spec", "source", "type")).To(Equal("Binary"))
			Expect(nestedString(buildConfig, "spec", "output", "to", "kind")).To(Equal("ImageStreamTag"))
			Expect(nestedString(buildConfig, "spec", "output", "to", "name")).To(Equal("my-app:1.0"))
			Expect(cluster.created[1].GetObjectKind().GroupVersionKind().Group).To(Equal("image.openshift.io"))
		})

		It("should reuse existing resources when recreate is none", func() {
			cluster := newFakeCluster(true)
			dispatcher := build.NewDispatcher(newPlan("openshift", "none"), archiver, nil, cluster)
			Expect(dispatcher.Build(ctx, image)).To(Succeed())
			cluster.calls = nil
			Expect(dispatcher.Build(ctx, image)).To(Succeed())
			Expect(cluster.calls).To(Equal([]string{
				"capabilities",
				"find:BuildConfig/my-app-build",
				"find:ImageStream/my-app",
				"submit:my-app-build:archive",
			}))
		})

		It("should recreate only what the plan requests", func() {
			cluster := newFakeCluster(true)
			cluster.existing["BuildConfig/my-app-build"] = true
			cluster.existing["ImageStream/my-app"] = true
			dispatcher := build.NewDispatcher(newPlan("openshift", "buildConfig"), archiver, nil, cluster)
			Expect(dispatcher.Build(ctx, image)).To(Succeed())
			Expect(cluster.calls).To(Equal([]string{
				"capabilities",
				"find:BuildConfig/my-app-build",
				"delete:BuildConfig/my-app-build",
				"find:ImageStream/my-app",
				"create:BuildConfig/my-app-build",
				"submit:my-app-build:archive",
			}))
		})

		It("should reject invalid image names", func() {
			cluster := newFakeCluster(true)
			dispatcher := build.NewDispatcher(newPlan("openshift", ""), archiver, nil, cluster)
			image.Name = "Example/My-App"
			Expect(dispatcher.Build(ctx, image)).To(HaveOccurred())
			Expect(cluster.calls).To(Equal([]string{"capabilities"}))
		})
	})
})
