/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package build

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/sap/manifest-enricher/internal/metrics"
	"github.com/sap/manifest-enricher/pkg/project"
	"github.com/sap/manifest-enricher/pkg/types"
)

// Suffix of the build config name, appended to the image's simple name.
const buildNameSuffix = "-build"

// Dispatcher runs image builds according to a BuildPlan.
type Dispatcher struct {
	plan     *BuildPlan
	archiver Archiver
	local    LocalBuilder
	cluster  Cluster
}

// Create a new Dispatcher. The local builder is only needed for kubernetes mode, the cluster only for openshift mode.
func NewDispatcher(plan *BuildPlan, archiver Archiver, local LocalBuilder, cluster Cluster) *Dispatcher {
	return &Dispatcher{
		plan:     plan,
		archiver: archiver,
		local:    local,
		cluster:  cluster,
	}
}

// Build the given image.
// In kubernetes mode, the build is delegated to the local builder. In openshift mode, the cluster is first checked
// for binary build support (without changing anything), then the BuildConfig and ImageStream are looked up,
// recreated (if requested by the plan) or created, and finally the binary build is submitted.
func (d *Dispatcher) Build(ctx context.Context, image project.ImageConfiguration) error {
	if image.Build == nil {
		return fmt.Errorf("image %s has no build configuration", image.Name)
	}
	metrics.Builds.WithLabelValues(string(d.plan.Mode())).Inc()

	switch d.plan.Mode() {
	case PlatformModeKubernetes:
		return d.buildLocal(ctx, image)
	case PlatformModeOpenShift:
		return d.buildRemote(ctx, image)
	default:
		panic("this cannot happen")
	}
}

func (d *Dispatcher) buildLocal(ctx context.Context, image project.ImageConfiguration) error {
	if d.local == nil {
		return fmt.Errorf("no local builder configured")
	}
	archive, err := d.archiver.Archive(ctx, image)
	if err != nil {
		return err
	}
	log.FromContext(ctx).Info("Building image", "name", image.Name)
	if err := d.local.BuildImage(ctx, image, archive); err != nil {
		return types.NewExternalServiceError(err, "local image build")
	}
	return nil
}

func (d *Dispatcher) buildRemote(ctx context.Context, image project.ImageConfiguration) error {
	log := log.FromContext(ctx)

	if d.cluster == nil {
		return fmt.Errorf("no cluster configured")
	}
	supported, err := d.cluster.SupportsBinaryBuilds(ctx)
	if err != nil {
		return types.NewExternalServiceError(err, "capability check")
	}
	if !supported {
		return types.NewCapabilityError("binary builds", d.cluster.Target())
	}

	imageName, err := project.ParseImageName(image.Name)
	if err != nil {
		return err
	}
	imageStreamName := imageName.SimpleName()
	buildName := imageStreamName + buildNameSuffix

	var queued []client.Object

	create, err := d.reconcile(ctx, types.KindBuildConfig, buildName, d.plan.Recreate().IsBuildConfig())
	if err != nil {
		return err
	}
	if create {
		log.Info("Creating BuildConfig", "name", buildName)
		queued = append(queued, newBuildConfig(buildName, imageStreamName+":"+imageName.Tag()))
	} else {
		log.Info("Using BuildConfig", "name", buildName)
	}

	create, err = d.reconcile(ctx, types.KindImageStream, imageStreamName, d.plan.Recreate().IsImageStream())
	if err != nil {
		return err
	}
	if create {
		log.Info("Creating ImageStream", "name", imageStreamName)
		queued = append(queued, newImageStream(imageStreamName))
	} else {
		log.Info("Using ImageStream", "name", imageStreamName)
	}

	if len(queued) > 0 {
		if err := d.cluster.CreateResources(ctx, queued); err != nil {
			return types.NewExternalServiceError(err, "creating build resources")
		}
	}

	archive, err := d.archiver.Archive(ctx, image)
	if err != nil {
		return err
	}
	log.Info("Starting build", "name", buildName)
	if err := d.cluster.SubmitBinaryBuild(ctx, buildName, archive); err != nil {
		return types.NewExternalServiceError(err, "submitting binary build")
	}
	return nil
}

// Return whether the resource needs to be created; deletes the existing resource first if recreate is set.
func (d *Dispatcher) reconcile(ctx context.Context, kind string, name string, recreate bool) (bool, error) {
	exists, err := d.cluster.FindResource(ctx, kind, name)
	if err != nil {
		return false, types.NewExternalServiceError(err, fmt.Sprintf("looking up %s %s", kind, name))
	}
	if exists && recreate {
		if err := d.cluster.DeleteResource(ctx, kind, name); err != nil {
			return false, types.NewExternalServiceError(err, fmt.Sprintf("deleting %s %s", kind, name))
		}
		metrics.ClusterOperations.WithLabelValues(kind, "delete").Inc()
		exists = false
	}
	if !exists {
		metrics.ClusterOperations.WithLabelValues(kind, "create").Inc()
	}
	return !exists, nil
}

func newBuildConfig(name string, imageStreamTag string) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": buildGroup.String(),
		"kind":       types.KindBuildConfig,
		"metadata": map[string]any{
			"name": name,
		},
		"spec": map[string]any{
			"strategy": map[string]any{
				"type": "Docker",
			},
			"source": map[string]any{
				"type": "Binary",
			},
			"output": map[string]any{
				"to": map[string]any{
					"kind": types.KindImageStreamTag,
					"name": imageStreamTag,
				},
			},
		},
	}}
}

func newImageStream(name string) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": imageGroup.String(),
		"kind":       types.KindImageStream,
		"metadata": map[string]any{
			"name": name,
		},
	}}
}
