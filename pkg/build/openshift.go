/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package build

import (
	"context"
	"fmt"

	"github.com/sap/go-generics/slices"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/sap/manifest-enricher/pkg/cluster"
	"github.com/sap/manifest-enricher/pkg/types"
)

var (
	buildGroup = schema.GroupVersion{Group: "build.openshift.io", Version: "v1"}
	imageGroup = schema.GroupVersion{Group: "image.openshift.io", Version: "v1"}
)

// OpenShiftCluster implements Cluster on top of an OpenShift API server.
type OpenShiftCluster struct {
	client cluster.Client
}

var _ Cluster = &OpenShiftCluster{}

// Create a new OpenShiftCluster; the namespace is taken from the client.
func NewOpenShiftCluster(clnt cluster.Client) *OpenShiftCluster {
	return &OpenShiftCluster{client: clnt}
}

func (c *OpenShiftCluster) Target() string {
	if config := c.client.Config(); config != nil && config.Host != "" {
		return config.Host
	}
	return "cluster"
}

func (c *OpenShiftCluster) SupportsBinaryBuilds(ctx context.Context) (bool, error) {
	groups, err := c.client.DiscoveryClient().ServerGroups()
	if err != nil {
		return false, err
	}
	names := slices.Collect(groups.Groups, func(group metav1.APIGroup) string { return group.Name })
	return slices.Contains(names, buildGroup.Group) && slices.Contains(names, imageGroup.Group), nil
}

func (c *OpenShiftCluster) FindResource(ctx context.Context, kind string, name string) (bool, error) {
	object, err := c.newObject(kind, name)
	if err != nil {
		return false, err
	}
	if err := c.client.Get(ctx, client.ObjectKeyFromObject(object), object); err != nil {
		if apierrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *OpenShiftCluster) DeleteResource(ctx context.Context, kind string, name string) error {
	object, err := c.newObject(kind, name)
	if err != nil {
		return err
	}
	if err := c.client.Delete(ctx, object); err != nil && !apierrors.IsNotFound(err) {
		return err
	}
	return nil
}

func (c *OpenShiftCluster) CreateResources(ctx context.Context, objects []client.Object) error {
	for _, object := range objects {
		object = object.DeepCopyObject().(client.Object)
		object.SetNamespace(c.client.Namespace())
		if err := c.client.Create(ctx, object, client.FieldOwner(cluster.FieldOwner)); err != nil {
			return err
		}
	}
	return nil
}

func (c *OpenShiftCluster) SubmitBinaryBuild(ctx context.Context, buildName string, archive []byte) error {
	config := rest.CopyConfig(c.client.Config())
	config.GroupVersion = &buildGroup
	config.APIPath = "/apis"
	config.NegotiatedSerializer = clientgoscheme.Codecs.WithoutConversion()
	restClient, err := rest.RESTClientForConfigAndClient(config, c.client.HttpClient())
	if err != nil {
		return err
	}
	return restClient.Post().
		Namespace(c.client.Namespace()).
		Resource("buildconfigs").
		Name(buildName).
		SubResource("instantiatebinary").
		SetHeader("Content-Type", "application/octet-stream").
		Body(archive).
		Do(ctx).
		Error()
}

func (c *OpenShiftCluster) newObject(kind string, name string) (*unstructured.Unstructured, error) {
	object := &unstructured.Unstructured{}
	switch kind {
	case types.KindBuildConfig:
		object.SetGroupVersionKind(buildGroup.WithKind(kind))
	case types.KindImageStream:
		object.SetGroupVersionKind(imageGroup.WithKind(kind))
	default:
		return nil, fmt.Errorf("unsupported kind %s", kind)
	}
	object.SetNamespace(c.client.Namespace())
	object.SetName(name)
	return object, nil
}
