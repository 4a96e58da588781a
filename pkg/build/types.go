/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package build

import (
	"context"

	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/sap/manifest-enricher/pkg/project"
)

// Archiver packages the build context of an image (including its Dockerfile) into a tar archive.
type Archiver interface {
	Archive(ctx context.Context, image project.ImageConfiguration) ([]byte, error)
}

// LocalBuilder builds an image from a build context archive, e.g. through a local docker daemon.
type LocalBuilder interface {
	BuildImage(ctx context.Context, image project.ImageConfiguration, archive []byte) error
}

// Cluster is the remote build target. Kinds are BuildConfig and ImageStream; all operations are scoped to the
// namespace the cluster was created for.
type Cluster interface {
	// Identification of the target, e.g. the API server address; used in error messages.
	Target() string
	// Check whether the target supports binary docker builds.
	SupportsBinaryBuilds(ctx context.Context) (bool, error)
	// Check whether a resource of the given kind and name exists.
	FindResource(ctx context.Context, kind string, name string) (bool, error)
	// Delete the resource of the given kind and name; deleting a non-existing resource is not an error.
	DeleteResource(ctx context.Context, kind string, name string) error
	// Create the given resources, in order.
	CreateResources(ctx context.Context, objects []client.Object) error
	// Start a binary build of the given build config, with the archive as payload.
	SubmitBinaryBuild(ctx context.Context, buildName string, archive []byte) error
}
