/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package build

import (
	"bytes"
	"context"
	"io"

	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/pkg/errors"

	"github.com/sap/manifest-enricher/pkg/project"
)

// ImageBuildClient is the part of the docker API client used by DockerBuilder.
type ImageBuildClient interface {
	ImageBuild(ctx context.Context, buildContext io.Reader, options build.ImageBuildOptions) (build.ImageBuildResponse, error)
}

var _ ImageBuildClient = &client.Client{}

// DockerBuilder implements LocalBuilder by means of a docker daemon.
type DockerBuilder struct {
	client ImageBuildClient
	out    io.Writer
}

var _ LocalBuilder = &DockerBuilder{}

// Create a new DockerBuilder; build progress is written to out.
func NewDockerBuilder(client ImageBuildClient, out io.Writer) *DockerBuilder {
	if out == nil {
		out = io.Discard
	}
	return &DockerBuilder{client: client, out: out}
}

// Create a new DockerBuilder talking to the docker daemon configured by the environment (DOCKER_HOST etc.).
func NewDockerBuilderFromEnv(out io.Writer) (*DockerBuilder, error) {
	apiClient, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, errors.Wrap(err, "error creating docker client")
	}
	return NewDockerBuilder(apiClient, out), nil
}

func (b *DockerBuilder) BuildImage(ctx context.Context, image project.ImageConfiguration, archive []byte) error {
	options := build.ImageBuildOptions{
		Tags:       []string{image.Name},
		Dockerfile: dockerfileName,
		Remove:     true,
	}
	if image.Build != nil {
		options.Labels = image.Build.Labels
	}
	response, err := b.client.ImageBuild(ctx, bytes.NewReader(archive), options)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	return jsonmessage.DisplayJSONMessagesStream(response.Body, b.out, 0, false, nil)
}
