/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"k8s.io/cli-runtime/pkg/genericclioptions"

	"github.com/sap/manifest-enricher/internal/clientfactory"
	"github.com/sap/manifest-enricher/pkg/cluster"
)

func must[T any](x T, err error) T {
	if err != nil {
		panic(err)
	}
	return x
}

// Create a cluster client from the kubeconfig flags; the namespace defaults to the namespace of the kubeconfig context.
func getClient(configFlags *genericclioptions.ConfigFlags) (cluster.Client, error) {
	config, err := configFlags.ToRESTConfig()
	if err != nil {
		return nil, err
	}
	namespace, _, err := configFlags.ToRawKubeConfigLoader().Namespace()
	if err != nil {
		return nil, err
	}
	scheme, err := clientfactory.NewScheme()
	if err != nil {
		return nil, err
	}
	return clientfactory.NewClientFor(config, scheme, namespace)
}

// Open the given output file; the empty string or '-' means stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening output file %s", path)
	}
	return file, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
