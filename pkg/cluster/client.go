/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package cluster

import (
	"net/http"

	"k8s.io/client-go/discovery"
	"k8s.io/client-go/rest"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// Create a new Client.
func NewClient(clnt client.Client, discoveryClient discovery.DiscoveryInterface, config *rest.Config, httpClient *http.Client, namespace string) Client {
	return &clientImpl{
		Client:          clnt,
		discoveryClient: discoveryClient,
		config:          config,
		httpClient:      httpClient,
		namespace:       namespace,
	}
}

// Field owner to be passed to all write operations.
const FieldOwner = "kmb"

type clientImpl struct {
	client.Client
	discoveryClient discovery.DiscoveryInterface
	config          *rest.Config
	httpClient      *http.Client
	namespace       string
}

func (c *clientImpl) DiscoveryClient() discovery.DiscoveryInterface {
	return c.discoveryClient
}

func (c *clientImpl) Config() *rest.Config {
	return c.config
}

func (c *clientImpl) HttpClient() *http.Client {
	return c.httpClient
}

func (c *clientImpl) Namespace() string {
	return c.namespace
}
