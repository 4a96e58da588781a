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

// The Client interface extends the controller-runtime client by discovery capabilities,
// and carries the rest config and target namespace it was created for.
type Client interface {
	client.Client
	// Return a discovery client.
	DiscoveryClient() discovery.DiscoveryInterface
	// Return the underlying rest config.
	Config() *rest.Config
	// Return the underlying http client.
	HttpClient() *http.Client
	// Return the namespace all namespaced operations of this client are targeting.
	Namespace() string
}
