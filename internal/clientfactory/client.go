/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package clientfactory

import (
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	apiregistrationv1 "k8s.io/kube-aggregator/pkg/apis/apiregistration/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/sap/manifest-enricher/pkg/cluster"
	"github.com/sap/manifest-enricher/pkg/types"
)

// Create a new scheme, containing the client-go types, plus CustomResourceDefinition and APIService, plus
// whatever the given scheme builders register.
func NewScheme(schemeBuilders ...types.SchemeBuilder) (*runtime.Scheme, error) {
	scheme := runtime.NewScheme()
	if err := clientgoscheme.AddToScheme(scheme); err != nil {
		return nil, err
	}
	if err := apiextensionsv1.AddToScheme(scheme); err != nil {
		return nil, err
	}
	if err := apiregistrationv1.AddToScheme(scheme); err != nil {
		return nil, err
	}
	for _, schemeBuilder := range schemeBuilders {
		if err := schemeBuilder.AddToScheme(scheme); err != nil {
			return nil, err
		}
	}
	return scheme, nil
}

// Create a new cluster client for the given rest config, targeting the given namespace.
func NewClientFor(config *rest.Config, scheme *runtime.Scheme, namespace string) (cluster.Client, error) {
	httpClient, err := rest.HTTPClientFor(config)
	if err != nil {
		return nil, err
	}
	ctrlClient, err := client.New(config, client.Options{HTTPClient: httpClient, Scheme: scheme})
	if err != nil {
		return nil, err
	}
	clientset, err := kubernetes.NewForConfigAndClient(config, httpClient)
	if err != nil {
		return nil, err
	}
	return cluster.NewClient(ctrlClient, clientset, config, httpClient, namespace), nil
}
