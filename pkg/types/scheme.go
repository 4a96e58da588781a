/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package types

import "k8s.io/apimachinery/pkg/runtime"

// SchemeBuilder interface; used to register additional types with the cluster client.
type SchemeBuilder interface {
	AddToScheme(scheme *runtime.Scheme) error
}
