/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package types

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	AnnotationKeyPrometheusPort   = "prometheus.io/port"
	AnnotationKeyPrometheusScrape = "prometheus.io/scrape"
	AnnotationKeyInitContainers   = "pod.beta.kubernetes.io/init-containers"
	AnnotationKeyIstioSidecar     = "alpha.istio.io/sidecar"
)

const (
	LabelKeyProject  = "project"
	LabelKeyProvider = "provider"
	LabelKeyGroup    = "group"
	LabelKeyVersion  = "version"
)

// Default value of the provider label.
const DefaultProvider = "kmb"

const (
	// Cluster IP value marking a service as headless.
	ClusterIPNone = "None"
	// Port number which is treated as metrics port, regardless of its name.
	PrometheusPort = 9779
	// Port name which is treated as metrics port (case-insensitive).
	PrometheusPortName = "prometheus"
)

const (
	KindList           = "List"
	KindService        = "Service"
	KindDeployment     = "Deployment"
	KindReplicaSet     = "ReplicaSet"
	KindPod            = "Pod"
	KindBuildConfig    = "BuildConfig"
	KindImageStream    = "ImageStream"
	KindImageStreamTag = "ImageStreamTag"
)

// Group kinds of the objects which are visited by enrichers; kinds of other API groups never match these.
var (
	GroupKindService    = schema.GroupKind{Group: corev1.GroupName, Kind: KindService}
	GroupKindPod        = schema.GroupKind{Group: corev1.GroupName, Kind: KindPod}
	GroupKindDeployment = schema.GroupKind{Group: appsv1.GroupName, Kind: KindDeployment}
	GroupKindReplicaSet = schema.GroupKind{Group: appsv1.GroupName, Kind: KindReplicaSet}
)
