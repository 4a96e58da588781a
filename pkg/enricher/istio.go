/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package enricher

import (
	"context"
	"encoding/json"

	"github.com/sap/go-generics/slices"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"

	"github.com/sap/manifest-enricher/pkg/config"
	"github.com/sap/manifest-enricher/pkg/resources"
	"github.com/sap/manifest-enricher/pkg/types"
)

const (
	IstioProxyEnricherName  = "kmb-istio-proxy"
	IstioProxyEnricherOrder = 500
)

const (
	istioProxyUser     = 1337
	istioSidecarMarker = "injected"
)

var (
	istioProxyNameKey  = config.Key{Name: "proxyName", Default: "proxy"}
	istioProxyImageKey = config.Key{Name: "proxyImage", Default: "docker.io/istio/proxy_debug:0.1.1"}
	istioInitImageKey  = config.Key{Name: "initImage", Default: "docker.io/istio/init:0.1.1"}
)

// IstioProxyEnricher injects the istio proxy sidecar (and the according init containers) into the pod templates of all Deployments.
// Pod templates already having a container with the proxy name are left untouched.
type IstioProxyEnricher struct {
	unit
}

var _ Enricher = &IstioProxyEnricher{}

// Create a new IstioProxyEnricher.
func NewIstioProxyEnricher(context *Context) *IstioProxyEnricher {
	return &IstioProxyEnricher{unit: newUnit(context, IstioProxyEnricherName, IstioProxyEnricherOrder)}
}

func (e *IstioProxyEnricher) Adapt(ctx context.Context, builder *resources.Builder) error {
	proxyName := e.resolver.GetKey(istioProxyNameKey)
	initContainers, err := json.Marshal(e.initContainers())
	if err != nil {
		return err
	}

	return resources.Visit(builder, types.GroupKindDeployment, func(deployment *appsv1.Deployment) error {
		template := &deployment.Spec.Template
		if slices.Any(template.Spec.Containers, func(c corev1.Container) bool { return c.Name == proxyName }) {
			return nil
		}
		template.Annotations = resources.PutAll(template.Annotations, map[string]string{
			types.AnnotationKeyInitContainers: string(initContainers),
			types.AnnotationKeyIstioSidecar:   istioSidecarMarker,
		})
		template.Spec.Containers = append(template.Spec.Containers, e.proxyContainer(proxyName))
		return nil
	})
}

func (e *IstioProxyEnricher) proxyContainer(name string) corev1.Container {
	return corev1.Container{
		Name:            name,
		Image:           e.resolver.GetKey(istioProxyImageKey),
		ImagePullPolicy: corev1.PullAlways,
		Args:            []string{"proxy", "sidecar", "-v", "2"},
		SecurityContext: &corev1.SecurityContext{RunAsUser: ref(int64(istioProxyUser))},
		Env: []corev1.EnvVar{
			fieldRefEnv("POD_NAME", "metadata.name"),
			fieldRefEnv("POD_NAMESPACE", "metadata.namespace"),
			fieldRefEnv("POD_IP", "status.podIP"),
		},
	}
}

func (e *IstioProxyEnricher) initContainers() []corev1.Container {
	return []corev1.Container{
		{
			Name:            "init",
			Image:           e.resolver.GetKey(istioInitImageKey),
			ImagePullPolicy: corev1.PullAlways,
			Args:            []string{"-p", "15001", "-u", "1337"},
			SecurityContext: &corev1.SecurityContext{
				Capabilities: &corev1.Capabilities{Add: []corev1.Capability{"NET_ADMIN"}},
			},
		},
		{
			Name:            "enable-core-dump",
			Image:           "alpine",
			ImagePullPolicy: corev1.PullAlways,
			Command:         []string{"/bin/sh"},
			Args:            []string{"-c", "sysctl -w kernel.core_pattern=/tmp/core.%e.%p.%t && ulimit -c unlimited"},
			SecurityContext: &corev1.SecurityContext{Privileged: ref(true)},
		},
	}
}

func fieldRefEnv(name string, fieldPath string) corev1.EnvVar {
	return corev1.EnvVar{
		Name: name,
		ValueFrom: &corev1.EnvVarSource{
			FieldRef: &corev1.ObjectFieldSelector{FieldPath: fieldPath},
		},
	}
}
