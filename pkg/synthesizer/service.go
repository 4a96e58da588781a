/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package synthesizer

import (
	"strconv"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/sap/manifest-enricher/pkg/project"
	"github.com/sap/manifest-enricher/pkg/resources"
	"github.com/sap/manifest-enricher/pkg/types"
)

// Turn service configurations into Service objects.
// Each service gets a copy of the given annotations; if one of the declared ports is a metrics port (named 'prometheus', case-insensitively,
// or numbered 9779), the prometheus port and scrape annotations are added, unless already present.
// Only the first declared port is materialized. Services which are neither headless nor have a port are omitted.
func SynthesizeServices(configs []project.ServiceConfig, annotations map[string]string) []*corev1.Service {
	var services []*corev1.Service

	for _, config := range configs {
		serviceAnnotations := resources.PutAll(nil, annotations)
		if port, ok := findPrometheusPort(config.Ports); ok {
			serviceAnnotations = resources.PutIfAbsent(serviceAnnotations, map[string]string{
				types.AnnotationKeyPrometheusPort:   strconv.Itoa(int(port)),
				types.AnnotationKeyPrometheusScrape: "true",
			})
		}

		service := &corev1.Service{
			TypeMeta: metav1.TypeMeta{
				APIVersion: "v1",
				Kind:       types.KindService,
			},
			ObjectMeta: metav1.ObjectMeta{
				Name:        config.Name,
				Annotations: serviceAnnotations,
			},
		}

		// usually the first port is the web port
		// TODO: allow to select the exposed ports through a filter
		if len(config.Ports) > 0 {
			service.Spec.Ports = []corev1.ServicePort{servicePort(config.Ports[0])}
		}

		if config.Headless {
			service.Spec.ClusterIP = types.ClusterIPNone
		}

		if serviceType := strings.TrimSpace(config.Type); serviceType != "" {
			service.Spec.Type = corev1.ServiceType(serviceType)
		}

		if config.Headless || len(service.Spec.Ports) > 0 {
			services = append(services, service)
		}
	}

	return services
}

func servicePort(port project.ServicePort) corev1.ServicePort {
	protocol := corev1.ProtocolTCP
	if port.Protocol != "" {
		protocol = corev1.Protocol(strings.ToUpper(port.Protocol))
	}
	targetPort := port.TargetPort
	if targetPort == 0 {
		targetPort = port.Port
	}
	return corev1.ServicePort{
		Name:       port.Name,
		Protocol:   protocol,
		Port:       port.Port,
		TargetPort: intstr.FromInt32(targetPort),
		NodePort:   port.NodePort,
	}
}

func findPrometheusPort(ports []project.ServicePort) (int32, bool) {
	for _, port := range ports {
		if port.Port == types.PrometheusPort || strings.EqualFold(port.Name, types.PrometheusPortName) {
			return port.Port, true
		}
	}
	return 0, false
}
