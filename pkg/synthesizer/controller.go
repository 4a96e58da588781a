/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package synthesizer

import (
	"fmt"

	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
	"github.com/sap/go-generics/maps"
	"github.com/sap/go-generics/slices"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/sap/manifest-enricher/pkg/project"
	"github.com/sap/manifest-enricher/pkg/types"
)

// ControllerConfig describes the Deployment to be synthesized.
type ControllerConfig struct {
	Name       string
	Replicas   int32
	Images     []project.ImageConfiguration
	PullPolicy corev1.PullPolicy
	// Labels of the Deployment; also used as selector and pod template labels.
	Labels map[string]string
	// Annotations of the pod template.
	Annotations map[string]string
}

// Turn a controller configuration into a Deployment with one container per image.
// Returns nil if there are no images.
func SynthesizeDeployment(config ControllerConfig) (*appsv1.Deployment, error) {
	if len(config.Images) == 0 {
		return nil, nil
	}

	var containers []corev1.Container
	for i, image := range config.Images {
		container, err := synthesizeContainer(image, config.PullPolicy)
		if err != nil {
			return nil, errors.Wrapf(err, "error synthesizing container for image %s", image.Name)
		}
		if slices.Any(containers, func(c corev1.Container) bool { return c.Name == container.Name }) {
			container.Name = fmt.Sprintf("%s-%d", container.Name, i)
		}
		containers = append(containers, *container)
	}

	deployment := &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: appsv1.SchemeGroupVersion.String(),
			Kind:       types.KindDeployment,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:   config.Name,
			Labels: copyMap(config.Labels),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &config.Replicas,
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels:      copyMap(config.Labels),
					Annotations: copyMap(config.Annotations),
				},
				Spec: corev1.PodSpec{
					Containers: containers,
				},
			},
		},
	}
	if len(config.Labels) > 0 {
		deployment.Spec.Selector = &metav1.LabelSelector{MatchLabels: copyMap(config.Labels)}
	}

	return deployment, nil
}

func synthesizeContainer(image project.ImageConfiguration, pullPolicy corev1.PullPolicy) (*corev1.Container, error) {
	imageName, err := project.ParseImageName(image.Name)
	if err != nil {
		return nil, err
	}
	name := image.Alias
	if name == "" {
		name = imageName.SimpleName()
	}
	container := &corev1.Container{
		Name:            strcase.ToKebab(name),
		Image:           image.Name,
		ImagePullPolicy: pullPolicy,
	}
	if image.Build == nil {
		return container, nil
	}
	for _, spec := range image.Build.Ports {
		port, protocol, err := ParsePort(spec)
		if err != nil {
			return nil, err
		}
		portName := WellKnownPortName(port)
		if slices.Any(container.Ports, func(p corev1.ContainerPort) bool { return p.Name == portName }) {
			portName = ""
		}
		container.Ports = append(container.Ports, corev1.ContainerPort{
			Name:          portName,
			ContainerPort: port,
			Protocol:      protocol,
		})
	}
	for _, key := range slices.Sort(maps.Keys(image.Build.Env)) {
		container.Env = append(container.Env, corev1.EnvVar{Name: key, Value: image.Build.Env[key]})
	}
	return container, nil
}

func copyMap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	result := make(map[string]string, len(m))
	for key, value := range m {
		result[key] = value
	}
	return result
}
