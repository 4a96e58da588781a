/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package project

import (
	"github.com/sap/manifest-enricher/pkg/config"
)

// Descriptor is the build descriptor (kmb.yaml) of a project.
type Descriptor struct {
	Project Project `json:"project"`
	// Name of the profile to use; if empty, the profile named 'default' will be used, if existing.
	Profile string `json:"profile,omitempty"`
	// Directory containing project specific files (resource fragments, profiles), relative to the descriptor.
	ResourceDir string `json:"resourceDir,omitempty"`
	// Explicit enricher configuration; overrides the profile's enricher configuration.
	Enricher *config.ProcessorConfig `json:"enricher,omitempty"`
	// Explicit generator configuration; overrides the profile's generator configuration.
	Generator *config.ProcessorConfig `json:"generator,omitempty"`
	Resources ResourceConfig          `json:"resources,omitempty"`
	Images    []ImageConfiguration    `json:"images,omitempty"`
}

type Project struct {
	Group        string            `json:"group,omitempty"`
	Name         string            `json:"name"`
	Version      string            `json:"version,omitempty"`
	Packaging    string            `json:"packaging,omitempty"`
	Properties   map[string]string `json:"properties,omitempty"`
	Dependencies []Dependency      `json:"dependencies,omitempty"`
}

type Dependency struct {
	Group    string `json:"group"`
	Artifact string `json:"artifact"`
	Version  string `json:"version,omitempty"`
	Scope    string `json:"scope,omitempty"`
}

// ResourceConfig holds the declarative configuration of the generated Kubernetes resources.
type ResourceConfig struct {
	Services    []ServiceConfig  `json:"services,omitempty"`
	Annotations AnnotationConfig `json:"annotations,omitempty"`
	Replicas    *int32           `json:"replicas,omitempty"`
}

type ServiceConfig struct {
	Name     string        `json:"name,omitempty"`
	Headless bool          `json:"headless,omitempty"`
	Type     string        `json:"type,omitempty"`
	Ports    []ServicePort `json:"ports,omitempty"`
}

type ServicePort struct {
	Name string `json:"name,omitempty"`
	// TCP or UDP; defaults to TCP.
	Protocol string `json:"protocol,omitempty"`
	// Defaults to Port.
	TargetPort int32 `json:"targetPort,omitempty"`
	Port       int32 `json:"port"`
	NodePort   int32 `json:"nodePort,omitempty"`
}

// AnnotationConfig holds annotations to be added, per kind of resource.
type AnnotationConfig struct {
	Pod        map[string]string `json:"pod,omitempty"`
	ReplicaSet map[string]string `json:"replicaSet,omitempty"`
	Service    map[string]string `json:"service,omitempty"`
	Template   map[string]string `json:"template,omitempty"`
}

// ImageConfiguration describes an image to be built (if Build is set) or referenced.
type ImageConfiguration struct {
	Name  string                   `json:"name"`
	Alias string                   `json:"alias,omitempty"`
	Build *BuildImageConfiguration `json:"build,omitempty"`
}

type BuildImageConfiguration struct {
	From string `json:"from,omitempty"`
	// Dockerfile, relative to ContextDir; if empty, a Dockerfile is generated from this configuration.
	Dockerfile string `json:"dockerfile,omitempty"`
	// Build context directory; relative paths are resolved against the descriptor's directory.
	ContextDir string            `json:"contextDir,omitempty"`
	Ports      []string          `json:"ports,omitempty"`
	Labels     map[string]string `json:"labels,omitempty"`
	Env        map[string]string `json:"env,omitempty"`
	Cmd        []string          `json:"cmd,omitempty"`
}
