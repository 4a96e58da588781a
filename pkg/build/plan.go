/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package build

import (
	"fmt"
	"strings"

	"github.com/sap/manifest-enricher/pkg/types"
)

// PlatformMode selects the build strategy.
type PlatformMode string

const (
	// Build against a local docker daemon.
	PlatformModeKubernetes PlatformMode = "kubernetes"
	// Binary docker build on an OpenShift cluster.
	PlatformModeOpenShift PlatformMode = "openshift"
)

// Parse a platform mode; the empty string means kubernetes.
func ParsePlatformMode(s string) (PlatformMode, error) {
	switch mode := PlatformMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return PlatformModeKubernetes, nil
	case PlatformModeKubernetes, PlatformModeOpenShift:
		return mode, nil
	default:
		return "", types.NewConfigurationError(fmt.Errorf("unknown platform mode %s", s), s)
	}
}

// RecreateMode tells which build prerequisites are deleted and recreated if they exist; the flags are independent.
type RecreateMode uint

const (
	RecreateBuildConfig RecreateMode = 1 << iota
	RecreateImageStream
)

const (
	RecreateNone RecreateMode = 0
	RecreateAll  RecreateMode = RecreateBuildConfig | RecreateImageStream
)

func (m RecreateMode) IsBuildConfig() bool {
	return m&RecreateBuildConfig != 0
}

func (m RecreateMode) IsImageStream() bool {
	return m&RecreateImageStream != 0
}

func (m RecreateMode) String() string {
	switch m {
	case RecreateNone:
		return "none"
	case RecreateBuildConfig:
		return "buildConfig"
	case RecreateImageStream:
		return "imageStream"
	case RecreateAll:
		return "all"
	default:
		panic("this cannot happen")
	}
}

// Parse a recreate mode: none, buildConfig (bc), imageStream (is) or all; multiple values may be combined with ','.
// The empty string means none.
func ParseRecreateMode(s string) (RecreateMode, error) {
	mode := RecreateNone
	for _, value := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "", "none":
		case "buildconfig", "bc":
			mode |= RecreateBuildConfig
		case "imagestream", "is":
			mode |= RecreateImageStream
		case "all":
			mode |= RecreateAll
		default:
			return RecreateNone, types.NewConfigurationError(fmt.Errorf("unknown recreate mode %s", value), value)
		}
	}
	return mode, nil
}

// BuildPlan is the immutable build configuration of one build invocation.
type BuildPlan struct {
	mode      PlatformMode
	recreate  RecreateMode
	namespace string
}

// Create a new BuildPlan from (unparsed) configuration values.
func NewBuildPlan(mode string, recreate string, namespace string) (*BuildPlan, error) {
	platformMode, err := ParsePlatformMode(mode)
	if err != nil {
		return nil, err
	}
	recreateMode, err := ParseRecreateMode(recreate)
	if err != nil {
		return nil, err
	}
	return &BuildPlan{mode: platformMode, recreate: recreateMode, namespace: namespace}, nil
}

func (p *BuildPlan) Mode() PlatformMode {
	return p.mode
}

func (p *BuildPlan) Recreate() RecreateMode {
	return p.recreate
}

// Target namespace of remote builds (empty means the namespace of the cluster client).
func (p *BuildPlan) Namespace() string {
	return p.namespace
}
