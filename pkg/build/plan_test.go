/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package build_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sap/manifest-enricher/pkg/build"
	"github.com/sap/manifest-enricher/pkg/types"
)

var _ = Describe("testing: plan.go", func() {
	DescribeTable("parsing platform modes",
		func(s string, expected build.PlatformMode) {
			mode, err := build.ParsePlatformMode(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(mode).To(Equal(expected))
		},
		Entry("empty", "", build.PlatformModeKubernetes),
		Entry("kubernetes", "kubernetes", build.PlatformModeKubernetes),
		Entry("openshift, mixed case", "OpenShift", build.PlatformModeOpenShift),
	)

	It("should reject an unknown platform mode", func() {
		_, err := build.ParsePlatformMode("swarm")
		var configErr types.ConfigurationError
		Expect(errors.As(err, &configErr)).To(BeTrue())
		Expect(configErr.Identifier()).To(Equal("swarm"))
	})

	DescribeTable("parsing recreate modes",
		func(s string, expected build.RecreateMode, buildConfig bool, imageStream bool) {
			mode, err := build.ParseRecreateMode(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(mode).To(Equal(expected))
			Expect(mode.IsBuildConfig()).To(Equal(buildConfig))
			Expect(mode.IsImageStream()).To(Equal(imageStream))
		},
		Entry("empty", "", build.RecreateNone, false, false),
		Entry("none", "none", build.RecreateNone, false, false),
		Entry("build config", "buildConfig", build.RecreateBuildConfig, true, false),
		Entry("image stream, short", "is", build.RecreateImageStream, false, true),
		Entry("combined", "bc, is", build.RecreateAll, true, true),
		Entry("all", "ALL", build.RecreateAll, true, true),
	)

	It("should reject an unknown recreate mode", func() {
		_, err := build.ParseRecreateMode("bc,everything")
		Expect(err).To(MatchError(ContainSubstring("unknown recreate mode everything")))
	})

	It("should assemble a build plan", func() {
		plan, err := build.NewBuildPlan("openshift", "bc", "builds")
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Mode()).To(Equal(build.PlatformModeOpenShift))
		Expect(plan.Recreate()).To(Equal(build.RecreateBuildConfig))
		Expect(plan.Recreate().String()).To(Equal("buildConfig"))
		Expect(plan.Namespace()).To(Equal("builds"))

		_, err = build.NewBuildPlan("openshift", "sometimes", "")
		Expect(err).To(HaveOccurred())
	})
})
