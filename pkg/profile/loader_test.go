/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package profile_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing/fstest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sap/manifest-enricher/pkg/config"
	"github.com/sap/manifest-enricher/pkg/profile"
	"github.com/sap/manifest-enricher/pkg/types"
)

var _ = Describe("testing: loader.go", func() {
	var resourceDir string

	bundled := fstest.MapFS{
		"profiles.yaml": {Data: []byte(`
- name: default
  enricher:
    includes: [a, b]
    config:
      a:
        key: bundled
        other: bundled
- name: shared
  enricher:
    includes: [bundled]
`)},
		"other.yaml": {Data: []byte("not: [a profile")},
	}

	BeforeEach(func() {
		var err error
		resourceDir, err = os.MkdirTemp("", "kmb-")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() {
			Expect(os.RemoveAll(resourceDir)).To(Succeed())
		})
	})

	writeProfiles := func(name string, content string) {
		Expect(os.WriteFile(filepath.Join(resourceDir, name), []byte(content), 0o644)).To(Succeed())
	}

	It("should layer explicit configuration over the default profile", func() {
		loader := profile.NewLoaderWithBundled(resourceDir, bundled)
		explicit := &config.ProcessorConfig{Config: map[string]map[string]string{"a": {"key": "explicit"}}}
		cfg, err := loader.Load("", profile.KindEnricher, explicit)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.GetIncludes()).To(Equal([]string{"a", "b"}))
		value, _ := cfg.GetConfig("a", "key")
		Expect(value).To(Equal("explicit"))
		value, _ = cfg.GetConfig("a", "other")
		Expect(value).To(Equal("bundled"))
	})

	It("should prefer project profiles over bundled ones", func() {
		writeProfiles("profiles.yaml", "- name: shared\n  enricher:\n    includes: [project]\n")
		loader := profile.NewLoaderWithBundled(resourceDir, bundled)
		located, err := loader.Find("shared")
		Expect(err).NotTo(HaveOccurred())
		Expect(located.Profile.Enricher.GetIncludes()).To(Equal([]string{"project"}))
		Expect(located.Location).To(Equal(filepath.Join(resourceDir, "profiles.yaml")))

		all, err := loader.List()
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(2))
		Expect(all[0].Profile.Name).To(Equal("shared"))
		Expect(all[1].Profile.Name).To(Equal("default"))
		Expect(all[1].Location).To(Equal("bundled:profiles.yaml"))
	})

	It("should fail for unknown named profiles", func() {
		_, err := profile.NewLoaderWithBundled(resourceDir, bundled).Load("unknown", profile.KindGenerator, nil)
		var configErr types.ConfigurationError
		Expect(errors.As(err, &configErr)).To(BeTrue())
		Expect(configErr.Identifier()).To(Equal("unknown"))
	})

	It("should return the explicit configuration if there is no default profile", func() {
		explicit := &config.ProcessorConfig{Includes: []string{"x"}}
		cfg, err := profile.NewLoaderWithBundled(resourceDir, nil).Load("", profile.KindGenerator, explicit)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.GetIncludes()).To(Equal([]string{"x"}))

		cfg, err = profile.NewLoaderWithBundled("", nil).Load("", profile.KindGenerator, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.IsEmpty()).To(BeTrue())
	})

	It("should fail on malformed profile documents", func() {
		writeProfiles("profiles-broken.yaml", "- name: x\n  unknownField: 1\n")
		_, err := profile.NewLoaderWithBundled(resourceDir, bundled).Load("default", profile.KindEnricher, nil)
		var configErr types.ConfigurationError
		Expect(errors.As(err, &configErr)).To(BeTrue())
		Expect(configErr.Identifier()).To(Equal(filepath.Join(resourceDir, "profiles-broken.yaml")))
	})

	It("should fail on unnamed profiles", func() {
		writeProfiles("profiles.yaml", "- enricher: {}\n")
		_, err := profile.NewLoaderWithBundled(resourceDir, bundled).Find("x")
		Expect(err).To(MatchError(ContainSubstring("has no name")))
	})

	It("should ship the default, istio and minimal profiles", func() {
		loader := profile.NewLoader("")
		for _, name := range []string{"default", "istio", "minimal"} {
			located, err := loader.Find(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(located).NotTo(BeNil())
			Expect(located.Profile.Enricher.GetIncludes()).NotTo(BeEmpty())
		}
		located, err := loader.Find("istio")
		Expect(err).NotTo(HaveOccurred())
		Expect(located.Profile.Enricher.GetIncludes()).To(ContainElement("kmb-istio-proxy"))
	})
})
