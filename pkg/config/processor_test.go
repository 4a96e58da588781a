/*
SPDX-FileCopyrightText: 2026 SAP SE or an SAP affiliate company and manifest-enricher contributors
SPDX-License-Identifier: Apache-2.0
*/

package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sap/manifest-enricher/pkg/config"
)

var _ = Describe("testing: processor.go", func() {
	var explicit *config.ProcessorConfig
	var profileDefaults *config.ProcessorConfig

	BeforeEach(func() {
		explicit = &config.ProcessorConfig{
			Excludes: []string{"b"},
			Config: map[string]map[string]string{
				"a": {"x": "explicit"},
			},
		}
		profileDefaults = &config.ProcessorConfig{
			Includes: []string{"a", "b", "c"},
			Excludes: []string{"c", "b"},
			Config: map[string]map[string]string{
				"a": {"x": "profile", "y": "profile"},
				"c": {"z": "profile"},
			},
		}
	})

	It("should let explicit configuration take precedence over defaults", func() {
		layered := explicit.WithDefaults(profileDefaults)
		Expect(configValue(layered, "a", "x")).To(Equal("explicit"))
		value, ok := layered.GetConfig("a", "y")
		Expect(ok).To(BeTrue())
		Expect(value).To(Equal("profile"))
		_, ok = layered.GetConfig("a", "z")
		Expect(ok).To(BeFalse())
	})

	It("should fall back to default includes and combine excludes", func() {
		layered := explicit.WithDefaults(profileDefaults)
		Expect(layered.GetIncludes()).To(Equal([]string{"a", "b", "c"}))
		Expect(layered.GetExcludes()).To(Equal([]string{"b", "c"}))
	})

	It("should not modify the layers", func() {
		layered := explicit.WithDefaults(profileDefaults)
		Expect(configValue(layered, "c", "z")).To(Equal("profile"))
		Expect(explicit.Config).To(HaveLen(1))
		Expect(explicit.Includes).To(BeEmpty())
		Expect(profileDefaults.Config["a"]["x"]).To(Equal("profile"))
	})

	It("should keep existing default layers when layering again", func() {
		base := &config.ProcessorConfig{Config: map[string]map[string]string{"d": {"k": "base"}}}
		layered := explicit.WithDefaults(profileDefaults).WithDefaults(base)
		Expect(configValue(layered, "a", "y")).To(Equal("profile"))
		Expect(configValue(layered, "d", "k")).To(Equal("base"))
	})

	It("should treat nil configs as empty", func() {
		var c *config.ProcessorConfig
		Expect(c.IsEmpty()).To(BeTrue())
		Expect(c.GetIncludes()).To(BeNil())
		Expect(c.WithDefaults(nil).IsEmpty()).To(BeTrue())
		Expect(explicit.WithDefaults(nil).IsEmpty()).To(BeFalse())
	})
})

func configValue(c *config.ProcessorConfig, unit string, key string) string {
	value, ok := c.GetConfig(unit, key)
	Expect(ok).To(BeTrue())
	return value
}
