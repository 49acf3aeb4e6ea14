package config

import (
	"github.com/creasty/defaults"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OplogConfig", func() {
	var c OplogConfig

	suiteBeforeEach()

	BeforeEach(func() {
		Expect(defaults.Set(&c)).Should(Succeed())
	})

	Describe("IsEnabled", func() {
		When("type is none", func() {
			It("should be disabled", func() {
				Expect(c.IsEnabled()).Should(BeFalse())
			})
		})

		When("a type is set", func() {
			BeforeEach(func() {
				c.Type = OplogTypeSqlite
			})

			It("should be enabled", func() {
				Expect(c.IsEnabled()).Should(BeTrue())
			})
		})
	})

	Describe("LogConfig", func() {
		BeforeEach(func() {
			c.Type = OplogTypeFile
			c.Target = "/var/log/hoard"
			c.LogRetentionDays = 7
		})

		It("should log configuration", func() {
			c.LogConfig(logger)

			Expect(hook.Messages).Should(ContainElement(ContainSubstring("type: file")))
			Expect(hook.Messages).Should(ContainElement(ContainSubstring("target: /var/log/hoard")))
			Expect(hook.Messages).Should(ContainElement(ContainSubstring("logRetentionDays: 7")))
		})
	})

	Describe("OplogType", func() {
		It("should parse from string", func() {
			t, err := ParseOplogType("postgresql")
			Expect(err).Should(Succeed())
			Expect(t).Should(Equal(OplogTypePostgresql))
		})

		It("should fail for unknown type", func() {
			_, err := ParseOplogType("carrierpigeon")
			Expect(err).Should(HaveOccurred())
		})

		It("should unmarshal from text", func() {
			var t OplogType

			Expect(t.UnmarshalText([]byte("sqlite"))).Should(Succeed())
			Expect(t).Should(Equal(OplogTypeSqlite))
		})
	})
})
