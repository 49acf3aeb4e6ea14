package config

import (
	"github.com/creasty/defaults"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Redis", func() {
	var c Redis

	suiteBeforeEach()

	BeforeEach(func() {
		Expect(defaults.Set(&c)).Should(Succeed())
	})

	Describe("IsEnabled", func() {
		When("all fields are default", func() {
			It("should be disabled", func() {
				Expect(c.IsEnabled()).Should(BeFalse())
			})
		})

		When("address is set", func() {
			BeforeEach(func() {
				c.Address = "localhost:6379"
			})

			It("should be enabled", func() {
				Expect(c.IsEnabled()).Should(BeTrue())
			})
		})
	})

	Describe("LogConfig", func() {
		When("address is set", func() {
			BeforeEach(func() {
				c.Address = "localhost:6379"
				c.Password = "secret"
			})

			It("should log the address and mask the password", func() {
				c.LogConfig(logger)

				Expect(hook.Messages).Should(ContainElement(ContainSubstring("address: localhost:6379")))
				Expect(hook.Messages).Should(ContainElement(ContainSubstring("password: ******")))
				Expect(hook.Messages).ShouldNot(ContainElement(ContainSubstring("secret")))
			})
		})

		When("sentinel addresses are set", func() {
			BeforeEach(func() {
				c.Address = "mymaster"
				c.SentinelAddresses = []string{"localhost:26379", "localhost:26380"}
			})

			It("should log sentinel addresses instead of the address", func() {
				c.LogConfig(logger)

				Expect(hook.Messages).Should(ContainElement(ContainSubstring("master: mymaster")))
				Expect(hook.Messages).Should(ContainElement(ContainSubstring("- localhost:26379")))
				Expect(hook.Messages).Should(ContainElement(ContainSubstring("- localhost:26380")))
			})
		})
	})
})
