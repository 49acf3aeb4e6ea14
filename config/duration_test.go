package config

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Duration", func() {
	var d Duration

	BeforeEach(func() {
		var zero Duration

		d = zero
	})

	Describe("UnmarshalText", func() {
		It("should parse duration with unit", func() {
			err := d.UnmarshalText([]byte("1m20s"))
			Expect(err).Should(Succeed())
			Expect(d).Should(Equal(Duration(80 * time.Second)))
			Expect(d.String()).Should(Equal("1 minute 20 seconds"))
		})

		It("should interpret a bare number as minutes", func() {
			err := d.UnmarshalText([]byte("5"))
			Expect(err).Should(Succeed())
			Expect(d).Should(Equal(Duration(5 * time.Minute)))
		})

		It("should fail if duration is in wrong format", func() {
			err := d.UnmarshalText([]byte("wrong"))
			Expect(err).Should(HaveOccurred())
			Expect(err).Should(MatchError("time: invalid duration \"wrong\""))
		})
	})

	Describe("IsZero", func() {
		It("should be true for zero", func() {
			Expect(d.IsZero()).Should(BeTrue())
			Expect(Duration(0).IsZero()).Should(BeTrue())
		})

		It("should be false for non-zero", func() {
			Expect(Duration(time.Second).IsZero()).Should(BeFalse())
		})
	})

	Describe("IsAboveZero", func() {
		It("should be false for zero and negative", func() {
			Expect(d.IsAboveZero()).Should(BeFalse())
			Expect(Duration(-time.Second).IsAboveZero()).Should(BeFalse())
		})

		It("should be true for positive", func() {
			Expect(Duration(time.Second).IsAboveZero()).Should(BeTrue())
		})
	})

	Describe("Seconds", func() {
		It("should return the duration in seconds", func() {
			Expect(Duration(90 * time.Second).Seconds()).Should(Equal(90.0))
			Expect(Duration(90 * time.Second).SecondsU32()).Should(Equal(uint32(90)))
		})
	})
})
