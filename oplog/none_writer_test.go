package oplog

import (
	"github.com/onsi/ginkgo/v2"
)

var _ = ginkgo.Describe("NoneWriter", func() {
	ginkgo.Describe("NoneWriter", func() {
		ginkgo.When("write is called", func() {
			ginkgo.It("should do nothing", func() {
				NewNoneWriter().Write(nil)
			})
		})
		ginkgo.When("cleanUp is called", func() {
			ginkgo.It("should do nothing", func() {
				NewNoneWriter().CleanUp()
			})
		})
	})
})
