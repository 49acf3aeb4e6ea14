package cmd

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Bench command", func() {
	var (
		ts       *httptest.Server
		requests int32
	)
	BeforeEach(func() {
		requests = 0
		ts = testHTTPAPIServer(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&requests, 1)
		})
		DeferCleanup(ts.Close)
	})
	When("bench is called against a running server", func() {
		It("should perform all requests", func() {
			c := newBenchCommand()
			c.SetArgs([]string{"--requests", "40", "--concurrency", "4", "--keys", "10"})

			Expect(c.Execute()).Should(Succeed())
			Expect(atomic.LoadInt32(&requests)).Should(Equal(int32(40)))
		})
	})
	When("zero values are provided", func() {
		It("Should end with error", func() {
			c := newBenchCommand()
			c.SetArgs([]string{"--concurrency", "0"})

			Expect(c.Execute()).Should(MatchError(ContainSubstring("must be above zero")))
		})
	})
	When("no server is running", func() {
		It("should report failed requests", func() {
			apiPort = 0

			c := newBenchCommand()
			c.SetArgs([]string{"--requests", "4", "--concurrency", "2"})

			err := c.Execute()
			Expect(err).Should(MatchError(ContainSubstring("requests failed")))
		})
	})
})
