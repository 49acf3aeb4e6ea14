package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/hoardcache/hoard/api"
	"github.com/hoardcache/hoard/log"

	"github.com/sirupsen/logrus/hooks/test"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Stats command", func() {
	var (
		ts         *httptest.Server
		mockFn     func(w http.ResponseWriter, _ *http.Request)
		loggerHook *test.Hook
	)
	JustBeforeEach(func() {
		ts = testHTTPAPIServer(mockFn)
	})
	JustAfterEach(func() {
		ts.Close()
	})
	BeforeEach(func() {
		mockFn = func(w http.ResponseWriter, _ *http.Request) {}
		loggerHook = test.NewGlobal()
		log.Log().AddHook(loggerHook)
	})
	AfterEach(func() {
		loggerHook.Reset()
	})
	When("stats is called via REST", func() {
		BeforeEach(func() {
			mockFn = func(w http.ResponseWriter, _ *http.Request) {
				response, _ := json.Marshal(api.StatsResult{
					TopOperations: map[string]int{"get": 10},
					TopCaches:     map[string]int{"sessions": 7},
					TopKeys:       map[string]int{"user-1": 3},
					HotKeys: map[string]map[string]uint32{
						"sessions": {"user-1": 5},
					},
				})
				_, err := w.Write(response)
				Expect(err).Should(Succeed())
			}
		})
		It("should print all sections", func() {
			Expect(printStats(newStatsCommand(), []string{})).Should(Succeed())

			messages := make([]string, 0, len(loggerHook.AllEntries()))
			for _, entry := range loggerHook.AllEntries() {
				messages = append(messages, entry.Message)
			}

			Expect(messages).Should(ContainElements(
				"top operations:",
				"        10 : get",
				"top caches:",
				"         7 : sessions",
				"top keys:",
				"         3 : user-1",
				"hot keys in 'sessions':",
				"         5 : user-1",
			))
		})
	})
	When("Server returns internal error", func() {
		BeforeEach(func() {
			mockFn = func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}
		})
		It("Should end with error", func() {
			err := printStats(newStatsCommand(), []string{})
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("500 Internal Server Error"))
		})
	})
	When("Wrong url is used", func() {
		It("Should end with error", func() {
			apiPort = 0
			err := printStats(newStatsCommand(), []string{})
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("connection refused"))
		})
	})
})
