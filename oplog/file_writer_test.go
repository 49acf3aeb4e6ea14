package oplog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"

	. "github.com/onsi/gomega"
)

var _ = ginkgo.Describe("FileWriter", func() {
	var tmpDir string

	ginkgo.BeforeEach(func() {
		tmpDir = ginkgo.GinkgoT().TempDir()
	})

	ginkgo.Describe("file oplog", func() {
		ginkgo.When("the target directory does not exist", func() {
			ginkgo.It("should return an error", func() {
				_, err := NewFileWriter("wrongdir", false, 0)
				Expect(err).Should(HaveOccurred())
			})
		})

		ginkgo.When("entries are written", func() {
			ginkgo.It("should append them to the daily file", func() {
				writer, err := NewFileWriter(tmpDir, false, 0)
				Expect(err).Should(Succeed())

				start := time.Now()

				writer.Write(&Entry{
					Start: start, Op: "put", Cache: "sessions", Key: "user1",
					Applied: true, DurationMs: 5,
				})
				writer.Write(&Entry{
					Start: start, Op: "remove", Cache: "sessions", Key: "user1",
					Applied: false, DurationMs: 3,
				})

				fileName := fmt.Sprintf("%s_ALL.log", start.Format("2006-01-02"))
				content, err := os.ReadFile(filepath.Join(tmpDir, fileName))
				Expect(err).Should(Succeed())

				lines := strings.Split(strings.TrimSpace(string(content)), "\n")
				Expect(lines).Should(HaveLen(2))
				Expect(lines[0]).Should(ContainSubstring("put\tsessions\tuser1\ttrue\t5"))
				Expect(lines[1]).Should(ContainSubstring("remove\tsessions\tuser1\tfalse\t3"))
			})
		})

		ginkgo.When("entries are split per cache", func() {
			ginkgo.It("should write one file per cache", func() {
				writer, err := NewFileWriter(tmpDir, true, 0)
				Expect(err).Should(Succeed())

				start := time.Now()

				writer.Write(&Entry{Start: start, Op: "put", Cache: "sessions", Key: "k"})
				writer.Write(&Entry{Start: start, Op: "put", Cache: "tokens/v1", Key: "k"})

				dateString := start.Format("2006-01-02")
				Expect(filepath.Join(tmpDir, dateString+"_sessions.log")).Should(BeAnExistingFile())
				Expect(filepath.Join(tmpDir, dateString+"_tokens_v1.log")).Should(BeAnExistingFile())
			})
		})
	})

	ginkgo.Describe("clean up of old log files", func() {
		ginkgo.When("log files are older than the retention period", func() {
			ginkgo.It("should delete them", func() {
				writer, err := NewFileWriter(tmpDir, false, 1)
				Expect(err).Should(Succeed())

				oldName := fmt.Sprintf("%s_ALL.log", time.Now().AddDate(0, 0, -3).Format("2006-01-02"))
				freshName := fmt.Sprintf("%s_ALL.log", time.Now().Format("2006-01-02"))

				Expect(os.WriteFile(filepath.Join(tmpDir, oldName), []byte("old"), 0o600)).Should(Succeed())
				Expect(os.WriteFile(filepath.Join(tmpDir, freshName), []byte("fresh"), 0o600)).Should(Succeed())

				writer.CleanUp()

				Expect(filepath.Join(tmpDir, oldName)).ShouldNot(BeAnExistingFile())
				Expect(filepath.Join(tmpDir, freshName)).Should(BeAnExistingFile())
			})
		})
	})
})
