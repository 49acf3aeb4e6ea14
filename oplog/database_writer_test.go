package oplog

import (
	"time"

	"gorm.io/driver/sqlite"

	"github.com/onsi/ginkgo/v2"

	. "github.com/onsi/gomega"
)

var _ = ginkgo.Describe("DatabaseWriter", func() {
	ginkgo.Describe("database oplog", func() {
		ginkgo.When("a new entry was created", func() {
			ginkgo.It("should be persisted in the database", func() {
				writer, err := newDatabaseWriter(sqlite.Open("file::memory:"), 7, time.Millisecond)
				Expect(err).Should(Succeed())

				writer.Write(&Entry{
					Start:      time.Now(),
					Op:         "put",
					Cache:      "sessions",
					Key:        "user1",
					Applied:    true,
					DurationMs: 20,
				})

				Eventually(func() (res int64) {
					result := writer.db.Find(&oplogEntry{})

					result.Count(&res)

					return res
				}, "1s").Should(BeNumerically("==", 1))
			})
		})

		ginkgo.When("there are entries with timestamp exceeding the retention period", func() {
			ginkgo.It("should delete the old entries", func() {
				writer, err := newDatabaseWriter(sqlite.Open("file::memory:"), 1, time.Millisecond)
				Expect(err).Should(Succeed())

				// one entry with now as timestamp
				writer.Write(&Entry{Start: time.Now(), Op: "put", Cache: "c", Key: "k"})

				// one entry before 2 days -> should be deleted
				writer.Write(&Entry{Start: time.Now().AddDate(0, 0, -2), Op: "put", Cache: "c", Key: "k"})

				// 2 entries in the database
				Eventually(func() (res int64) {
					result := writer.db.Find(&oplogEntry{})

					result.Count(&res)

					return res
				}, "1s").Should(BeNumerically("==", 2))

				// do cleanup now
				writer.CleanUp()

				// now only 1 entry in the database
				Eventually(func() (res int64) {
					result := writer.db.Find(&oplogEntry{})

					result.Count(&res)

					return res
				}, "1s").Should(BeNumerically("==", 1))
			})
		})

		ginkgo.When("mysql connection parameters are wrong", func() {
			ginkgo.It("should fail", func() {
				_, err := NewDatabaseWriter("mysql", "wrong param", 7, 1)
				Expect(err).Should(HaveOccurred())
				Expect(err.Error()).Should(HavePrefix("can't create database connection"))
			})
		})

		ginkgo.When("postgresql connection parameters are wrong", func() {
			ginkgo.It("should fail", func() {
				_, err := NewDatabaseWriter("postgresql", "wrong param", 7, 1)
				Expect(err).Should(HaveOccurred())
				Expect(err.Error()).Should(HavePrefix("can't create database connection"))
			})
		})

		ginkgo.When("an invalid database type is specified", func() {
			ginkgo.It("should fail", func() {
				_, err := NewDatabaseWriter("invalidsql", "", 7, 1)
				Expect(err).Should(HaveOccurred())
				Expect(err.Error()).Should(HavePrefix("incorrect database type provided"))
			})
		})
	})
})
