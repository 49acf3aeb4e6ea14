package oplog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hoardcache/hoard/log"
	"github.com/hoardcache/hoard/util"
)

const loggerPrefixFileWriter = "file_oplog_writer"

var validFilePattern = regexp.MustCompile("[^a-zA-Z0-9-_]+")

// FileWriter writes entries as tab separated rows into one file per
// day. With perCache enabled every named cache gets its own file.
type FileWriter struct {
	target           string
	perCache         bool
	logRetentionDays uint64
}

func NewFileWriter(target string, perCache bool, logRetentionDays uint64) (*FileWriter, error) {
	if _, err := os.Stat(target); target != "" && err != nil && os.IsNotExist(err) {
		return nil, fmt.Errorf("oplog directory '%s' does not exist or is not writable", target)
	}

	return &FileWriter{
		target:           target,
		perCache:         perCache,
		logRetentionDays: logRetentionDays,
	}, nil
}

func (d *FileWriter) Write(entry *Entry) {
	var filePrefix string

	dateString := entry.Start.Format("2006-01-02")

	if d.perCache {
		filePrefix = entry.Cache
	} else {
		filePrefix = "ALL"
	}

	fileName := fmt.Sprintf("%s_%s.log", dateString, escape(filePrefix))
	writePath := filepath.Join(d.target, fileName)

	file, err := os.OpenFile(writePath, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o666)

	util.LogOnErrorWithEntry(log.PrefixedLog(loggerPrefixFileWriter).WithField("file_name", writePath),
		"can't create/open file", err)

	if err == nil {
		writer := createCsvWriter(file)

		err := writer.Write(createOplogRow(entry))
		util.LogOnErrorWithEntry(log.PrefixedLog(loggerPrefixFileWriter).WithField("file_name", writePath),
			"can't write to file", err)
		writer.Flush()

		_ = file.Close()
	}
}

// CleanUp deletes old log files
func (d *FileWriter) CleanUp() {
	const hoursPerDay = 24

	logger := log.PrefixedLog(loggerPrefixFileWriter)

	logger.Trace("starting clean up")

	files, err := os.ReadDir(d.target)

	util.LogOnErrorWithEntry(logger.WithField("target", d.target), "can't list log directory: ", err)

	// search for log files, whose names start with a date
	for _, f := range files {
		if strings.HasSuffix(f.Name(), ".log") && len(f.Name()) > 10 {
			t, err := time.Parse("2006-01-02", f.Name()[:10])
			if err == nil {
				differenceDays := uint64(time.Since(t).Hours() / hoursPerDay)
				if d.logRetentionDays > 0 && differenceDays > d.logRetentionDays {
					logger.WithFields(logrus.Fields{
						"file":             f.Name(),
						"ageInDays":        differenceDays,
						"logRetentionDays": d.logRetentionDays,
					}).Info("existing log file is older than retention time and will be deleted")

					err := os.Remove(filepath.Join(d.target, f.Name()))
					util.LogOnErrorWithEntry(logger.WithField("file", f.Name()), "can't remove file: ", err)
				}
			}
		}
	}
}

func createOplogRow(entry *Entry) []string {
	return []string{
		entry.Start.Format("2006-01-02 15:04:05"),
		entry.Op,
		entry.Cache,
		entry.Key,
		strconv.FormatBool(entry.Applied),
		fmt.Sprintf("%d", entry.DurationMs),
	}
}

func createCsvWriter(file io.Writer) *csv.Writer {
	writer := csv.NewWriter(file)
	writer.Comma = '\t'

	return writer
}

func escape(name string) string {
	return validFilePattern.ReplaceAllString(name, "_")
}
