package oplog

import (
	"github.com/sirupsen/logrus"

	"github.com/hoardcache/hoard/log"
)

const loggerPrefixLoggerWriter = "oplog"

type LoggerWriter struct {
	logger *logrus.Entry
}

func NewLoggerWriter() *LoggerWriter {
	return &LoggerWriter{logger: log.PrefixedLog(loggerPrefixLoggerWriter)}
}

func (d *LoggerWriter) Write(entry *Entry) {
	d.logger.WithFields(
		logrus.Fields{
			"op":          entry.Op,
			"cache":       entry.Cache,
			"key":         entry.Key,
			"applied":     entry.Applied,
			"duration_ms": entry.DurationMs,
		},
	).Infof("")
}

func (d *LoggerWriter) CleanUp() {
	// Nothing to do
}
