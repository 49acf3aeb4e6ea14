package oplog

import (
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/hoardcache/hoard/config"
	"github.com/hoardcache/hoard/evt"
	"github.com/hoardcache/hoard/log"
)

const (
	cleanUpRunPeriod  = 12 * time.Hour
	loggerPrefixOplog = "oplog"
	logChanCap        = 1000
)

// Logger decouples operation logging from the request path. Entries
// are handed over through a bounded channel and dropped if the writer
// cannot keep up.
type Logger struct {
	cfg     config.OplogConfig
	writer  Writer
	logChan chan *Entry
}

// NewLogger creates the configured writer and starts the write loop.
// If the writer cannot be created, the console writer is used as
// fallback.
func NewLogger(cfg config.OplogConfig) *Logger {
	logger := log.PrefixedLog(loggerPrefixOplog)

	var writer Writer

	err := retry.Do(
		func() error {
			var err error
			writer, err = createWriter(cfg)

			return err
		},
		retry.Attempts(uint(cfg.CreationAttempts)),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(cfg.CreationCooldown.ToDuration()),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warnf("can't create oplog writer, retry attempt %d: %s", n+1, err)
		}))
	if err != nil {
		logger.Error("can't create oplog writer, using the console as fallback: ", err)

		writer = NewLoggerWriter()
	}

	l := &Logger{
		cfg:     cfg,
		writer:  writer,
		logChan: make(chan *Entry, logChanCap),
	}

	go l.writeLoop()

	if cfg.LogRetentionDays > 0 {
		go l.periodicCleanUp()
	}

	return l
}

func createWriter(cfg config.OplogConfig) (Writer, error) {
	switch cfg.Type {
	case config.OplogTypeNone:
		return NewNoneWriter(), nil
	case config.OplogTypeLogger:
		return NewLoggerWriter(), nil
	case config.OplogTypeFile:
		return NewFileWriter(cfg.Target, cfg.SplitPerCache, cfg.LogRetentionDays)
	case config.OplogTypeMysql, config.OplogTypePostgresql, config.OplogTypeSqlite:
		return NewDatabaseWriter(cfg.Type.String(), cfg.Target,
			cfg.LogRetentionDays, cfg.FlushInterval.ToDuration())
	}

	return nil, fmt.Errorf("unknown oplog type: %s", cfg.Type)
}

// Log queues the entry for writing. The entry is dropped if the queue
// is full.
func (l *Logger) Log(entry *Entry) {
	select {
	case l.logChan <- entry:
	default:
		log.PrefixedLog(loggerPrefixOplog).Error("oplog writer is too slow, log entry will be dropped")
	}
}

func (l *Logger) writeLoop() {
	halfCap := cap(l.logChan) / 2

	for entry := range l.logChan {
		start := time.Now()

		l.writer.Write(entry)

		evt.Bus().Publish(evt.OplogEntryWritten, entry.Op)

		// a queue over half capacity points to a writer which cannot keep up
		if len(l.logChan) > halfCap {
			log.PrefixedLog(loggerPrefixOplog).WithField("channel_len", len(l.logChan)).
				Warnf("oplog writer is too slow, write duration: %d ms", time.Since(start).Milliseconds())
		}
	}
}

// triggers periodically cleanup of old log entries
func (l *Logger) periodicCleanUp() {
	ticker := time.NewTicker(cleanUpRunPeriod)
	defer ticker.Stop()

	for {
		<-ticker.C
		l.writer.CleanUp()
	}
}
