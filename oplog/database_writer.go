package oplog

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hoardcache/hoard/log"
)

type oplogEntry struct {
	RequestTS  *time.Time `gorm:"index"`
	Op         string     `gorm:"index"`
	CacheName  string     `gorm:"index"`
	CacheKey   string
	Applied    bool
	DurationMs int64
}

type DatabaseWriter struct {
	db               *gorm.DB
	logRetentionDays uint64
	pendingEntries   []*oplogEntry
	lock             sync.Mutex
	dbFlushPeriod    time.Duration
}

// NewDatabaseWriter creates a new database writer for the given
// database type
func NewDatabaseWriter(dbType, target string, logRetentionDays uint64,
	dbFlushPeriod time.Duration,
) (*DatabaseWriter, error) {
	switch dbType {
	case "mysql":
		return newDatabaseWriter(mysql.Open(target), logRetentionDays, dbFlushPeriod)
	case "postgresql":
		return newDatabaseWriter(postgres.Open(target), logRetentionDays, dbFlushPeriod)
	case "sqlite":
		return newDatabaseWriter(sqlite.Open(target), logRetentionDays, dbFlushPeriod)
	}

	return nil, fmt.Errorf("incorrect database type provided: %s", dbType)
}

func newDatabaseWriter(target gorm.Dialector, logRetentionDays uint64,
	dbFlushPeriod time.Duration,
) (*DatabaseWriter, error) {
	db, err := gorm.Open(target, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("can't create database connection: %w", err)
	}

	// Migrate the schema
	if err := db.AutoMigrate(&oplogEntry{}); err != nil {
		return nil, fmt.Errorf("can't perform auto migration: %w", err)
	}

	w := &DatabaseWriter{
		db:               db,
		logRetentionDays: logRetentionDays,
		dbFlushPeriod:    dbFlushPeriod,
	}

	go w.periodicFlush()

	return w, nil
}

func (d *DatabaseWriter) periodicFlush() {
	ticker := time.NewTicker(d.dbFlushPeriod)
	defer ticker.Stop()

	for {
		<-ticker.C
		d.doDBWrite()
	}
}

func (d *DatabaseWriter) Write(entry *Entry) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.pendingEntries = append(d.pendingEntries, &oplogEntry{
		RequestTS:  &entry.Start,
		Op:         entry.Op,
		CacheName:  entry.Cache,
		CacheKey:   entry.Key,
		Applied:    entry.Applied,
		DurationMs: entry.DurationMs,
	})
}

func (d *DatabaseWriter) CleanUp() {
	deletionDate := time.Now().AddDate(0, 0, -int(d.logRetentionDays))

	log.PrefixedLog("database_writer").Debugf("deleting log entries with request_ts < %s", deletionDate)

	d.db.Where("request_ts < ?", deletionDate).Delete(&oplogEntry{})
}

func (d *DatabaseWriter) doDBWrite() {
	d.lock.Lock()
	pending := d.pendingEntries
	d.pendingEntries = nil
	d.lock.Unlock()

	if len(pending) == 0 {
		return
	}

	const chunkSize = 100

	d.db.CreateInBatches(pending, chunkSize)
}
