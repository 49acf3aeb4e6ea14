package oplog

import (
	"time"
)

// Entry describes one executed cache operation.
type Entry struct {
	Start      time.Time
	Op         string
	Cache      string
	Key        string
	Applied    bool
	DurationMs int64
}

type Writer interface {
	Write(entry *Entry)
	CleanUp()
}
