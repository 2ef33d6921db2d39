package formatter

import (
	"bytes"
	"sync"

	"github.com/interlaced/corelog/core"
)

// Formatter turns a log entry into a single output line. The returned
// line carries no trailing newline; sinks append it. Implementations
// must be pure: no I/O and no mutable state beyond configuration set
// at construction time.
type Formatter interface {
	Format(entry *core.Entry) string
}

// TimestampStyle selects how a formatter renders the entry timestamp.
type TimestampStyle uint8

const (
	// StampLocal renders "2006-01-02 15:04:05" in local time.
	StampLocal TimestampStyle = iota
	// StampISO8601 renders "2006-01-02T15:04:05Z" in UTC.
	StampISO8601
	// StampNone omits the timestamp entirely.
	StampNone
)

const (
	localLayout = "2006-01-02 15:04:05"
	isoLayout   = "2006-01-02T15:04:05Z"
)

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
