package core

import (
	"runtime"
	"sync"
	"time"
)

// Entry represents a log event with all its metadata
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Fields  []Field
	// File is the source file of the call site as captured, possibly a
	// full path. Formatters reduce it to its basename before embedding
	// it in a line; full paths never reach a sink.
	File string
	Line int
}

// entryPool is a pool of Entry objects to reduce allocations
var entryPool = sync.Pool{
	New: func() interface{} {
		return &Entry{
			Fields: make([]Field, 0, 8), // Pre-allocate for 8 fields
		}
	},
}

// GetEntry retrieves an Entry from the pool
func GetEntry() *Entry {
	e := entryPool.Get().(*Entry)
	e.Time = time.Now()
	e.Fields = e.Fields[:0]
	e.File = ""
	e.Line = 0
	return e
}

// PutEntry returns an Entry to the pool
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	// Re-slice to zero length; GC handles reference cleanup
	e.Fields = e.Fields[:0]
	e.Message = ""
	e.File = ""
	e.Line = 0
	entryPool.Put(e)
}

// Caller returns the file and line of the caller skip frames up the
// stack. ok is false when the information is unavailable.
func Caller(skip int) (file string, line int, ok bool) {
	_, file, line, ok = runtime.Caller(skip)
	return file, line, ok
}
