package sink

import "github.com/interlaced/corelog/core"

// Sink defines the interface for consumers of formatted log lines.
type Sink interface {
	// Write persists or forwards a single formatted line. The line
	// carries no trailing newline; the sink appends its own terminator.
	// Write may block. Errors are advisory: the logging front end
	// swallows them and the sink is responsible for its own fallback.
	Write(level core.Level, line string) error

	// Close releases the sink's resources. Sinks that own no resources
	// treat it as a no-op.
	Close() error
}

// Flusher is an optional interface for sinks that buffer writes.
type Flusher interface {
	// Flush blocks until previously accepted lines have been handed to
	// the backing storage.
	Flush() error
}

// DropPolicy defines how an AsyncSink behaves when its queue is full
type DropPolicy int

const (
	// DropNewest drops the incoming line when the queue is full
	DropNewest DropPolicy = iota
	// DropOldest evicts the oldest queued line to make room
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p DropPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}
