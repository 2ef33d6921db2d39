package sink

import (
	"io"
	"sync"

	"github.com/interlaced/corelog/core"
)

// StreamSink writes formatted lines to a wrapped output stream,
// terminating each with a newline. With a split error stream, lines at
// ErrorLevel and above go to the error writer and everything else to
// the output writer.
//
// StreamSink does not own the wrapped writers and never closes them;
// wrapping os.Stdout must not close the process's stdout.
type StreamSink struct {
	mu   sync.Mutex
	out  io.Writer
	err  io.Writer // nil: all levels go to out
	wErr error     // sticky error from the most recent write
}

// NewStreamSink creates a sink writing every line to w.
func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{out: w}
}

// NewSplitStreamSink creates a sink routing ErrorLevel and above to
// errW and everything below to out.
func NewSplitStreamSink(out, errW io.Writer) *StreamSink {
	return &StreamSink{out: out, err: errW}
}

// Write writes line plus a newline to the stream selected by level.
// A sticky error from a previous write is cleared first, so one failed
// write never silently discards all future output.
func (s *StreamSink) Write(level core.Level, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wErr = nil

	w := s.out
	if s.err != nil && level >= core.ErrorLevel {
		w = s.err
	}

	// Single Write call keeps the line and terminator together on
	// writers shared with other goroutines.
	_, err := io.WriteString(w, line+"\n")
	s.wErr = err
	return err
}

// Err returns the error recorded by the most recent Write, if any.
func (s *StreamSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wErr
}

// Close is a no-op; the wrapped writers are not owned by the sink.
func (s *StreamSink) Close() error {
	return nil
}
