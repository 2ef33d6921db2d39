// Package sink provides the Sink interface and its built-in
// implementations for persisting or forwarding formatted log lines.
//
// A Sink consumes lines that a formatter has already rendered; the
// entry's level rides along only as routing metadata (a split stream
// sink sends errors to a different writer). Sinks append the newline
// terminator themselves, one line per event.
//
// Built-in sinks:
//
//   - StreamSink writes lines to any io.Writer, optionally routing
//     Error and Fatal lines to a second writer. A failed write is
//     retried on the next call instead of wedging the sink.
//   - AsyncSink decorates another sink with a bounded queue and a
//     single background goroutine. When the queue is full it applies
//     its DropPolicy: DropNewest, DropOldest, or Block with a timeout.
//     Lines that are not dropped reach the inner sink in submission
//     order. Dropped and processed counts are tracked atomically and
//     can be queried at runtime.
//   - RotatingFileWriter appends to a live file and rotates it through
//     a numbered backup chain by size or elapsed time. When the file
//     cannot be opened or rotated it degrades to a fallback writer
//     rather than failing its caller.
package sink
