// Package formatter defines how log entries are serialized into lines.
//
// A Formatter is a pure function from a core.Entry to a single output
// line without a trailing newline; sinks append the terminator. Both
// built-in formatters use a pooled bytes.Buffer internally and rely on
// Go's Append-style functions (time.AppendFormat, strconv.AppendInt)
// to avoid per-call allocations.
//
// TextFormatter produces a human-readable line with a configurable
// timestamp style and prefix. JSONFormatter produces a single-line JSON
// object with hand-rolled escaping on the hot path.
//
// Both formatters reduce a source file path to its basename before
// embedding it, so full filesystem paths never appear in log output.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
