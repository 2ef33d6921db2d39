package logger

import (
	"io"
	"time"

	"go.uber.org/multierr"

	"github.com/interlaced/corelog/core"
	"github.com/interlaced/corelog/formatter"
	"github.com/interlaced/corelog/sink"
)

// Config is an immutable logging configuration snapshot: minimum level,
// formatter, and an ordered sink list. Configs are shared by all
// readers for their lifetime and never mutated; reconfiguring means
// installing a new snapshot.
type Config struct {
	level     core.Level
	formatter formatter.Formatter
	sinks     []sink.Sink
	caller    bool
	coarse    bool
}

// Level returns the minimum level of the snapshot.
func (c *Config) Level() core.Level {
	return c.level
}

// Enabled reports whether an entry at the given level passes the
// snapshot's level filter.
func (c *Config) Enabled(level core.Level) bool {
	return level >= c.level
}

// Dispatch formats the entry once and writes the resulting line to
// every sink in configuration order. Fields of open ambient scopes are
// appended to the entry first. Sink errors are swallowed; each sink is
// responsible for its own fallback.
func (c *Config) Dispatch(entry *core.Entry) {
	if amb := ambientFields(); len(amb) > 0 {
		entry.Fields = append(entry.Fields, amb...)
	}
	line := c.formatter.Format(entry)
	for _, s := range c.sinks {
		_ = s.Write(entry.Level, line)
	}
}

// Flush flushes every sink that buffers, aggregating errors.
func (c *Config) Flush() error {
	var err error
	for _, s := range c.sinks {
		if f, ok := s.(sink.Flusher); ok {
			err = multierr.Append(err, f.Flush())
		}
	}
	return err
}

// Close closes every sink in the snapshot, aggregating errors. Async
// sinks drain their queues before releasing their inner sinks.
func (c *Config) Close() error {
	var err error
	for _, s := range c.sinks {
		err = multierr.Append(err, s.Close())
	}
	return err
}

// Dropped sums the dropped-line counters of the snapshot's async sinks.
func (c *Config) Dropped() uint64 {
	var total uint64
	for _, s := range c.sinks {
		if a, ok := s.(*sink.AsyncSink); ok {
			total += a.Dropped()
		}
	}
	return total
}

// now returns the entry timestamp source configured for the snapshot.
func (c *Config) now() time.Time {
	if c.coarse {
		return core.CoarseNow()
	}
	return time.Now()
}

// withLevel returns a copy of the snapshot with a different minimum
// level, sharing the formatter and sinks.
func (c *Config) withLevel(level core.Level) *Config {
	cp := *c
	cp.level = level
	return &cp
}

// withFormatter returns a copy of the snapshot with a different
// formatter, sharing the sinks.
func (c *Config) withFormatter(f formatter.Formatter) *Config {
	cp := *c
	cp.formatter = f
	return &cp
}

// withSinks returns a copy of the snapshot with a different sink list.
func (c *Config) withSinks(sinks []sink.Sink) *Config {
	cp := *c
	cp.sinks = sinks
	return &cp
}

// Builder provides a fluent API for assembling Config snapshots.
// Ownership of every added sink transfers to the built Config.
type Builder struct {
	level     core.Level
	formatter formatter.Formatter
	sinks     []sink.Sink
	caller    bool
	coarse    bool
}

// NewBuilder creates a new configuration builder. The zero
// configuration logs at InfoLevel through the default text formatter
// with no sinks.
func NewBuilder() *Builder {
	return &Builder{level: core.InfoLevel}
}

// SetLevel sets the minimum level
func (b *Builder) SetLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// SetFormatter sets the formatter. Unset, Build falls back to the
// human-readable text formatter with local timestamps.
func (b *Builder) SetFormatter(f formatter.Formatter) *Builder {
	b.formatter = f
	return b
}

// WithCaller enables call-site capture: every entry records the file
// and line of the logging call.
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.caller = enabled
	return b
}

// WithCoarseClock stamps entries from the shared coarse clock instead
// of calling time.Now per event. Build starts the clock.
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	b.coarse = enabled
	return b
}

// AddSink appends a sink to the ordered sink list
func (b *Builder) AddSink(s sink.Sink) *Builder {
	b.sinks = append(b.sinks, s)
	return b
}

// AddStreamSink appends a sink writing every line to w
func (b *Builder) AddStreamSink(w io.Writer) *Builder {
	return b.AddSink(sink.NewStreamSink(w))
}

// AddSplitStreamSink appends a sink routing ErrorLevel and above to
// errW and everything else to out
func (b *Builder) AddSplitStreamSink(out, errW io.Writer) *Builder {
	return b.AddSink(sink.NewSplitStreamSink(out, errW))
}

// AddAsyncStreamSink appends a stream sink decoupled from the caller by
// a bounded queue
func (b *Builder) AddAsyncStreamSink(w io.Writer, cfg sink.AsyncConfig) *Builder {
	return b.AddSink(sink.NewAsyncSink(sink.NewStreamSink(w), cfg))
}

// AddFileSink appends a size-rotated file sink
func (b *Builder) AddFileSink(path string, maxBytes int64, backups int) *Builder {
	return b.AddSink(sink.NewSizeRotatingFile(path, maxBytes, backups))
}

// AddTimedFileSink appends a time-rotated file sink
func (b *Builder) AddTimedFileSink(path string, interval time.Duration, backups int) *Builder {
	return b.AddSink(sink.NewTimeRotatingFile(path, interval, backups))
}

// AddAsyncFileSink appends a size-rotated file sink behind a bounded
// queue, so file I/O and rotation happen off the caller's goroutine
func (b *Builder) AddAsyncFileSink(path string, maxBytes int64, backups int, cfg sink.AsyncConfig) *Builder {
	return b.AddSink(sink.NewAsyncSink(sink.NewSizeRotatingFile(path, maxBytes, backups), cfg))
}

// AddAsyncSink wraps an arbitrary sink with a bounded queue. Ownership
// of inner transfers to the async decorator.
func (b *Builder) AddAsyncSink(inner sink.Sink, cfg sink.AsyncConfig) *Builder {
	return b.AddSink(sink.NewAsyncSink(inner, cfg))
}

// Build creates the immutable Config snapshot
func (b *Builder) Build() *Config {
	f := b.formatter
	if f == nil {
		f = formatter.NewTextFormatter(formatter.StampLocal, "")
	}
	if b.coarse {
		core.StartCoarseClock()
	}
	sinks := make([]sink.Sink, len(b.sinks))
	copy(sinks, b.sinks)
	return &Config{
		level:     b.level,
		formatter: f,
		sinks:     sinks,
		caller:    b.caller,
		coarse:    b.coarse,
	}
}
