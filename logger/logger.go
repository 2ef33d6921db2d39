package logger

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/interlaced/corelog/core"
	"github.com/interlaced/corelog/formatter"
	"github.com/interlaced/corelog/sink"
)

// Formatter is re-exported for convenience
type Formatter = formatter.Formatter

// callerSkip is the fixed frame depth from core.Caller up to the user's
// logging call. Every exported entry point goes through exactly one
// internal hop (emit or emitFields), keeping the depth uniform.
const callerSkip = 3

var (
	// global holds the current default configuration snapshot. Readers
	// load it lock-free on every call.
	global atomic.Pointer[Config]

	// defaultMu serializes snapshot replacement by the global setters.
	defaultMu sync.Mutex

	// The parts the setters rebuild the default snapshot from. In
	// custom mode (after Configure) the structure of the sink list is
	// the caller's and only whole-snapshot operations apply.
	defStream  sink.Sink
	defFile    sink.Sink
	customMode bool
)

func init() {
	defStream = sink.NewSplitStreamSink(os.Stdout, os.Stderr)
	global.Store(NewBuilder().AddSink(defStream).Build())
}

func currentConfig() *Config {
	return global.Load()
}

// Configure installs cfg as the global default configuration. The
// previous default is closed; its async sinks drain before release.
func Configure(cfg *Config) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	old := global.Swap(cfg)
	customMode = true
	defStream = nil
	if defFile != nil {
		_ = defFile.Close()
		defFile = nil
	}
	if old != nil {
		_ = old.Close()
	}
}

// SetLevel replaces the global default with a snapshot at a different
// minimum level, keeping formatter and sinks.
func SetLevel(level core.Level) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	global.Store(currentConfig().withLevel(level))
}

// SetFormatter replaces the global default with a snapshot using f.
// A nil formatter restores the built-in text formatter.
func SetFormatter(f Formatter) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if f == nil {
		f = formatter.NewTextFormatter(formatter.StampLocal, "")
	}
	global.Store(currentConfig().withFormatter(f))
}

// SetOutputStreams points the global default at a new pair of streams:
// lines below ErrorLevel go to out, ErrorLevel and above to errW. The
// sink list is rebuilt as stream sink plus the file sink, if file
// logging is enabled; custom sink lists installed via Configure are
// retired and closed.
func SetOutputStreams(out, errW io.Writer) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defStream = sink.NewSplitStreamSink(out, errW)
	rebuildDefaultLocked()
}

// SetFileLogging adds (or replaces) a size-rotated file sink on the
// global default. The previous file sink, if any, is closed, which
// flushes it.
func SetFileLogging(path string, maxBytes int64, backups int) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defFile != nil {
		_ = defFile.Close()
	}
	defFile = sink.NewSizeRotatingFile(path, maxBytes, backups)
	rebuildDefaultLocked()
}

// DisableFileLogging removes and closes the global default's file sink.
func DisableFileLogging() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defFile != nil {
		_ = defFile.Close()
		defFile = nil
	}
	rebuildDefaultLocked()
}

// rebuildDefaultLocked swaps in a snapshot assembled from the tracked
// parts, leaving custom mode if needed. defaultMu must be held.
func rebuildDefaultLocked() {
	cur := currentConfig()

	if defStream == nil {
		defStream = sink.NewSplitStreamSink(os.Stdout, os.Stderr)
	}
	sinks := []sink.Sink{defStream}
	if defFile != nil {
		sinks = append(sinks, defFile)
	}

	next := cur.withSinks(sinks)
	global.Store(next)

	if customMode {
		customMode = false
		_ = cur.Close()
	}
}

// Reset restores the initial state: InfoLevel, default text formatter,
// stdout/stderr streams, no file sink, empty category registry. Every
// retired snapshot is closed. Intended for test isolation.
func Reset() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	old := currentConfig()
	customMode = false
	defFile = nil
	defStream = sink.NewSplitStreamSink(os.Stdout, os.Stderr)
	global.Store(NewBuilder().AddSink(defStream).Build())

	if old != nil {
		_ = old.Close()
	}
	for _, cfg := range categories.clear() {
		_ = cfg.Close()
	}
	closeScopes()
}

// Flush flushes the buffering sinks of the global default, blocking
// until async queues drain.
func Flush() error {
	return currentConfig().Flush()
}

// DroppedCount returns the cumulative number of lines the global
// default's async sinks have discarded under backpressure.
func DroppedCount() uint64 {
	return currentConfig().Dropped()
}

// emit resolves leniency on the variadic tail (template interpolation
// or key/value pairs), stamps an entry, and dispatches it. The level
// check happens before any formatting work.
func emit(cfg *Config, level core.Level, msg string, args []any, file string, line int) {
	if cfg == nil || level < cfg.level {
		return
	}

	msg, fields := renderArgs(msg, args)

	e := core.GetEntry()
	e.Time = cfg.now()
	e.Level = level
	e.Message = msg
	if len(fields) > 0 {
		e.Fields = append(e.Fields, fields...)
	}
	if file == "" && cfg.caller {
		if f, l, ok := core.Caller(callerSkip); ok {
			file, line = f, l
		}
	}
	e.File = file
	e.Line = line

	cfg.Dispatch(e)
	core.PutEntry(e)
}

// emitFields is the typed-field twin of emit.
func emitFields(cfg *Config, level core.Level, msg string, fields []core.Field, t time.Time) {
	if cfg == nil || level < cfg.level {
		return
	}

	e := core.GetEntry()
	if !t.IsZero() {
		e.Time = t
	} else {
		e.Time = cfg.now()
	}
	e.Level = level
	e.Message = msg
	if len(fields) > 0 {
		e.Fields = append(e.Fields, fields...)
	}
	if cfg.caller {
		if f, l, ok := core.Caller(callerSkip); ok {
			e.File = f
			e.Line = l
		}
	}

	cfg.Dispatch(e)
	core.PutEntry(e)
}

// Log emits a message at the given level through the global default.
func Log(level core.Level, msg string, args ...any) {
	emit(currentConfig(), level, msg, args, "", 0)
}

// LogAt emits a message carrying an explicit call site. The file path
// is reduced to its basename by the formatter.
func LogAt(level core.Level, msg string, file string, line int) {
	emit(currentConfig(), level, msg, nil, file, line)
}

// LogFields emits a message with typed structured fields.
func LogFields(level core.Level, msg string, fields ...core.Field) {
	emitFields(currentConfig(), level, msg, fields, time.Time{})
}

// Trace logs a message at trace level
func Trace(msg string, args ...any) {
	emit(currentConfig(), core.TraceLevel, msg, args, "", 0)
}

// Debug logs a message at debug level
func Debug(msg string, args ...any) {
	emit(currentConfig(), core.DebugLevel, msg, args, "", 0)
}

// Info logs a message at info level
func Info(msg string, args ...any) {
	emit(currentConfig(), core.InfoLevel, msg, args, "", 0)
}

// Warning logs a message at warning level
func Warning(msg string, args ...any) {
	emit(currentConfig(), core.WarningLevel, msg, args, "", 0)
}

// Error logs a message at error level
func Error(msg string, args ...any) {
	emit(currentConfig(), core.ErrorLevel, msg, args, "", 0)
}

// Fatal logs a message at fatal level. It does not terminate the
// process; the pipeline is never the reason a caller dies.
func Fatal(msg string, args ...any) {
	emit(currentConfig(), core.FatalLevel, msg, args, "", 0)
}

// Category is a lightweight handle bound to a category name. Every
// call resolves the category's configuration through the registry, so
// reconfiguring the category affects existing handles immediately.
type Category struct {
	name string
}

// Get returns a handle bound to the named category.
func Get(name string) Category {
	return Category{name: name}
}

// Name returns the category name the handle is bound to.
func (c Category) Name() string {
	return c.name
}

// Log emits a message at the given level through the category's
// effective configuration.
func (c Category) Log(level core.Level, msg string, args ...any) {
	emit(categories.resolve(c.name), level, msg, args, "", 0)
}

// LogFields emits a message with typed structured fields.
func (c Category) LogFields(level core.Level, msg string, fields ...core.Field) {
	emitFields(categories.resolve(c.name), level, msg, fields, time.Time{})
}

// Trace logs a message at trace level
func (c Category) Trace(msg string, args ...any) {
	emit(categories.resolve(c.name), core.TraceLevel, msg, args, "", 0)
}

// Debug logs a message at debug level
func (c Category) Debug(msg string, args ...any) {
	emit(categories.resolve(c.name), core.DebugLevel, msg, args, "", 0)
}

// Info logs a message at info level
func (c Category) Info(msg string, args ...any) {
	emit(categories.resolve(c.name), core.InfoLevel, msg, args, "", 0)
}

// Warning logs a message at warning level
func (c Category) Warning(msg string, args ...any) {
	emit(categories.resolve(c.name), core.WarningLevel, msg, args, "", 0)
}

// Error logs a message at error level
func (c Category) Error(msg string, args ...any) {
	emit(categories.resolve(c.name), core.ErrorLevel, msg, args, "", 0)
}

// Fatal logs a message at fatal level without terminating the process.
func (c Category) Fatal(msg string, args ...any) {
	emit(categories.resolve(c.name), core.FatalLevel, msg, args, "", 0)
}
