package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interlaced/corelog/core"
	"github.com/interlaced/corelog/formatter"
	"github.com/interlaced/corelog/sink"
)

// syncBuffer is a bytes.Buffer safe for concurrent writers and readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func bufferConfig(level core.Level, buf *syncBuffer) *Config {
	return NewBuilder().
		SetLevel(level).
		SetFormatter(formatter.NewTextFormatter(formatter.StampNone, "")).
		AddStreamSink(buf).
		Build()
}

func TestLevelFiltering(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.WarningLevel, &buf))

	Debug("debug-msg")
	Info("info-msg")
	Warning("warn-msg")
	Error("error-msg")

	out := buf.String()
	assert.NotContains(t, out, "debug-msg")
	assert.NotContains(t, out, "info-msg")
	assert.Contains(t, out, "warn-msg")
	assert.Contains(t, out, "error-msg")
}

func TestBasicShape(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.TraceLevel, &buf))

	Info("Info message")
	Warning("Warning message")

	out := buf.String()
	assert.Contains(t, out, "[INFO] Info message")
	assert.Contains(t, out, "[WARNING] Warning message")
}

func TestTemplateInterpolation(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))

	Info("User {} logged in from {}", "john_doe", "192.168.1.1")

	assert.Contains(t, buf.String(), "User john_doe logged in from 192.168.1.1")
}

func TestTemplateMismatchLeniency(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))

	Info("a {} b {}", "only")
	Info("no placeholders here {}", "x", "surplus", "args")

	out := buf.String()
	// Unmatched placeholders stay literal, surplus arguments are ignored.
	assert.Contains(t, out, "a only b {}")
	assert.Contains(t, out, "no placeholders here x")
	assert.NotContains(t, out, "surplus")
}

func TestStructuredPairs(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))

	Info("User login", "user_id", 12345, "ip", "192.168.1.1")

	out := buf.String()
	assert.Contains(t, out, "User login")
	assert.Contains(t, out, "user_id=12345")
	assert.Contains(t, out, "ip=192.168.1.1")
}

func TestStructuredPairTypes(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))

	Info("Test", "int", 42, "float", 3.14, "string", "hello", "bool", true, "dur", time.Second)

	out := buf.String()
	assert.Contains(t, out, "int=42")
	assert.Contains(t, out, "float=3.14")
	assert.Contains(t, out, "string=hello")
	assert.Contains(t, out, "bool=true")
	assert.Contains(t, out, "dur=1s")
}

func TestStructuredDanglingKey(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))

	Info("msg", "lonely")

	assert.Contains(t, buf.String(), "lonely=")
}

func TestLogFieldsTyped(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))

	LogFields(core.InfoLevel, "ready", String("addr", ":8080"), Int("workers", 4))

	assert.Contains(t, buf.String(), "ready addr=:8080 workers=4")
}

func TestLogAtCallSiteBasename(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))

	LogAt(core.InfoLevel, "Test", "/a/b/c/file.ext", 42)

	out := buf.String()
	assert.Contains(t, out, "file.ext:42")
	assert.NotContains(t, out, "/a/b/c/")
}

func TestCallerCapture(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	cfg := NewBuilder().
		SetLevel(core.InfoLevel).
		SetFormatter(formatter.NewTextFormatter(formatter.StampNone, "")).
		AddStreamSink(&buf).
		WithCaller(true).
		Build()
	Configure(cfg)

	Info("where am I")

	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestCategoryOverrideScenario(t *testing.T) {
	t.Cleanup(Reset)

	var globalBuf, svcBuf syncBuffer
	Configure(bufferConfig(core.WarningLevel, &globalBuf))
	ConfigureCategory("svc", bufferConfig(core.ErrorLevel, &svcBuf))

	Warning("global-warn")
	svc := Get("svc")
	svc.Warning("svc-warn")
	svc.Error("svc-error")

	assert.Contains(t, globalBuf.String(), "global-warn")
	assert.NotContains(t, svcBuf.String(), "svc-warn")
	assert.Contains(t, svcBuf.String(), "svc-error")
}

func TestCategoryFallsBackToGlobal(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))

	Get("unconfigured").Info("fallback-msg")

	assert.Contains(t, buf.String(), "fallback-msg")
}

func TestCategoryHandleSeesReconfiguration(t *testing.T) {
	t.Cleanup(Reset)

	var first, second syncBuffer
	cat := Get("dynamic")

	ConfigureCategory("dynamic", bufferConfig(core.InfoLevel, &first))
	cat.Info("one")
	ConfigureCategory("dynamic", bufferConfig(core.InfoLevel, &second))
	cat.Info("two")

	assert.Contains(t, first.String(), "one")
	assert.NotContains(t, first.String(), "two")
	assert.Contains(t, second.String(), "two")
	assert.True(t, HasCategory("dynamic"))
	assert.False(t, HasCategory("missing"))
}

func TestSetOutputStreamsRouting(t *testing.T) {
	t.Cleanup(Reset)

	var out, errOut syncBuffer
	SetOutputStreams(&out, &errOut)
	SetLevel(core.DebugLevel)

	Info("info-msg")
	Error("error-msg")

	assert.Contains(t, out.String(), "info-msg")
	assert.NotContains(t, out.String(), "error-msg")
	assert.Contains(t, errOut.String(), "error-msg")
}

func TestSetLevelSnapshotReplacement(t *testing.T) {
	t.Cleanup(Reset)

	var out, errOut syncBuffer
	SetOutputStreams(&out, &errOut)

	SetLevel(core.ErrorLevel)
	Warning("hidden")
	SetLevel(core.DebugLevel)
	Debug("visible")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "visible")
}

func TestSetFormatter(t *testing.T) {
	t.Cleanup(Reset)

	var out, errOut syncBuffer
	SetOutputStreams(&out, &errOut)
	SetFormatter(formatter.NewJSONFormatter(formatter.StampNone))

	Info("json please")

	assert.Contains(t, out.String(), `"message":"json please"`)

	SetFormatter(nil) // restores the text formatter
	Info("text again")
	assert.Contains(t, out.String(), "[INFO] text again")
}

func TestSetFileLogging(t *testing.T) {
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "test_log.txt")
	var out, errOut syncBuffer
	SetOutputStreams(&out, &errOut)
	SetFileLogging(path, 1024, 3)

	Info("File log message")
	Error("File error message")
	DisableFileLogging()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[INFO] File log message")
	assert.Contains(t, lines[1], "[ERROR] File error message")
}

func TestAsyncSinkThroughLogger(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	cfg := NewBuilder().
		SetLevel(core.InfoLevel).
		SetFormatter(formatter.NewTextFormatter(formatter.StampNone, "")).
		AddAsyncStreamSink(&buf, sink.AsyncConfig{Capacity: 64}).
		Build()
	Configure(cfg)

	for i := 0; i < 10; i++ {
		Info("async {}", i)
	}
	require.NoError(t, Flush())

	out := buf.String()
	for i := 0; i < 10; i++ {
		assert.Contains(t, out, "async "+string(rune('0'+i)))
	}
	assert.EqualValues(t, 0, DroppedCount())
}

func TestDroppedCountUnderBackpressure(t *testing.T) {
	t.Cleanup(Reset)

	slow := &slowSink{delay: 40 * time.Millisecond}
	cfg := NewBuilder().
		SetLevel(core.InfoLevel).
		SetFormatter(formatter.NewTextFormatter(formatter.StampNone, "")).
		AddAsyncSink(slow, sink.AsyncConfig{Capacity: 1, Policy: sink.DropOldest}).
		Build()
	Configure(cfg)

	for i := 0; i < 10; i++ {
		Info("m{}", i)
	}
	time.Sleep(100 * time.Millisecond)

	assert.Greater(t, DroppedCount(), uint64(0))
}

// slowSink simulates a slow backing store.
type slowSink struct {
	mu    sync.Mutex
	delay time.Duration
	lines []string
}

func (s *slowSink) Write(_ core.Level, line string) error {
	time.Sleep(s.delay)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	return nil
}

func (s *slowSink) Close() error { return nil }

func TestFatalDoesNotExit(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.TraceLevel, &buf))

	Fatal("fatal-but-alive")

	assert.Contains(t, buf.String(), "[FATAL] fatal-but-alive")
}

func TestConcurrentLogging(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))

	const goroutines = 10
	const perGoroutine = 100

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				Info("worker {} message {}", id, j)
			}
		}(i)
	}
	wg.Wait()

	count := strings.Count(buf.String(), "[INFO]")
	assert.Equal(t, goroutines*perGoroutine, count)
}

func TestConcurrentReconfiguration(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				Info("spin")
			}
		}
	}()

	// Snapshot replacement must never expose a torn config to the
	// logging goroutine.
	for i := 0; i < 50; i++ {
		SetLevel(core.DebugLevel)
		SetLevel(core.InfoLevel)
	}
	close(stop)
	wg.Wait()
}

func TestResetRestoresDefaults(t *testing.T) {
	var buf syncBuffer
	Configure(bufferConfig(core.ErrorLevel, &buf))
	ConfigureCategory("tmp", bufferConfig(core.ErrorLevel, &buf))
	Reset()

	assert.False(t, HasCategory("tmp"))
	assert.Equal(t, core.InfoLevel, currentConfig().Level())

	// After Reset the old buffer is detached from the pipeline.
	before := buf.String()
	SetOutputStreams(&syncBuffer{}, &syncBuffer{})
	Error("gone elsewhere")
	assert.Equal(t, before, buf.String())
	Reset()
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, TraceLevel, ParseLevel("trace"))
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarningLevel, ParseLevel("warning"))
	assert.Equal(t, WarningLevel, ParseLevel("WARN"))
	assert.Equal(t, ErrorLevel, ParseLevel("Error"))
	assert.Equal(t, FatalLevel, ParseLevel("fatal"))
	assert.Equal(t, InfoLevel, ParseLevel("bogus"))
}

func TestEmptyMessage(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))

	Info("")

	assert.Contains(t, buf.String(), "[INFO]")
}
