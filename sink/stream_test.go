package sink

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interlaced/corelog/core"
)

func TestStreamSinkWritesLinePlusNewline(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamSink(&buf)

	require.NoError(t, s.Write(core.InfoLevel, "hello"))
	require.NoError(t, s.Write(core.InfoLevel, "world"))

	assert.Equal(t, "hello\nworld\n", buf.String())
	assert.NoError(t, s.Close())
}

func TestSplitStreamSinkRouting(t *testing.T) {
	var out, errOut bytes.Buffer
	s := NewSplitStreamSink(&out, &errOut)

	s.Write(core.InfoLevel, "info-msg")
	s.Write(core.WarningLevel, "warn-msg")
	s.Write(core.ErrorLevel, "error-msg")
	s.Write(core.FatalLevel, "fatal-msg")

	assert.Contains(t, out.String(), "info-msg")
	assert.Contains(t, out.String(), "warn-msg")
	assert.NotContains(t, out.String(), "error-msg")

	assert.Contains(t, errOut.String(), "error-msg")
	assert.Contains(t, errOut.String(), "fatal-msg")
}

// failingWriter fails a fixed number of writes, then recovers.
type failingWriter struct {
	failures int
	buf      bytes.Buffer
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.failures > 0 {
		w.failures--
		return 0, errors.New("stream in error state")
	}
	return w.buf.Write(p)
}

func TestStreamSinkRecoversAfterWriteError(t *testing.T) {
	w := &failingWriter{failures: 1}
	s := NewStreamSink(w)

	err := s.Write(core.InfoLevel, "lost")
	require.Error(t, err)
	require.Error(t, s.Err())

	// The sticky error must not wedge the sink; the next write goes through.
	require.NoError(t, s.Write(core.InfoLevel, "recovered"))
	assert.NoError(t, s.Err())
	assert.Contains(t, w.buf.String(), "recovered")
}
