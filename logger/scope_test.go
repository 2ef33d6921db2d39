package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/interlaced/corelog/core"
	"github.com/interlaced/corelog/formatter"
)

func TestScopeFieldsRideOnEveryEntry(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))

	s := OpenScope().Add("user", "u1")
	Info("msg")
	s.Close()

	assert.Contains(t, buf.String(), "msg user=u1")
}

func TestScopeStopsAfterClose(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))

	s := OpenScope().Add("user", "u1")
	Info("inside")
	s.Close()
	Info("outside")

	out := buf.String()
	assert.Contains(t, out, "inside user=u1")
	assert.NotContains(t, out, "outside user=u1")
}

func TestScopeCombinesWithCallFields(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))

	s := OpenScope().Add("request_id", "req-1")
	defer s.Close()
	Info("handled", "status", 200)

	// Call fields come first, ambient fields after.
	assert.Contains(t, buf.String(), "handled status=200 request_id=req-1")
}

func TestScopesNest(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))

	outer := OpenScope().Add("a", 1)
	inner := OpenScope().Add("b", 2)
	Info("both")
	inner.Close()
	Info("outer only")
	outer.Close()

	out := buf.String()
	assert.Contains(t, out, "both a=1 b=2")
	assert.Contains(t, out, "outer only a=1")
	assert.NotContains(t, out, "outer only a=1 b=2")
}

func TestScopeAppliesToCategories(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	ConfigureCategory("svc", bufferConfig(core.InfoLevel, &buf))

	s := OpenScope().AddFields(String("tenant", "t1"))
	defer s.Close()
	Get("svc").Info("scoped")

	assert.Contains(t, buf.String(), "scoped tenant=t1")
}

func TestScopeFlowsIntoJSON(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	cfg := NewBuilder().
		SetLevel(core.InfoLevel).
		SetFormatter(formatter.NewJSONFormatter(formatter.StampNone)).
		AddStreamSink(&buf).
		Build()
	Configure(cfg)

	s := OpenScope().Add("user", "u1")
	defer s.Close()
	Info("m")

	assert.Contains(t, buf.String(), `"user":"u1"`)
}

func TestScopeDoubleCloseAndLateAdd(t *testing.T) {
	t.Cleanup(Reset)

	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))

	s := OpenScope().Add("k", "v")
	s.Close()
	s.Close()
	s.Add("late", "x")
	Info("after")

	out := buf.String()
	assert.NotContains(t, out, "k=v")
	assert.NotContains(t, out, "late=x")
}

func TestResetClosesScopes(t *testing.T) {
	var buf syncBuffer
	Configure(bufferConfig(core.InfoLevel, &buf))
	OpenScope().Add("stale", "1")
	Reset()

	var after syncBuffer
	Configure(bufferConfig(core.InfoLevel, &after))
	Info("fresh")
	Reset()

	assert.NotContains(t, after.String(), "stale=1")
}
