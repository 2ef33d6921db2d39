package logger_test

import (
	"io"

	"github.com/interlaced/corelog/core"
	"github.com/interlaced/corelog/formatter"
	"github.com/interlaced/corelog/logger"
)

// Use the package-level default pipeline for quick, no-setup logging.
func Example() {
	logger.Info("Application started")
	logger.Info("User {} logged in from {}", "alice", "10.0.0.1")
	logger.Info("User login", "user_id", 123, "method", "password")
}

// Build a custom pipeline and install it as the process default.
func ExampleNewBuilder() {
	cfg := logger.NewBuilder().
		SetLevel(logger.DebugLevel).
		SetFormatter(formatter.NewJSONFormatter(formatter.StampISO8601)).
		AddStreamSink(io.Discard).
		WithCaller(true).
		Build()
	logger.Configure(cfg)

	logger.Debug("ready", "port", 8080)
	logger.Reset()
}

// Give a subsystem its own level and destination.
func ExampleConfigureCategory() {
	logger.ConfigureCategory("db", logger.NewBuilder().
		SetLevel(logger.ErrorLevel).
		AddStreamSink(io.Discard).
		Build())

	db := logger.Get("db")
	db.Info("suppressed by the category level")
	db.Error("query failed", "table", "users")
	logger.Reset()
}

// Attach typed fields instead of alternating key/value arguments.
func ExampleLogFields() {
	logger.LogFields(core.InfoLevel, "request handled",
		logger.String("path", "/api/users"),
		logger.Int("status", 200),
	)
}
