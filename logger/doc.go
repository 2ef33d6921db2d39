// Package logger is the public front end of corelog. Most users only
// need to import this package.
//
// A Config is an immutable snapshot of minimum level, formatter, and an
// ordered sink list, assembled via the Builder. Configs are installed
// either as the process-wide default (Configure) or bound to a named
// category (ConfigureCategory). They are never mutated in place: every
// global setter builds a new snapshot and swaps it atomically, so a
// concurrent reader always sees a fully constructed configuration.
//
//	cfg := logger.NewBuilder().
//	    SetLevel(logger.DebugLevel).
//	    AddStreamSink(os.Stdout).
//	    AddFileSink("app.log", 10<<20, 3).
//	    Build()
//	logger.Configure(cfg)
//
// Leveled calls accept an optional variadic tail interpreted one of two
// ways. A message containing "{}" placeholders is interpolated
// positionally:
//
//	logger.Info("user {} logged in from {}", name, addr)
//
// Otherwise the tail is read as alternating key/value pairs rendered as
// key=value tokens after the message:
//
//	logger.Info("user login", "user_id", 12345, "ip", addr)
//
// The two styles never combine in a single call. Mismatched placeholder
// and argument counts are tolerated: unmatched placeholders stay
// literal and surplus arguments are ignored.
//
// Get returns a lightweight handle bound to a category name. Handles
// resolve their configuration through the registry on every call, so
// reconfiguring a category takes effect for handles that already exist:
//
//	svc := logger.Get("svc")
//	svc.Error("backend unreachable")
//
// An ambient Scope attaches fields to every entry dispatched while it
// is open, whatever the call site:
//
//	s := logger.OpenScope().Add("request_id", id)
//	defer s.Close()
//
// Logging never panics and never terminates the process; even Fatal
// only records an entry at the highest severity. Sink failures are
// absorbed by the sinks themselves.
package logger
