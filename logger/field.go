package logger

import (
	"time"

	"github.com/interlaced/corelog/core"
)

// Typed field constructors for LogFields and Scope.AddFields. Each maps
// straight onto a core.Field slot; none of them allocate.

// String attaches a string value.
func String(key, val string) core.Field {
	return core.Field{Key: key, Type: core.StringType, Str: val}
}

// Int attaches an int value.
func Int(key string, val int) core.Field {
	return core.Field{Key: key, Type: core.IntType, Int64: int64(val)}
}

// Int64 attaches an int64 value.
func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Type: core.Int64Type, Int64: val}
}

// Float64 attaches a float64 value.
func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Type: core.Float64Type, Float64: val}
}

// Bool attaches a bool value.
func Bool(key string, val bool) core.Field {
	f := core.Field{Key: key, Type: core.BoolType}
	if val {
		f.Int64 = 1
	}
	return f
}

// Time attaches a time value, stored as UnixNano.
func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
}

// Duration attaches a duration value.
func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
}

// Err attaches err under the key "error". A nil err yields an empty
// value rather than a panic.
func Err(err error) core.Field {
	f := core.Field{Key: "error", Type: core.ErrorType}
	if err != nil {
		f.Str = err.Error()
	}
	return f
}

// Any attaches an arbitrary value, rendered with fmt at format time.
func Any(key string, val any) core.Field {
	return core.Field{Key: key, Type: core.AnyType, Any: val}
}
