package logger

import (
	"fmt"
	"strings"
	"time"

	"github.com/interlaced/corelog/core"
)

// placeholder is the positional marker interpolated by template-style
// messages.
const placeholder = "{}"

// renderArgs interprets the variadic tail of a logging call. A message
// containing "{}" is interpolated positionally; otherwise the tail is
// read as alternating key/value pairs. The two styles never combine in
// one call.
func renderArgs(msg string, args []any) (string, []core.Field) {
	if len(args) == 0 {
		return msg, nil
	}
	if strings.Contains(msg, placeholder) {
		return interpolate(msg, args), nil
	}
	return msg, pairFields(args)
}

// interpolate replaces each "{}" with the string form of the next
// argument. Placeholders beyond the argument count stay literal and
// surplus arguments are ignored; a mismatch is documented leniency,
// never an error.
func interpolate(msg string, args []any) string {
	var b strings.Builder
	b.Grow(len(msg) + 16*len(args))

	next := 0
	for {
		i := strings.Index(msg, placeholder)
		if i < 0 || next >= len(args) {
			b.WriteString(msg)
			return b.String()
		}
		b.WriteString(msg[:i])
		b.WriteString(argString(args[next]))
		next++
		msg = msg[i+len(placeholder):]
	}
}

// pairFields converts alternating key/value arguments into fields,
// preserving order. A dangling key is paired with an empty value.
func pairFields(args []any) []core.Field {
	fields := make([]core.Field, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key := argString(args[i])
		if i+1 < len(args) {
			fields = append(fields, toField(key, args[i+1]))
		} else {
			fields = append(fields, core.Field{Key: key, Type: core.StringType})
		}
	}
	return fields
}

// toField builds a typed field from an arbitrary value.
func toField(key string, v any) core.Field {
	switch val := v.(type) {
	case string:
		return core.Field{Key: key, Type: core.StringType, Str: val}
	case int:
		return core.Field{Key: key, Type: core.IntType, Int64: int64(val)}
	case int64:
		return core.Field{Key: key, Type: core.Int64Type, Int64: val}
	case float64:
		return core.Field{Key: key, Type: core.Float64Type, Float64: val}
	case bool:
		b := int64(0)
		if val {
			b = 1
		}
		return core.Field{Key: key, Type: core.BoolType, Int64: b}
	case time.Time:
		return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
	case time.Duration:
		return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
	case error:
		return core.Field{Key: key, Type: core.ErrorType, Str: val.Error()}
	default:
		return core.Field{Key: key, Type: core.AnyType, Any: v}
	}
}

// argString renders a template or key argument as a string.
func argString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
