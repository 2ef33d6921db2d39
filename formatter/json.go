package formatter

import (
	"bytes"
	"path/filepath"
	"strconv"
	"time"

	"github.com/interlaced/corelog/core"
)

// JSONFormatter formats log entries as single-line JSON objects with
// "level" and "message" keys, an optional "timestamp", an optional
// "file"/"line" pair, and every structured field as a top-level key.
type JSONFormatter struct {
	Style TimestampStyle
	// EscapeSolidus emits '/' as `\/`, for consumers that require the
	// conservative escaping some JSON tooling expects.
	EscapeSolidus bool
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(style TimestampStyle) *JSONFormatter {
	return &JSONFormatter{Style: style}
}

// Format formats an entry as a single JSON line
func (f *JSONFormatter) Format(entry *core.Entry) string {
	buf := getBuffer()
	defer putBuffer(buf)

	buf.WriteString(`{"level":"`)
	buf.WriteString(entry.Level.String())
	buf.WriteByte('"')

	buf.WriteString(`,"message":"`)
	f.appendString(buf, entry.Message)
	buf.WriteByte('"')

	switch f.Style {
	case StampLocal:
		buf.WriteString(`,"timestamp":"`)
		buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), localLayout))
		buf.WriteByte('"')
	case StampISO8601:
		buf.WriteString(`,"timestamp":"`)
		buf.Write(entry.Time.UTC().AppendFormat(buf.AvailableBuffer(), isoLayout))
		buf.WriteByte('"')
	}

	if entry.File != "" {
		buf.WriteString(`,"file":"`)
		f.appendString(buf, filepath.Base(entry.File))
		buf.WriteString(`","line":`)
		buf.WriteString(strconv.Itoa(entry.Line))
	}

	for _, field := range entry.Fields {
		buf.WriteString(`,"`)
		f.appendString(buf, field.Key)
		buf.WriteString(`":`)
		f.appendFieldValue(buf, field)
	}

	buf.WriteByte('}')
	return buf.String()
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// appendString writes a JSON-escaped string (without surrounding quotes) to the buffer
func (f *JSONFormatter) appendString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' && !(c == '/' && f.EscapeSolidus) {
			continue
		}
		// Flush unescaped prefix
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '/':
			buf.WriteString(`\/`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	// Flush remaining
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

// appendFieldValue writes a JSON-encoded field value to the buffer
func (f *JSONFormatter) appendFieldValue(buf *bytes.Buffer, field core.Field) {
	switch field.Type {
	case core.StringType, core.ErrorType:
		buf.WriteByte('"')
		f.appendString(buf, field.Str)
		buf.WriteByte('"')
	case core.IntType, core.Int64Type:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), field.Int64, 10))
	case core.Float64Type:
		buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), field.Float64, 'f', -1, 64))
	case core.BoolType:
		buf.Write(strconv.AppendBool(buf.AvailableBuffer(), field.Int64 == 1))
	case core.TimeType:
		buf.WriteByte('"')
		buf.Write(time.Unix(0, field.Int64).AppendFormat(buf.AvailableBuffer(), time.RFC3339Nano))
		buf.WriteByte('"')
	case core.DurationType:
		buf.WriteByte('"')
		buf.WriteString(time.Duration(field.Int64).String())
		buf.WriteByte('"')
	default:
		buf.WriteByte('"')
		f.appendString(buf, field.StringValue())
		buf.WriteByte('"')
	}
}
