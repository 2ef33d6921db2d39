package formatter

import (
	"bytes"
	"path/filepath"
	"strconv"

	"github.com/interlaced/corelog/core"
)

// TextFormatter formats log entries as human-readable text:
//
//	PREFIX [2006-01-02 15:04:05] [LEVEL] message k=v (file.go:42)
//
// Absent segments (empty prefix, StampNone, no call site, no fields)
// are omitted cleanly rather than left as empty placeholders.
type TextFormatter struct {
	Style  TimestampStyle
	Prefix string
}

// NewTextFormatter creates a new text formatter with the given
// timestamp style and prefix. An empty prefix omits the segment.
func NewTextFormatter(style TimestampStyle, prefix string) *TextFormatter {
	return &TextFormatter{Style: style, Prefix: prefix}
}

// pre-formatted level strings to avoid multiple WriteString calls
var levelBrackets = [...]string{
	core.TraceLevel:   "[TRACE] ",
	core.DebugLevel:   "[DEBUG] ",
	core.InfoLevel:    "[INFO] ",
	core.WarningLevel: "[WARNING] ",
	core.ErrorLevel:   "[ERROR] ",
	core.FatalLevel:   "[FATAL] ",
}

// Format formats an entry as a single text line
func (f *TextFormatter) Format(entry *core.Entry) string {
	buf := getBuffer()
	defer putBuffer(buf)

	if f.Prefix != "" {
		buf.WriteString(f.Prefix)
		buf.WriteByte(' ')
	}

	switch f.Style {
	case StampLocal:
		buf.WriteByte('[')
		buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), localLayout))
		buf.WriteString("] ")
	case StampISO8601:
		buf.WriteByte('[')
		buf.Write(entry.Time.UTC().AppendFormat(buf.AvailableBuffer(), isoLayout))
		buf.WriteString("] ")
	}

	if int(entry.Level) >= 0 && int(entry.Level) < len(levelBrackets) {
		buf.WriteString(levelBrackets[entry.Level])
	} else {
		buf.WriteString("[UNKNOWN] ")
	}

	buf.WriteString(entry.Message)

	for _, field := range entry.Fields {
		buf.WriteByte(' ')
		buf.WriteString(field.Key)
		buf.WriteByte('=')
		buf.WriteString(field.StringValue())
	}

	if entry.File != "" {
		writeCallSite(buf, entry.File, entry.Line)
	}

	return buf.String()
}

// writeCallSite appends " (file.go:42)" with the path reduced to its basename.
func writeCallSite(buf *bytes.Buffer, file string, line int) {
	buf.WriteString(" (")
	buf.WriteString(filepath.Base(file))
	buf.WriteByte(':')
	buf.WriteString(strconv.Itoa(line))
	buf.WriteByte(')')
}
