package core

import (
	"fmt"
	"strconv"
	"time"
)

// FieldType tags which slot of a Field carries the value.
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	AnyType
)

// Field is one key/value pair attached to an entry. The value lives in
// the slot selected by Type; scalar kinds avoid boxing into Any.
// Booleans pack into Int64 (0 or 1), times as UnixNano, durations as
// nanoseconds.
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Any     any
}

// StringValue renders the field's value for text output. Formatters
// that need type information (JSON) switch on Type themselves.
func (f Field) StringValue() string {
	switch f.Type {
	case StringType, ErrorType:
		return f.Str
	case IntType, Int64Type:
		return strconv.FormatInt(f.Int64, 10)
	case Float64Type:
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).Format(time.RFC3339)
	case DurationType:
		return time.Duration(f.Int64).String()
	case AnyType:
		return fmt.Sprintf("%v", f.Any)
	}
	return ""
}
