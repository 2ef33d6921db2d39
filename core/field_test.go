package core

import (
	"errors"
	"testing"
	"time"
)

func TestFieldStringValue(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{"string", Field{Key: "k", Type: StringType, Str: "v"}, "v"},
		{"int", Field{Key: "k", Type: IntType, Int64: 42}, "42"},
		{"int64", Field{Key: "k", Type: Int64Type, Int64: -7}, "-7"},
		{"float", Field{Key: "k", Type: Float64Type, Float64: 3.14}, "3.14"},
		{"bool_true", Field{Key: "k", Type: BoolType, Int64: 1}, "true"},
		{"bool_false", Field{Key: "k", Type: BoolType, Int64: 0}, "false"},
		{"duration", Field{Key: "k", Type: DurationType, Int64: int64(time.Second)}, "1s"},
		{"error", Field{Key: "k", Type: ErrorType, Str: errors.New("boom").Error()}, "boom"},
		{"any", Field{Key: "k", Type: AnyType, Any: []int{1, 2}}, "[1 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.StringValue(); got != tt.want {
				t.Errorf("StringValue() = %q, want %q", got, tt.want)
			}
		})
	}

	tf := Field{Key: "k", Type: TimeType, Int64: now.UnixNano()}
	if got := tf.StringValue(); got != now.Format(time.RFC3339) {
		t.Errorf("time StringValue() = %q, want %q", got, now.Format(time.RFC3339))
	}
}
