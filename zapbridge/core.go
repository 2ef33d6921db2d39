package zapbridge

import (
	"sort"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/interlaced/corelog/core"
	"github.com/interlaced/corelog/logger"
)

// Core adapts a *logger.Config to zapcore.Core.
type Core struct {
	cfg    *logger.Config
	fields []core.Field
}

// NewCore wraps a built pipeline for use with zap.New.
func NewCore(cfg *logger.Config) *Core {
	return &Core{cfg: cfg}
}

// Enabled reports whether the pipeline accepts the level.
func (c *Core) Enabled(level zapcore.Level) bool {
	return c.cfg.Enabled(zapLevelToCore(level))
}

// With returns a child core carrying the accumulated fields.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	if len(fields) == 0 {
		return c
	}
	child := &Core{
		cfg:    c.cfg,
		fields: make([]core.Field, len(c.fields), len(c.fields)+len(fields)),
	}
	copy(child.fields, c.fields)
	child.fields = append(child.fields, convertFields(fields)...)
	return child
}

// Check adds this core to the checked entry when the level is enabled.
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts the record and pushes it through the pipeline.
func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	entry := core.GetEntry()
	entry.Time = ent.Time
	if entry.Time.IsZero() {
		entry.Time = time.Now()
	}
	entry.Level = zapLevelToCore(ent.Level)
	entry.Message = ent.Message
	if ent.Caller.Defined {
		entry.File = ent.Caller.File
		entry.Line = ent.Caller.Line
	}
	entry.Fields = append(entry.Fields, c.fields...)
	entry.Fields = append(entry.Fields, convertFields(fields)...)

	c.cfg.Dispatch(entry)
	core.PutEntry(entry)
	return nil
}

// Sync flushes flushable sinks.
func (c *Core) Sync() error {
	return c.cfg.Flush()
}

func zapLevelToCore(level zapcore.Level) core.Level {
	switch {
	case level >= zapcore.DPanicLevel:
		return core.FatalLevel
	case level >= zapcore.ErrorLevel:
		return core.ErrorLevel
	case level >= zapcore.WarnLevel:
		return core.WarningLevel
	case level >= zapcore.InfoLevel:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// convertFields flattens zap fields through a map encoder. Keys are
// sorted so field order in the output is stable.
func convertFields(fields []zapcore.Field) []core.Field {
	if len(fields) == 0 {
		return nil
	}
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]core.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, convertValue(k, enc.Fields[k]))
	}
	return out
}

func convertValue(key string, v any) core.Field {
	switch val := v.(type) {
	case string:
		return core.Field{Key: key, Type: core.StringType, Str: val}
	case int:
		return core.Field{Key: key, Type: core.IntType, Int64: int64(val)}
	case int8:
		return core.Field{Key: key, Type: core.Int64Type, Int64: int64(val)}
	case int16:
		return core.Field{Key: key, Type: core.Int64Type, Int64: int64(val)}
	case int32:
		return core.Field{Key: key, Type: core.Int64Type, Int64: int64(val)}
	case int64:
		return core.Field{Key: key, Type: core.Int64Type, Int64: val}
	case uint:
		return core.Field{Key: key, Type: core.Int64Type, Int64: int64(val)}
	case uint32:
		return core.Field{Key: key, Type: core.Int64Type, Int64: int64(val)}
	case uint64:
		return core.Field{Key: key, Type: core.Int64Type, Int64: int64(val)}
	case float32:
		return core.Field{Key: key, Type: core.Float64Type, Float64: float64(val)}
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
		return core.Field{Key: key, Type: core.AnyType, Any: val}
	}
}
