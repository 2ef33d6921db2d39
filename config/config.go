package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/interlaced/corelog/formatter"
	"github.com/interlaced/corelog/logger"
	"github.com/interlaced/corelog/sink"
)

// File mirrors the YAML document structure.
type File struct {
	Level     string        `yaml:"level"`
	Formatter FormatterSpec `yaml:"formatter"`
	Sinks     []SinkSpec    `yaml:"sinks"`
	Caller    bool          `yaml:"caller"`
}

// FormatterSpec selects and tunes the formatter.
type FormatterSpec struct {
	Type          string `yaml:"type"`
	Timestamp     string `yaml:"timestamp"`
	Prefix        string `yaml:"prefix"`
	EscapeSolidus bool   `yaml:"escape_solidus"`
}

// SinkSpec declares one output destination.
type SinkSpec struct {
	Type           string     `yaml:"type"`
	Path           string     `yaml:"path"`
	MaxSizeBytes   int64      `yaml:"max_size_bytes"`
	RotateInterval string     `yaml:"rotate_interval"`
	MaxBackups     int        `yaml:"max_backups"`
	Async          *AsyncSpec `yaml:"async"`
}

// AsyncSpec wraps a sink in a bounded queue.
type AsyncSpec struct {
	Capacity     int    `yaml:"capacity"`
	Policy       string `yaml:"policy"`
	BlockTimeout string `yaml:"block_timeout"`
}

// Load reads a YAML file and builds the pipeline it declares.
func Load(path string) (*logger.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a pipeline from YAML bytes.
func Parse(data []byte) (*logger.Config, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return f.Build()
}

// Build validates the declaration and assembles the pipeline.
func (f *File) Build() (*logger.Config, error) {
	b := logger.NewBuilder()

	if f.Level != "" {
		b.SetLevel(logger.ParseLevel(f.Level))
	}
	b.WithCaller(f.Caller)

	fm, err := f.Formatter.build()
	if err != nil {
		return nil, err
	}
	if fm != nil {
		b.SetFormatter(fm)
	}

	if len(f.Sinks) == 0 {
		b.AddSplitStreamSink(os.Stdout, os.Stderr)
	}
	for i, spec := range f.Sinks {
		s, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("sink %d: %w", i, err)
		}
		b.AddSink(s)
	}

	return b.Build(), nil
}

func (fs *FormatterSpec) build() (formatter.Formatter, error) {
	style, err := parseTimestamp(fs.Timestamp)
	if err != nil {
		return nil, err
	}

	switch fs.Type {
	case "", "text":
		return formatter.NewTextFormatter(style, fs.Prefix), nil
	case "json":
		jf := formatter.NewJSONFormatter(style)
		jf.EscapeSolidus = fs.EscapeSolidus
		return jf, nil
	default:
		return nil, fmt.Errorf("unknown formatter type %q", fs.Type)
	}
}

func parseTimestamp(s string) (formatter.TimestampStyle, error) {
	switch s {
	case "", "local":
		return formatter.StampLocal, nil
	case "none":
		return formatter.StampNone, nil
	case "iso8601":
		return formatter.StampISO8601, nil
	default:
		return formatter.StampNone, fmt.Errorf("unknown timestamp style %q", s)
	}
}

func (ss *SinkSpec) build() (sink.Sink, error) {
	var inner sink.Sink

	switch ss.Type {
	case "stdout":
		inner = sink.NewSplitStreamSink(os.Stdout, os.Stderr)
	case "stderr":
		inner = sink.NewStreamSink(os.Stderr)
	case "file":
		if ss.Path == "" {
			return nil, fmt.Errorf("file sink requires a path")
		}
		if ss.MaxSizeBytes != 0 && ss.RotateInterval != "" {
			return nil, fmt.Errorf("file sink %s: max_size_bytes and rotate_interval are mutually exclusive", ss.Path)
		}
		if ss.RotateInterval != "" {
			interval, err := time.ParseDuration(ss.RotateInterval)
			if err != nil {
				return nil, fmt.Errorf("file sink %s: rotate_interval: %w", ss.Path, err)
			}
			inner = sink.NewTimeRotatingFile(ss.Path, interval, ss.MaxBackups)
		} else {
			inner = sink.NewSizeRotatingFile(ss.Path, ss.MaxSizeBytes, ss.MaxBackups)
		}
	default:
		return nil, fmt.Errorf("unknown sink type %q", ss.Type)
	}

	if ss.Async != nil {
		acfg, err := ss.Async.build()
		if err != nil {
			return nil, err
		}
		inner = sink.NewAsyncSink(inner, acfg)
	}
	return inner, nil
}

func (as *AsyncSpec) build() (sink.AsyncConfig, error) {
	cfg := sink.AsyncConfig{Capacity: as.Capacity}

	switch as.Policy {
	case "", "drop_newest":
		cfg.Policy = sink.DropNewest
	case "drop_oldest":
		cfg.Policy = sink.DropOldest
	case "block":
		cfg.Policy = sink.Block
	default:
		return cfg, fmt.Errorf("unknown drop policy %q", as.Policy)
	}

	if as.BlockTimeout != "" {
		d, err := time.ParseDuration(as.BlockTimeout)
		if err != nil {
			return cfg, fmt.Errorf("block_timeout: %w", err)
		}
		cfg.BlockTimeout = d
	}
	return cfg, nil
}
