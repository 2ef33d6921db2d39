package sink

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/interlaced/corelog/core"
)

// rotationTrigger selects which condition a RotatingFileWriter checks
// before each write. Exactly one trigger is active per writer.
type rotationTrigger uint8

const (
	triggerSize rotationTrigger = iota
	triggerTime
)

// RotatingFileWriter appends formatted lines to a live file at its base
// path and rotates it through a numbered backup chain: base.1 is the
// most recent backup, base.N the oldest retained; anything beyond N is
// removed by the rename chain.
//
// Construction never fails. If the file cannot be opened, or a rotation
// rename or reopen fails, the writer degrades permanently for this
// instance and emits subsequent lines to a fallback writer (os.Stderr
// by default) instead of failing its caller.
//
// The file handle and byte counter are only ever touched under mu;
// when the writer sits behind an AsyncSink the single worker goroutine
// is the only caller and the lock is uncontended.
type RotatingFileWriter struct {
	mu         sync.Mutex
	path       string
	trigger    rotationTrigger
	maxSize    int64
	interval   time.Duration
	backups    int
	file       *os.File
	size       int64
	lastRotate time.Time
	degraded   bool
	fallback   io.Writer
}

// NewSizeRotatingFile creates a writer that rotates before any write
// that would push the live file past maxBytes. backups is the number of
// rotated files retained.
func NewSizeRotatingFile(path string, maxBytes int64, backups int) *RotatingFileWriter {
	w := &RotatingFileWriter{
		path:     path,
		trigger:  triggerSize,
		maxSize:  maxBytes,
		backups:  backups,
		fallback: os.Stderr,
	}
	w.open()
	return w
}

// NewTimeRotatingFile creates a writer that rotates before the first
// write after interval has elapsed since open or the last rotation. A
// zero interval rotates before every write.
func NewTimeRotatingFile(path string, interval time.Duration, backups int) *RotatingFileWriter {
	w := &RotatingFileWriter{
		path:     path,
		trigger:  triggerTime,
		interval: interval,
		backups:  backups,
		fallback: os.Stderr,
	}
	w.open()
	return w
}

// SetFallback replaces the writer used in the degraded state. Intended
// for embedding the writer where stderr is not the right escape hatch.
func (w *RotatingFileWriter) SetFallback(fb io.Writer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fallback = fb
}

// Degraded reports whether the writer has fallen back to its error
// stream. Degraded is terminal for the instance.
func (w *RotatingFileWriter) Degraded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.degraded
}

// open opens or creates the live file and records its current size.
// On failure the writer enters the degraded state.
func (w *RotatingFileWriter) open() {
	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		w.degrade(err)
		return
	}

	var size int64
	if info, err := file.Stat(); err == nil {
		size = info.Size()
	}

	w.file = file
	w.size = size
	w.lastRotate = time.Now()
}

// degrade marks the writer broken and reports the cause once on the
// fallback stream. It must not log through the pipeline: the pipeline
// may be the thing that is broken.
func (w *RotatingFileWriter) degrade(err error) {
	w.degraded = true
	if w.file != nil {
		w.file.Close()
		w.file = nil
	}
	fmt.Fprintf(w.fallback, "log file %s unavailable, falling back: %v\n", w.path, err)
}

// Write appends line to the live file, rotating first when the active
// trigger fires. In the degraded state the line goes to the fallback
// writer instead. The level is ignored; the file takes every line the
// logger dispatched to it.
func (w *RotatingFileWriter) Write(_ core.Level, line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.degraded || w.file == nil {
		// Degraded, or a stray write after Close.
		fmt.Fprintln(w.fallback, line)
		return nil
	}

	if w.shouldRotate(int64(len(line)) + 1) {
		w.rotate()
		if w.degraded {
			fmt.Fprintln(w.fallback, line)
			return nil
		}
	}

	n, err := w.file.WriteString(line + "\n")
	w.size += int64(n)
	if err != nil {
		// Keep the line visible even when the disk write failed.
		fmt.Fprintln(w.fallback, line)
	}
	return err
}

// shouldRotate evaluates the active trigger for a pending write of
// next bytes (line plus terminator).
func (w *RotatingFileWriter) shouldRotate(next int64) bool {
	switch w.trigger {
	case triggerTime:
		return time.Since(w.lastRotate) >= w.interval
	default:
		// Never rotate an empty live file; a single oversized line
		// still has to land somewhere.
		return w.size > 0 && w.size+next > w.maxSize
	}
}

// rotate closes the live file, shifts the backup chain
// (base.N-1 -> base.N, ..., base -> base.1) and reopens a fresh live
// file. Any step failing degrades the writer.
func (w *RotatingFileWriter) rotate() {
	if err := w.file.Close(); err != nil {
		w.degrade(err)
		return
	}
	w.file = nil

	if w.backups <= 0 {
		// No retention: the old live file is simply discarded.
		if err := os.Remove(w.path); err != nil && !os.IsNotExist(err) {
			w.degrade(err)
			return
		}
	} else {
		for i := w.backups - 1; i >= 1; i-- {
			old := fmt.Sprintf("%s.%d", w.path, i)
			if _, err := os.Stat(old); err != nil {
				continue
			}
			// Renaming over base.N drops the oldest backup.
			if err := os.Rename(old, fmt.Sprintf("%s.%d", w.path, i+1)); err != nil {
				w.degrade(err)
				return
			}
		}
		if err := os.Rename(w.path, w.path+".1"); err != nil {
			w.degrade(err)
			return
		}
	}

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		w.degrade(err)
		return
	}

	w.file = file
	w.size = 0
	w.lastRotate = time.Now()
}

// Flush syncs the live file to disk.
func (w *RotatingFileWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	return w.file.Sync()
}

// Close closes the live file. A degraded writer has nothing to close.
func (w *RotatingFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
