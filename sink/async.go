package sink

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/interlaced/corelog/core"
)

// AsyncConfig holds configuration for an AsyncSink.
type AsyncConfig struct {
	// Capacity is the bounded queue size (default 1000).
	Capacity int
	// Policy selects the behavior when the queue is full.
	Policy DropPolicy
	// BlockTimeout is the maximum wait for the Block policy
	// (default 100ms).
	BlockTimeout time.Duration
}

func applyAsyncDefaults(cfg *AsyncConfig) {
	if cfg.Capacity <= 0 {
		cfg.Capacity = 1000
	}
	if cfg.BlockTimeout <= 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
}

// queueItem is a formatted line in flight to the worker. A non-nil
// flush channel marks a barrier: the worker closes it once everything
// enqueued before it has been handed to the inner sink.
type queueItem struct {
	level core.Level
	line  string
	flush chan struct{}
}

// AsyncSink decorates an inner sink with a bounded queue and a single
// background worker, decoupling callers from the inner sink's I/O
// latency. Lines that are not dropped reach the inner sink in
// submission order.
type AsyncSink struct {
	inner        Sink
	queue        chan queueItem
	closed       chan struct{}
	closeOnce    sync.Once
	closeErr     error
	wg           sync.WaitGroup
	policy       DropPolicy
	blockTimeout time.Duration
	dropped      atomic.Uint64
	processed    atomic.Uint64
}

// NewAsyncSink creates an async decorator around inner and starts its
// worker goroutine. Ownership of inner transfers to the returned sink;
// it is closed on Close.
func NewAsyncSink(inner Sink, cfg AsyncConfig) *AsyncSink {
	applyAsyncDefaults(&cfg)

	s := &AsyncSink{
		inner:        inner,
		queue:        make(chan queueItem, cfg.Capacity),
		closed:       make(chan struct{}),
		policy:       cfg.Policy,
		blockTimeout: cfg.BlockTimeout,
	}

	s.wg.Add(1)
	go s.process()

	return s
}

// Write enqueues a formatted line for the worker. When the queue is
// full the configured DropPolicy decides the outcome; overflow is never
// an error to the caller, only visible through Dropped. After Close,
// Write is a no-op.
func (s *AsyncSink) Write(level core.Level, line string) error {
	select {
	case <-s.closed:
		return nil
	default:
	}

	item := queueItem{level: level, line: line}

	switch s.policy {
	case Block:
		select {
		case s.queue <- item:
			return nil
		default:
		}
		timer := time.NewTimer(s.blockTimeout)
		defer timer.Stop()
		select {
		case s.queue <- item:
			return nil
		case <-timer.C:
			s.dropped.Add(1)
			return nil
		case <-s.closed:
			return nil
		}

	case DropOldest:
		select {
		case s.queue <- item:
			return nil
		default:
		}
		// Queue full: evict the oldest line to make room. Flush
		// markers at the head are held aside and requeued, so a
		// waiting Flush still observes every line ahead of it.
		var markers []queueItem
	evict:
		for {
			select {
			case old := <-s.queue:
				if old.flush != nil {
					markers = append(markers, old)
					continue
				}
				s.dropped.Add(1)
				break evict
			default:
				// Worker drained the queue meanwhile.
				break evict
			}
		}
		for _, m := range markers {
			select {
			case s.queue <- m:
			default:
				// No room left; release the waiter instead of
				// stranding it.
				close(m.flush)
			}
		}
		select {
		case s.queue <- item:
		default:
			// Still full, drop the incoming line.
			s.dropped.Add(1)
		}
		return nil

	default: // DropNewest
		select {
		case s.queue <- item:
		default:
			s.dropped.Add(1)
		}
		return nil
	}
}

// process is the single worker goroutine. It preserves FIFO order and
// is the only goroutine that ever touches the inner sink.
func (s *AsyncSink) process() {
	defer s.wg.Done()

	for {
		select {
		case item := <-s.queue:
			s.consume(item)
		case <-s.closed:
			// Drain whatever is still queued, then stop.
			for {
				select {
				case item := <-s.queue:
					s.consume(item)
				default:
					return
				}
			}
		}
	}
}

func (s *AsyncSink) consume(item queueItem) {
	if item.flush != nil {
		close(item.flush)
		return
	}
	if err := s.inner.Write(item.level, item.line); err == nil {
		s.processed.Add(1)
	}
}

// Flush blocks until every line queued before the call has been handed
// to the inner sink. Returns immediately after Close.
func (s *AsyncSink) Flush() error {
	select {
	case <-s.closed:
		return nil
	default:
	}

	done := make(chan struct{})
	select {
	case s.queue <- queueItem{flush: done}:
		select {
		case <-done:
		case <-s.closed:
		}
	case <-s.closed:
	}
	return nil
}

// Close signals the worker, drains the remaining queued lines, joins
// the worker, and closes the inner sink. It is safe to call multiple
// times; subsequent calls return the first call's result.
func (s *AsyncSink) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.wg.Wait()
		s.closeErr = s.inner.Close()
	})
	return s.closeErr
}

// QueueSize returns the number of lines currently queued.
func (s *AsyncSink) QueueSize() int {
	return len(s.queue)
}

// Dropped returns the cumulative count of lines discarded by the drop
// policy.
func (s *AsyncSink) Dropped() uint64 {
	return s.dropped.Load()
}

// Processed returns the cumulative count of lines the inner sink has
// accepted.
func (s *AsyncSink) Processed() uint64 {
	return s.processed.Load()
}
