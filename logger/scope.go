package logger

import (
	"sync"
	"sync/atomic"

	"github.com/interlaced/corelog/core"
)

// Scope carries ambient fields that ride on every entry dispatched
// while the scope is open, regardless of which call site or category
// produced the entry. Scopes nest: fields from all open scopes are
// appended in opening order. Close when the surrounding operation ends.
//
//	s := logger.OpenScope().Add("request_id", id)
//	defer s.Close()
type Scope struct {
	fields []core.Field
	open   bool
}

var (
	scopeMu    sync.Mutex
	openScopes []*Scope

	// ambient is the flattened field list of all open scopes,
	// rebuilt on every scope mutation and read lock-free on every
	// dispatched entry.
	ambient atomic.Pointer[[]core.Field]
)

// OpenScope opens a new ambient scope with no fields.
func OpenScope() *Scope {
	s := &Scope{open: true}
	scopeMu.Lock()
	openScopes = append(openScopes, s)
	rebuildAmbientLocked()
	scopeMu.Unlock()
	return s
}

// Add appends one ambient key/value pair and returns the scope for
// chaining. Adding to a closed scope has no effect.
func (s *Scope) Add(key string, value any) *Scope {
	scopeMu.Lock()
	if s.open {
		s.fields = append(s.fields, toField(key, value))
		rebuildAmbientLocked()
	}
	scopeMu.Unlock()
	return s
}

// AddFields appends typed ambient fields.
func (s *Scope) AddFields(fields ...core.Field) *Scope {
	scopeMu.Lock()
	if s.open {
		s.fields = append(s.fields, fields...)
		rebuildAmbientLocked()
	}
	scopeMu.Unlock()
	return s
}

// Close removes the scope's fields from subsequent entries. Safe to
// call more than once.
func (s *Scope) Close() {
	scopeMu.Lock()
	if s.open {
		s.open = false
		for i, open := range openScopes {
			if open == s {
				openScopes = append(openScopes[:i], openScopes[i+1:]...)
				break
			}
		}
		rebuildAmbientLocked()
	}
	scopeMu.Unlock()
}

// rebuildAmbientLocked recomputes the flattened snapshot. scopeMu must
// be held.
func rebuildAmbientLocked() {
	if len(openScopes) == 0 {
		ambient.Store(nil)
		return
	}
	var flat []core.Field
	for _, s := range openScopes {
		flat = append(flat, s.fields...)
	}
	ambient.Store(&flat)
}

// ambientFields returns the current flattened snapshot, nil when no
// scope is open.
func ambientFields() []core.Field {
	if p := ambient.Load(); p != nil {
		return *p
	}
	return nil
}

// closeScopes force-closes every open scope. Used by Reset.
func closeScopes() {
	scopeMu.Lock()
	for _, s := range openScopes {
		s.open = false
	}
	openScopes = nil
	ambient.Store(nil)
	scopeMu.Unlock()
}
