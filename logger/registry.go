package logger

import "sync"

// categoryRegistry is the process-wide mapping from category name to
// its configuration snapshot. Values are immutable *Config pointers, so
// a reader holding the lock long enough to load the pointer always
// observes a fully constructed configuration.
type categoryRegistry struct {
	mu      sync.RWMutex
	configs map[string]*Config
}

var categories = &categoryRegistry{configs: make(map[string]*Config)}

// set installs cfg for name and returns the replaced snapshot, if any.
func (r *categoryRegistry) set(name string, cfg *Config) *Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	old := r.configs[name]
	r.configs[name] = cfg
	return old
}

// get returns the snapshot bound to name.
func (r *categoryRegistry) get(name string) (*Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[name]
	return cfg, ok
}

// resolve returns the snapshot for name, falling back to the global
// default when the category has no configuration of its own.
func (r *categoryRegistry) resolve(name string) *Config {
	if cfg, ok := r.get(name); ok {
		return cfg
	}
	return currentConfig()
}

// clear empties the registry and returns the removed snapshots so the
// caller can close them.
func (r *categoryRegistry) clear() []*Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := make([]*Config, 0, len(r.configs))
	for _, cfg := range r.configs {
		removed = append(removed, cfg)
	}
	r.configs = make(map[string]*Config)
	return removed
}

// ConfigureCategory binds cfg to the named category. Handles obtained
// from Get before this call pick up the new configuration on their next
// log call. A previously bound snapshot is closed; its async sinks
// drain first.
func ConfigureCategory(name string, cfg *Config) {
	if old := categories.set(name, cfg); old != nil {
		_ = old.Close()
	}
}

// HasCategory reports whether the named category has its own
// configuration.
func HasCategory(name string) bool {
	_, ok := categories.get(name)
	return ok
}
