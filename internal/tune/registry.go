// Package tune holds the engine's named integer parameters. Every parameter
// is exposed as a UCI spin option; the search takes a snapshot of the values
// when it starts, so changes only apply between searches.
package tune

import (
	"sort"
	"sync"
)

// Param is one tunable value with its bounds.
type Param struct {
	Name    string
	Default int
	Min     int
	Max     int
	Value   int
}

// Registry is a read-mostly store of parameters. Writes happen only between
// searches, from the UCI thread.
type Registry struct {
	mu     sync.RWMutex
	params map[string]*Param
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{params: make(map[string]*Param)}
}

// Define registers a parameter. Redefining a name overwrites it.
func (r *Registry) Define(name string, def, min, max int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.params[name]; !ok {
		r.order = append(r.order, name)
	}
	r.params[name] = &Param{Name: name, Default: def, Min: min, Max: max, Value: def}
}

// Set updates a parameter, clamping to its [Min, Max] range. It reports
// whether the name was known.
func (r *Registry) Set(name string, value int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.params[name]
	if !ok {
		return false
	}
	if value < p.Min {
		value = p.Min
	}
	if value > p.Max {
		value = p.Max
	}
	p.Value = value
	return true
}

// Get returns the current value, or the fallback if the name is unknown.
func (r *Registry) Get(name string, fallback int) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.params[name]; ok {
		return p.Value
	}
	return fallback
}

// List returns copies of all parameters in definition order.
func (r *Registry) List() []Param {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Param, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.params[name])
	}
	return out
}

// Names returns the defined names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.params))
	for n := range r.params {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
