// internal/component/registry.go
//
// Component registry.
//
// Each concrete component lives under components/<name>.  The serve command
// registers the built components, then Mount attaches every component's
// Routes() under “/<name>”.  Registering the same name twice replaces the
// earlier entry.

package component

import (
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Component contract.
//
// Routes() should mount BOTH page and API endpoints relative to the
// component's prefix, e.g.:
//
//	r := chi.NewRouter()
//	r.Get("/", page)
//	r.Post("/field", field)
//	return r
type Component interface {
	Name() string
	Routes() chi.Router
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register adds c to the registry.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Mount attaches every registered component to r and returns their names.
func Mount(r chi.Router) []string {
	var names []string
	for _, c := range All() {
		r.Mount("/"+c.Name(), c.Routes())
		names = append(names, c.Name())
	}
	return names
}

// reset empties the registry; tests only.
func reset() {
	mu.Lock()
	registry = map[string]Component{}
	mu.Unlock()
}
