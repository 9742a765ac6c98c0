package render

import (
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"
	"sync"
)

// ErrRendererNotFound is returned when no renderer is registered under a name.
var ErrRendererNotFound = errors.New("render: renderer not found")

// Registry stores renderers by name and remembers registration order for
// content negotiation.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

// Register adds renderer under its Name. Duplicate names are rejected.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.byName[name] = renderer
	r.order = append(r.order, name)
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered under name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	renderer, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	names := append([]string(nil), r.order...)
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Negotiate picks a renderer for an Accept header. Media ranges are tried in
// header order, ignoring quality values; within a range the earliest
// registered renderer wins. Wildcards never match, so callers keep their
// default when the client accepts anything.
func (r *Registry) Negotiate(accept string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, part := range strings.Split(accept, ",") {
		want, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil || strings.HasSuffix(want, "/*") || want == "*" {
			continue
		}
		for _, name := range r.order {
			renderer := r.byName[name]
			have, _, err := mime.ParseMediaType(renderer.ContentType())
			if err == nil && have == want {
				return renderer, true
			}
		}
	}
	return nil, false
}
