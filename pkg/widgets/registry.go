// Package widgets chooses the input control for each field.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/goliatone/go-formbind/pkg/uischema"
)

// Built-in input kinds.
const (
	InputText     = "text"
	InputPassword = "password"
	InputEmail    = "email"
)

// Matcher decides whether an input kind applies to a field.
type Matcher func(field schema.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry resolves input kinds from registered matchers. Higher priority
// wins; ties fall back to registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

var defaultRegistry = NewRegistry()

// Default returns the shared registry with only the built-in matchers.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a matcher under name. Empty names and nil matchers are
// ignored.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the input kind for field. A secret field always resolves to
// a password input so its value is never shown; otherwise an explicit
// presentation input wins, then the matchers, then InputText.
func (r *Registry) Resolve(field schema.Field, pres uischema.Field) string {
	if field.Secret {
		return InputPassword
	}
	if explicit := strings.TrimSpace(pres.Input); explicit != "" {
		return explicit
	}
	if r == nil {
		return InputText
	}

	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name
		}
	}
	return InputText
}

func (r *Registry) registerBuiltins() {
	r.Register(InputEmail, 50, func(field schema.Field) bool {
		return field.IsEmail()
	})
}
