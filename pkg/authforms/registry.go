package authforms

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/goliatone/go-formbind/pkg/uischema"
)

//go:embed uischema/*.yaml
var embeddedPresentation embed.FS

// ErrFormNotFound is returned when a registry has no form under a name.
var ErrFormNotFound = errors.New("authforms: form not found")

// PresentationFS exposes the bundled presentation documents.
func PresentationFS() fs.FS {
	sub, err := fs.Sub(embeddedPresentation, "uischema")
	if err != nil {
		panic(err)
	}
	return sub
}

// Definition pairs a schema with its presentation.
type Definition struct {
	Name         string
	Schema       *schema.Schema
	Presentation uischema.Form
}

// Mode returns the validation mode requested by the presentation.
func (d Definition) Mode() form.Mode {
	mode, _ := form.ParseMode(d.Presentation.Mode)
	return mode
}

// NewForm opens a fresh form for the definition. The presentation mode is
// applied before options so callers can override it.
func (d Definition) NewForm(options ...form.Option) *form.Form {
	opts := append([]form.Option{form.WithMode(d.Mode())}, options...)
	return form.New(d.Schema, opts...)
}

// Registry stores form definitions by name.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds a definition. Duplicate names return an error.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return errors.New("authforms: definition name is required")
	}
	if def.Schema == nil {
		return fmt.Errorf("authforms: definition %q has no schema", def.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("authforms: form %q already registered", def.Name)
	}
	r.defs[def.Name] = def
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Get retrieves a definition by name.
func (r *Registry) Get(name string) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrFormNotFound, name)
	}
	return def, nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default builds a registry with the sign-in and sign-up forms. Presentation
// comes from fsys, or from the bundled documents when fsys is nil.
func Default(fsys fs.FS) (*Registry, error) {
	if fsys == nil {
		fsys = PresentationFS()
	}
	store, err := uischema.LoadFS(fsys)
	if err != nil {
		return nil, fmt.Errorf("authforms: load presentation: %w", err)
	}

	reg := NewRegistry()
	for _, def := range []Definition{
		{Name: SignIn, Schema: SignInSchema()},
		{Name: SignUp, Schema: SignUpSchema()},
	} {
		presentation, ok := store.Form(def.Name)
		if !ok {
			presentation = uischema.Form{ID: def.Name, Title: def.Name, Method: "POST", Action: "/" + def.Name}
		}
		def.Presentation = presentation
		if err := reg.Register(def); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
