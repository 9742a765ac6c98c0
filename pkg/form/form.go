package form

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formbind/pkg/schema"
)

// Form owns the state of one form instance and re-runs its schema whenever
// values change. A Form is not safe for concurrent use; each request or
// terminal session builds its own.
type Form struct {
	schema    *schema.Schema
	state     State
	submitter Submitter
	ids       IDGenerator
	mode      Mode
}

// New creates a form over s. Every declared field starts as the empty string,
// overridden by WithValues.
func New(s *schema.Schema, options ...Option) *Form {
	if s == nil {
		panic("form: schema is required")
	}
	cfg := config{ids: UUIDGenerator("fb")}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	defaults := s.Defaults()
	for _, path := range s.Paths() {
		if v, ok := schema.Lookup(cfg.values, path); ok {
			if str, isString := v.(string); isString {
				_ = schema.Assign(defaults, path, str)
			}
		}
	}

	return &Form{
		schema:    s,
		state:     newState(defaults),
		submitter: cfg.submitter,
		ids:       cfg.ids,
		mode:      cfg.mode,
	}
}

// Schema returns the form's schema.
func (f *Form) Schema() *schema.Schema { return f.schema }

// Mode reports the configured validation mode.
func (f *Form) Mode() Mode { return f.mode }

// Field opens the identity scope for a declared path. It panics when f is nil
// or path is not declared by the schema.
func (f *Form) Field(path string) FieldScope {
	if f == nil {
		panic("form: Field must be called within a Form")
	}
	f.mustDeclare(path)
	return FieldScope{form: f, path: path}
}

// Change records a new value for path and, depending on the mode, re-runs
// validation over the whole form.
func (f *Form) Change(path string, value any) {
	f.mustDeclare(path)
	if err := schema.Assign(f.state.values, path, value); err != nil {
		panic(fmt.Sprintf("form: change %q: %v", path, err))
	}
	if f.mode == ModeOnSubmit && f.state.submitCount == 0 {
		return
	}
	f.revalidate(context.Background())
}

// Blur marks path as touched.
func (f *Form) Blur(path string) {
	f.mustDeclare(path)
	f.state.touched[path] = struct{}{}
}

// Submit validates the whole form. An invalid result populates errors and
// nothing else happens. A valid result clears errors and hands the validated
// value to the submitter exactly once.
func (f *Form) Submit(ctx context.Context) schema.Result {
	if ctx == nil {
		ctx = context.Background()
	}
	f.state.submitCount++
	res := f.revalidate(ctx)
	if !res.Valid() {
		return res
	}
	if f.submitter != nil {
		f.submitter.Submit(ctx, schema.Clone(res.Value))
	}
	return res
}

// Trigger validates and publishes errors without submitting.
func (f *Form) Trigger(ctx context.Context) schema.Result {
	if ctx == nil {
		ctx = context.Background()
	}
	return f.revalidate(ctx)
}

// SetError publishes an external message for path, for example feedback
// from the submission backend. The next validation pass replaces it.
func (f *Form) SetError(path, message string) {
	f.mustDeclare(path)
	if message == "" {
		delete(f.state.errors, path)
		return
	}
	f.state.errors[path] = message
}

// Reset restores default values and clears errors, touched flags and the
// submit counter.
func (f *Form) Reset() {
	f.state = newState(f.state.defaults)
}

// Values returns a copy of the current values.
func (f *Form) Values() schema.Values { return schema.Clone(f.state.values) }

// Value returns the current value at path.
func (f *Form) Value(path string) any { return f.state.value(path) }

// Errors returns a copy of the published errors.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.state.errors))
	for k, v := range f.state.errors {
		out[k] = v
	}
	return out
}

// Error returns the published message for path.
func (f *Form) Error(path string) string { return f.state.errors[path] }

// Touched reports whether path has been blurred.
func (f *Form) Touched(path string) bool { return f.state.isTouched(path) }

// Dirty reports whether path differs from its default value.
func (f *Form) Dirty(path string) bool { return f.state.dirty(path) }

// SubmitCount returns how many times Submit has run.
func (f *Form) SubmitCount() int { return f.state.submitCount }

// Valid reports whether no errors are currently published.
func (f *Form) Valid() bool { return len(f.state.errors) == 0 }

func (f *Form) revalidate(ctx context.Context) schema.Result {
	res := f.schema.Validate(ctx, f.state.values)
	f.state.publish(res.Errors)
	return res
}

func (f *Form) mustDeclare(path string) {
	if !f.schema.Has(path) {
		panic(fmt.Sprintf("form: field %q is not declared by the schema", path))
	}
}
