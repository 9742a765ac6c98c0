package form

import (
	"context"

	"github.com/goliatone/go-formbind/pkg/schema"
)

// Mode controls when errors are published while the user edits.
type Mode int

const (
	// ModeOnChange re-validates and publishes errors on every change.
	ModeOnChange Mode = iota
	// ModeOnSubmit publishes nothing until the first submit, then behaves
	// like ModeOnChange.
	ModeOnSubmit
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeOnSubmit:
		return "onSubmit"
	default:
		return "onChange"
	}
}

// ParseMode maps "onChange"/"onSubmit" to a Mode.
func ParseMode(value string) (Mode, bool) {
	switch value {
	case "onChange", "":
		return ModeOnChange, true
	case "onSubmit":
		return ModeOnSubmit, true
	default:
		return ModeOnChange, false
	}
}

// Submitter receives the validated value of a successful submit. The form
// never observes what the submitter does with it.
type Submitter interface {
	Submit(ctx context.Context, values schema.Values)
}

// SubmitFunc adapts a function to Submitter.
type SubmitFunc func(ctx context.Context, values schema.Values)

// Submit calls fn.
func (fn SubmitFunc) Submit(ctx context.Context, values schema.Values) { fn(ctx, values) }

// Option configures a Form.
type Option func(*config)

type config struct {
	submitter Submitter
	ids       IDGenerator
	values    schema.Values
	mode      Mode
}

// WithSubmitter sets the collaborator invoked on a valid submit.
func WithSubmitter(s Submitter) Option {
	return func(cfg *config) {
		cfg.submitter = s
	}
}

// WithIDGenerator overrides the item identifier source.
func WithIDGenerator(ids IDGenerator) Option {
	return func(cfg *config) {
		if ids != nil {
			cfg.ids = ids
		}
	}
}

// WithValues prefills declared string fields. Unknown paths and non-string
// values are ignored.
func WithValues(values schema.Values) Option {
	return func(cfg *config) {
		cfg.values = values
	}
}

// WithMode selects when errors are published.
func WithMode(mode Mode) Option {
	return func(cfg *config) {
		cfg.mode = mode
	}
}
