// Package jsonview renders a form as its JSON view model for clients that
// draw their own markup.
package jsonview

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/render"
)

// Option configures the renderer.
type Option func(*Renderer)

// WithIndent pretty-prints the output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer emits render.FormView as JSON. Secret values never enter the view.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name returns "json".
func (r *Renderer) Name() string { return "json" }

// ContentType returns "application/json".
func (r *Renderer) ContentType() string { return "application/json" }

// Render marshals the view of f.
func (r *Renderer) Render(_ context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	if f == nil {
		return nil, errors.New("jsonview: form is required")
	}
	view := render.BuildView(f, opts)

	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(view, "", r.indent)
	} else {
		out, err = json.Marshal(view)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonview: encode view: %w", err)
	}
	return out, nil
}
