// Package render defines the renderer contract and the view model every
// renderer builds its output from.
package render

import (
	"context"

	"github.com/goliatone/go-formbind/pkg/form"
)

// Renderer turns a live form into a byte representation (HTML, terminal text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, f *form.Form, options RenderOptions) ([]byte, error)
}
