// Package formbind exposes the sign-in and sign-up forms through a single
// entry point. See pkg/orchestrator for the full pipeline.
package formbind

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formbind/pkg/orchestrator"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/renderers/vanilla"
)

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the module root.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the named form with the default renderer.
func GenerateHTML(ctx context.Context, formName string, options ...orchestrator.Option) ([]byte, error) {
	resp, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{Form: formName})
	if err != nil {
		return nil, err
	}
	return resp.Output, nil
}

// EmbeddedTemplates exposes the built-in HTML templates.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the bundled stylesheet.
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
