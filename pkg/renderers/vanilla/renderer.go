// Package vanilla renders forms as server-side HTML with pongo2 templates.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/render"
	rendertemplate "github.com/goliatone/go-formbind/pkg/render/template"
	"github.com/goliatone/go-formbind/pkg/render/template/pongo"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	policy           *bluemonday.Policy
	document         bool
	defaultStyles    bool
	stylesheets      []string
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// form.tmpl and page.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSanitizer replaces the policy applied to field descriptions.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithDocument wraps the form in a complete HTML page.
func WithDocument() Option {
	return func(cfg *config) {
		cfg.document = true
	}
}

// WithDefaultStyles inlines the bundled stylesheet into documents.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.defaultStyles = true
	}
}

// WithStylesheet links an external stylesheet from documents.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// Renderer produces HTML for a form.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	policy      *bluemonday.Policy
	document    bool
	inlineCSS   string
	stylesheets []string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.policy == nil {
		cfg.policy = bluemonday.UGCPolicy()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(pongo.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	r := &Renderer{
		templates:   renderer,
		policy:      cfg.policy,
		document:    cfg.document,
		stylesheets: cfg.stylesheets,
	}
	if cfg.defaultStyles {
		r.inlineCSS = defaultStylesheet()
	}
	return r, nil
}

// Name returns "vanilla".
func (r *Renderer) Name() string {
	return "vanilla"
}

// ContentType returns the HTML media type.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form markup, or a full page when configured with
// WithDocument. Descriptions pass through the sanitizer; every other string
// is escaped by the template engine.
func (r *Renderer) Render(_ context.Context, f *form.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if f == nil {
		return nil, fmt.Errorf("vanilla renderer: form is nil")
	}

	view := render.BuildView(f, options)
	for i := range view.Fields {
		view.Fields[i].Description.Text = r.policy.Sanitize(view.Fields[i].Description.Text)
	}

	body, err := r.templates.RenderTemplate("form", map[string]any{"form": view})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	if !r.document {
		return []byte(body), nil
	}

	page, err := r.templates.RenderTemplate("page", map[string]any{
		"title":        view.Title,
		"subtitle":     view.Subtitle,
		"theme":        view.Theme,
		"stylesheets":  r.stylesheets,
		"inlineStyles": r.inlineCSS,
		"body":         body,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(page), nil
}
