package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/authforms"
	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/goliatone/go-formbind/pkg/submit"
)

const defaultRendererName = "vanilla"

// SubmitterFactory builds the submission collaborator for a definition.
type SubmitterFactory func(def authforms.Definition) form.Submitter

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithForms injects the form registry.
func WithForms(forms *authforms.Registry) Option {
	return func(o *Orchestrator) {
		o.forms = forms
	}
}

// WithPresentationFS loads presentation documents from fsys instead of the
// bundled ones. Ignored when WithForms is also supplied.
func WithPresentationFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.presentationFS = fsys
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector resolves request themes through selector. Requests that
// name no theme fall back to defaultTheme and defaultVariant.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		o.themes = selector
		o.defaultTheme = defaultTheme
		o.defaultVariant = defaultVariant
	}
}

// WithSchemaTransformer registers a Transformer that rewrites presentations
// before rendering.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

// WithSubmitterFactory sets the submission collaborator. The default logs
// submissions through the configured logger.
func WithSubmitterFactory(factory SubmitterFactory) Option {
	return func(o *Orchestrator) {
		o.submitters = factory
	}
}

// WithIDGenerator sets the item id generator for every form.
func WithIDGenerator(ids form.IDGenerator) Option {
	return func(o *Orchestrator) {
		o.ids = ids
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates a request from form name to rendered output. It
// applies defaults (bundled forms, vanilla renderer, logging submitter) while
// remaining open to dependency injection.
type Orchestrator struct {
	forms           *authforms.Registry
	presentationFS  fs.FS
	registry        *render.Registry
	defaultRenderer string
	themes          theme.ThemeSelector
	defaultTheme    string
	defaultVariant  string
	transformers    []Transformer
	submitters      SubmitterFactory
	ids             form.IDGenerator
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one pass through the pipeline.
type Request struct {
	// Form names the definition to open.
	Form string
	// Prefill seeds initial values. Prefilled fields are not dirty.
	Prefill schema.Values
	// Values are applied through Change, as if typed by the user. Paths the
	// schema does not declare are ignored.
	Values schema.Values
	// Patch is an RFC 6902 document applied after Values.
	Patch []byte
	// Submit runs the submission step after input is applied.
	Submit bool
	// Validate publishes errors without submitting. Ignored when Submit is set.
	Validate bool
	// SkipRender returns the form state without producing output.
	SkipRender bool
	// Renderer names the renderer to use; empty selects the default.
	Renderer string
	// ThemeName and ThemeVariant select a theme when a selector is configured.
	ThemeName    string
	ThemeVariant string
	// RenderOptions carries per-request render data. Name and Presentation
	// default to the definition.
	RenderOptions render.RenderOptions
}

// Response reports the outcome of Generate.
type Response struct {
	Definition  authforms.Definition
	Form        *form.Form
	Result      schema.Result
	Submitted   bool
	Changed     []string
	Output      []byte
	ContentType string
}

// Generate runs the pipeline for req.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Response, error) {
	if ctx == nil {
		return Response{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Response{}, err
	}
	if req.Form == "" {
		return Response{}, errors.New("orchestrator: form name is required")
	}

	def, err := o.forms.Get(req.Form)
	if err != nil {
		return Response{}, fmt.Errorf("orchestrator: %w", err)
	}

	f := def.NewForm(o.formOptions(def, req)...)
	resp := Response{Definition: def, Form: f}

	for _, path := range def.Schema.Paths() {
		if v, ok := schema.Lookup(req.Values, path); ok {
			f.Change(path, v)
		}
	}
	if len(req.Patch) > 0 {
		changed, err := f.ApplyPatch(req.Patch)
		if err != nil {
			return resp, fmt.Errorf("orchestrator: apply patch: %w", err)
		}
		resp.Changed = changed
	}

	switch {
	case req.Submit:
		resp.Result = f.Submit(ctx)
		resp.Submitted = resp.Result.Valid()
		o.logger.Debug("form submit",
			zap.String("form", def.Name),
			zap.Bool("valid", resp.Submitted),
			zap.Strings("invalid", resp.Result.Paths()),
		)
	case req.Validate:
		resp.Result = f.Trigger(ctx)
	}

	if req.SkipRender {
		return resp, nil
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return resp, err
	}
	opts, err := o.renderOptions(ctx, def, req)
	if err != nil {
		return resp, err
	}
	output, err := renderer.Render(ctx, f, opts)
	if err != nil {
		return resp, fmt.Errorf("orchestrator: render output: %w", err)
	}
	resp.Output = output
	resp.ContentType = renderer.ContentType()
	return resp, nil
}

// Err reports a failure to build the defaults. Generate returns the same
// error.
func (o *Orchestrator) Err() error {
	return o.initialiseErr
}

// Forms exposes the definition registry.
func (o *Orchestrator) Forms() *authforms.Registry {
	return o.forms
}

// Renderers exposes the renderer registry.
func (o *Orchestrator) Renderers() *render.Registry {
	return o.registry
}

func (o *Orchestrator) formOptions(def authforms.Definition, req Request) []form.Option {
	opts := []form.Option{form.WithValues(req.Prefill)}
	if o.ids != nil {
		opts = append(opts, form.WithIDGenerator(o.ids))
	}
	if o.submitters != nil {
		if s := o.submitters(def); s != nil {
			opts = append(opts, form.WithSubmitter(s))
		}
	}
	return opts
}

func (o *Orchestrator) renderOptions(ctx context.Context, def authforms.Definition, req Request) (render.RenderOptions, error) {
	opts := req.RenderOptions
	if opts.Name == "" {
		opts.Name = def.Name
	}
	if opts.Presentation.ID == "" {
		opts.Presentation = def.Presentation
	}
	for _, t := range o.transformers {
		if err := t.Transform(ctx, def.Name, &opts.Presentation); err != nil {
			return opts, fmt.Errorf("orchestrator: transform presentation: %w", err)
		}
	}
	if opts.Theme == nil && o.themes != nil {
		name, variant := req.ThemeName, req.ThemeVariant
		if name == "" {
			name = o.defaultTheme
		}
		if variant == "" {
			variant = o.defaultVariant
		}
		cfg, err := render.ThemeConfig(o.themes, name, variant)
		if err != nil {
			return opts, fmt.Errorf("orchestrator: select theme: %w", err)
		}
		opts.Theme = cfg
	}
	return opts, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.forms == nil {
		forms, err := authforms.Default(o.presentationFS)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default forms: %w", err)
			return
		}
		o.forms = forms
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.submitters == nil {
		logger := o.logger
		o.submitters = func(def authforms.Definition) form.Submitter {
			return submit.NewLogSubmitter(logger, def.Schema, def.Name)
		}
	}
}
