// Package tui runs a form as an interactive terminal session. Each field is
// prompted in presentation order, the form is submitted once it validates and
// the collected values are serialized as the render output.
package tui

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/goliatone/go-formbind/pkg/submit"
)

const defaultMaxAttempts = 3

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
	revealSecrets     bool
	strip             *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme,
		maxAttempts:  defaultMaxAttempts,
		strip:        bluemonday.StrictPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts every field, re-prompting fields that fail validation, and
// submits the form. The output holds the validated value with secrets masked.
func (r *Renderer) Render(ctx context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if f == nil {
		return nil, errors.New("tui: form is required")
	}

	view := render.BuildView(f, opts)
	if view.Title != "" {
		if err := r.info(ctx, view.Title); err != nil {
			return nil, err
		}
	}
	if view.Subtitle != "" {
		if err := r.info(ctx, view.Subtitle); err != nil {
			return nil, err
		}
	}

	for _, field := range view.Fields {
		if err := r.promptField(ctx, f, field); err != nil {
			return nil, err
		}
	}

	for attempt := 1; ; attempt++ {
		res := f.Submit(ctx)
		if res.Valid() {
			return r.serialize(f.Schema(), res.Value)
		}
		if err := r.reportErrors(ctx, view, res); err != nil {
			return nil, err
		}
		if attempt >= r.maxAttempts {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(res.Paths(), ", "))
		}

		retry, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Fix the fields above?", Default: true})
		if err != nil {
			return nil, err
		}
		if !retry {
			return nil, ErrAborted
		}
		for _, field := range view.Fields {
			if _, bad := res.Errors[field.Path]; !bad {
				continue
			}
			if err := r.promptField(ctx, f, field); err != nil {
				return nil, err
			}
		}
	}
}

// promptField asks for one value. While the form publishes an error for the
// field it is asked again, up to the attempt limit.
func (r *Renderer) promptField(ctx context.Context, f *form.Form, field render.FieldView) error {
	for attempt := 1; ; attempt++ {
		cfg := InputConfig{Message: field.Label, Help: r.help(field)}

		var (
			value string
			err   error
		)
		if field.Secret {
			value, err = r.driver.Password(ctx, cfg)
		} else {
			cfg.Default, _ = f.Value(field.Path).(string)
			value, err = r.driver.Input(ctx, cfg)
		}
		if err != nil {
			return err
		}

		f.Change(field.Path, value)
		f.Blur(field.Path)

		msg := f.Error(field.Path)
		if msg == "" || attempt >= r.maxAttempts {
			return nil
		}
		if err := r.fail(ctx, field.Label, msg); err != nil {
			return err
		}
	}
}

func (r *Renderer) reportErrors(ctx context.Context, view render.FormView, res schema.Result) error {
	for _, field := range view.Fields {
		msg, ok := res.Error(field.Path)
		if !ok {
			continue
		}
		if err := r.fail(ctx, field.Label, msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) help(field render.FieldView) string {
	parts := make([]string, 0, 2)
	if text := strings.TrimSpace(html.UnescapeString(r.strip.Sanitize(field.Description.Text))); text != "" {
		parts = append(parts, text)
	}
	if !field.Message.Error && field.Message.Body != "" {
		parts = append(parts, field.Message.Body)
	}
	return strings.Join(parts, " ")
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) fail(ctx context.Context, label, msg string) error {
	return r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, label, msg))
}

func (r *Renderer) serialize(s *schema.Schema, value schema.Values) ([]byte, error) {
	values := value
	if !r.revealSecrets {
		values = submit.Redact(s, value)
	}
	if r.submitTransformer != nil {
		transformed, err := r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: transform values: %w", err)
		}
		values = transformed
	}

	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flatten("", values, flattened)
	return flattened.Encode()
}

func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			flatten(joinPath(prefix, key), val, out)
		}
	case []any:
		for _, val := range v {
			out.Add(prefix+"[]", fmt.Sprint(val))
		}
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	writePretty(&b, "", values)
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			writePretty(b, joinPath(prefix, key), v[key])
		}
	case []any:
		for idx, val := range v {
			writePretty(b, fmt.Sprintf("%s[%d]", prefix, idx), val)
		}
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%v\n", prefix, v)
		}
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
