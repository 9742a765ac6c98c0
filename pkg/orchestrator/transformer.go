package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formbind/pkg/uischema"
)

// Transformer rewrites a presentation before rendering. Implementations can
// relabel fields or change page chrome per deployment.
type Transformer interface {
	Transform(ctx context.Context, name string, presentation *uischema.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, name string, presentation *uischema.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, name string, presentation *uischema.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, name, presentation)
}

// JSONPresetTransformer applies declarative overrides loaded from JSON. The
// document is keyed by form name:
//
//	{
//	  "sign-in": {
//	    "title": "Welcome back",
//	    "submitLabel": "Continue",
//	    "metadata": {"tenant": "acme"},
//	    "fields": {"email": {"label": "Work email", "hint": "Use your company address"}}
//	  }
//	}
type JSONPresetTransformer struct {
	document map[string]jsonFormPatch
}

type jsonFormPatch struct {
	Title       string                    `json:"title"`
	Subtitle    string                    `json:"subtitle"`
	SubmitLabel string                    `json:"submitLabel"`
	Metadata    map[string]string         `json:"metadata"`
	Fields      map[string]jsonFieldPatch `json:"fields"`
}

type jsonFieldPatch struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Placeholder string `json:"placeholder"`
	Hint        string `json:"hint"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document map[string]jsonFormPatch
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from fsys.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the patch registered for name. Forms without a patch are
// left untouched; a patch naming an unknown field is an error.
func (t *JSONPresetTransformer) Transform(ctx context.Context, name string, presentation *uischema.Form) error {
	if presentation == nil {
		return errors.New("json preset transformer: presentation is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	patch, ok := t.document[name]
	if !ok {
		return nil
	}

	if patch.Title != "" {
		presentation.Title = patch.Title
	}
	if patch.Subtitle != "" {
		presentation.Subtitle = patch.Subtitle
	}
	if patch.SubmitLabel != "" {
		presentation.Submit.Label = patch.SubmitLabel
	}
	if len(patch.Metadata) > 0 {
		presentation.Metadata = mergeStringMap(presentation.Metadata, patch.Metadata)
	}

	if len(patch.Fields) == 0 {
		return nil
	}
	fields := make(map[string]uischema.Field, len(presentation.Fields))
	for path, field := range presentation.Fields {
		fields[path] = field
	}
	for path, fp := range patch.Fields {
		field, ok := fields[path]
		if !ok {
			return fmt.Errorf("json preset transformer: field %q not found in %q", path, name)
		}
		fields[path] = applyFieldPatch(field, fp)
	}
	presentation.Fields = fields
	return nil
}

func applyFieldPatch(field uischema.Field, patch jsonFieldPatch) uischema.Field {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Description != "" {
		field.Description = patch.Description
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	if patch.Hint != "" {
		field.Hint = patch.Hint
	}
	return field
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	out := make(map[string]string, len(dst)+len(src))
	for key, value := range dst {
		out[key] = value
	}
	for key, value := range src {
		out[key] = value
	}
	return out
}
