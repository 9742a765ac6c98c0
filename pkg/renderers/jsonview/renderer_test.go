package jsonview_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/authforms"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/renderers/jsonview"
	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/goliatone/go-formbind/pkg/testsupport"
)

func TestRender_SignInView(t *testing.T) {
	def := testsupport.MustDefinition(t, authforms.SignIn)
	f := testsupport.NewForm(t, authforms.SignIn, schema.Values{"email": "nope", "password": "hunter22-secret"})

	out, err := jsonview.New().Render(context.Background(), f, render.RenderOptions{
		Presentation: def.Presentation,
		HiddenFields: map[string]string{"_csrf": "tok"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "hunter22-secret") {
		t.Fatalf("secret leaked: %s", out)
	}

	var got render.FormView
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "sign-in" || !got.Invalid {
		t.Fatalf("unexpected view header: %+v", got)
	}
	if diff := cmp.Diff([]render.HiddenField{{Name: "_csrf", Value: "tok"}}, got.Hidden); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}

	email := got.Fields[0]
	if email.Path != "email" || email.Value != "nope" || email.Message.Body != "Invalid email" {
		t.Fatalf("unexpected email view: %+v", email)
	}
	if email.Control.ID != "t-1-form-item" {
		t.Fatalf("control id = %q", email.Control.ID)
	}
	if got.Fields[1].Input != "password" || got.Fields[1].Value != "" {
		t.Fatalf("unexpected password view: %+v", got.Fields[1])
	}
}

func TestRender_Indent(t *testing.T) {
	f := testsupport.NewForm(t, authforms.SignIn, nil)
	out, err := jsonview.New(jsonview.WithIndent("  ")).Render(context.Background(), f, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "\n  \"name\"") {
		t.Fatalf("expected indented output:\n%s", out)
	}
}

func TestRender_NilForm(t *testing.T) {
	r := jsonview.New()
	if _, err := r.Render(context.Background(), nil, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for nil form")
	}
	if r.Name() != "json" || r.ContentType() != "application/json" {
		t.Fatalf("unexpected metadata %q %q", r.Name(), r.ContentType())
	}
}
