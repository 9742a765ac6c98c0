package authforms_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/authforms"
	"github.com/goliatone/go-formbind/pkg/schema"
)

func TestSignInSchema(t *testing.T) {
	tests := []struct {
		name  string
		input schema.Values
		want  map[string]string
	}{
		{
			name:  "empty email short password",
			input: schema.Values{"email": "", "password": "abc"},
			want: map[string]string{
				"email":    "Email is required",
				"password": "Password must have than 8 characters",
			},
		},
		{
			name:  "empty password",
			input: schema.Values{"email": "not-an-email", "password": ""},
			want: map[string]string{
				"email":    "Invalid email",
				"password": "Password is required",
			},
		},
		{
			name:  "valid",
			input: schema.Values{"email": "ada@example.com", "password": "12345678"},
			want:  map[string]string{},
		},
	}
	s := authforms.SignInSchema()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Validate(context.Background(), tt.input)
			if diff := cmp.Diff(tt.want, got.Errors); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSignUpSchema(t *testing.T) {
	s := authforms.SignUpSchema()

	got := s.Validate(context.Background(), schema.Values{
		"username": "", "email": "", "password": "", "confirmPassword": "",
	})
	want := map[string]string{
		"username":        "Username is required",
		"email":           "Email is required",
		"password":        "Password is required",
		"confirmPassword": "Password confirmation is required",
	}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	got = s.Validate(context.Background(), schema.Values{
		"username": "johndoe", "email": "john@example.com", "password": "password1", "confirmPassword": "password2",
	})
	want = map[string]string{"confirmPassword": "Password do not match"}
	if diff := cmp.Diff(want, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg, err := authforms.Default(nil)
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	if diff := cmp.Diff([]string{"sign-in", "sign-up"}, reg.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	def, err := reg.Get(authforms.SignUp)
	if err != nil {
		t.Fatalf("get sign-up: %v", err)
	}
	if got := def.Presentation.Field("confirmPassword").Label; got != "Re-Enter your password" {
		t.Fatalf("confirmPassword label = %q", got)
	}
	if got := def.Presentation.Submit.Label; got != "Sign up" {
		t.Fatalf("submit label = %q", got)
	}
	order := def.Presentation.Arrange(def.Schema.Paths())
	if diff := cmp.Diff([]string{"username", "email", "password", "confirmPassword"}, order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	f := def.NewForm()
	if diff := cmp.Diff(schema.Values{"username": "", "email": "", "password": "", "confirmPassword": ""}, f.Values()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}

	if _, err := reg.Get("forgot-password"); !errors.Is(err, authforms.ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	reg := authforms.NewRegistry()
	def := authforms.Definition{Name: "x", Schema: authforms.SignInSchema()}
	if err := reg.Register(def); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(def); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := reg.Register(authforms.Definition{Name: "y"}); err == nil {
		t.Fatalf("expected missing schema error")
	}
}
