// Package testsupport holds fixtures shared by package tests.
package testsupport

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formbind/pkg/authforms"
	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/schema"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustRegistry returns the bundled form registry.
func MustRegistry(t *testing.T) *authforms.Registry {
	t.Helper()
	reg, err := authforms.Default(nil)
	if err != nil {
		t.Fatalf("default registry: %v", err)
	}
	return reg
}

// MustDefinition returns a bundled definition by name.
func MustDefinition(t *testing.T, name string) authforms.Definition {
	t.Helper()
	def, err := MustRegistry(t).Get(name)
	if err != nil {
		t.Fatalf("definition %q: %v", name, err)
	}
	return def
}

// NewForm opens a bundled form with deterministic item ids ("t-1", "t-2", ...)
// and applies values through Change.
func NewForm(t *testing.T, name string, values schema.Values, options ...form.Option) *form.Form {
	t.Helper()
	def := MustDefinition(t, name)
	opts := append([]form.Option{form.WithIDGenerator(form.NewSequence("t"))}, options...)
	f := def.NewForm(opts...)
	for path, value := range values {
		f.Change(path, value)
	}
	return f
}

// AssertContains fails the test for every fragment missing from output.
func AssertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Fatalf("output missing %q\n%s", fragment, output)
		}
	}
}

// AssertNotContains fails the test for every fragment present in output.
func AssertNotContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(output, fragment) {
			t.Fatalf("output unexpectedly contains %q\n%s", fragment, output)
		}
	}
}
