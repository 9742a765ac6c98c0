package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbind/pkg/renderers/tui"
)

type answerDriver struct {
	answers map[string]string
}

func (d *answerDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	return d.answers[cfg.Message], nil
}

func (d *answerDriver) Password(_ context.Context, cfg tui.InputConfig) (string, error) {
	return d.answers[cfg.Message], nil
}

func (d *answerDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return false, nil
}

func (d *answerDriver) Info(context.Context, string) error { return nil }

func execute(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(a)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env"), "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	out, err := execute(t, &app{}, "render", "sign-in", "--variant", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, `data-form="sign-in"`)
	assert.Contains(t, out, `data-variant="dark"`)
}

func TestRenderCommand_WithValues(t *testing.T) {
	out, err := execute(t, &app{}, "render", "sign-in", "--value", "email=nope", "--value", "password=secret-value")
	require.NoError(t, err)
	assert.Contains(t, out, "Invalid email")
	assert.NotContains(t, out, "secret-value")
}

func TestRenderCommand_UnknownForm(t *testing.T) {
	_, err := execute(t, &app{}, "render", "forgot-password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forgot-password")
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, &app{}, "schema", "sign-up")
	require.NoError(t, err)

	var got struct {
		Required   []string       `json:"required"`
		Properties map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.ElementsMatch(t, []string{"username", "email", "password", "confirmPassword"}, got.Required)
	assert.Len(t, got.Properties, 4)
}

func TestPromptCommand(t *testing.T) {
	a := &app{driver: &answerDriver{answers: map[string]string{
		"Email":    "ada@example.com",
		"Password": "correct horse",
	}}}
	out, err := execute(t, a, "prompt", "sign-in", "--format", "pretty")
	require.NoError(t, err)
	assert.Equal(t, "email=ada@example.com\npassword=********\n\n", out)
}

func TestPromptCommand_UnknownFormat(t *testing.T) {
	_, err := execute(t, &app{driver: &answerDriver{}}, "prompt", "sign-in", "--format", "xml")
	require.Error(t, err)
}
