// Package orchestrator runs the form pipeline for one request: resolve a
// definition, open a form, apply input, optionally submit and render.
package orchestrator
