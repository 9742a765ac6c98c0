package render

import (
	"github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbind/pkg/uischema"
	"github.com/goliatone/go-formbind/pkg/widgets"
)

// RenderOptions carry per-request data that renderers use without mutating
// the form.
type RenderOptions struct {
	// Name identifies the form in markup (data-form attribute, element ids).
	Name string
	// Presentation supplies labels, ordering and page chrome.
	Presentation uischema.Form
	// Action overrides Presentation.Action when set.
	Action string
	// HiddenFields are emitted as hidden inputs, sorted by name.
	HiddenFields map[string]string
	// Theme selects tokens and CSS variables. Nil renders unthemed markup.
	Theme *theme.RendererConfig
	// Widgets picks input kinds. Nil uses widgets.Default.
	Widgets *widgets.Registry
}
