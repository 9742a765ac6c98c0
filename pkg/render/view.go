package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbind/pkg/bind"
	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/uischema"
	"github.com/goliatone/go-formbind/pkg/widgets"
)

// FormView is the renderer-neutral projection of a form and its chrome.
type FormView struct {
	Name        string                   `json:"name"`
	Title       string                   `json:"title"`
	Subtitle    string                   `json:"subtitle"`
	Action      string                   `json:"action"`
	Method      string                   `json:"method"`
	SubmitLabel string                   `json:"submitLabel"`
	Divider     string                   `json:"divider"`
	Provider    *uischema.ProviderConfig `json:"provider,omitempty"`
	Footer      *uischema.LinkConfig     `json:"footer,omitempty"`
	Hidden      []HiddenField            `json:"hidden"`
	Fields      []FieldView              `json:"fields"`
	Theme       ThemeView                `json:"theme"`
	Invalid     bool                     `json:"invalid"`
}

// FieldView holds one rendered field instance.
type FieldView struct {
	Path         string                `json:"path"`
	Label        string                `json:"label"`
	Placeholder  string                `json:"placeholder"`
	Input        string                `json:"input"`
	Autocomplete string                `json:"autocomplete"`
	Value        string                `json:"value"`
	Required     bool                  `json:"required"`
	Secret       bool                  `json:"secret"`
	LabelProps   bind.LabelProps       `json:"labelProps"`
	Control      bind.ControlProps     `json:"control"`
	Description  bind.DescriptionProps `json:"description"`
	Message      bind.MessageProps     `json:"message"`
	HasMessage   bool                  `json:"hasMessage"`
	Snapshot     form.Snapshot         `json:"-"`
}

// ThemeView is the part of a theme configuration markup needs.
type ThemeView struct {
	Name    string `json:"name"`
	Variant string `json:"variant"`
	Style   string `json:"style"`
}

// BuildView resolves every declared field of f through a fresh item scope and
// arranges the result by the presentation order. Secret values are never
// copied into the view.
func BuildView(f *form.Form, opts RenderOptions) FormView {
	p := opts.Presentation
	view := FormView{
		Name:        firstNonEmpty(opts.Name, p.ID),
		Title:       p.Title,
		Subtitle:    p.Subtitle,
		Action:      firstNonEmpty(opts.Action, p.Action),
		Method:      firstNonEmpty(p.Method, "POST"),
		SubmitLabel: firstNonEmpty(p.Submit.Label, "Submit"),
		Divider:     p.Divider,
		Provider:    p.Provider,
		Footer:      p.Footer,
		Hidden:      SortedHiddenFields(opts.HiddenFields),
		Theme:       themeView(opts.Theme),
	}

	inputs := opts.Widgets
	if inputs == nil {
		inputs = widgets.Default()
	}

	s := f.Schema()
	for _, path := range p.Arrange(s.Paths()) {
		declared, _ := s.Field(path)
		pres := p.Field(path)
		snap := f.Field(path).Item().Resolve()

		fv := FieldView{
			Path:         path,
			Label:        pres.Label,
			Placeholder:  pres.Placeholder,
			Input:        inputs.Resolve(declared, pres),
			Autocomplete: pres.Autocomplete,
			Required:     declared.Required(),
			Secret:       declared.Secret,
			LabelProps:   bind.Label(snap),
			Control:      bind.Control(snap),
			Description:  bind.Description(snap, pres.Description),
			Snapshot:     snap,
		}
		if !declared.Secret {
			fv.Value = snap.StringValue()
		}
		fv.Message, fv.HasMessage = bind.Message(snap, pres.Hint)
		if snap.Invalid {
			view.Invalid = true
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}

func themeView(cfg *theme.RendererConfig) ThemeView {
	if cfg == nil {
		return ThemeView{}
	}
	return ThemeView{Name: cfg.Theme, Variant: cfg.Variant, Style: CSSVarsStyle(cfg.CSSVars)}
}

// CSSVarsStyle renders custom properties as an inline style value, sorted by
// name.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(vars[k])
		b.WriteByte(';')
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
