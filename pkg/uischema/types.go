package uischema

import (
	"sort"
	"strings"
)

// Store keeps the parsed forms from UI schema documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	forms map[string]Form
}

// Form describes how a single form is presented.
type Form struct {
	ID       string            `json:"-" yaml:"-"`
	Source   string            `json:"-" yaml:"-"`
	Title    string            `json:"title" yaml:"title"`
	Subtitle string            `json:"subtitle" yaml:"subtitle"`
	Action   string            `json:"action" yaml:"action"`
	Method   string            `json:"method" yaml:"method"`
	Success  string            `json:"success" yaml:"success"`
	Mode     string            `json:"mode" yaml:"mode"`
	Submit   SubmitConfig      `json:"submit" yaml:"submit"`
	Divider  string            `json:"divider" yaml:"divider"`
	Provider *ProviderConfig   `json:"provider,omitempty" yaml:"provider,omitempty"`
	Footer   *LinkConfig       `json:"footer,omitempty" yaml:"footer,omitempty"`
	Order    []string          `json:"order" yaml:"order"`
	Fields   map[string]Field  `json:"fields" yaml:"fields"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// SubmitConfig describes the submit button.
type SubmitConfig struct {
	Label string `json:"label" yaml:"label"`
}

// ProviderConfig describes a third-party sign-in button. It is rendered
// disabled; no provider flow exists behind it.
type ProviderConfig struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// LinkConfig is a sentence followed by a link, e.g. the alternate form.
type LinkConfig struct {
	Text  string `json:"text" yaml:"text"`
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href" yaml:"href"`
}

// Field customises how one field is presented.
type Field struct {
	Label        string `json:"label" yaml:"label"`
	Placeholder  string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	Hint         string `json:"hint,omitempty" yaml:"hint,omitempty"`
	Input        string `json:"input,omitempty" yaml:"input,omitempty"`
	Autocomplete string `json:"autocomplete,omitempty" yaml:"autocomplete,omitempty"`
}

// Field returns the presentation of path. Missing entries fall back to the
// path as label.
func (f Form) Field(path string) Field {
	if cfg, ok := f.Fields[path]; ok {
		if strings.TrimSpace(cfg.Label) == "" {
			cfg.Label = path
		}
		return cfg
	}
	return Field{Label: path}
}

// Arrange orders paths: entries listed in Order first, in that order, then
// the remaining paths in their given order. Order entries that are not in
// paths are skipped.
func (f Form) Arrange(paths []string) []string {
	if len(f.Order) == 0 {
		return append([]string(nil), paths...)
	}
	known := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		known[p] = struct{}{}
	}
	out := make([]string, 0, len(paths))
	placed := make(map[string]struct{}, len(paths))
	for _, p := range f.Order {
		if _, ok := known[p]; !ok {
			continue
		}
		if _, dup := placed[p]; dup {
			continue
		}
		out = append(out, p)
		placed[p] = struct{}{}
	}
	for _, p := range paths {
		if _, ok := placed[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}

// Form returns the configuration for the supplied form id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	f, ok := s.forms[id]
	return f, ok
}

// IDs lists the form ids in the store, sorted.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.forms))
	for id := range s.forms {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}
