// Package bind turns a field snapshot into the attributes of the four binding
// parts: label, control, description and message. It reads nothing but the
// snapshot, so renderers never reach into form state.
package bind

import (
	"strings"

	"github.com/goliatone/go-formbind/pkg/form"
)

// Attr is a single HTML attribute. Attribute lists keep a stable order.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LabelProps wires a label to its control.
type LabelProps struct {
	For     string `json:"for"`
	Invalid bool   `json:"invalid"`
}

// Label returns the props of the field label. Invalid lets renderers style
// the label when the field has an error.
func Label(s form.Snapshot) LabelProps {
	return LabelProps{For: s.ControlID, Invalid: s.Error != ""}
}

// ControlProps carries the accessibility wiring of an input control.
type ControlProps struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Invalid     bool   `json:"invalid"`
	DescribedBy string `json:"describedBy"`
}

// Control returns the props of the input control. aria-describedby always
// names the description and adds the message only while an error is shown.
func Control(s form.Snapshot) ControlProps {
	invalid := s.Error != ""
	describedBy := s.DescriptionID
	if invalid {
		describedBy += " " + s.MessageID
	}
	return ControlProps{
		ID:          s.ControlID,
		Name:        s.Path,
		Invalid:     invalid,
		DescribedBy: describedBy,
	}
}

// Attrs returns id, name, aria-describedby and aria-invalid in that order.
func (p ControlProps) Attrs() []Attr {
	invalid := "false"
	if p.Invalid {
		invalid = "true"
	}
	return []Attr{
		{Name: "id", Value: p.ID},
		{Name: "name", Value: p.Name},
		{Name: "aria-describedby", Value: p.DescribedBy},
		{Name: "aria-invalid", Value: invalid},
	}
}

// DescriptionProps carries the description element id and its text.
type DescriptionProps struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Description returns the props of the helper text element.
func Description(s form.Snapshot, text string) DescriptionProps {
	return DescriptionProps{ID: s.DescriptionID, Text: text}
}

// MessageProps carries the message element id and body.
type MessageProps struct {
	ID    string `json:"id"`
	Body  string `json:"body"`
	Error bool   `json:"error"`
}

// Message returns the message props. The error text wins over fallback; when
// both are empty the second return is false and nothing must be rendered.
func Message(s form.Snapshot, fallback string) (MessageProps, bool) {
	if s.Error != "" {
		return MessageProps{ID: s.MessageID, Body: s.Error, Error: true}, true
	}
	if strings.TrimSpace(fallback) != "" {
		return MessageProps{ID: s.MessageID, Body: fallback}, true
	}
	return MessageProps{}, false
}
