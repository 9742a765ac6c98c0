package bind_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/bind"
	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/schema"
)

func snapshot(t *testing.T, value string) form.Snapshot {
	t.Helper()
	s := schema.New().Field("email").Required("Email is required").Email("Invalid email").MustBuild()
	f := form.New(s, form.WithIDGenerator(form.NewSequence("x")))
	item := f.Field("email").Item()
	if value != "" {
		f.Change("email", value)
	}
	return item.Resolve()
}

func TestLabel_PointsAtControl(t *testing.T) {
	snap := snapshot(t, "")
	got := bind.Label(snap)
	want := bind.LabelProps{For: "x-1-form-item"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("label mismatch (-want +got):\n%s", diff)
	}
	if got.For != bind.Control(snap).ID {
		t.Fatalf("label for and control id differ")
	}
}

func TestControl_WithoutError(t *testing.T) {
	got := bind.Control(snapshot(t, ""))
	want := []bind.Attr{
		{Name: "id", Value: "x-1-form-item"},
		{Name: "name", Value: "email"},
		{Name: "aria-describedby", Value: "x-1-form-item-description"},
		{Name: "aria-invalid", Value: "false"},
	}
	if diff := cmp.Diff(want, got.Attrs()); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestControl_WithError(t *testing.T) {
	got := bind.Control(snapshot(t, "not-an-email"))
	want := bind.ControlProps{
		ID:          "x-1-form-item",
		Name:        "email",
		Invalid:     true,
		DescribedBy: "x-1-form-item-description x-1-form-item-message",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("control mismatch (-want +got):\n%s", diff)
	}
}

func TestDescription(t *testing.T) {
	got := bind.Description(snapshot(t, ""), "We never share it.")
	want := bind.DescriptionProps{ID: "x-1-form-item-description", Text: "We never share it."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("description mismatch (-want +got):\n%s", diff)
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback string
		want     bind.MessageProps
		wantOK   bool
	}{
		{
			name:     "error beats fallback",
			value:    "not-an-email",
			fallback: "hint",
			want:     bind.MessageProps{ID: "x-1-form-item-message", Body: "Invalid email", Error: true},
			wantOK:   true,
		},
		{
			name:     "fallback without error",
			value:    "",
			fallback: "hint",
			want:     bind.MessageProps{ID: "x-1-form-item-message", Body: "hint"},
			wantOK:   true,
		},
		{
			name:   "nothing to render",
			value:  "",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := bind.Message(snapshot(t, tt.value), tt.fallback)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("message mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
