package schema

import (
	"reflect"
	"regexp"
	"sort"
)

// Values is the raw or shaped object a schema validates. Dotted paths address
// nested objects.
type Values = map[string]any

// Result captures the outcome of a single validation pass.
type Result struct {
	// Value holds the shaped object: declared paths only, unknown keys dropped.
	Value Values
	// Errors maps a dotted path to its single message.
	Errors map[string]string
}

// Valid reports whether the pass produced no errors.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Error returns the message attached to path, if any.
func (r Result) Error(path string) (string, bool) {
	if len(r.Errors) == 0 {
		return "", false
	}
	msg, ok := r.Errors[path]
	return msg, ok
}

// Paths returns the failing paths sorted alphabetically.
func (r Result) Paths() []string {
	out := make([]string, 0, len(r.Errors))
	for path := range r.Errors {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// CheckKind identifies a built-in or custom field check.
type CheckKind string

const (
	CheckRequired CheckKind = "required"
	CheckMin      CheckKind = "min"
	CheckMax      CheckKind = "max"
	CheckEmail    CheckKind = "email"
	CheckPattern  CheckKind = "pattern"
	CheckCustom   CheckKind = "custom"
)

// Check is a single rule in a field's chain.
type Check struct {
	Kind    CheckKind
	Limit   int
	Pattern string
	Name    string
	Message string

	re *regexp.Regexp
	fn func(string) bool
}

// Field is a declared schema entry.
type Field struct {
	Path   string
	Checks []Check
	// Secret marks values that must not be echoed back (passwords).
	Secret bool
}

// Required reports whether the field carries a required check.
func (f Field) Required() bool {
	_, ok := f.check(CheckRequired)
	return ok
}

// MinLength returns the minimum length check limit when present.
func (f Field) MinLength() (int, bool) {
	c, ok := f.check(CheckMin)
	return c.Limit, ok
}

// MaxLength returns the maximum length check limit when present.
func (f Field) MaxLength() (int, bool) {
	c, ok := f.check(CheckMax)
	return c.Limit, ok
}

// IsEmail reports whether the field carries an email format check.
func (f Field) IsEmail() bool {
	_, ok := f.check(CheckEmail)
	return ok
}

func (f Field) check(kind CheckKind) (Check, bool) {
	for _, c := range f.Checks {
		if c.Kind == kind {
			return c, true
		}
	}
	return Check{}, false
}

// Refinement is a cross-field rule evaluated after field checks. When
// Predicate returns false, Message is attached to Target.
type Refinement struct {
	Name      string
	Target    string
	Message   string
	Predicate func(Values) bool
}

// FieldsEqual builds a refinement predicate that holds when both paths carry
// the same value. Nested objects compare by content.
func FieldsEqual(a, b string) func(Values) bool {
	return func(v Values) bool {
		left, _ := Lookup(v, a)
		right, _ := Lookup(v, b)
		return reflect.DeepEqual(left, right)
	}
}
