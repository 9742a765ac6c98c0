package schema

import (
	"context"
	"sync"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
	goskema "github.com/reoring/goskema"
)

// Schema is an immutable, validated declaration. It is safe for concurrent use.
type Schema struct {
	fields      []Field
	refinements []Refinement
	shape       goskema.Schema[map[string]any]
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a declared field.
func (s *Schema) Field(path string) (Field, bool) {
	for _, f := range s.fields {
		if f.Path == path {
			return f, true
		}
	}
	return Field{}, false
}

// Has reports whether path is declared.
func (s *Schema) Has(path string) bool {
	_, ok := s.Field(path)
	return ok
}

// Paths returns the declared paths in declaration order.
func (s *Schema) Paths() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Path
	}
	return out
}

// Refinements returns the declared refinements in declaration order.
func (s *Schema) Refinements() []Refinement {
	return append([]Refinement(nil), s.refinements...)
}

// Defaults returns an object holding the empty string at every declared path.
func (s *Schema) Defaults() Values {
	out := make(Values)
	for _, f := range s.fields {
		_ = Assign(out, f.Path, "")
	}
	return out
}

// Validate evaluates input. It has no side effects and never mutates input.
func (s *Schema) Validate(ctx context.Context, input Values) Result {
	if ctx == nil {
		ctx = context.Background()
	}

	shaped, errs := s.shapeStage(ctx, input)
	shapeFailed := len(errs) > 0

	for _, f := range s.fields {
		if _, failed := errs[f.Path]; failed {
			continue
		}
		raw, _ := Lookup(shaped, f.Path)
		value, _ := raw.(string)
		for _, c := range f.Checks {
			if !c.passes(value) {
				errs[f.Path] = c.Message
				break
			}
		}
	}

	if !shapeFailed {
		for _, r := range s.refinements {
			if !r.Predicate(shaped) {
				errs[r.Target] = r.Message
			}
		}
	}

	return Result{Value: shaped, Errors: errs}
}

func (c Check) passes(value string) bool {
	switch c.Kind {
	case CheckMin:
		return textLength(value) >= c.Limit
	case CheckMax:
		return textLength(value) <= c.Limit
	case CheckPattern:
		return c.re != nil && c.re.MatchString(value)
	case CheckCustom:
		return c.fn != nil && c.fn(value)
	default:
		return validatorInstance().Var(value, c.tag()) == nil
	}
}

func (c Check) tag() string {
	return string(c.Kind)
}

// textLength counts UTF-16 code units, so characters outside the BMP count
// twice, the way browsers and JavaScript measure length.
func textLength(value string) int {
	n := 0
	for _, r := range value {
		n += utf16.RuneLen(r)
	}
	return n
}
