package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Builder accumulates field declarations and refinements. Declaration order is
// evaluation order. Construction problems are collected and reported by Build.
type Builder struct {
	fields      []*Field
	index       map[string]*Field
	refinements []Refinement
	errs        []error
}

// FieldBuilder chains checks onto one declared field.
type FieldBuilder struct {
	b     *Builder
	field *Field
}

// New starts an empty schema declaration.
func New() *Builder {
	return &Builder{index: make(map[string]*Field)}
}

// Field declares a string field at the dotted path.
func (b *Builder) Field(path string) *FieldBuilder {
	path = strings.TrimSpace(path)
	field := &Field{Path: path}
	if err := validatePath(path); err != nil {
		b.errs = append(b.errs, err)
		return &FieldBuilder{b: b, field: field}
	}
	if _, exists := b.index[path]; exists {
		b.errs = append(b.errs, fmt.Errorf("schema: field %q declared twice", path))
		return &FieldBuilder{b: b, field: field}
	}
	b.fields = append(b.fields, field)
	b.index[path] = field
	return &FieldBuilder{b: b, field: field}
}

// Refine appends a cross-field rule. The target must be a declared field by the
// time Build runs.
func (b *Builder) Refine(predicate func(Values) bool, target, message string) *Builder {
	return b.RefineNamed("", predicate, target, message)
}

// RefineNamed is Refine with a label used in exported schemas.
func (b *Builder) RefineNamed(name string, predicate func(Values) bool, target, message string) *Builder {
	if predicate == nil {
		b.errs = append(b.errs, fmt.Errorf("schema: refinement on %q has no predicate", target))
		return b
	}
	b.refinements = append(b.refinements, Refinement{
		Name:      strings.TrimSpace(name),
		Target:    strings.TrimSpace(target),
		Message:   message,
		Predicate: predicate,
	})
	return b
}

// Build validates the declaration and returns an immutable Schema.
func (b *Builder) Build() (*Schema, error) {
	errs := append([]error(nil), b.errs...)
	if len(b.fields) == 0 {
		errs = append(errs, errors.New("schema: no fields declared"))
	}
	errs = append(errs, b.checkNesting()...)
	for _, r := range b.refinements {
		if _, ok := b.index[r.Target]; !ok {
			errs = append(errs, fmt.Errorf("schema: refinement targets undeclared field %q", r.Target))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	fields := make([]Field, len(b.fields))
	for i, f := range b.fields {
		fields[i] = *f
		fields[i].Checks = append([]Check(nil), f.Checks...)
	}
	s := &Schema{
		fields:      fields,
		refinements: append([]Refinement(nil), b.refinements...),
	}
	shape, err := buildShape(fields)
	if err != nil {
		return nil, err
	}
	s.shape = shape
	return s, nil
}

// MustBuild panics when the declaration is invalid.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func (b *Builder) checkNesting() []error {
	var errs []error
	for _, f := range b.fields {
		segments := strings.Split(f.Path, ".")
		for i := 1; i < len(segments); i++ {
			parent := strings.Join(segments[:i], ".")
			if _, ok := b.index[parent]; ok {
				errs = append(errs, fmt.Errorf("schema: field %q is nested under leaf field %q", f.Path, parent))
			}
		}
	}
	return errs
}

func validatePath(path string) error {
	if path == "" {
		return errors.New("schema: field path is required")
	}
	for _, segment := range strings.Split(path, ".") {
		if strings.TrimSpace(segment) == "" {
			return fmt.Errorf("schema: field path %q has an empty segment", path)
		}
	}
	return nil
}

// Required fails on the empty string.
func (f *FieldBuilder) Required(message string) *FieldBuilder {
	return f.add(Check{Kind: CheckRequired, Message: orDefault(message, "Required")})
}

// Min fails when the value holds fewer than n characters.
func (f *FieldBuilder) Min(n int, message string) *FieldBuilder {
	if n < 0 {
		f.b.errs = append(f.b.errs, fmt.Errorf("schema: field %q min must be >= 0", f.field.Path))
	}
	return f.add(Check{
		Kind:    CheckMin,
		Limit:   n,
		Message: orDefault(message, fmt.Sprintf("String must contain at least %d character(s)", n)),
	})
}

// Max fails when the value holds more than n characters.
func (f *FieldBuilder) Max(n int, message string) *FieldBuilder {
	if n < 0 {
		f.b.errs = append(f.b.errs, fmt.Errorf("schema: field %q max must be >= 0", f.field.Path))
	}
	return f.add(Check{
		Kind:    CheckMax,
		Limit:   n,
		Message: orDefault(message, fmt.Sprintf("String must contain at most %d character(s)", n)),
	})
}

// Email fails when the value is not a well-formed email address.
func (f *FieldBuilder) Email(message string) *FieldBuilder {
	return f.add(Check{Kind: CheckEmail, Message: orDefault(message, "Invalid email")})
}

// Pattern fails when the value does not match expr.
func (f *FieldBuilder) Pattern(expr, message string) *FieldBuilder {
	re, err := regexp.Compile(expr)
	if err != nil {
		f.b.errs = append(f.b.errs, fmt.Errorf("schema: field %q pattern: %w", f.field.Path, err))
		return f
	}
	return f.add(Check{Kind: CheckPattern, Pattern: expr, re: re, Message: orDefault(message, "Invalid")})
}

// Check adds a custom predicate; the check fails when fn returns false.
func (f *FieldBuilder) Check(name string, fn func(string) bool, message string) *FieldBuilder {
	if fn == nil {
		f.b.errs = append(f.b.errs, fmt.Errorf("schema: field %q check %q has no predicate", f.field.Path, name))
		return f
	}
	return f.add(Check{Kind: CheckCustom, Name: name, fn: fn, Message: orDefault(message, "Invalid")})
}

// Secret marks the field value as sensitive.
func (f *FieldBuilder) Secret() *FieldBuilder {
	f.field.Secret = true
	return f
}

// Field closes this declaration and opens the next one.
func (f *FieldBuilder) Field(path string) *FieldBuilder {
	return f.b.Field(path)
}

// Refine closes this declaration and appends a refinement.
func (f *FieldBuilder) Refine(predicate func(Values) bool, target, message string) *Builder {
	return f.b.Refine(predicate, target, message)
}

// Done returns the parent builder.
func (f *FieldBuilder) Done() *Builder {
	return f.b
}

// Build closes this declaration and builds the schema.
func (f *FieldBuilder) Build() (*Schema, error) {
	return f.b.Build()
}

// MustBuild closes this declaration and builds the schema, panicking on error.
func (f *FieldBuilder) MustBuild() *Schema {
	return f.b.MustBuild()
}

func (f *FieldBuilder) add(c Check) *FieldBuilder {
	f.field.Checks = append(f.field.Checks, c)
	return f
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
