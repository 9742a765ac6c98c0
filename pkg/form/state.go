package form

import (
	"reflect"

	"github.com/goliatone/go-formbind/pkg/schema"
)

// State is the mutable per-form record: values, published errors, the touched
// set and the submit counter. It is owned by exactly one Form.
type State struct {
	values      schema.Values
	defaults    schema.Values
	errors      map[string]string
	touched     map[string]struct{}
	submitCount int
}

func newState(defaults schema.Values) State {
	return State{
		values:   schema.Clone(defaults),
		defaults: defaults,
		errors:   make(map[string]string),
		touched:  make(map[string]struct{}),
	}
}

func (s *State) value(path string) any {
	v, _ := schema.Lookup(s.values, path)
	return v
}

func (s *State) dirty(path string) bool {
	current, _ := schema.Lookup(s.values, path)
	initial, _ := schema.Lookup(s.defaults, path)
	return !reflect.DeepEqual(current, initial)
}

func (s *State) isTouched(path string) bool {
	_, ok := s.touched[path]
	return ok
}

func (s *State) publish(errs map[string]string) {
	s.errors = make(map[string]string, len(errs))
	for path, msg := range errs {
		s.errors[path] = msg
	}
}
