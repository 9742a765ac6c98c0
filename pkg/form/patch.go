package form

import (
	"fmt"
	"reflect"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/goccy/go-json"

	"github.com/goliatone/go-formbind/pkg/schema"
)

// ApplyPatch applies RFC 6902 operations to the form values. Every declared
// path whose value changed is routed through Change; removed paths fall back
// to their default. Paths outside the schema are ignored.
func (f *Form) ApplyPatch(doc []byte) ([]string, error) {
	patch, err := jsonpatch.DecodePatch(doc)
	if err != nil {
		return nil, fmt.Errorf("form: decode patch: %w", err)
	}
	current, err := json.Marshal(f.state.values)
	if err != nil {
		return nil, fmt.Errorf("form: encode values: %w", err)
	}
	patched, err := patch.Apply(current)
	if err != nil {
		return nil, fmt.Errorf("form: apply patch: %w", err)
	}
	var next schema.Values
	if err := json.Unmarshal(patched, &next); err != nil {
		return nil, fmt.Errorf("form: decode patched values: %w", err)
	}

	var changed []string
	for _, path := range f.schema.Paths() {
		value, ok := schema.Lookup(next, path)
		if !ok {
			value, _ = schema.Lookup(f.state.defaults, path)
		}
		if reflect.DeepEqual(value, f.state.value(path)) {
			continue
		}
		f.Change(path, value)
		changed = append(changed, path)
	}
	return changed, nil
}
