package schema

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const refinementsExtensionKey = "x-refinements"

// OpenAPI exports the schema as an OpenAPI 3 object schema. Custom checks have
// no OpenAPI equivalent and are omitted; refinements are listed under the
// x-refinements extension of the root object.
func (s *Schema) OpenAPI() *openapi3.Schema {
	root := newObjectSchema()
	for _, f := range s.fields {
		parent := root
		segments := strings.Split(f.Path, ".")
		for _, segment := range segments[:len(segments)-1] {
			ref, ok := parent.Properties[segment]
			if !ok {
				ref = &openapi3.SchemaRef{Value: newObjectSchema()}
				parent.Properties[segment] = ref
				parent.Required = appendUnique(parent.Required, segment)
			}
			parent = ref.Value
		}
		leaf := segments[len(segments)-1]
		parent.Properties[leaf] = &openapi3.SchemaRef{Value: fieldSchema(f)}
		parent.Required = appendUnique(parent.Required, leaf)
	}

	if len(s.refinements) > 0 {
		entries := make([]map[string]any, 0, len(s.refinements))
		for _, r := range s.refinements {
			entry := map[string]any{
				"target":  r.Target,
				"message": r.Message,
			}
			if r.Name != "" {
				entry["name"] = r.Name
			}
			entries = append(entries, entry)
		}
		root.Extensions = map[string]any{refinementsExtensionKey: entries}
	}
	return root
}

func newObjectSchema() *openapi3.Schema {
	return &openapi3.Schema{
		Type:       &openapi3.Types{openapi3.TypeObject},
		Properties: openapi3.Schemas{},
	}
}

func fieldSchema(f Field) *openapi3.Schema {
	out := &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}}
	var messages []string
	for _, c := range f.Checks {
		switch c.Kind {
		case CheckRequired:
			if out.MinLength < 1 {
				out.MinLength = 1
			}
		case CheckMin:
			if uint64(c.Limit) > out.MinLength {
				out.MinLength = uint64(c.Limit)
			}
		case CheckMax:
			limit := uint64(c.Limit)
			out.MaxLength = &limit
		case CheckEmail:
			out.Format = "email"
		case CheckPattern:
			out.Pattern = c.Pattern
		}
		messages = append(messages, c.Message)
	}
	if f.Secret {
		out.Format = "password"
		out.WriteOnly = true
	}
	if len(messages) > 0 {
		out.Description = strings.Join(messages, "; ")
	}
	return out
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	list = append(list, value)
	sort.Strings(list)
	return list
}
