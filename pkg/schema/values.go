package schema

import (
	"fmt"
	"strings"
)

// Lookup resolves a dotted path inside v.
func Lookup(v Values, path string) (any, bool) {
	if v == nil || path == "" {
		return nil, false
	}
	var current any = v
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := node[segment]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Assign writes value at a dotted path, creating intermediate objects.
func Assign(v Values, path string, value any) error {
	if v == nil {
		return fmt.Errorf("schema: assign %q: values map is nil", path)
	}
	segments := strings.Split(path, ".")
	node := v
	for i, segment := range segments {
		if i == len(segments)-1 {
			node[segment] = value
			return nil
		}
		switch child := node[segment].(type) {
		case map[string]any:
			node = child
		case nil:
			next := make(map[string]any)
			node[segment] = next
			node = next
		default:
			return fmt.Errorf("schema: assign %q: segment %q holds %T", path, segment, child)
		}
	}
	return nil
}

// Clone deep-copies nested objects and slices in v.
func Clone(v Values) Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = cloneValue(val)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return Clone(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return typed
	}
}

// PathFromPointer converts a JSON Pointer ("/account/email") into a dotted
// path ("account.email").
func PathFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "#")
	trimmed = strings.Trim(trimmed, "/")
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		parts[i] = strings.ReplaceAll(part, "~0", "~")
	}
	return strings.Join(parts, ".")
}

// PointerFromPath converts a dotted path into a JSON Pointer.
func PointerFromPath(path string) string {
	if path == "" {
		return ""
	}
	parts := strings.Split(path, ".")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~", "~0")
		parts[i] = strings.ReplaceAll(part, "/", "~1")
	}
	return "/" + strings.Join(parts, "/")
}
