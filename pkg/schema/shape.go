package schema

import (
	"context"
	"fmt"
	"sort"
	"strings"

	goskema "github.com/reoring/goskema"
	"github.com/reoring/goskema/dsl"
)

type shapeNode struct {
	leaf     bool
	children map[string]*shapeNode
}

func buildShape(fields []Field) (goskema.Schema[map[string]any], error) {
	root := &shapeNode{children: map[string]*shapeNode{}}
	for _, f := range fields {
		node := root
		segments := strings.Split(f.Path, ".")
		for i, segment := range segments {
			child, ok := node.children[segment]
			if !ok {
				child = &shapeNode{children: map[string]*shapeNode{}}
				node.children[segment] = child
			}
			if i == len(segments)-1 {
				child.leaf = true
			}
			node = child
		}
	}
	s, err := buildObjectShape(root)
	if err != nil {
		return nil, fmt.Errorf("schema: build shape: %w", err)
	}
	return s, nil
}

func buildObjectShape(node *shapeNode) (goskema.Schema[map[string]any], error) {
	b := dsl.Object()
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		child := node.children[name]
		if child.leaf {
			b.Field(name, dsl.StringOf[string]()).Required()
			continue
		}
		nested, err := buildObjectShape(child)
		if err != nil {
			return nil, err
		}
		b.Field(name, dsl.SchemaOf[map[string]any](nested)).Required()
	}
	b.UnknownStrip()
	return b.Build()
}

// shapeStage returns the shaped object and one message per declared path that
// failed the shape check. Fields that passed are always present in the shaped
// object so per-field checks can still run on them.
func (s *Schema) shapeStage(ctx context.Context, input Values) (Values, map[string]string) {
	errs := make(map[string]string)
	out, err := s.shape.Parse(ctx, map[string]any(input))
	if err == nil {
		return out, errs
	}

	issues, ok := goskema.AsIssues(err)
	if !ok {
		issues = s.localIssues(input)
	}
	for _, issue := range issues {
		s.recordIssue(errs, input, issue)
	}
	return s.project(input, errs), errs
}

func (s *Schema) recordIssue(errs map[string]string, input Values, issue goskema.Issue) {
	path := PathFromPointer(issue.Path)
	for _, f := range s.fields {
		if f.Path != path && !strings.HasPrefix(f.Path, path+".") && path != "" {
			continue
		}
		if _, seen := errs[f.Path]; seen {
			continue
		}
		errs[f.Path] = s.issueMessage(f, input, path, issue)
	}
}

func (s *Schema) issueMessage(f Field, input Values, path string, issue goskema.Issue) string {
	switch issue.Code {
	case goskema.CodeRequired:
		if c, ok := f.check(CheckRequired); ok {
			return c.Message
		}
		return "Required"
	case goskema.CodeInvalidType:
		raw, _ := Lookup(input, path)
		expected := "string"
		if path != f.Path {
			expected = "object"
		}
		return fmt.Sprintf("Expected %s, received %s", expected, typeName(raw))
	default:
		if strings.TrimSpace(issue.Message) != "" {
			return issue.Message
		}
		return "Invalid input"
	}
}

// localIssues reproduces the shape check without goskema for unexpected parse
// failures that carry no issue list.
func (s *Schema) localIssues(input Values) goskema.Issues {
	var out goskema.Issues
	for _, f := range s.fields {
		raw, ok := Lookup(input, f.Path)
		if !ok {
			out = append(out, goskema.Issue{Path: PointerFromPath(f.Path), Code: goskema.CodeRequired})
			continue
		}
		if _, isString := raw.(string); !isString {
			out = append(out, goskema.Issue{Path: PointerFromPath(f.Path), Code: goskema.CodeInvalidType})
		}
	}
	return out
}

func (s *Schema) project(input Values, errs map[string]string) Values {
	out := make(Values)
	for _, f := range s.fields {
		if _, failed := errs[f.Path]; failed {
			continue
		}
		raw, ok := Lookup(input, f.Path)
		if !ok {
			continue
		}
		if str, isString := raw.(string); isString {
			_ = Assign(out, f.Path, str)
		}
	}
	return out
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
