package uischema

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML UI schema files.
// When fsys is nil or no schema files are present, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Form)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for rawID, raw := range doc.Forms {
			id := strings.TrimSpace(rawID)
			if id == "" {
				return fmt.Errorf("uischema: file %s defines an empty form id", path)
			}
			if _, exists := store.forms[id]; exists {
				return fmt.Errorf("uischema: duplicate form %q (file %s)", id, path)
			}
			f, err := normaliseForm(raw, id, path)
			if err != nil {
				return err
			}
			store.forms[id] = f
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

type documentFile struct {
	Forms map[string]Form `json:"forms" yaml:"forms"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
		}
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseForm(raw Form, id, source string) (Form, error) {
	out := raw
	out.ID = id
	out.Source = source
	out.Method = strings.ToUpper(strings.TrimSpace(raw.Method))
	if out.Method == "" {
		out.Method = "POST"
	}
	if out.Method != "POST" && out.Method != "GET" {
		return Form{}, fmt.Errorf("uischema: form %q (file %s) uses unsupported method %q", id, source, raw.Method)
	}

	out.Fields = make(map[string]Field, len(raw.Fields))
	for key, cfg := range raw.Fields {
		path := strings.TrimSpace(key)
		if path == "" {
			return Form{}, fmt.Errorf("uischema: form %q (file %s) has a field with an empty path", id, source)
		}
		out.Fields[path] = cfg
	}

	out.Order = make([]string, 0, len(raw.Order))
	for idx, entry := range raw.Order {
		path := strings.TrimSpace(entry)
		if path == "" {
			return Form{}, fmt.Errorf("uischema: form %q (file %s) order contains an empty entry at index %d", id, source, idx)
		}
		out.Order = append(out.Order, path)
	}
	return out, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
