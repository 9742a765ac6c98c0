package render

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-theme"
)

// ErrThemeNotFound is returned when a catalog has no manifest for a name.
var ErrThemeNotFound = errors.New("render: theme not found")

// ThemeCatalog is an in-memory theme.ThemeSelector over registered manifests.
// An empty name selects the default theme.
type ThemeCatalog struct {
	mu        sync.RWMutex
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*ThemeCatalog)(nil)

// NewThemeCatalog creates a catalog; the first registered manifest becomes
// the default.
func NewThemeCatalog(manifests ...*theme.Manifest) (*ThemeCatalog, error) {
	c := &ThemeCatalog{manifests: make(map[string]*theme.Manifest)}
	for _, m := range manifests {
		if err := c.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register adds a manifest. Duplicate names return an error.
func (c *ThemeCatalog) Register(m *theme.Manifest) error {
	if m == nil || strings.TrimSpace(m.Name) == "" {
		return errors.New("render: theme manifest name is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.manifests[m.Name]; exists {
		return fmt.Errorf("render: theme %q already registered", m.Name)
	}
	c.manifests[m.Name] = m
	if c.fallback == "" {
		c.fallback = m.Name
	}
	return nil
}

// Names lists registered themes, sorted.
func (c *ThemeCatalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.manifests))
	for name := range c.manifests {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Select resolves name and variant. Unknown variants are an error; an empty
// variant selects the base tokens.
func (c *ThemeCatalog) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if name == "" {
		name = c.fallback
	}
	m, ok := c.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if variant != "" {
		if _, ok := m.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q has no variant %q", ErrThemeNotFound, name, variant)
		}
	}
	return &theme.Selection{Theme: m.Name, Variant: variant, Manifest: m}, nil
}

// ThemeConfig selects a theme and derives the renderer configuration from
// it. Variant tokens override the base tokens; every token is also exposed as
// a CSS custom property named "--" + token.
func ThemeConfig(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}
	sel, err := selector.Select(name, variant)
	if err != nil {
		return nil, err
	}
	if sel == nil {
		return nil, nil
	}

	tokens := map[string]string{}
	prefix := ""
	files := map[string]string{}
	if m := sel.Manifest; m != nil {
		for k, v := range m.Tokens {
			tokens[k] = v
		}
		prefix = m.Assets.Prefix
		for k, v := range m.Assets.Files {
			files[k] = v
		}
		if v, ok := m.Variants[sel.Variant]; ok {
			for k, val := range v.Tokens {
				tokens[k] = val
			}
			if v.Assets.Prefix != "" {
				prefix = v.Assets.Prefix
			}
			for k, val := range v.Assets.Files {
				files[k] = val
			}
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for k, v := range tokens {
		cssVars["--"+k] = v
	}

	return &theme.RendererConfig{
		Theme:   sel.Theme,
		Variant: sel.Variant,
		Tokens:  tokens,
		CSSVars: cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok {
				return ""
			}
			if prefix == "" {
				return file
			}
			return path.Join(prefix, file)
		},
	}, nil
}

// DefaultTheme is the bundled theme. Its tokens mirror the stylesheet shipped
// with the HTML renderer.
func DefaultTheme() *theme.Manifest {
	return &theme.Manifest{
		Name:    "formbind",
		Version: "1.0.0",
		Tokens: map[string]string{
			"background":  "#ffffff",
			"foreground":  "#0a0a0a",
			"muted":       "#737373",
			"border":      "#e5e5e5",
			"primary":     "#171717",
			"destructive": "#dc2626",
			"radius":      "0.5rem",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"background": "#0a0a0a",
					"foreground": "#fafafa",
					"muted":      "#a3a3a3",
					"border":     "#262626",
					"primary":    "#fafafa",
				},
			},
		},
	}
}
