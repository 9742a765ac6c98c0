package server

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/internal/config"
	"github.com/goliatone/go-formbind/pkg/orchestrator"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/renderers/jsonview"
	"github.com/goliatone/go-formbind/pkg/renderers/vanilla"
)

// AssetsPrefix is the URL prefix the bundled stylesheet is served under.
const AssetsPrefix = "/assets"

// NewOrchestrator assembles the pipeline described by cfg: the vanilla
// renderer in document mode, the JSON view renderer, the default theme
// catalog, optional presentation and template overrides, and an optional
// preset file. Extra renderers are registered after those two.
func NewOrchestrator(cfg config.Config, logger *zap.Logger, extra ...render.Renderer) (*orchestrator.Orchestrator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	vanillaOpts := []vanilla.Option{
		vanilla.WithDocument(),
		vanilla.WithStylesheet(AssetsPrefix + "/" + vanilla.StylesheetName),
	}
	if cfg.TemplatesDir != "" {
		vanillaOpts = append(vanillaOpts, vanilla.WithTemplatesDir(cfg.TemplatesDir))
	}
	html, err := vanilla.New(vanillaOpts...)
	if err != nil {
		return nil, fmt.Errorf("server: vanilla renderer: %w", err)
	}

	registry := render.NewRegistry()
	if err := registry.Register(html); err != nil {
		return nil, err
	}
	if err := registry.Register(jsonview.New()); err != nil {
		return nil, err
	}
	for _, r := range extra {
		if err := registry.Register(r); err != nil {
			return nil, fmt.Errorf("server: register renderer: %w", err)
		}
	}

	catalog, err := render.NewThemeCatalog(render.DefaultTheme())
	if err != nil {
		return nil, fmt.Errorf("server: theme catalog: %w", err)
	}

	opts := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(html.Name()),
		orchestrator.WithThemeSelector(catalog, cfg.Theme, cfg.Variant),
		orchestrator.WithLogger(logger),
	}
	if cfg.UISchemaDir != "" {
		opts = append(opts, orchestrator.WithPresentationFS(os.DirFS(cfg.UISchemaDir)))
	}
	if cfg.PresetFile != "" {
		preset, err := orchestrator.NewJSONPresetTransformerFromFS(
			os.DirFS(filepath.Dir(cfg.PresetFile)), filepath.Base(cfg.PresetFile))
		if err != nil {
			return nil, fmt.Errorf("server: load preset: %w", err)
		}
		opts = append(opts, orchestrator.WithSchemaTransformer(preset))
	}

	orch := orchestrator.New(opts...)
	if err := orch.Err(); err != nil {
		return nil, err
	}
	return orch, nil
}
