package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/internal/config"
	"github.com/goliatone/go-formbind/pkg/renderers/tui"
)

// app carries state shared by every command.
type app struct {
	envFile string
	cfg     config.Config
	logger  *zap.Logger

	// driver replaces the survey terminal driver when set.
	driver tui.PromptDriver
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "formbind",
		Short:         "Render and validate the sign-in and sign-up forms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file read before the environment")
	root.PersistentFlags().String("uischema-dir", "", "directory of presentation documents (overrides FORMBIND_UISCHEMA_DIR)")
	root.PersistentFlags().String("templates-dir", "", "directory of HTML templates (overrides FORMBIND_TEMPLATES_DIR)")
	root.PersistentFlags().String("preset", "", "JSON preset file (overrides FORMBIND_PRESET_FILE)")
	root.PersistentFlags().String("log-level", "", "log level (overrides FORMBIND_LOG_LEVEL)")

	root.AddCommand(
		newServeCmd(a),
		newRenderCmd(a),
		newPromptCmd(a),
		newSchemaCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("uischema-dir", &cfg.UISchemaDir)
	override("templates-dir", &cfg.TemplatesDir)
	override("preset", &cfg.PresetFile)
	override("log-level", &cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}
