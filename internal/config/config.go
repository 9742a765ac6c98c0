// Package config loads process configuration from defaults, an optional .env
// file and FORMBIND_* environment variables, and builds the logger.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "FORMBIND_"

// Config holds every setting of the server and CLI.
type Config struct {
	Addr         string
	LogLevel     string
	PrettyLogs   bool
	TemplatesDir string
	UISchemaDir  string
	PresetFile   string
	Theme        string
	Variant      string
	CSRF         bool
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:     ":8080",
		LogLevel: "info",
		Theme:    "formbind",
		CSRF:     true,
	}
}

// Load applies .env files (missing files are skipped) and then the process
// environment over Default. Values already set in the environment win over
// .env entries.
func Load(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("config: load %s: %w", file, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv overlays variables read through lookup onto Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	var errs []error
	flag := func(name string, dst *bool) {
		v, ok := lookup(envPrefix + name)
		if !ok {
			return
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s%s: %w", envPrefix, name, err))
			return
		}
		*dst = b
	}

	str("ADDR", &cfg.Addr)
	str("LOG_LEVEL", &cfg.LogLevel)
	flag("PRETTY_LOGS", &cfg.PrettyLogs)
	str("TEMPLATES_DIR", &cfg.TemplatesDir)
	str("UISCHEMA_DIR", &cfg.UISchemaDir)
	str("PRESET_FILE", &cfg.PresetFile)
	str("THEME", &cfg.Theme)
	str("THEME_VARIANT", &cfg.Variant)
	flag("CSRF", &cfg.CSRF)

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("config: address is required")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log level: %w", err)
	}
	return nil
}

// NewLogger builds a production JSON logger, or a development console logger
// when PrettyLogs is set.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if c.PrettyLogs {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger, nil
}
