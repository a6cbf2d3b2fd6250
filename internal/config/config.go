// Package config loads themeregistry settings from defaults, an optional
// config file, THEMEREGISTRY_* environment variables and command flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/themeregistry/internal/importer"
	"github.com/jmylchreest/themeregistry/internal/registry"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "THEMEREGISTRY"

// Config holds every setting used by the commands.
type Config struct {
	Manifest      string        `mapstructure:"manifest"`
	ThemesDir     string        `mapstructure:"themes-dir"`
	ComponentsDir string        `mapstructure:"components-dir"`
	OutputDir     string        `mapstructure:"output-dir"`
	ManifestOut   string        `mapstructure:"manifest-out"`
	CSSOutput     string        `mapstructure:"css-output"`
	ImportURL     string        `mapstructure:"import-url"`
	ImportTimeout time.Duration `mapstructure:"import-timeout"`
	Addr          string        `mapstructure:"addr"`
	StateFile     string        `mapstructure:"state-file"`
	LogLevel      string        `mapstructure:"log-level"`
	LogJSON       bool          `mapstructure:"log-json"`
}

// Defaults mirror the conventional project layout.
func Defaults() map[string]any {
	return map[string]any{
		"manifest":       "src/lib/registry.json",
		"themes-dir":     "src/lib/registry/themes",
		"components-dir": "src/lib/registry/components",
		"output-dir":     "static/r",
		"manifest-out":   "static/registry.json",
		"css-output":     "src/lib/generated-themes.css",
		"import-url":     importer.DefaultRegistryURL,
		"import-timeout": 30 * time.Second,
		"addr":           ":8080",
		"state-file":     "",
		"log-level":      "info",
		"log-json":       false,
	}
}

// Loader wraps a viper instance.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a Loader with defaults and environment overrides applied.
func NewLoader() *Loader {
	v := viper.New()
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// ReadFile reads an explicit config file, or looks for themeregistry.yaml in
// the working directory when path is empty. A missing default file is not an error.
func (l *Loader) ReadFile(path string) error {
	if path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName("themeregistry")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// BindFlags binds every known key to the flag of the same name in fs, when present.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if _, known := Defaults()[f.Name]; !known || bindErr != nil {
			return
		}
		if err := l.v.BindPFlag(f.Name, f); err != nil {
			bindErr = fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// ConfigFile returns the config file in use, if any.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Load resolves the final configuration.
func (l *Loader) Load() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Resolver returns the registry resolver for the configured directories.
func (c *Config) Resolver() registry.Resolver {
	return registry.Resolver{
		ThemesDir:     c.ThemesDir,
		ComponentsDir: c.ComponentsDir,
	}
}
