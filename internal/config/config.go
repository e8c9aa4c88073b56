// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modkit/modkit/internal/issue"
	"github.com/modkit/modkit/pkg/cueutil"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "modkit"
	// EnvPrefix prefixes environment overrides, e.g. MODKIT_DIRECTORY.
	EnvPrefix = "MODKIT"
	// DefaultConfigFile is the config file location relative to the base directory.
	DefaultConfigFile = "config/modules.cue"
)

// ErrConfigNotFound is returned when a required config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

//go:embed config_schema.cue
var configSchema []byte

// loadWithOptions performs option-driven config loading. A missing default
// config file is not an error: defaults are returned and Path() is empty.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("directory", string(defaults.Directory))
	v.SetDefault("namespace", string(defaults.Namespace))
	v.SetDefault("stubs_path", defaults.StubsPath)
	v.SetDefault("cache_path", defaults.CachePath)
	v.SetDefault("file_checks.ServiceProvider", defaults.FileChecks.ServiceProvider)
	v.SetDefault("file_checks.Route", defaults.FileChecks.Route)
	v.SetDefault("file_checks.ModelFactory", defaults.FileChecks.ModelFactory)
	v.SetDefault("file_checks.DatabaseSeeder", defaults.FileChecks.DatabaseSeeder)
	v.SetDefault("submodule", defaults.Submodule)
	v.SetDefault("files", []any{})
	v.SetDefault("modules", []any{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfgPath := opts.ResolvePath()
	resolvedPath := ""

	switch {
	case fileExists(cfgPath):
		if err := loadCUEIntoViper(v, cfgPath); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(cfgPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'modkit config dump' to see a valid configuration").
				Wrap(err).
				BuildError()
		}
		resolvedPath = cfgPath
	case opts.ConfigFilePath != "":
		return nil, issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(opts.ConfigFilePath).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Run 'modkit init' to create a default configuration").
			Wrap(fmt.Errorf("%w: %s", ErrConfigNotFound, opts.ConfigFilePath)).
			BuildError()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.path = resolvedPath

	if valid, errs := cfg.IsValid(); !valid {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(cfgPath).
			WithSuggestion("Module names must be studly-cased and registered once").
			WithSuggestion("Extra file entries need both a destination and a stub").
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	return &cfg, nil
}

// loadCUEIntoViper validates a CUE file against #Config and merges its
// contents into Viper over the defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(doc); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// readDocument reads and schema-validates a config file without applying defaults.
func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return cueutil.DecodeMap(configSchema, data, "#Config", path)
}

// RequireFile returns an actionable error when cfg was built from defaults only.
// Generation commands refuse to run without a config file because they write
// the module registry back into it.
func RequireFile(cfg *Config, opts LoadOptions) error {
	if cfg != nil && cfg.Path() != "" {
		return nil
	}
	path := opts.ResolvePath()
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Run 'modkit init' to create " + DefaultConfigFile).
		WithSuggestion("Or pass an existing file with --config").
		Wrap(fmt.Errorf("%w: %s", ErrConfigNotFound, path)).
		BuildError()
}

// CreateDefaultConfig writes the default configuration to path unless a file
// already exists there. It reports whether a file was written.
func CreateDefaultConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := Save(DefaultConfig(), path); err != nil {
		return false, err
	}
	return true, nil
}

// joinBase resolves rel against base; absolute rel paths are returned unchanged.
func joinBase(base, rel string) string {
	if filepath.IsAbs(rel) || base == "" {
		return rel
	}
	return filepath.Join(base, rel)
}

// Resolve returns rel resolved against the project base directory.
func Resolve(base, rel string) string {
	return joinBase(base, rel)
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
