// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/modkit/modkit/internal/config"
	"github.com/modkit/modkit/internal/generator"
	"github.com/modkit/modkit/internal/manifest"
	"github.com/modkit/modkit/internal/module"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. Every Cobra handler
	// receives an App and reaches configuration, the registry and the
	// generator through it.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer
		now    func() time.Time
		flags  globalFlags
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
		// Now stamps migration files and the cache manifest.
		Now func() time.Time
	}

	globalFlags struct {
		verbose    bool
		configPath string
		baseDir    string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		now:    deps.Now,
	}
}

// loadOptions returns the config loading inputs derived from global flags.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: a.flags.configPath,
		BaseDir:        a.flags.baseDir,
	}
}

// logger returns a logger on stderr; --verbose lowers the level to debug.
func (a *App) logger() *log.Logger {
	level := log.InfoLevel
	if a.flags.verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}

// loadConfig loads the effective configuration. With required set, a missing
// config file is an error.
func (a *App) loadConfig(ctx context.Context, required bool) (*config.Config, error) {
	opts := a.loadOptions()
	cfg, err := a.Config.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	if required {
		if err := config.RequireFile(cfg, opts); err != nil {
			return nil, err
		}
	}
	a.logger().Debug("configuration loaded", "path", cfg.Path(), "modules", len(cfg.Modules))
	return cfg, nil
}

// registry loads the configuration and builds a module registry over it.
func (a *App) registry(ctx context.Context) (*module.Registry, error) {
	cfg, err := a.loadConfig(ctx, true)
	if err != nil {
		return nil, err
	}
	return module.NewRegistry(cfg, a.flags.baseDir), nil
}

// generator builds a Generator that reports progress on stdout.
func (a *App) generator(cfg *config.Config) *generator.Generator {
	return generator.New(generator.Options{
		Config:   cfg,
		BaseDir:  a.flags.baseDir,
		Reporter: newReporter(a.stdout, a.workDir()),
		Logger:   a.logger(),
		Now:      a.now,
	})
}

// cache returns the manifest cache named by cfg.
func (a *App) cache(cfg *config.Config) *manifest.Cache {
	return manifest.New(config.Resolve(a.flags.baseDir, cfg.CachePath), a.now)
}

// workDir is the directory reported paths are shown relative to.
func (a *App) workDir() string {
	if a.flags.baseDir != "" {
		if abs, err := filepath.Abs(a.flags.baseDir); err == nil {
			return abs
		}
		return a.flags.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// absPath returns p made absolute, or p unchanged when that fails.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
