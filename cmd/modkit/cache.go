// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/modkit/modkit/internal/config"
	"github.com/modkit/modkit/internal/manifest"
	"github.com/modkit/modkit/internal/watch"

	"github.com/spf13/cobra"
)

// newCacheCommand creates the `modkit cache` command tree.
func newCacheCommand(app *App) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the service provider cache",
		Long: `Manage the service provider cache.

The cache lists the service providers of active modules so the
application can register them at boot without probing every module.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "build",
		Short: "Rebuild the service provider cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheBuild(cmd.Context(), app)
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the service provider cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheClear(cmd, app)
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the service providers loaded at boot",
		Long: `Show the service providers loaded at boot: the cached list when a cache
exists, the live registry otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheShow(cmd, app)
		},
	})

	var debounce time.Duration
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the cache whenever modules or the configuration change",
		Long: `Build the cache, then rebuild it each time a file in the modules
directory or the configuration file changes. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheWatch(cmd.Context(), app, debounce)
		},
	}
	watchCmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before rebuilding")
	cacheCmd.AddCommand(watchCmd)

	return cacheCmd
}

func runCacheBuild(ctx context.Context, app *App) error {
	registry, err := app.registry(ctx)
	if err != nil {
		return err
	}

	cache := app.cache(registry.Config())
	m, err := cache.Build(registry)
	if err != nil {
		return fmt.Errorf("%w: %w", errCacheWrite, err)
	}
	app.logger().Debug("cache written", "path", cache.Path(), "providers", m.ServiceProviders)

	fmt.Fprintf(app.stdout, "%s Cached %d service providers in %s\n",
		moduleSuccessIcon, len(m.ServiceProviders), CmdStyle.Render(cache.Path()))
	return nil
}

func runCacheWatch(ctx context.Context, app *App, debounce time.Duration) error {
	if err := runCacheBuild(ctx, app); err != nil {
		return err
	}
	cfg, err := app.loadConfig(ctx, true)
	if err != nil {
		return err
	}

	root := app.workDir()
	var patterns []string
	if rel, ok := relativeTo(root, config.Resolve(app.flags.baseDir, string(cfg.Directory))); ok {
		patterns = append(patterns, path.Join(rel, "**"))
	}
	if rel, ok := relativeTo(root, cfg.Path()); ok {
		patterns = append(patterns, rel)
	}
	if len(patterns) == 0 {
		return fmt.Errorf("neither the modules directory nor the config file is inside %s", root)
	}

	logger := app.logger()
	w, err := watch.New(watch.Config{
		Root:     root,
		Patterns: patterns,
		Debounce: debounce,
		Logger:   logger,
		OnChange: func(ctx context.Context, changed []string) error {
			logger.Debug("change detected", "paths", changed)
			return runCacheBuild(ctx, app)
		},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "%s Watching %s for changes\n", moduleInfoIcon, CmdStyle.Render(strings.Join(patterns, ", ")))
	return w.Run(ctx)
}

func runCacheClear(cmd *cobra.Command, app *App) error {
	cfg, err := app.loadConfig(cmd.Context(), true)
	if err != nil {
		return err
	}

	cache := app.cache(cfg)
	if err := cache.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "%s Cache cleared\n", moduleSuccessIcon)
	return nil
}

func runCacheShow(cmd *cobra.Command, app *App) error {
	registry, err := app.registry(cmd.Context())
	if err != nil {
		return err
	}

	cache := app.cache(registry.Config())
	m, err := cache.Load()
	if err != nil {
		return err
	}
	source := "live registry"
	if m != nil {
		source = "cache (" + m.Generated.Format("2006-01-02 15:04:05") + ")"
	}

	fmt.Fprintf(app.stdout, "%s %s\n", TitleStyle.Render("Service providers"), SubtitleStyle.Render("from "+source))
	providers := manifest.ServiceProviders(cache, registry)
	if len(providers) == 0 {
		fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(none)"))
		return nil
	}
	for _, p := range providers {
		fmt.Fprintf(app.stdout, "  %s %s\n", moduleInfoIcon, p)
	}
	return nil
}

// relativeTo returns p as a slash path relative to root when it lies inside root.
func relativeTo(root, p string) (string, bool) {
	rel, err := filepath.Rel(root, absPath(p))
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
