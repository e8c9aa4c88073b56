// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/modkit/modkit/internal/config"
	"github.com/modkit/modkit/internal/generator"
	"github.com/modkit/modkit/internal/issue"
	"github.com/modkit/modkit/internal/module"
	"github.com/modkit/modkit/internal/stub"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	errCacheWrite = errors.New("cache write failed")
)

// NewRootCommand builds the modkit command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Scaffold and register application modules",
		Long: TitleStyle.Render("modkit") + SubtitleStyle.Render(" - Scaffold and register application modules") + `

modkit generates self-contained modules (service provider, routes,
controllers, models, repositories, seeders and factories) from stub
templates, records them in the module registry and caches the list of
service providers to load at boot.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'modkit init' to create ` + config.DefaultConfigFile + `
  2. Create a module with 'modkit module make Blog'
  3. Rebuild the provider cache with 'modkit cache build'

` + SubtitleStyle.Render("Examples:") + `
  modkit module make Blog Shop        Create two modules
  modkit module files Blog Comment    Add Comment files to Blog
  modkit module migration Blog create_posts_table --type create --table posts
  modkit module list                  Show registered modules`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "config file (default is "+config.DefaultConfigFile+" under the base directory)")
	rootCmd.PersistentFlags().StringVar(&app.flags.baseDir, "base-dir", "", "project root (default is the current directory)")

	rootCmd.AddCommand(newInitCommand(app))
	rootCmd.AddCommand(newModuleCommand(app))
	rootCmd.AddCommand(newCacheCommand(app))
	rootCmd.AddCommand(newMigrationsCommand(app))
	rootCmd.AddCommand(newStubsCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute runs the modkit CLI and exits with the resulting status.
// It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	os.Exit(run(context.Background(), app, NewRootCommand(app)))
}

// run executes rootCmd through fang and maps the outcome to an exit code.
func run(ctx context.Context, app *App, rootCmd *cobra.Command) int {
	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			app.renderError(w, err)
		}),
	)
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// renderError writes a fatal error and, when one applies, its issue guide.
func (a *App) renderError(w io.Writer, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.flags.verbose))

	if known := issueFor(err); known != nil {
		if rendered, renderErr := known.Render("dark"); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// issueFor returns the troubleshooting guide for err, or nil.
func issueFor(err error) *issue.Issue {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return issue.Get(issue.ConfigNotFoundId)
	case errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, config.ErrDuplicateModule),
		errors.Is(err, config.ErrInvalidFileEntry):
		return issue.Get(issue.ConfigInvalidId)
	case errors.Is(err, stub.ErrStubNotFound):
		return issue.Get(issue.StubNotFoundId)
	case errors.Is(err, module.ErrModuleNotFound):
		return issue.Get(issue.ModuleNotFoundId)
	case errors.Is(err, generator.ErrModuleExists):
		return issue.Get(issue.ModuleExistsId)
	case errors.Is(err, stub.ErrFileExists):
		return issue.Get(issue.FileExistsId)
	case errors.Is(err, config.ErrRegistration):
		return issue.Get(issue.RegistrationFailedId)
	case errors.Is(err, errCacheWrite):
		return issue.Get(issue.CacheWriteFailedId)
	}
	return nil
}
