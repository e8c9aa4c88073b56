// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/modkit/modkit/internal/config"

	"github.com/spf13/cobra"
)

// newInitCommand creates the `modkit init` command.
func newInitCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Long: `Create the default configuration file at ` + config.DefaultConfigFile + `.

An existing file is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(app)
		},
	}
}

func runInit(app *App) error {
	path := app.loadOptions().ResolvePath()

	created, err := config.CreateDefaultConfig(path)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s %s\n", WarningStyle.Render("Config file already exists:"), CmdStyle.Render(path))
		return nil
	}

	fmt.Fprintf(app.stdout, "%s Created %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(path))
	fmt.Fprintln(app.stdout)
	fmt.Fprintln(app.stdout, SubtitleStyle.Render("Next steps:"))
	fmt.Fprintln(app.stdout, "  1. Adjust the namespace and directory to your project")
	fmt.Fprintln(app.stdout, "  2. Run 'modkit module make <Name>' to create a module")
	return nil
}
