// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/modkit/modkit/internal/config"

	"github.com/spf13/cobra"
)

// newStubsCommand creates the `modkit stubs` command tree.
func newStubsCommand(app *App) *cobra.Command {
	stubsCmd := &cobra.Command{
		Use:   "stubs",
		Short: "Manage stub templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	stubsCmd.AddCommand(&cobra.Command{
		Use:   "publish",
		Short: "Copy the built-in stubs into the project for customization",
		Long: `Copy the built-in stubs into the directory named by stubs_path.

Once published, generation reads stubs from that directory. Existing
files are never overwritten. A .stubignore file in the directory
excludes matching stubs from module generation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := app.loadConfig(ctx, false)
			if err != nil {
				return err
			}

			dest := config.Resolve(app.flags.baseDir, cfg.StubsPath)
			if err := app.generator(cfg).PublishStubs(ctx, dest); err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s Stubs published to %s\n", moduleSuccessIcon, CmdStyle.Render(dest))
			return nil
		},
	})

	return stubsCmd
}
