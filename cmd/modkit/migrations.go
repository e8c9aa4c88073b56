// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"
)

// newMigrationsCommand creates the `modkit migrations` command tree.
func newMigrationsCommand(app *App) *cobra.Command {
	migrationsCmd := &cobra.Command{
		Use:   "migrations",
		Short: "Inspect module migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var relative bool
	pathsCmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the migration directory of every active module",
		Long: `Print the migration directory of every active module, one per line,
for the application's migrator to load.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := app.registry(cmd.Context())
			if err != nil {
				return err
			}
			if relative {
				for _, m := range registry.Active() {
					fmt.Fprintln(app.stdout, path.Join(m.RelativeDirectory(), m.MigrationsPath(true)))
				}
				return nil
			}
			for _, p := range registry.MigrationPaths() {
				fmt.Fprintln(app.stdout, p)
			}
			return nil
		},
	}
	pathsCmd.Flags().BoolVar(&relative, "relative", false, "print paths relative to the project root")
	migrationsCmd.AddCommand(pathsCmd)

	return migrationsCmd
}
