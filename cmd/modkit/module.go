// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/modkit/modkit/internal/generator"
	"github.com/modkit/modkit/internal/module"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	moduleSuccessIcon = SuccessStyle.Render("✓")
	moduleErrorIcon   = ErrorStyle.Render("✗")
	moduleInfoIcon    = SubtitleStyle.Render("•")
)

// newModuleCommand creates the `modkit module` command tree.
func newModuleCommand(app *App) *cobra.Command {
	moduleCmd := &cobra.Command{
		Use:     "module",
		Aliases: []string{"mod"},
		Short:   "Create and inspect modules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	moduleCmd.AddCommand(&cobra.Command{
		Use:   "make <name>...",
		Short: "Create one or more modules",
		Long: `Create one or more modules from the module stubs and register them.

Names are studly-cased and deduplicated. A module that is already
registered, or whose directory exists, is skipped; the remaining names
are still created and the command exits non-zero.`,
		Example: `  modkit module make Blog
  modkit module make blog shop`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModuleMake(cmd, app, args)
		},
	})

	moduleCmd.AddCommand(&cobra.Command{
		Use:   "files <module> <name>...",
		Short: "Create submodule files inside an existing module",
		Long: `Create the submodule file set (controller, model, seeder, repository by
default) once per name inside an existing module.`,
		Example: `  modkit module files Blog Comment Tag`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModuleFiles(cmd, app, args[0], args[1:])
		},
	})

	var migrationType, migrationTable string
	migrationCmd := &cobra.Command{
		Use:   "migration <module> <name>",
		Short: "Create a migration inside a module",
		Long: `Create a timestamped migration in the module's Database/Migrations
directory. Use --type and --table together to generate a create or
edit migration for a table.`,
		Example: `  modkit module migration Blog add_index
  modkit module migration Blog create_posts_table --type create --table posts`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModuleMigration(cmd, app, generator.MigrationRequest{
				Module: args[0],
				Name:   args[1],
				Type:   migrationType,
				Table:  migrationTable,
			})
		},
	}
	migrationCmd.Flags().StringVar(&migrationType, "type", "", "migration type (create, edit)")
	migrationCmd.Flags().StringVar(&migrationTable, "table", "", "table the migration operates on")
	moduleCmd.AddCommand(migrationCmd)

	moduleCmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered modules",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModuleList(cmd, app)
		},
	})

	return moduleCmd
}

func runModuleMake(cmd *cobra.Command, app *App, names []string) error {
	ctx := cmd.Context()
	cfg, err := app.loadConfig(ctx, true)
	if err != nil {
		return err
	}

	res, err := app.generator(cfg).CreateModules(ctx, names...)
	if res != nil {
		for _, nameErr := range res.Errors {
			fmt.Fprintf(app.stderr, "%s %v\n", moduleErrorIcon, nameErr)
		}
	}
	if err != nil {
		return err
	}

	if len(res.Errors) > 0 {
		return &ExitError{Code: 1}
	}
	return nil
}

func runModuleFiles(cmd *cobra.Command, app *App, moduleName string, names []string) error {
	ctx := cmd.Context()
	cfg, err := app.loadConfig(ctx, true)
	if err != nil {
		return err
	}

	files, err := app.generator(cfg).CreateSubmodules(ctx, moduleName, names...)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "%s %d files created\n", moduleSuccessIcon, len(files))
	return nil
}

func runModuleMigration(cmd *cobra.Command, app *App, req generator.MigrationRequest) error {
	ctx := cmd.Context()
	cfg, err := app.loadConfig(ctx, true)
	if err != nil {
		return err
	}

	if _, err := app.generator(cfg).CreateMigration(ctx, req); err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "%s Migration %s created\n", moduleSuccessIcon, req.Name)
	return nil
}

func runModuleList(cmd *cobra.Command, app *App) error {
	registry, err := app.registry(cmd.Context())
	if err != nil {
		return err
	}

	modules := registry.All()
	if len(modules) == 0 {
		fmt.Fprintf(app.stdout, "%s No modules registered\n", moduleInfoIcon)
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtitleStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TitleStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("Module", "Active", "Provider", "Routes", "Factory", "Seeder", "Directory")

	for _, m := range modules {
		t.Row(
			m.Name(),
			yesNo(m.Active()),
			yesNo(m.HasServiceProvider()),
			yesNo(m.HasRoutes(module.DefaultRouteType)),
			yesNo(m.HasFactory()),
			yesNo(m.HasSeeder()),
			m.RelativeDirectory(),
		)
	}

	fmt.Fprintln(app.stdout, t.String())
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
