// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/modkit/modkit/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `modkit config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect modkit configuration",
		Long: `Inspect modkit configuration.

Configuration is read from ` + config.DefaultConfigFile + ` under the base
directory, or from the file passed with --config. Values can be overridden
with ` + config.EnvPrefix + `_* environment variables, e.g. ` + config.EnvPrefix + `_NAMESPACE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(app.stdout, app.loadOptions().ResolvePath())
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), true)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App) error {
	cfg, err := app.loadConfig(cmd.Context(), true)
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), cfg.Path())
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("directory"), valueStyle.Render(string(cfg.Directory)))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("namespace"), valueStyle.Render(string(cfg.Namespace)))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("stubs_path"), valueStyle.Render(cfg.StubsPath))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("cache_path"), valueStyle.Render(cfg.CachePath))

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("file_checks"))
	for _, key := range []config.FileCheckKey{
		config.FileCheckServiceProvider,
		config.FileCheckRoute,
		config.FileCheckModelFactory,
		config.FileCheckDatabaseSeeder,
	} {
		fmt.Fprintf(out, "  %s: %s\n", key, valueStyle.Render(cfg.FileChecks.Pattern(key)))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("submodule"))
	for _, s := range cfg.Submodule {
		fmt.Fprintf(out, "  - %s\n", valueStyle.Render(s))
	}

	if len(cfg.Files) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s:\n", keyStyle.Render("files"))
		for _, f := range cfg.Files {
			fmt.Fprintf(out, "  - %s -> %s\n", valueStyle.Render(f.Stub), valueStyle.Render(f.Destination))
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("modules"))
	if len(cfg.Modules) == 0 {
		fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("(none registered)"))
		return nil
	}
	for _, m := range cfg.Modules {
		fmt.Fprintf(out, "  - %s %s\n", valueStyle.Render(string(m.Name)), SubtitleStyle.Render(formatOptions(m.Options)))
	}
	return nil
}

// formatOptions renders module options as "key=value" pairs in key order.
func formatOptions(opts map[string]any) string {
	if len(opts) == 0 {
		return ""
	}
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, opts[k]))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
