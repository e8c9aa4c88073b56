// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"golang.org/x/exp/maps"
)

// ErrRegistration is the sentinel error wrapped by RegistrationError.
var ErrRegistration = errors.New("module registration failed")

// RegistrationError is returned when a module could not be written into the
// config file. Generation treats it as a warning: the module files exist and
// the entry can be added by hand.
type RegistrationError struct {
	Module ModuleName
	Path   string
	Err    error
}

// Error implements the error interface for RegistrationError.
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("could not register module %s in %s: %v", e.Module, e.Path, e.Err)
}

// Unwrap returns the underlying cause so both ErrRegistration and the cause match errors.Is.
func (e *RegistrationError) Unwrap() []error { return []error{ErrRegistration, e.Err} }

// ManualEntry returns the CUE snippet a user should add under modules to register by hand.
func (e *RegistrationError) ManualEntry() string {
	return formatModuleEntry(NewModuleEntry(e.Module))
}

// RegisterModule appends entry to the modules list of the config file at path.
// The file is decoded without defaults and regenerated, so only settings the
// user wrote (plus the new entry) end up in it.
func RegisterModule(path string, entry ModuleEntry) error {
	fail := func(err error) error {
		return &RegistrationError{Module: entry.Name, Path: path, Err: err}
	}

	doc, err := readDocument(path)
	if err != nil {
		return fail(err)
	}

	var cfg Config
	if err := decodeDocument(doc, &cfg); err != nil {
		return fail(err)
	}

	if _, exists := cfg.FindModule(entry.Name); exists {
		return fail(&DuplicateModuleError{Name: entry.Name})
	}
	cfg.Modules = append(cfg.Modules, entry)

	if err := Save(&cfg, path); err != nil {
		return fail(err)
	}
	return nil
}

// decodeDocument decodes a raw config document using the same field tags Viper uses.
func decodeDocument(doc map[string]any, out *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return err
	}
	return dec.Decode(doc)
}

// Save writes cfg to path in CUE format, replacing any existing file atomically.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Best-effort cleanup of temp file
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateCUE generates a CUE representation of the configuration.
// Zero-valued settings are omitted so defaults keep applying to them.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// modkit configuration\n")
	sb.WriteString("// The modules list is maintained by 'modkit module make'; entries may be edited by hand.\n\n")

	writeString := func(key, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "%s: %q\n", key, value)
		}
	}
	writeString("directory", string(cfg.Directory))
	writeString("namespace", string(cfg.Namespace))
	writeString("stubs_path", cfg.StubsPath)
	writeString("cache_path", cfg.CachePath)

	fc := cfg.FileChecks
	if fc != (FileChecks{}) {
		sb.WriteString("\nfile_checks: {\n")
		for _, kv := range [][2]string{
			{string(FileCheckServiceProvider), fc.ServiceProvider},
			{string(FileCheckRoute), fc.Route},
			{string(FileCheckModelFactory), fc.ModelFactory},
			{string(FileCheckDatabaseSeeder), fc.DatabaseSeeder},
		} {
			if kv[1] != "" {
				fmt.Fprintf(&sb, "\t%s: %q\n", kv[0], kv[1])
			}
		}
		sb.WriteString("}\n")
	}

	if len(cfg.Submodule) > 0 {
		sb.WriteString("\nsubmodule: [\n")
		for _, s := range cfg.Submodule {
			fmt.Fprintf(&sb, "\t%q,\n", s)
		}
		sb.WriteString("]\n")
	}

	if len(cfg.Files) > 0 {
		sb.WriteString("\nfiles: [\n")
		for _, f := range cfg.Files {
			fmt.Fprintf(&sb, "\t{destination: %q, stub: %q},\n", f.Destination, f.Stub)
		}
		sb.WriteString("]\n")
	}

	sb.WriteString("\nmodules: [")
	if len(cfg.Modules) == 0 {
		sb.WriteString("]\n")
		return sb.String()
	}
	sb.WriteString("\n")
	for _, m := range cfg.Modules {
		fmt.Fprintf(&sb, "\t%s,\n", formatModuleEntry(m))
	}
	sb.WriteString("]\n")

	return sb.String()
}

// formatModuleEntry renders one registry entry as a CUE struct literal with
// options in sorted order.
func formatModuleEntry(m ModuleEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "{name: %q", string(m.Name))

	keys := maps.Keys(m.Options)
	slices.Sort(keys)
	for _, k := range keys {
		switch v := m.Options[k].(type) {
		case string:
			fmt.Fprintf(&sb, ", %s: %q", k, v)
		default:
			fmt.Fprintf(&sb, ", %s: %v", k, v)
		}
	}
	sb.WriteString("}")
	return sb.String()
}
