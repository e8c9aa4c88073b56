// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/modkit/modkit/pkg/platform"
)

const (
	// FileCheckServiceProvider locates a module's service provider.
	FileCheckServiceProvider FileCheckKey = "ServiceProvider"
	// FileCheckRoute locates a module's routes file for a route type.
	FileCheckRoute FileCheckKey = "Route"
	// FileCheckModelFactory locates a module's model factory.
	FileCheckModelFactory FileCheckKey = "ModelFactory"
	// FileCheckDatabaseSeeder locates a module's database seeder.
	FileCheckDatabaseSeeder FileCheckKey = "DatabaseSeeder"

	// OptionActive toggles whether a module participates in any hook.
	OptionActive = "active"
	// OptionProvider overrides the service provider file probe.
	OptionProvider = "provider"
	// OptionRoutes overrides the routes file probe for every route type.
	OptionRoutes = "routes"
	// OptionFactory overrides the model factory file probe.
	OptionFactory = "factory"
	// OptionSeeder overrides the database seeder file probe.
	OptionSeeder = "seeder"
)

var (
	// ErrInvalidNamespace is the sentinel error wrapped by InvalidNamespaceError.
	ErrInvalidNamespace = errors.New("invalid namespace")
	// ErrInvalidModulesDirectory is the sentinel error wrapped by InvalidModulesDirectoryError.
	ErrInvalidModulesDirectory = errors.New("invalid modules directory")
	// ErrInvalidModuleName is the sentinel error wrapped by InvalidModuleNameError.
	ErrInvalidModuleName = errors.New("invalid module name")
	// ErrDuplicateModule is the sentinel error wrapped by DuplicateModuleError.
	ErrDuplicateModule = errors.New("duplicate module")
	// ErrInvalidFileEntry is the sentinel error wrapped by InvalidFileEntryError.
	ErrInvalidFileEntry = errors.New("invalid file entry")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	moduleNameRegex = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
)

type (
	// Namespace is the namespace prefix applied to generated code, e.g. `App\Modules`.
	Namespace string

	// InvalidNamespaceError is returned when a Namespace is empty or uses forward slashes.
	InvalidNamespaceError struct {
		Value Namespace
	}

	// ModulesDirectory is the directory, relative to the project base, that holds modules.
	ModulesDirectory string

	// InvalidModulesDirectoryError is returned when a ModulesDirectory is empty or whitespace-only.
	InvalidModulesDirectoryError struct {
		Value ModulesDirectory
	}

	// ModuleName is a studly-cased module identifier.
	ModuleName string

	// InvalidModuleNameError is returned when a ModuleName is not studly-cased
	// or names a device on Windows.
	InvalidModuleNameError struct {
		Value    ModuleName
		Reserved bool
	}

	// DuplicateModuleError is returned when two registry entries share a name.
	DuplicateModuleError struct {
		Name ModuleName
	}

	// InvalidFileEntryError is returned when an extra file pair is incomplete.
	InvalidFileEntryError struct {
		Entry FileEntry
	}

	// InvalidConfigError collects field-level validation errors for a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// FileCheckKey names a resource a module may provide.
	FileCheckKey string

	// FileChecks maps each FileCheckKey to a file pattern relative to the module
	// directory. Patterns use %class% and %type% tokens.
	FileChecks struct {
		ServiceProvider string `json:"ServiceProvider" mapstructure:"ServiceProvider"`
		Route           string `json:"Route" mapstructure:"Route"`
		ModelFactory    string `json:"ModelFactory" mapstructure:"ModelFactory"`
		DatabaseSeeder  string `json:"DatabaseSeeder" mapstructure:"DatabaseSeeder"`
	}

	// FileEntry is an extra full-module pair: a stub path (relative to the stub
	// root) copied to a destination pattern inside the module.
	FileEntry struct {
		Destination string `json:"destination" mapstructure:"destination"`
		Stub        string `json:"stub" mapstructure:"stub"`
	}

	// ModuleEntry is one registered module with its options.
	ModuleEntry struct {
		Name ModuleName `json:"name" mapstructure:"name"`
		// Options holds active, provider, routes, routes_<type>, factory and seeder.
		Options map[string]any `json:"-" mapstructure:",remain"`
	}

	// Config holds the scaffolding configuration.
	Config struct {
		// Directory is where modules live, relative to the base directory.
		Directory ModulesDirectory `json:"directory" mapstructure:"directory"`
		// Namespace prefixes every generated namespace declaration.
		Namespace Namespace `json:"namespace" mapstructure:"namespace"`
		// StubsPath is the project stub directory; the built-in stubs are used when it is absent.
		StubsPath string `json:"stubs_path" mapstructure:"stubs_path"`
		// CachePath is where the cache manifest is written.
		CachePath string `json:"cache_path" mapstructure:"cache_path"`
		// FileChecks locates resources inside a module.
		FileChecks FileChecks `json:"file_checks" mapstructure:"file_checks"`
		// Submodule lists, in order, the module stubs generated for a submodule.
		Submodule []string `json:"submodule" mapstructure:"submodule"`
		// Files appends extra pairs to full-module generation.
		Files []FileEntry `json:"files" mapstructure:"files"`
		// Modules is the persisted registry.
		Modules []ModuleEntry `json:"modules" mapstructure:"modules"`

		// path is the file the configuration was read from; empty when defaults were used.
		path string
	}
)

// String returns the string representation of the Namespace.
func (n Namespace) String() string { return string(n) }

// IsValid returns whether the Namespace is non-empty and uses backslash separators.
func (n Namespace) IsValid() (bool, []error) {
	if strings.TrimSpace(string(n)) == "" || strings.Contains(string(n), "/") {
		return false, []error{&InvalidNamespaceError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidNamespaceError.
func (e *InvalidNamespaceError) Error() string {
	return fmt.Sprintf(`invalid namespace %q: must be non-empty and use \ separators`, e.Value)
}

// Unwrap returns ErrInvalidNamespace for errors.Is() compatibility.
func (e *InvalidNamespaceError) Unwrap() error { return ErrInvalidNamespace }

// String returns the string representation of the ModulesDirectory.
func (d ModulesDirectory) String() string { return string(d) }

// IsValid returns whether the ModulesDirectory is non-empty.
func (d ModulesDirectory) IsValid() (bool, []error) {
	if strings.TrimSpace(string(d)) == "" {
		return false, []error{&InvalidModulesDirectoryError{Value: d}}
	}
	return true, nil
}

// Error implements the error interface for InvalidModulesDirectoryError.
func (e *InvalidModulesDirectoryError) Error() string {
	return fmt.Sprintf("invalid modules directory %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidModulesDirectory for errors.Is() compatibility.
func (e *InvalidModulesDirectoryError) Unwrap() error { return ErrInvalidModulesDirectory }

// String returns the string representation of the ModuleName.
func (n ModuleName) String() string { return string(n) }

// IsValid returns whether the ModuleName is studly-cased (e.g. "Blog", "UserProfile")
// and usable as a directory name on every platform.
func (n ModuleName) IsValid() (bool, []error) {
	if !moduleNameRegex.MatchString(string(n)) {
		return false, []error{&InvalidModuleNameError{Value: n}}
	}
	if platform.IsWindowsReservedName(string(n)) {
		return false, []error{&InvalidModuleNameError{Value: n, Reserved: true}}
	}
	return true, nil
}

// Error implements the error interface for InvalidModuleNameError.
func (e *InvalidModuleNameError) Error() string {
	if e.Reserved {
		return fmt.Sprintf("invalid module name %q: reserved device name on Windows", e.Value)
	}
	return fmt.Sprintf("invalid module name %q: must start with an upper-case letter and contain only letters and digits", e.Value)
}

// Unwrap returns ErrInvalidModuleName for errors.Is() compatibility.
func (e *InvalidModuleNameError) Unwrap() error { return ErrInvalidModuleName }

// Error implements the error interface for DuplicateModuleError.
func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("module %q is registered more than once", e.Name)
}

// Unwrap returns ErrDuplicateModule for errors.Is() compatibility.
func (e *DuplicateModuleError) Unwrap() error { return ErrDuplicateModule }

// Error implements the error interface for InvalidFileEntryError.
func (e *InvalidFileEntryError) Error() string {
	return fmt.Sprintf("invalid file entry {destination: %q, stub: %q}: both fields are required", e.Entry.Destination, e.Entry.Stub)
}

// Unwrap returns ErrInvalidFileEntry for errors.Is() compatibility.
func (e *InvalidFileEntryError) Unwrap() error { return ErrInvalidFileEntry }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Pattern returns the file pattern configured for key, or "" for an unknown key.
func (f FileChecks) Pattern(key FileCheckKey) string {
	switch key {
	case FileCheckServiceProvider:
		return f.ServiceProvider
	case FileCheckRoute:
		return f.Route
	case FileCheckModelFactory:
		return f.ModelFactory
	case FileCheckDatabaseSeeder:
		return f.DatabaseSeeder
	default:
		return ""
	}
}

// IsValid returns whether both halves of the pair are set.
func (e FileEntry) IsValid() (bool, []error) {
	if strings.TrimSpace(e.Destination) == "" || strings.TrimSpace(e.Stub) == "" {
		return false, []error{&InvalidFileEntryError{Entry: e}}
	}
	return true, nil
}

// Path returns the file the configuration was read from, or "" when only
// defaults are in effect.
func (c *Config) Path() string {
	return c.path
}

// FindModule returns the registry entry whose name equals name.
func (c *Config) FindModule(name ModuleName) (ModuleEntry, bool) {
	i := slices.IndexFunc(c.Modules, func(m ModuleEntry) bool { return m.Name == name })
	if i < 0 {
		return ModuleEntry{}, false
	}
	return c.Modules[i], true
}

// IsValid returns whether the Config has valid fields and a registry without duplicates.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Directory.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Namespace.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, f := range c.Files {
		if valid, fieldErrs := f.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}

	seen := make(map[ModuleName]struct{}, len(c.Modules))
	for _, m := range c.Modules {
		if valid, fieldErrs := m.Name.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
			continue
		}
		if _, dup := seen[m.Name]; dup {
			errs = append(errs, &DuplicateModuleError{Name: m.Name})
			continue
		}
		seen[m.Name] = struct{}{}
	}

	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// NewModuleEntry returns the entry written when a module is generated:
// active, with routes enabled.
func NewModuleEntry(name ModuleName) ModuleEntry {
	return ModuleEntry{
		Name: name,
		Options: map[string]any{
			OptionActive: true,
			OptionRoutes: true,
		},
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Directory: "app/Modules",
		Namespace: `App\Modules`,
		StubsPath: "resources/stubs/modules",
		CachePath: "bootstrap/cache/modules.toml",
		FileChecks: FileChecks{
			ServiceProvider: "%class%ServiceProvider.php",
			Route:           "routes/%type%.php",
			ModelFactory:    "Database/Factories/%class%ModelFactory.php",
			DatabaseSeeder:  "Database/Seeds/%class%DatabaseSeeder.php",
		},
		Submodule: []string{
			"Http/Controllers/%class%Controller.php.stub",
			"Models/%class%.php.stub",
			"Database/Seeds/%class%DatabaseSeeder.php.stub",
			"Repositories/%class%Repository.php.stub",
		},
		Files:   []FileEntry{},
		Modules: []ModuleEntry{},
	}
}
