// SPDX-License-Identifier: MPL-2.0

package module

import (
	"maps"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/modkit/modkit/internal/config"
	"github.com/modkit/modkit/internal/replacer"
)

const (
	// DefaultRouteType is the route type checked when none is given.
	DefaultRouteType = "web"
	// MigrationsDir is the migrations directory inside a module.
	MigrationsDir = "Database/Migrations"
)

// Module is a registered module resolved against the project configuration.
type Module struct {
	name    string
	options map[string]any
	cfg     *config.Config
	baseDir string
	engine  *replacer.Engine
}

// New creates a Module. name is expected to be studly-cased already.
func New(name string, options map[string]any, cfg *config.Config, baseDir string) *Module {
	if options == nil {
		options = map[string]any{}
	}
	return &Module{
		name:    name,
		options: options,
		cfg:     cfg,
		baseDir: baseDir,
		engine:  replacer.New(string(cfg.Namespace)),
	}
}

// Name returns the studly-cased module name.
func (m *Module) Name() string {
	return m.name
}

// Options returns a copy of the module's options.
func (m *Module) Options() map[string]any {
	return maps.Clone(m.options)
}

// RelativeDirectory returns the module directory relative to the project base,
// slash-separated.
func (m *Module) RelativeDirectory() string {
	return path.Join(filepath.ToSlash(string(m.cfg.Directory)), m.name)
}

// Directory returns the module directory resolved against the base directory.
func (m *Module) Directory() string {
	return config.Resolve(m.baseDir, filepath.FromSlash(m.RelativeDirectory()))
}

// Active reports whether the module participates in any hook. Unset means active.
func (m *Module) Active() bool {
	v, ok := m.options[config.OptionActive]
	if !ok {
		return true
	}
	return truthy(v)
}

// HasServiceProvider reports whether the module provides a service provider.
func (m *Module) HasServiceProvider() bool {
	return m.has(config.FileCheckServiceProvider, "", config.OptionProvider)
}

// HasRoutes reports whether the module provides routes of routeType ("web" when empty).
// A routes_<type> option wins over routes, which wins over the file probe.
func (m *Module) HasRoutes(routeType string) bool {
	if routeType == "" {
		routeType = DefaultRouteType
	}
	return m.has(config.FileCheckRoute, routeType, config.OptionRoutes+"_"+routeType, config.OptionRoutes)
}

// HasFactory reports whether the module provides a model factory.
func (m *Module) HasFactory() bool {
	return m.has(config.FileCheckModelFactory, "", config.OptionFactory)
}

// HasSeeder reports whether the module provides a database seeder.
func (m *Module) HasSeeder() bool {
	return m.has(config.FileCheckDatabaseSeeder, "", config.OptionSeeder)
}

// FilePath returns the absolute path a file check resolves to for this module.
func (m *Module) FilePath(key config.FileCheckKey, routeType string) string {
	return filepath.Join(m.Directory(), filepath.FromSlash(m.relativeFile(key, routeType)))
}

// ServiceProviderClass returns the fully qualified service provider class.
func (m *Module) ServiceProviderClass() string {
	return m.fileClass(config.FileCheckServiceProvider, "")
}

// SeederClass returns the fully qualified seeder class. An empty class uses
// the name from the seeder file check.
func (m *Module) SeederClass(class string) string {
	return m.fileClass(config.FileCheckDatabaseSeeder, class)
}

// RoutingControllerNamespace returns the namespace route files resolve controllers in.
func (m *Module) RoutingControllerNamespace() string {
	return m.namespace() + `\` + m.name + `\Http\Controllers`
}

// MigrationsPath returns the module's migrations directory, relative to the
// module when relative is set and absolute otherwise.
func (m *Module) MigrationsPath(relative bool) string {
	if relative {
		return MigrationsDir
	}
	return filepath.Join(m.Directory(), filepath.FromSlash(MigrationsDir))
}

// has resolves a resource: the first option present decides, otherwise the
// file-check pattern is probed on disk.
func (m *Module) has(key config.FileCheckKey, routeType string, options ...string) bool {
	for _, opt := range options {
		if v, ok := m.options[opt]; ok {
			return truthy(v)
		}
	}
	if m.cfg.FileChecks.Pattern(key) == "" {
		return false
	}
	_, err := os.Stat(m.FilePath(key, routeType))
	return err == nil
}

func (m *Module) relativeFile(key config.FileCheckKey, routeType string) string {
	var overrides replacer.Replacements
	if routeType != "" {
		overrides = replacer.Replacements{replacer.KeyType: routeType}
	}
	return m.engine.Replace(m.cfg.FileChecks.Pattern(key), m.name, overrides, replacer.Path)
}

// fileClass derives a class name from the file-check path: the path's
// directories become namespace segments below the configured namespace.
func (m *Module) fileClass(key config.FileCheckKey, class string) string {
	rel := path.Join(m.name, m.relativeFile(key, ""))
	dir, file := path.Split(rel)
	if class == "" {
		class = strings.TrimSuffix(file, path.Ext(file))
	}
	segments := strings.ReplaceAll(strings.Trim(dir, "/"), "/", `\`)
	return m.namespace() + `\` + segments + `\` + class
}

func (m *Module) namespace() string {
	return strings.TrimRight(string(m.cfg.Namespace), `\`)
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true" || b == "1"
	case int:
		return b != 0
	case int64:
		return b != 0
	case float64:
		return b != 0
	default:
		return v != nil
	}
}
