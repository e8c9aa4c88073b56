// SPDX-License-Identifier: MPL-2.0

package module

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/modkit/modkit/internal/config"
	"github.com/modkit/modkit/internal/naming"
)

// ErrModuleNotFound is the sentinel error wrapped by NotFoundError.
var ErrModuleNotFound = errors.New("module not found")

// NotFoundError is returned when a module name does not resolve in the registry.
type NotFoundError struct {
	Name string
}

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("module %s does not exist", e.Name)
}

// Unwrap returns ErrModuleNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrModuleNotFound }

// Registry enumerates and classifies the modules registered in a Config.
// Modules are built on first access and kept for the registry's lifetime.
type Registry struct {
	cfg     *config.Config
	baseDir string

	once    sync.Once
	modules []*Module
}

// NewRegistry creates a registry over cfg with paths resolved against baseDir.
func NewRegistry(cfg *config.Config, baseDir string) *Registry {
	return &Registry{cfg: cfg, baseDir: baseDir}
}

// Config returns the configuration the registry was built from.
func (r *Registry) Config() *config.Config {
	return r.cfg
}

// BaseDir returns the project base directory.
func (r *Registry) BaseDir() string {
	return r.baseDir
}

// Load materializes the module list. It is safe to call repeatedly; only the
// first call reads the configuration.
func (r *Registry) Load() {
	r.once.Do(func() {
		r.modules = make([]*Module, 0, len(r.cfg.Modules))
		for _, entry := range r.cfg.Modules {
			r.modules = append(r.modules, New(string(entry.Name), entry.Options, r.cfg, r.baseDir))
		}
	})
}

// All returns every registered module in configuration order.
func (r *Registry) All() []*Module {
	r.Load()
	return slices.Clone(r.modules)
}

// Active returns the modules whose active option is not false.
func (r *Registry) Active() []*Module {
	return r.filter(func(*Module) bool { return true })
}

// Find returns the module registered under the studly form of name.
func (r *Registry) Find(name string) (*Module, bool) {
	r.Load()
	want := naming.Studly(name)
	i := slices.IndexFunc(r.modules, func(m *Module) bool { return m.Name() == want })
	if i < 0 {
		return nil, false
	}
	return r.modules[i], true
}

// Exists reports whether name resolves to a registered module.
func (r *Registry) Exists(name string) bool {
	_, ok := r.Find(name)
	return ok
}

// MustFind is Find returning a NotFoundError for unknown names.
func (r *Registry) MustFind(name string) (*Module, error) {
	if m, ok := r.Find(name); ok {
		return m, nil
	}
	return nil, &NotFoundError{Name: naming.Studly(name)}
}

// WithServiceProviders returns active modules that provide a service provider.
func (r *Registry) WithServiceProviders() []*Module {
	return r.filter((*Module).HasServiceProvider)
}

// WithRoutes returns active modules that provide routes of routeType.
func (r *Registry) WithRoutes(routeType string) []*Module {
	return r.filter(func(m *Module) bool { return m.HasRoutes(routeType) })
}

// WithFactories returns active modules that provide a model factory.
func (r *Registry) WithFactories() []*Module {
	return r.filter((*Module).HasFactory)
}

// WithSeeders returns active modules that provide a database seeder.
func (r *Registry) WithSeeders() []*Module {
	return r.filter((*Module).HasSeeder)
}

// MigrationPaths returns the migrations directory of every active module.
func (r *Registry) MigrationPaths() []string {
	active := r.Active()
	paths := make([]string, 0, len(active))
	for _, m := range active {
		paths = append(paths, m.MigrationsPath(false))
	}
	return paths
}

// ServiceProviderClasses returns the provider classes of WithServiceProviders.
func (r *Registry) ServiceProviderClasses() []string {
	mods := r.WithServiceProviders()
	classes := make([]string, 0, len(mods))
	for _, m := range mods {
		classes = append(classes, m.ServiceProviderClass())
	}
	return classes
}

func (r *Registry) filter(keep func(*Module) bool) []*Module {
	r.Load()
	var out []*Module
	for _, m := range r.modules {
		if m.Active() && keep(m) {
			out = append(out, m)
		}
	}
	return out
}
