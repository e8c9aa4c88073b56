// SPDX-License-Identifier: MPL-2.0

package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"time"

	"github.com/modkit/modkit/internal/config"
	"github.com/modkit/modkit/internal/module"
	"github.com/modkit/modkit/internal/naming"
	"github.com/modkit/modkit/internal/replacer"
	"github.com/modkit/modkit/internal/stub"

	"github.com/charmbracelet/log"
)

// MigrationTimeFormat prefixes migration file names.
const MigrationTimeFormat = "2006_01_02_150405"

var (
	// ErrModuleExists is the sentinel error wrapped by ModuleExistsError.
	ErrModuleExists = errors.New("module already exists")
	// ErrMigrationOptions is returned when only one of type and table is given.
	ErrMigrationOptions = errors.New("use both --type and --table when using either of them")
	// ErrNoNames is returned when a batch command gets no usable names.
	ErrNoNames = errors.New("no names given")
	// ErrInvalidMigrationName is the sentinel error wrapped by InvalidMigrationNameError.
	ErrInvalidMigrationName = errors.New("invalid migration name")

	migrationNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_ -]*$`)
)

type (
	// ModuleExistsError is reported for a module that is registered or whose
	// directory is already present.
	ModuleExistsError struct {
		Name       string
		Directory  string
		Registered bool
	}

	// InvalidMigrationNameError is returned for a migration name that is not
	// made of letters, digits and word separators.
	InvalidMigrationNameError struct {
		Name string
	}

	// Reporter receives progress from a Generator.
	Reporter interface {
		stub.Reporter
		ModuleCreated(name string)
		Warning(err error)
	}

	// Options configures a Generator.
	Options struct {
		Config   *config.Config
		BaseDir  string
		Registry *module.Registry
		Stubs    *stub.Source
		Reporter Reporter
		Logger   *log.Logger
		// Now stamps migration file names; nil uses time.Now.
		Now func() time.Time
	}

	// Generator creates modules, submodule files and migrations.
	Generator struct {
		cfg      *config.Config
		baseDir  string
		registry *module.Registry
		stubs    *stub.Source
		writer   *stub.Writer
		reporter Reporter
		logger   *log.Logger
		now      func() time.Time
	}

	// BatchResult summarizes a CreateModules run.
	BatchResult struct {
		// Created lists modules whose files were written.
		Created []string
		// Errors holds per-name failures that did not stop the batch.
		Errors []error
		// Warnings holds registrations that must be finished by hand.
		Warnings []error
	}

	// MigrationRequest describes one migration to generate.
	MigrationRequest struct {
		Module string
		Name   string
		Type   string
		Table  string
	}

	nopReporter struct{}
)

// Error implements the error interface for ModuleExistsError.
func (e *ModuleExistsError) Error() string {
	if e.Registered {
		return fmt.Sprintf("module %s already exists in the registry", e.Name)
	}
	return fmt.Sprintf("module %s already exists at %s", e.Name, e.Directory)
}

// Unwrap returns ErrModuleExists for errors.Is() compatibility.
func (e *ModuleExistsError) Unwrap() error { return ErrModuleExists }

// Error implements the error interface for InvalidMigrationNameError.
func (e *InvalidMigrationNameError) Error() string {
	return fmt.Sprintf("invalid migration name %q: use letters, digits, spaces, '-' or '_', starting with a letter", e.Name)
}

// Unwrap returns ErrInvalidMigrationName for errors.Is() compatibility.
func (e *InvalidMigrationNameError) Unwrap() error { return ErrInvalidMigrationName }

func (nopReporter) DirectoryCreated(string) {}
func (nopReporter) FileCreated(string)      {}
func (nopReporter) ModuleCreated(string)    {}
func (nopReporter) Warning(error)           {}

// New creates a Generator. Missing optional fields get defaults: a registry
// over Config, the stub tree named by Config.StubsPath, a silent reporter and
// a discarding logger.
func New(opts Options) *Generator {
	g := &Generator{
		cfg:      opts.Config,
		baseDir:  opts.BaseDir,
		registry: opts.Registry,
		stubs:    opts.Stubs,
		reporter: opts.Reporter,
		logger:   opts.Logger,
		now:      opts.Now,
	}
	if g.registry == nil {
		g.registry = module.NewRegistry(g.cfg, g.baseDir)
	}
	if g.stubs == nil {
		g.stubs = stub.Open(config.Resolve(g.baseDir, g.cfg.StubsPath))
	}
	if g.reporter == nil {
		g.reporter = nopReporter{}
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.now == nil {
		g.now = time.Now
	}
	g.writer = stub.NewWriter(g.stubs, replacer.New(string(g.cfg.Namespace)), g.reporter)
	return g
}

// Stubs returns the stub tree in use.
func (g *Generator) Stubs() *stub.Source {
	return g.stubs
}

// CreateModules generates and registers each module in names. Names are
// studly-cased and deduplicated. A module that already exists is recorded in
// the result and skipped; a failure while writing files aborts the batch.
// A failed registration becomes a warning.
func (g *Generator) CreateModules(ctx context.Context, names ...string) (*BatchResult, error) {
	names = naming.Unique(names)
	if len(names) == 0 {
		return nil, ErrNoNames
	}

	pairs, err := g.modulePlan()
	if err != nil {
		return nil, err
	}
	g.logger.Debug("resolved module stubs", "origin", g.stubs.Origin(), "files", len(pairs))

	res := &BatchResult{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if valid, errs := config.ModuleName(name).IsValid(); !valid {
			res.Errors = append(res.Errors, errs...)
			continue
		}

		m := module.New(name, nil, g.cfg, g.baseDir)
		if existsErr := g.checkNew(m); existsErr != nil {
			g.logger.Debug("skipping module", "module", name, "reason", existsErr)
			res.Errors = append(res.Errors, existsErr)
			continue
		}

		if _, err := g.writer.Write(m.Directory(), name, pairs, nil); err != nil {
			return res, fmt.Errorf("create module %s: %w", name, err)
		}
		res.Created = append(res.Created, name)
		g.reporter.ModuleCreated(name)

		if err := g.register(name); err != nil {
			g.logger.Warn("module not registered", "module", name, "err", err)
			res.Warnings = append(res.Warnings, err)
			g.reporter.Warning(err)
		}
	}
	return res, nil
}

// CreateSubmodules writes the submodule file set into an existing module once
// per name, with the class token bound to that name.
func (g *Generator) CreateSubmodules(ctx context.Context, moduleName string, names ...string) ([]string, error) {
	m, err := g.registry.MustFind(moduleName)
	if err != nil {
		return nil, err
	}
	names = naming.Unique(names)
	if len(names) == 0 {
		return nil, ErrNoNames
	}

	for _, name := range names {
		if valid, errs := config.ModuleName(name).IsValid(); !valid {
			return nil, errs[0]
		}
	}

	pairs := g.stubs.SubmodulePlan(g.cfg.Submodule)
	if err := g.stubs.Validate(pairs); err != nil {
		return nil, err
	}
	g.logger.Debug("resolved submodule stubs", "module", m.Name(), "origin", g.stubs.Origin(), "files", len(pairs))

	var created []string
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		files, err := g.writer.Write(m.Directory(), m.Name(), pairs, replacer.Replacements{replacer.KeyClass: name})
		created = append(created, files...)
		if err != nil {
			return created, fmt.Errorf("create %s files in module %s: %w", name, m.Name(), err)
		}
	}
	return created, nil
}

// CreateMigration writes one migration into a module's migrations directory
// and returns its path.
func (g *Generator) CreateMigration(ctx context.Context, req MigrationRequest) (string, error) {
	if (req.Type == "") != (req.Table == "") {
		return "", ErrMigrationOptions
	}
	if !migrationNameRegex.MatchString(req.Name) {
		return "", &InvalidMigrationNameError{Name: req.Name}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m, err := g.registry.MustFind(req.Module)
	if err != nil {
		return "", err
	}
	stubPath, err := g.stubs.MigrationStub(req.Type)
	if err != nil {
		return "", err
	}

	filename := MigrationFileName(g.now(), req.Name)
	pair := stub.Pair{Stub: stubPath, Destination: path.Join(module.MigrationsDir, filename)}
	overrides := replacer.Replacements{
		replacer.KeyMigrationClass: naming.Studly(req.Name),
		replacer.KeyTable:          req.Table,
	}

	files, err := g.writer.Write(m.Directory(), m.Name(), []stub.Pair{pair}, overrides)
	if err != nil {
		return "", fmt.Errorf("create migration in module %s: %w", m.Name(), err)
	}
	g.logger.Debug("created migration", "module", m.Name(), "file", filename)
	return files[0], nil
}

// PublishStubs copies the builtin stub tree into dir for customization.
func (g *Generator) PublishStubs(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.logger.Debug("publishing stubs", "dir", dir)
	return stub.Builtin().CopyTo(dir, g.reporter)
}

// MigrationFileName returns "<timestamp>_<snake name>.php" for t and name.
func MigrationFileName(t time.Time, name string) string {
	return t.Format(MigrationTimeFormat) + "_" + naming.Snake(name) + ".php"
}

func (g *Generator) modulePlan() ([]stub.Pair, error) {
	extra := make([]stub.Pair, 0, len(g.cfg.Files))
	for _, f := range g.cfg.Files {
		extra = append(extra, stub.Pair{Stub: f.Stub, Destination: f.Destination})
	}
	pairs, err := g.stubs.ModulePlan(extra...)
	if err != nil {
		return nil, err
	}
	if err := g.stubs.Validate(pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

func (g *Generator) checkNew(m *module.Module) error {
	if g.registry.Exists(m.Name()) {
		return &ModuleExistsError{Name: m.Name(), Directory: m.Directory(), Registered: true}
	}
	if _, err := os.Stat(m.Directory()); err == nil {
		return &ModuleExistsError{Name: m.Name(), Directory: m.Directory()}
	}
	return nil
}

func (g *Generator) register(name string) error {
	if g.cfg.Path() == "" {
		return &config.RegistrationError{Module: config.ModuleName(name), Err: config.ErrConfigNotFound}
	}
	return config.RegisterModule(g.cfg.Path(), config.NewModuleEntry(config.ModuleName(name)))
}
