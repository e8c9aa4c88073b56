// SPDX-License-Identifier: MPL-2.0

package stub

import (
	"path"
	"strings"
)

// Pair maps a stub (slash path relative to the stub root) to a destination
// pattern relative to the module directory. Destinations may contain %key% tokens.
type Pair struct {
	Stub        string
	Destination string
}

// ModulePlan returns the full-module file set: every stub under module/ with
// its relative path (minus the suffix) as destination, then extra in order.
func (s *Source) ModulePlan(extra ...Pair) ([]Pair, error) {
	names, err := s.Stubs(ModuleDir)
	if err != nil {
		return nil, err
	}

	pairs := make([]Pair, 0, len(names)+len(extra))
	for _, name := range names {
		rel := strings.TrimPrefix(name, ModuleDir+"/")
		pairs = append(pairs, Pair{Stub: name, Destination: strings.TrimSuffix(rel, Suffix)})
	}
	return append(pairs, extra...), nil
}

// SubmodulePlan maps each entry (a stub path relative to module/) to a pair.
// An override under submodule/ is preferred when present.
func (s *Source) SubmodulePlan(entries []string) []Pair {
	pairs := make([]Pair, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimPrefix(path.Clean("/"+entry), "/")
		stubPath := path.Join(SubmoduleDir, entry)
		if !s.Exists(stubPath) {
			stubPath = path.Join(ModuleDir, entry)
		}
		pairs = append(pairs, Pair{Stub: stubPath, Destination: strings.TrimSuffix(entry, Suffix)})
	}
	return pairs
}

// Validate reports the first pair whose stub is missing from s.
func (s *Source) Validate(pairs []Pair) error {
	for _, p := range pairs {
		if !s.Exists(p.Stub) {
			return &StubNotFoundError{Path: p.Stub, Origin: s.origin}
		}
	}
	return nil
}

// MigrationStub returns the stub for a migration type; an empty type selects
// the plain migration stub.
func (s *Source) MigrationStub(migrationType string) (string, error) {
	name := "migration"
	if migrationType != "" {
		name += "_" + migrationType
	}
	stubPath := path.Join(MigrationsDir, name+".php"+Suffix)
	if !s.Exists(stubPath) {
		return "", &UnknownMigrationTypeError{Type: migrationType}
	}
	return stubPath, nil
}
