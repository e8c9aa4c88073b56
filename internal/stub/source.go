// SPDX-License-Identifier: MPL-2.0

package stub

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

const (
	// Suffix marks a file as a stub; other files in the stub tree are ignored.
	Suffix = ".stub"
	// IgnoreFile lists, in gitignore syntax, stub paths that are never generated.
	IgnoreFile = ".stubignore"

	// ModuleDir holds the full-module stub tree.
	ModuleDir = "module"
	// SubmoduleDir holds submodule-specific overrides of module stubs.
	SubmoduleDir = "submodule"
	// MigrationsDir holds the migration stubs.
	MigrationsDir = "migrations"

	// BuiltinOrigin is reported as the origin of the embedded stub set.
	BuiltinOrigin = "builtin"
)

//go:embed all:stubs
var builtinStubs embed.FS

// Source is a read-only stub tree.
type Source struct {
	fsys   fs.FS
	origin string
	ignore *ignore.GitIgnore
}

// Builtin returns the stub set compiled into the binary.
func Builtin() *Source {
	sub, err := fs.Sub(builtinStubs, "stubs")
	if err != nil {
		panic(fmt.Sprintf("embedded stubs: %v", err))
	}
	return NewSource(sub, BuiltinOrigin)
}

// Open returns the stub tree at dir, or the builtin set when dir is not a directory.
func Open(dir string) *Source {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return NewSource(os.DirFS(dir), dir)
	}
	return Builtin()
}

// NewSource wraps fsys. A .stubignore file at its root is honoured.
func NewSource(fsys fs.FS, origin string) *Source {
	return &Source{
		fsys:   fsys,
		origin: origin,
		ignore: loadIgnore(fsys),
	}
}

// Origin returns the directory the stubs come from, or BuiltinOrigin.
func (s *Source) Origin() string {
	return s.origin
}

// IsBuiltin reports whether s is the embedded stub set.
func (s *Source) IsBuiltin() bool {
	return s.origin == BuiltinOrigin
}

// Exists reports whether name (slash-separated, relative to the root) is a regular file.
func (s *Source) Exists(name string) bool {
	info, err := fs.Stat(s.fsys, name)
	return err == nil && info.Mode().IsRegular()
}

// Read returns the contents of the stub at name.
func (s *Source) Read(name string) ([]byte, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &StubNotFoundError{Path: name, Origin: s.origin}
	}
	return data, err
}

// Ignored reports whether name matches a .stubignore pattern.
func (s *Source) Ignored(name string) bool {
	return s.ignore != nil && s.ignore.MatchesPath(name)
}

// Stubs returns every generatable stub below dir in lexical order. Files
// without the stub suffix, ignored paths and symlinks are skipped.
func (s *Source) Stubs(dir string) ([]string, error) {
	var names []string
	err := fs.WalkDir(s.fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() || path.Ext(p) != Suffix || s.Ignored(p) {
			return nil
		}
		names = append(names, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan stubs in %s: %w", path.Join(s.origin, dir), err)
	}
	return names, nil
}

// CopyTo copies every file of s into dir, keeping the tree layout. Existing
// files are never overwritten.
func (s *Source) CopyTo(dir string, r Reporter) error {
	return fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		dest := filepath.Join(dir, filepath.FromSlash(p))
		if d.IsDir() {
			return mkdirReported(dest, r)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		data, err := fs.ReadFile(s.fsys, p)
		if err != nil {
			return err
		}
		if err := writeNew(dest, data); err != nil {
			return err
		}
		r.FileCreated(dest)
		return nil
	})
}

func loadIgnore(fsys fs.FS) *ignore.GitIgnore {
	data, err := fs.ReadFile(fsys, IgnoreFile)
	if err != nil {
		return nil
	}

	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return ignore.CompileIgnoreLines(lines...)
}
