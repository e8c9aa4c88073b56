// SPDX-License-Identifier: MPL-2.0

package stub

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/modkit/modkit/internal/replacer"
)

type (
	// Reporter is notified of every directory and file the writer creates.
	Reporter interface {
		DirectoryCreated(path string)
		FileCreated(path string)
	}

	// Writer renders planned stubs into a module directory.
	Writer struct {
		source   *Source
		engine   *replacer.Engine
		reporter Reporter
	}

	nopReporter struct{}
)

// NopReporter discards all notifications.
var NopReporter Reporter = nopReporter{}

func (nopReporter) DirectoryCreated(string) {}
func (nopReporter) FileCreated(string)      {}

// NewWriter creates a Writer. A nil reporter is replaced by NopReporter.
func NewWriter(source *Source, engine *replacer.Engine, reporter Reporter) *Writer {
	if reporter == nil {
		reporter = NopReporter
	}
	return &Writer{source: source, engine: engine, reporter: reporter}
}

// Source returns the stub tree the writer reads from.
func (w *Writer) Source() *Source {
	return w.source
}

// Write renders pairs in order into moduleDir for moduleName. Overrides are
// merged over the module's default tokens for both paths and contents.
// Every stub and destination is checked before the first write, so a missing
// stub or an existing destination leaves the disk untouched. It returns the
// files created.
func (w *Writer) Write(moduleDir, moduleName string, pairs []Pair, overrides replacer.Replacements) ([]string, error) {
	if err := w.source.Validate(pairs); err != nil {
		return nil, err
	}
	dests := make([]string, len(pairs))
	for i, p := range pairs {
		rel := w.engine.Replace(p.Destination, moduleName, overrides, replacer.Path)
		dests[i] = filepath.Join(moduleDir, filepath.FromSlash(rel))
		if _, err := os.Lstat(dests[i]); err == nil {
			return nil, &FileExistsError{Path: dests[i]}
		}
	}

	var created []string
	for i, p := range pairs {
		if err := mkdirReported(filepath.Dir(dests[i]), w.reporter); err != nil {
			return created, err
		}

		data, err := w.source.Read(p.Stub)
		if err != nil {
			return created, err
		}
		content := w.engine.Replace(string(data), moduleName, overrides, replacer.Content)

		if err := writeNew(dests[i], []byte(content)); err != nil {
			return created, err
		}
		created = append(created, dests[i])
		w.reporter.FileCreated(dests[i])
	}
	return created, nil
}

// writeNew creates dest with data, failing with FileExistsError when dest
// is already present.
func writeNew(dest string, data []byte) error {
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return &FileExistsError{Path: dest}
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}
	return nil
}

// mkdirReported creates dir and any missing parents, reporting each new
// directory from the outermost in.
func mkdirReported(dir string, r Reporter) error {
	var missing []string
	for d := dir; ; d = filepath.Dir(d) {
		if _, err := os.Stat(d); err == nil {
			break
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", d, err)
		}
		missing = append(missing, d)
		if parent := filepath.Dir(d); parent == d {
			break
		}
	}
	if len(missing) == 0 {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	slices.Reverse(missing)
	for _, d := range missing {
		r.DirectoryCreated(d)
	}
	return nil
}
