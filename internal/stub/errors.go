// SPDX-License-Identifier: MPL-2.0

package stub

import (
	"errors"
	"fmt"
)

var (
	// ErrStubNotFound is the sentinel error wrapped by StubNotFoundError.
	ErrStubNotFound = errors.New("stub not found")
	// ErrFileExists is the sentinel error wrapped by FileExistsError.
	ErrFileExists = errors.New("file already exists")
	// ErrUnknownMigrationType is the sentinel error wrapped by UnknownMigrationTypeError.
	ErrUnknownMigrationType = errors.New("unknown migration type")
)

type (
	// StubNotFoundError is returned when a planned stub is missing from the source.
	StubNotFoundError struct {
		Path   string
		Origin string
	}

	// FileExistsError is returned when a destination is already present.
	FileExistsError struct {
		Path string
	}

	// UnknownMigrationTypeError is returned when no migration stub exists for a type.
	UnknownMigrationTypeError struct {
		Type string
	}
)

// Error implements the error interface for StubNotFoundError.
func (e *StubNotFoundError) Error() string {
	return fmt.Sprintf("stub %s does not exist in %s", e.Path, e.Origin)
}

// Unwrap returns ErrStubNotFound for errors.Is() compatibility.
func (e *StubNotFoundError) Unwrap() error { return ErrStubNotFound }

// Error implements the error interface for FileExistsError.
func (e *FileExistsError) Error() string {
	return fmt.Sprintf("%s already exists", e.Path)
}

// Unwrap returns ErrFileExists for errors.Is() compatibility.
func (e *FileExistsError) Unwrap() error { return ErrFileExists }

// Error implements the error interface for UnknownMigrationTypeError.
func (e *UnknownMigrationTypeError) Error() string {
	return fmt.Sprintf("there is no [%s] type for migrations", e.Type)
}

// Unwrap returns ErrUnknownMigrationType for errors.Is() compatibility.
func (e *UnknownMigrationTypeError) Unwrap() error { return ErrUnknownMigrationType }
