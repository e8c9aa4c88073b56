// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "build cache"},
			expected: "failed to build cache",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "create module", Resource: "Blog"},
			expected: "failed to create module: Blog",
		},
		{
			name:     "operation with cause",
			err:      &ActionableError{Operation: "load configuration", Cause: errors.New("bad syntax")},
			expected: "failed to load configuration: bad syntax",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "load configuration",
				Resource:  "config/modules.cue",
				Cause:     errors.New("file not found"),
			},
			expected: "failed to load configuration: config/modules.cue: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	err := NewErrorContext().WithOperation("op").Wrap(sentinel).BuildError()

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is(err, sentinel) = false, want true")
	}

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("errors.As(err, *ActionableError) = false")
	}
	if ae.Operation != "op" {
		t.Errorf("Operation = %q, want %q", ae.Operation, "op")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("permission denied")
	err := &ActionableError{
		Operation:   "write file",
		Resource:    "app/Modules/Blog/routes/web.php",
		Suggestions: []string{"Check directory permissions", "Run again"},
		Cause:       errors.Join(inner),
	}

	short := err.Format(false)
	if !strings.Contains(short, "  • Check directory permissions") {
		t.Errorf("Format(false) missing suggestion bullet:\n%s", short)
	}
	if strings.Contains(short, "Error chain:") {
		t.Errorf("Format(false) should not include the error chain:\n%s", short)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("Format(true) missing error chain:\n%s", verbose)
	}
	if !strings.Contains(verbose, "1. permission denied") {
		t.Errorf("Format(true) missing first chain entry:\n%s", verbose)
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	t.Parallel()

	if ae := NewErrorContext().WithResource("x").Build(); ae != nil {
		t.Errorf("Build() = %v, want nil", ae)
	}
	if err := NewErrorContext().Wrap(errors.New("x")).BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want nil", err)
	}
}

func TestErrorContext_Suggestions(t *testing.T) {
	t.Parallel()

	ae := NewErrorContext().
		WithOperation("publish stubs").
		WithSuggestion("one").
		WithSuggestions("two", "three").
		Build()

	if !ae.HasSuggestions() {
		t.Fatal("HasSuggestions() = false")
	}
	if got := strings.Join(ae.Suggestions, ","); got != "one,two,three" {
		t.Errorf("Suggestions = %q, want %q", got, "one,two,three")
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if err := WrapWithContext(nil, "op", "res"); err != nil {
		t.Errorf("WrapWithContext(nil) = %v, want nil", err)
	}

	err := WrapWithContext(errors.New("boom"), "clear cache", "bootstrap/cache/modules.toml")
	if got := err.Error(); got != "failed to clear cache: bootstrap/cache/modules.toml: boom" {
		t.Errorf("Error() = %q", got)
	}
}
