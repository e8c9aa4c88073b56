// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/modkit/modkit/internal/config"
	"github.com/modkit/modkit/internal/generator"
	"github.com/modkit/modkit/internal/issue"
	"github.com/modkit/modkit/internal/module"
	"github.com/modkit/modkit/internal/stub"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		// Test binaries report Main.Version == "(devel)".
		Version = "dev"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("%w: config/modules.cue", config.ErrConfigNotFound)
	actionable := issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource("config/modules.cue").
		WithSuggestion("Run 'modkit init'").
		Wrap(cause).
		BuildError()

	got := formatErrorForDisplay(actionable, false)
	if !strings.Contains(got, "failed to load configuration") || !strings.Contains(got, "Run 'modkit init'") {
		t.Errorf("formatErrorForDisplay() = %q", got)
	}
	if strings.Contains(got, "Error chain") {
		t.Errorf("non-verbose output has error chain: %q", got)
	}
	if got := formatErrorForDisplay(actionable, true); !strings.Contains(got, "Error chain") {
		t.Errorf("verbose output lacks error chain: %q", got)
	}

	plain := errors.New("boom")
	if got := formatErrorForDisplay(plain, true); got != "boom" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}
}

func TestIssueFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"config missing", fmt.Errorf("load: %w", config.ErrConfigNotFound), issue.ConfigNotFoundId},
		{"config invalid", &config.InvalidConfigError{}, issue.ConfigInvalidId},
		{"stub missing", &stub.StubNotFoundError{Path: "x.stub"}, issue.StubNotFoundId},
		{"module missing", &module.NotFoundError{Name: "Blog"}, issue.ModuleNotFoundId},
		{"module exists", &generator.ModuleExistsError{Name: "Blog"}, issue.ModuleExistsId},
		{"file exists", fmt.Errorf("create module Blog: %w", &stub.FileExistsError{Path: "a"}), issue.FileExistsId},
		{"registration", &config.RegistrationError{Module: "Blog", Err: errors.New("io")}, issue.RegistrationFailedId},
		{"cache write", fmt.Errorf("%w: disk full", errCacheWrite), issue.CacheWriteFailedId},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := issueFor(tt.err)
			if got == nil || got.Id() != tt.want {
				t.Errorf("issueFor(%v) = %v, want id %d", tt.err, got, tt.want)
			}
		})
	}

	if got := issueFor(errors.New("unrelated")); got != nil {
		t.Errorf("issueFor(unrelated) = %v, want nil", got)
	}
}

func TestRenderError(t *testing.T) {
	t.Parallel()

	app := NewApp(Dependencies{})

	var silent bytes.Buffer
	app.renderError(&silent, &ExitError{Code: 1})
	if silent.Len() != 0 {
		t.Errorf("bare ExitError rendered %q", silent.String())
	}

	var out bytes.Buffer
	app.renderError(&out, &module.NotFoundError{Name: "Nope"})
	if !strings.Contains(out.String(), "module Nope does not exist") {
		t.Errorf("renderError() = %q", out.String())
	}
	firstLine, guide, _ := strings.Cut(out.String(), "\n")
	if strings.TrimSpace(guide) == "" {
		t.Errorf("renderError() did not include the issue guide after %q", firstLine)
	}
}
