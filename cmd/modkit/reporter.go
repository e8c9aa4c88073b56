// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/modkit/modkit/internal/config"
)

// reporter prints the generator's creation log.
type reporter struct {
	out  io.Writer
	base string
}

func newReporter(out io.Writer, base string) *reporter {
	return &reporter{out: out, base: base}
}

func (r *reporter) DirectoryCreated(path string) {
	fmt.Fprintf(r.out, "%s %s\n", SubtitleStyle.Render("directory created:"), CmdStyle.Render(r.rel(path)))
}

func (r *reporter) FileCreated(path string) {
	fmt.Fprintf(r.out, "%s %s\n", SuccessStyle.Render("file created:"), CmdStyle.Render(r.rel(path)))
}

func (r *reporter) ModuleCreated(name string) {
	fmt.Fprintf(r.out, "%s %s\n", SuccessStyle.Render("✓"), TitleStyle.Render("Module "+name+" created"))
}

func (r *reporter) Warning(err error) {
	fmt.Fprintf(r.out, "%s %v\n", WarningStyle.Render("warning:"), err)

	var regErr *config.RegistrationError
	if errors.As(err, &regErr) {
		fmt.Fprintln(r.out, SubtitleStyle.Render("  Add this entry to the modules list by hand:"))
		fmt.Fprintf(r.out, "    %s\n", regErr.ManualEntry())
	}
}

// rel shows path relative to the project when it lies inside it.
func (r *reporter) rel(path string) string {
	if r.base == "" {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(r.base, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
