// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// scriptCoverageExemptions lists leaf commands that testscript cannot drive,
// with where they are tested instead.
var scriptCoverageExemptions = map[string]string{
	"cache watch": "blocks until interrupted; covered by TestCacheWatch and internal/watch",
}

// TestCommandScriptCoverage verifies that every non-hidden, runnable leaf
// command is exercised by at least one script in testdata/script.
func TestCommandScriptCoverage(t *testing.T) {
	t.Parallel()

	rootCmd := NewRootCommand(NewApp(Dependencies{}))
	commands, aliasMap := collectLeafCommands(rootCmd)
	covered := scanScriptCoverage(t, scriptDir, commands, aliasMap)

	var uncovered []string
	for cmdPath := range commands {
		if _, exempt := scriptCoverageExemptions[cmdPath]; exempt {
			continue
		}
		if !covered[cmdPath] {
			uncovered = append(uncovered, cmdPath)
		}
	}
	slices.Sort(uncovered)
	for _, cmdPath := range uncovered {
		t.Errorf("uncovered command: %q has no script in %s", cmdPath, scriptDir)
	}
}

// collectLeafCommands returns the set of leaf command paths and a mapping
// from alias paths to canonical paths (e.g., "mod ls" -> "module list").
func collectLeafCommands(root *cobra.Command) (commands map[string]bool, aliasMap map[string]string) {
	commands = make(map[string]bool)
	aliasMap = make(map[string]string)
	walkCobraTree(root, "", commands, aliasMap)
	return
}

func walkCobraTree(cmd *cobra.Command, prefix string, commands map[string]bool, aliasMap map[string]string) {
	for _, child := range cmd.Commands() {
		if child.Hidden {
			continue
		}

		childPath := child.Name()
		if prefix != "" {
			childPath = prefix + " " + child.Name()
		}

		for _, alias := range child.Aliases {
			aliasPath := alias
			if prefix != "" {
				aliasPath = prefix + " " + alias
			}
			aliasMap[aliasPath] = childPath
		}

		visibleChildren := 0
		for _, grandchild := range child.Commands() {
			if !grandchild.Hidden {
				visibleChildren++
			}
		}

		// Routing nodes only fall back to help and need no coverage of their own.
		if visibleChildren == 0 && (child.RunE != nil || child.Run != nil) {
			commands[childPath] = true
		}

		walkCobraTree(child, childPath, commands, aliasMap)
	}
}

// scanScriptCoverage collects the command paths invoked by `exec modkit ...`
// and `! exec modkit ...` lines of every .txtar file in dir.
func scanScriptCoverage(t *testing.T, dir string, knownCommands map[string]bool, aliasMap map[string]string) map[string]bool {
	t.Helper()
	covered := make(map[string]bool)
	execRe := regexp.MustCompile(`^!?\s*exec\s+modkit\s+(.+)`)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read script directory %s: %v", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txtar") {
			continue
		}
		scanScriptFile(t, filepath.Join(dir, entry.Name()), execRe, knownCommands, aliasMap, covered)
	}
	return covered
}

func scanScriptFile(t *testing.T, path string, execRe *regexp.Regexp, knownCommands map[string]bool, aliasMap map[string]string, covered map[string]bool) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Errorf("failed to open %s: %v", path, err)
		return
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m := execRe.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}
		if cmdPath := matchLongestCommand(strings.Fields(m[1]), knownCommands, aliasMap); cmdPath != "" {
			covered[cmdPath] = true
		}
	}
	if err := scanner.Err(); err != nil {
		t.Errorf("error scanning %s: %v", path, err)
	}
}

// matchLongestCommand resolves aliases in tokens and returns the longest
// known command path they start with. Leading global flags are skipped.
func matchLongestCommand(tokens []string, knownCommands map[string]bool, aliasMap map[string]string) string {
	tokens = skipGlobalFlags(tokens)
	resolved := resolveAliases(tokens, aliasMap)

	var best string
	for i := 1; i <= len(resolved); i++ {
		candidate := strings.Join(resolved[:i], " ")
		if knownCommands[candidate] {
			best = candidate
		}
	}
	return best
}

// resolveAliases replaces alias prefixes level by level with canonical names.
func resolveAliases(tokens []string, aliasMap map[string]string) []string {
	resolved := make([]string, 0, len(tokens))
	prefix := ""
	for _, tok := range tokens {
		candidate := tok
		if prefix != "" {
			candidate = prefix + " " + tok
		}
		if canonical, ok := aliasMap[candidate]; ok {
			candidate = canonical
		}
		resolved = strings.Fields(candidate)
		prefix = candidate
	}
	return resolved
}

func skipGlobalFlags(tokens []string) []string {
	for len(tokens) > 0 && strings.HasPrefix(tokens[0], "-") {
		switch tokens[0] {
		case "--config", "--base-dir":
			tokens = tokens[min(2, len(tokens)):]
		default:
			tokens = tokens[1:]
		}
	}
	return tokens
}

func TestResolveAliases(t *testing.T) {
	t.Parallel()

	aliasMap := map[string]string{
		"mod":       "module",
		"module ls": "module list",
	}

	tests := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{"no aliases", []string{"cache", "build"}, []string{"cache", "build"}},
		{"top-level alias", []string{"mod", "make", "Blog"}, []string{"module", "make", "Blog"}},
		{"nested alias", []string{"mod", "ls"}, []string{"module", "list"}},
		{"empty", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveAliases(tt.tokens, aliasMap)
			if !slices.Equal(got, tt.want) {
				t.Errorf("resolveAliases(%v) = %v, want %v", tt.tokens, got, tt.want)
			}
		})
	}
}

func TestMatchLongestCommand(t *testing.T) {
	t.Parallel()

	known := map[string]bool{"module list": true, "module make": true, "cache build": true}
	aliasMap := map[string]string{"mod": "module", "module ls": "module list"}

	tests := map[string]string{
		"mod ls":                     "module list",
		"module make Blog Shop":      "module make",
		"--config x.cue module list": "module list",
		"-v cache build":             "cache build",
		"config dump":                "",
	}
	for line, want := range tests {
		if got := matchLongestCommand(strings.Fields(line), known, aliasMap); got != want {
			t.Errorf("matchLongestCommand(%q) = %q, want %q", line, got, want)
		}
	}
}
