// SPDX-License-Identifier: MPL-2.0

package replacer

import (
	"slices"
	"strings"

	"github.com/modkit/modkit/internal/naming"

	"golang.org/x/exp/maps"
)

const (
	// KeyModule is the module name.
	KeyModule = "module"
	// KeyClass is the class being generated; the module name unless overridden.
	KeyClass = "class"
	// KeyModuleNamespace is the module's namespace segment.
	KeyModuleNamespace = "moduleNamespace"
	// KeyNamespace is the configured root namespace without a trailing separator.
	KeyNamespace = "namespace"
	// KeyPluralLower is the lower-cased plural of the module name.
	KeyPluralLower = "plural|lower"
	// KeyMigrationClass is the studly migration class name.
	KeyMigrationClass = "migrationClass"
	// KeyTable is the table name passed to migration stubs.
	KeyTable = "table"
	// KeyType is the route type used in file-check patterns.
	KeyType = "type"
)

var (
	// Content delimits tokens inside stub file contents.
	Content = Delimiters{Open: "{", Close: "}"}
	// Path delimits tokens inside destination path patterns.
	Path = Delimiters{Open: "%", Close: "%"}
)

type (
	// Delimiters wraps a key to form its token.
	Delimiters struct {
		Open  string
		Close string
	}

	// Replacements maps token keys to their values.
	Replacements map[string]string

	// Engine produces the default replacements for a module and applies them.
	Engine struct {
		namespace string
	}
)

// Token returns key wrapped in the delimiters.
func (d Delimiters) Token(key string) string {
	return d.Open + key + d.Close
}

// New creates an Engine for the given root namespace.
func New(namespace string) *Engine {
	return &Engine{namespace: namespace}
}

// Defaults returns the token set every substitution starts from.
func (e *Engine) Defaults(moduleName string) Replacements {
	return Replacements{
		KeyModule:          moduleName,
		KeyClass:           moduleName,
		KeyModuleNamespace: moduleName,
		KeyNamespace:       strings.TrimRight(e.namespace, `\`),
		KeyPluralLower:     naming.PluralLower(moduleName),
	}
}

// Replace substitutes the module defaults merged with overrides into s.
// Overrides win on key collision.
func (e *Engine) Replace(s, moduleName string, overrides Replacements, d Delimiters) string {
	return e.Defaults(moduleName).Merge(overrides).Apply(s, d)
}

// Merge returns a new set holding r with over applied on top.
func (r Replacements) Merge(over Replacements) Replacements {
	out := make(Replacements, len(r)+len(over))
	maps.Copy(out, r)
	maps.Copy(out, over)
	return out
}

// Apply performs a single literal pass over s. Keys are ordered so the result
// does not depend on map iteration.
func (r Replacements) Apply(s string, d Delimiters) string {
	if len(r) == 0 || !strings.Contains(s, d.Open) {
		return s
	}

	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, d.Token(k), r[k])
	}
	return strings.NewReplacer(pairs...).Replace(s)
}
