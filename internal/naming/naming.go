// SPDX-License-Identifier: MPL-2.0

package naming

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// wordTitler upper-cases the first letter of every word and leaves the rest alone,
// so "blogPost" stays "BlogPost" rather than becoming "Blogpost".
var wordTitler = cases.Title(language.Und, cases.NoLower)

// Studly converts a name to StudlyCase: "blog" -> "Blog", "blog_post" -> "BlogPost",
// "user-profile" -> "UserProfile". Letters after the first of each word keep their case.
func Studly(name string) string {
	words := strings.FieldsFunc(name, isSeparator)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(wordTitler.String(w))
	}
	return sb.String()
}

// Snake converts a name to snake_case: "CreatePostsTable" -> "create_posts_table".
// Already lower-cased names without spaces are returned unchanged.
func Snake(name string) string {
	if isLowerNoSpace(name) {
		return name
	}

	joined := strings.Join(strings.Fields(wordTitler.String(name)), "")

	var sb strings.Builder
	for i, r := range joined {
		if i > 0 && unicode.IsUpper(r) {
			sb.WriteByte('_')
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}

// PluralLower returns the lower-cased plural of name: "Blog" -> "blogs", "Category" -> "categories".
func PluralLower(name string) string {
	return strings.ToLower(inflection.Plural(name))
}

// Unique normalises every name with Studly and drops duplicates and empty
// results, keeping first-seen order.
func Unique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		s := Studly(n)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || unicode.IsSpace(r)
}

func isLowerNoSpace(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
