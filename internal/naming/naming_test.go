// SPDX-License-Identifier: MPL-2.0

package naming

import (
	"slices"
	"testing"
)

func TestStudly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"blog", "Blog"},
		{"Blog", "Blog"},
		{"blog_post", "BlogPost"},
		{"user-profile", "UserProfile"},
		{"blogPost", "BlogPost"},
		{"  spaced  name ", "SpacedName"},
		{"", ""},
		{"__", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := Studly(tt.in); got != tt.want {
				t.Errorf("Studly(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStudly_CaseInsensitiveForLeadingLetter(t *testing.T) {
	t.Parallel()

	if Studly("blog") != Studly("Blog") {
		t.Errorf("expected blog and Blog to normalise identically")
	}
}

func TestSnake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"create_posts_table", "create_posts_table"},
		{"CreatePostsTable", "create_posts_table"},
		{"createPostsTable", "create_posts_table"},
		{"create posts table", "create_posts_table"},
		{"add_index", "add_index"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := Snake(tt.in); got != tt.want {
				t.Errorf("Snake(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPluralLower(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Blog":     "blogs",
		"Category": "categories",
		"Person":   "people",
	}
	for in, want := range tests {
		if got := PluralLower(in); got != want {
			t.Errorf("PluralLower(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUnique(t *testing.T) {
	t.Parallel()

	got := Unique([]string{"blog", "Blog", "post", "", "blog_post", "Post"})
	want := []string{"Blog", "Post", "BlogPost"}
	if !slices.Equal(got, want) {
		t.Errorf("Unique() = %v, want %v", got, want)
	}
}
