package utils

import (
	"strings"
	"testing"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Projects", "projects"},
		{"spaces", "My Work Notes", "my-work-notes"},
		{"punctuation runs", "Q1 -- Plans!!", "q1-plans"},
		{"leading trailing", "  --Drafts--  ", "drafts"},
		{"underscores", "meeting_notes_2024", "meeting-notes-2024"},
		{"diacritics folded", "Café Résumé", "cafe-resume"},
		{"non latin collapses", "日本語", ""},
		{"mixed", "Notes 日本", "notes"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateSlug(tt.input); got != tt.want {
				t.Errorf("GenerateSlug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateSlug_AlwaysValidWhenNonEmpty(t *testing.T) {
	inputs := []string{
		"Hello World", "a", "A-B-C", "--x--", "foo___bar", "Draft #2 (final)",
		"2024 Q3 / Q4", "   spaced   out   ", "!!!", "x.y.z", "Über Ärger",
	}
	for _, in := range inputs {
		slug := GenerateSlug(in)
		if slug != "" && !IsValidSlug(slug) {
			t.Errorf("GenerateSlug(%q) = %q is not a valid slug", in, slug)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"projects", true},
		{"my-notes-2", true},
		{"", false},
		{"-lead", false},
		{"trail-", false},
		{"double--hyphen", false},
		{"Upper", false},
		{"under_score", false},
	}
	for _, tt := range tests {
		if got := IsValidSlug(tt.slug); got != tt.want {
			t.Errorf("IsValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
		}
	}
}

func TestGenerateSlugWithSuffix(t *testing.T) {
	if got := GenerateSlugWithSuffix("notes", 3); got != "notes-3" {
		t.Errorf("GenerateSlugWithSuffix() = %q", got)
	}
}

func TestSlugFor_FallbackIsDeterministic(t *testing.T) {
	a := SlugFor("日本語")
	b := SlugFor("日本語")
	c := SlugFor("中文")

	if !strings.HasPrefix(a, "u-") || len(a) != 10 {
		t.Fatalf("SlugFor fallback = %q, want u-xxxxxxxx", a)
	}
	if a != b {
		t.Errorf("same name produced different slugs: %q vs %q", a, b)
	}
	if a == c {
		t.Errorf("different names collided on %q", a)
	}
	if !IsValidSlug(a) {
		t.Errorf("fallback slug %q is not valid", a)
	}
	if got := SlugFor("Work"); got != "work" {
		t.Errorf("SlugFor(Work) = %q", got)
	}
	if got := SlugFor("   "); got != "" {
		t.Errorf("SlugFor(blank) = %q, want empty", got)
	}
}
