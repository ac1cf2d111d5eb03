package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	// slugNamespace seeds the name-based fallback slugs.
	slugNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("notevault/folder-slug"))
)

// GenerateSlug derives a filesystem-safe slug from a display name: Latin
// diacritics are folded, the result is lower-cased, every run of
// characters outside [a-z0-9] becomes one "-", and leading/trailing
// hyphens are stripped. Scripts without a Latin base collapse to "".
func GenerateSlug(name string) string {
	folded, _, err := transform.String(newDiacriticFolder(), name)
	if err != nil {
		folded = name
	}
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(slug, "-")
}

// newDiacriticFolder strips combining marks ("é" → "e"). Transformers are
// stateful, so one is built per call.
func newDiacriticFolder() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// IsValidSlug reports whether slug is non-empty lowercase alphanumerics
// separated by single hyphens.
func IsValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// GenerateSlugWithSuffix disambiguates a slug: ("notes", 2) → "notes-2".
// Callers own collision detection and counter selection.
func GenerateSlugWithSuffix(base string, counter int) string {
	return fmt.Sprintf("%s-%d", base, counter)
}

// SlugFor returns GenerateSlug(name), or a deterministic "u-xxxxxxxx"
// slug derived from the name when GenerateSlug yields nothing. Identical
// names map to identical slugs, so sibling collisions are still detected.
func SlugFor(name string) string {
	if slug := GenerateSlug(name); slug != "" {
		return slug
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	id := uuid.NewSHA1(slugNamespace, []byte(strings.ToLower(name)))
	return "u-" + strings.ReplaceAll(id.String(), "-", "")[:8]
}
