package kv

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// removeByID drops every item whose id is in ids and reports the ids that
// matched nothing
func removeByID[T any](items []T, ids []string, idOf func(T) string) ([]T, []string) {
	if len(ids) == 0 {
		return items, nil
	}
	targets := make(map[string]bool, len(ids))
	for _, id := range ids {
		targets[id] = false
	}

	kept := items[:0]
	for _, item := range items {
		id := idOf(item)
		if _, ok := targets[id]; ok {
			targets[id] = true
			continue
		}
		kept = append(kept, item)
	}

	var missing []string
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if !targets[id] {
			missing = append(missing, id)
		}
	}
	return kept, missing
}

const copyPrefix = "Copy of "

// disambiguate returns "Copy of <name>", then "Copy of <name> (1)", (2), ...
// until taken reports false. name is shortened so no candidate exceeds
// maxRunes.
func disambiguate(name string, maxRunes int, taken func(candidate string) bool) string {
	candidate := fitName(name, "", maxRunes)
	for n := 1; taken(candidate); n++ {
		candidate = fitName(name, fmt.Sprintf(" (%d)", n), maxRunes)
	}
	return candidate
}

// fitName joins copyPrefix, name and suffix, cutting runes off the end of
// name until the result is at most maxRunes long
func fitName(name, suffix string, maxRunes int) string {
	room := maxRunes - utf8.RuneCountInString(copyPrefix) - utf8.RuneCountInString(suffix)
	if room < 0 {
		room = 0
	}
	if runes := []rune(name); len(runes) > room {
		name = strings.TrimRightFunc(string(runes[:room]), unicode.IsSpace)
	}
	return copyPrefix + name + suffix
}
