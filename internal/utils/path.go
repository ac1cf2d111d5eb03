package utils

import (
	"strings"
)

// RootPath is the canonical root of the folder hierarchy.
const RootPath = "/"

// NormalizePath returns the canonical form of a virtual path: "/" for the
// root, otherwise a leading slash, no trailing slash and no empty segments.
//
// Examples:
//   - NormalizePath("") → "/"
//   - NormalizePath("projects/") → "/projects"
//   - NormalizePath("//a//b/") → "/a/b"
func NormalizePath(path string) string {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return RootPath
	}
	return RootPath + strings.Join(segments, "/")
}

// SplitPath returns the non-empty, whitespace-trimmed segments of path.
func SplitPath(path string) []string {
	parts := strings.Split(strings.TrimSpace(path), "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

// JoinPath appends a segment to a parent path.
func JoinPath(parent, segment string) string {
	parent = NormalizePath(parent)
	segment = strings.Trim(strings.TrimSpace(segment), "/")
	if segment == "" {
		return parent
	}
	if parent == RootPath {
		return RootPath + segment
	}
	return parent + "/" + segment
}

// ParentPath returns the parent of path ("/" for root-level entries).
func ParentPath(path string) string {
	segments := SplitPath(path)
	if len(segments) <= 1 {
		return RootPath
	}
	return RootPath + strings.Join(segments[:len(segments)-1], "/")
}

// IsRootPath reports whether path normalizes to the root.
func IsRootPath(path string) bool {
	return NormalizePath(path) == RootPath
}
