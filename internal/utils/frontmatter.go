package utils

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

var frontmatterDelim = []byte("---")

// FileFrontmatter is the YAML header written on export and honored on import.
type FileFrontmatter struct {
	ID        string    `yaml:"id,omitempty"`
	Title     string    `yaml:"title,omitempty"`
	Tags      []string  `yaml:"tags,omitempty"`
	CreatedAt time.Time `yaml:"created_at,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`
}

// ParseFrontmatter splits optional YAML frontmatter from markdown content.
// Content without a leading "---" line is returned unchanged with nil
// metadata. Expected format:
//
//	---
//	title: Weekly plan
//	tags: [work]
//	---
//	# Markdown content here
func ParseFrontmatter(content []byte) (*FileFrontmatter, string, error) {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return nil, string(content), nil
	}

	lines := bytes.Split(content, []byte("\n"))
	closing := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), frontmatterDelim) {
			closing = i
			break
		}
	}
	if closing == 0 {
		return nil, "", errors.New("missing closing frontmatter delimiter '---'")
	}

	var meta FileFrontmatter
	if err := yaml.Unmarshal(bytes.Join(lines[1:closing], []byte("\n")), &meta); err != nil {
		return nil, "", fmt.Errorf("failed to parse YAML frontmatter: %w", err)
	}

	body := bytes.Join(lines[closing+1:], []byte("\n"))
	return &meta, string(bytes.TrimLeft(body, "\r\n")), nil
}

// RenderFrontmatter writes meta as a YAML header followed by body.
func RenderFrontmatter(meta *FileFrontmatter, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(meta); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	buf.WriteString("---\n\n")
	buf.WriteString(body)
	return buf.Bytes(), nil
}
