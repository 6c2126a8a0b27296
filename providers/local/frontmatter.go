package local

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseFrontmatter splits optional YAML frontmatter from a markdown document.
// Expected format:
//
//	---
//	title: Unit Testing
//	---
//	# Markdown content here
//
// The third result is false when the document carries no well-formed
// frontmatter, in which case the whole input is returned as content.
func ParseFrontmatter(content []byte) (map[string]interface{}, string, bool) {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return nil, string(content), false
	}

	lines := bytes.Split(content, []byte("\n"))

	// Skip the opening "---" line and find the closing delimiter.
	closingDelim := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			closingDelim = i
			break
		}
	}
	if closingDelim == 0 {
		return nil, string(content), false
	}

	yamlContent := bytes.Join(lines[1:closingDelim], []byte("\n"))

	var metadata map[string]interface{}
	if err := yaml.Unmarshal(yamlContent, &metadata); err != nil {
		return nil, string(content), false
	}

	markdown := string(bytes.Join(lines[closingDelim+1:], []byte("\n")))
	return metadata, markdown, true
}

// documentTitle resolves a display title from frontmatter 'title:' or, failing
// that, from the first level-one heading. Empty when neither is present.
func documentTitle(content []byte) string {
	metadata, markdown, _ := ParseFrontmatter(content)
	if titleVal, exists := metadata["title"]; exists {
		if title, ok := titleVal.(string); ok && title != "" {
			return title
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
	}

	return ""
}
