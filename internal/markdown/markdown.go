// Package markdown extracts front matter, headings, and doc references
// from Markdown content.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	h1Re = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	// Relative Markdown links to other .md files: [text](path/to/doc.md).
	refRe = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+\.md)(?:#[^)\s]*)?\)`)
	// First paragraph after any leading heading lines, bounded by a blank
	// line or a level-2 heading.
	paraRe = regexp.MustCompile(`(?ms)^(?:#.*?\n+)?(.+?)(?:\n\n|\n##)`)
	wsRe   = regexp.MustCompile(`\s+`)
)

// Result holds the output of parsing a Markdown file.
type Result struct {
	Frontmatter map[string]any
	Body        string
	Title       string
	Refs        []string
}

// Parse extracts front matter, body, title, and doc references from raw
// Markdown bytes. Files without front matter yield a nil Frontmatter map
// and the entire content as body.
func Parse(data []byte) (*Result, error) {
	fm, body := splitFrontmatter(data)
	return &Result{
		Frontmatter: fm,
		Body:        body,
		Title:       deriveTitle(fm, body),
		Refs:        extractRefs(body),
	}, nil
}

// splitFrontmatter separates YAML front matter (between leading ---
// delimiters) from the Markdown body. If no front matter is found the
// entire content is body.
func splitFrontmatter(data []byte) (map[string]any, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter, treat everything as body.
		return nil, string(data)
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]any
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		// Invalid YAML: fall back to body only.
		return nil, string(data)
	}

	return fm, body
}

// ExtractTitle returns the text of the first level-1 heading found
// anywhere in content, or empty string if there is none.
func ExtractTitle(content string) string {
	m := h1Re.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// FirstParagraph returns the first paragraph of content, skipping any
// leading heading lines, normalized to single spaces. Empty string when
// no paragraph is found.
func FirstParagraph(content string) string {
	m := paraRe.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return wsRe.ReplaceAllString(strings.TrimSpace(m[1]), " ")
}

// extractRefs returns deduplicated relative .md link targets.
func extractRefs(body string) []string {
	matches := refRe.FindAllStringSubmatch(body, -1)
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		target := m[1]
		// External links are not doc references.
		if strings.Contains(target, "://") {
			continue
		}
		target = strings.TrimPrefix(target, "./")
		if target == "" {
			continue
		}
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	return out
}

// deriveTitle returns the front matter "title" if present, otherwise the
// first H1 heading, otherwise empty string.
func deriveTitle(fm map[string]any, body string) string {
	if fm != nil {
		if t, ok := fm["title"]; ok {
			if s, ok := t.(string); ok && s != "" {
				return s
			}
		}
	}
	return ExtractTitle(body)
}

// FieldString returns a string field from a front matter map, or empty.
func FieldString(fm map[string]any, key string) string {
	if fm == nil {
		return ""
	}
	if v, ok := fm[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// FieldStrings returns a string-sequence field from a front matter map.
func FieldStrings(fm map[string]any, key string) []string {
	if fm == nil {
		return nil
	}
	raw, ok := fm[key]
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			s = strings.TrimSpace(s)
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
