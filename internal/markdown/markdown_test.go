package markdown

import (
	"testing"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: \"Hello\"\ntags: [go, docs]\n---\n# Hello\nBody text.\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Hello" {
		t.Errorf("title = %q, want %q", r.Title, "Hello")
	}
	tags := FieldStrings(r.Frontmatter, "tags")
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "docs" {
		t.Errorf("tags = %v, want [go docs]", tags)
	}
	if r.Body != "# Hello\nBody text.\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	input := []byte("# Just a heading\nSome text.\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", r.Frontmatter)
	}
	if r.Title != "Just a heading" {
		t.Errorf("title = %q, want %q", r.Title, "Just a heading")
	}
}

func TestParse_InvalidYAMLFallback(t *testing.T) {
	input := []byte("---\n: invalid: yaml: {{{\n---\nBody\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Invalid YAML falls back to treating everything as body.
	if r.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
}

func TestParse_FrontmatterTitleWins(t *testing.T) {
	input := []byte("---\ntitle: \"FM Title\"\n---\n# H1 Title\ntext\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "FM Title" {
		t.Errorf("title = %q, want %q", r.Title, "FM Title")
	}
}

func TestExtractRefs(t *testing.T) {
	body := "See [setup](guides/setup.md) and [api](./reference/api.md#auth).\n" +
		"External [site](https://example.com/page.md) is skipped.\n" +
		"Again [setup](guides/setup.md)."
	refs := extractRefs(body)
	if len(refs) != 2 {
		t.Fatalf("refs = %v, want 2 entries", refs)
	}
	if refs[0] != "guides/setup.md" || refs[1] != "reference/api.md" {
		t.Errorf("refs = %v", refs)
	}
}

func TestExtractTitle_AnywhereInContent(t *testing.T) {
	title := ExtractTitle("intro text\n# My Heading\nmore")
	if title != "My Heading" {
		t.Errorf("title = %q, want %q", title, "My Heading")
	}
}

func TestExtractTitle_None(t *testing.T) {
	if title := ExtractTitle("## only level two\ntext"); title != "" {
		t.Errorf("title = %q, want empty", title)
	}
}

func TestFirstParagraph(t *testing.T) {
	content := "# Title\n\nFirst   paragraph\nspans lines.\n\nSecond."
	got := FirstParagraph(content)
	if got != "First paragraph spans lines." {
		t.Errorf("paragraph = %q", got)
	}
}

func TestFirstParagraph_None(t *testing.T) {
	if got := FirstParagraph("# Only a heading"); got != "" {
		t.Errorf("paragraph = %q, want empty", got)
	}
}

func TestFieldString(t *testing.T) {
	fm := map[string]any{"category": "howto", "n": 3}
	if got := FieldString(fm, "category"); got != "howto" {
		t.Errorf("category = %q", got)
	}
	if got := FieldString(fm, "n"); got != "" {
		t.Errorf("non-string field should be empty, got %q", got)
	}
	if got := FieldString(nil, "category"); got != "" {
		t.Errorf("nil map should be empty, got %q", got)
	}
}
