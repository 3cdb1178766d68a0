// Package frontmatter renders the fixed-order YAML metadata block that
// docstamp prepends to documentation files.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/halvard/docstamp/internal/models"
)

// Delimiter is the line that opens and closes a front matter block.
const Delimiter = "---"

// Has reports whether data already starts with a front matter block,
// i.e. its first line (trimmed) is exactly the delimiter.
func Has(data []byte) bool {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	return strings.TrimSpace(string(line)) == Delimiter
}

// Render serializes a record into the front matter block. Field order is
// fixed: title, description, category, tags, difficulty (only when
// present), last-updated. The block ends with the closing delimiter and a
// blank line.
//
// Known limitation: embedded double quotes in title or description are
// not escaped and produce an ill-formed block.
func Render(rec models.Record, date time.Time) string {
	var b strings.Builder
	b.WriteString(Delimiter + "\n")
	fmt.Fprintf(&b, "title: \"%s\"\n", rec.Title)
	fmt.Fprintf(&b, "description: \"%s\"\n", rec.Description)
	fmt.Fprintf(&b, "category: %s\n", rec.Category)
	fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(rec.Tags, ", "))
	if rec.Difficulty != "" {
		fmt.Fprintf(&b, "difficulty: %s\n", rec.Difficulty)
	}
	fmt.Fprintf(&b, "last-updated: %s\n", date.Format("2006-01-02"))
	b.WriteString(Delimiter + "\n\n")
	return b.String()
}
