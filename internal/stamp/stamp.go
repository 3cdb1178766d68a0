// Package stamp implements the batch front matter injection pass: walk
// the docs tree, skip files that already carry front matter, resolve
// metadata for the rest, and prepend the rendered block.
package stamp

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/halvard/docstamp/internal/frontmatter"
	"github.com/halvard/docstamp/internal/resolve"
	"github.com/halvard/docstamp/internal/storage"
)

// Report summarizes one stamping run.
type Report struct {
	// Updated holds the stamped paths in discovery order.
	Updated []string `json:"updated"`
	Count   int      `json:"count"`
}

// Content returns data with front matter prepended, or data unchanged
// (and false) when the first line is already the delimiter.
func Content(relPath string, data []byte, date time.Time) ([]byte, bool) {
	if frontmatter.Has(data) {
		return data, false
	}
	rec := resolve.Resolve(relPath, data)
	block := frontmatter.Render(rec, date)
	return append([]byte(block), data...), true
}

// Run walks every .md file under the docs root in discovery order and
// stamps the ones lacking front matter. A confirmation line is written to
// out per stamped file as it happens, followed by a total count and the
// updated paths sorted alphabetically. Any read or write failure aborts
// the whole run.
func Run(store storage.Provider, out io.Writer, date time.Time) (*Report, error) {
	metas, err := store.List("")
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, m := range metas {
		data, err := store.Read(m.Path)
		if err != nil {
			return nil, err
		}
		stamped, changed := Content(m.Path, data, date)
		if !changed {
			continue
		}
		if err := store.Write(m.Path, stamped); err != nil {
			return nil, err
		}
		report.Updated = append(report.Updated, m.Path)
		fmt.Fprintf(out, "✓ %s\n", m.Path)
	}
	report.Count = len(report.Updated)

	fmt.Fprintf(out, "\n\nUpdated %d files\n", report.Count)
	if report.Count > 0 {
		fmt.Fprintf(out, "\nUpdated files:\n")
		listing := append([]string(nil), report.Updated...)
		sort.Strings(listing)
		for _, p := range listing {
			fmt.Fprintf(out, "  - %s\n", p)
		}
	}

	return report, nil
}
