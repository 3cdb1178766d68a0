package index

import (
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/halvard/docstamp/internal/checksum"
	"github.com/halvard/docstamp/internal/frontmatter"
	"github.com/halvard/docstamp/internal/markdown"
	"github.com/halvard/docstamp/internal/storage"
)

// Sync walks the docs tree and brings the index up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := IndexFile(db, m.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteDoc(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// IndexFile parses data and upserts it into the index. Stamped files
// contribute their front matter fields; unstamped files are indexed with
// a best-effort title only.
func IndexFile(db *DB, path string, data []byte) error {
	res, err := markdown.Parse(data)
	if err != nil {
		return err
	}

	row := DocRow{
		Path:      path,
		Title:     res.Title,
		Checksum:  checksum.Sum(data),
		Stamped:   frontmatter.Has(data),
		UpdatedAt: time.Now(),
	}
	if res.Frontmatter != nil {
		row.Description = markdown.FieldString(res.Frontmatter, "description")
		row.Category = markdown.FieldString(res.Frontmatter, "category")
		row.Tags = markdown.FieldStrings(res.Frontmatter, "tags")
		row.Difficulty = markdown.FieldString(res.Frontmatter, "difficulty")
	}
	if row.Tags == nil {
		row.Tags = []string{}
	}

	return db.UpsertDoc(row, res.Body, resolveRefs(path, res.Refs))
}

// resolveRefs turns link targets relative to the source file into
// docs-root-relative paths. Targets that climb out of the tree are
// dropped.
func resolveRefs(source string, refs []string) []string {
	dir := path.Dir(source)
	var out []string
	for _, r := range refs {
		resolved := path.Clean(path.Join(dir, r))
		if resolved == ".." || strings.HasPrefix(resolved, "../") {
			continue
		}
		out = append(out, resolved)
	}
	return out
}
