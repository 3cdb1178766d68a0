// Package docservice coordinates storage, indexing, and stamping.
package docservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/halvard/docstamp/internal/apperr"
	"github.com/halvard/docstamp/internal/checksum"
	"github.com/halvard/docstamp/internal/index"
	"github.com/halvard/docstamp/internal/markdown"
	"github.com/halvard/docstamp/internal/stamp"
	"github.com/halvard/docstamp/internal/storage"
)

// DocDetail is the full representation of a documentation file.
type DocDetail struct {
	Path         string         `json:"path"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	Category     string         `json:"category,omitempty"`
	Tags         []string       `json:"tags"`
	Difficulty   string         `json:"difficulty,omitempty"`
	Content      string         `json:"content"`
	Checksum     string         `json:"checksum"`
	Frontmatter  map[string]any `json:"frontmatter,omitempty"`
	ReferencedBy []string       `json:"referenced_by"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// DocListItem is a lightweight item in a list response.
type DocListItem struct {
	Path       string    `json:"path"`
	Title      string    `json:"title"`
	Category   string    `json:"category,omitempty"`
	Tags       []string  `json:"tags"`
	Difficulty string    `json:"difficulty,omitempty"`
	Stamped    bool      `json:"stamped"`
	Checksum   string    `json:"checksum"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Service coordinates storage and index operations.
type Service struct {
	store  storage.Provider
	db     *index.DB
	logger *slog.Logger
}

// NewService creates a new doc service.
func NewService(store storage.Provider, db *index.DB, logger *slog.Logger) *Service {
	return &Service{store: store, db: db, logger: logger}
}

// GetDoc reads a doc from storage, parses it, and enriches it with the
// docs that reference it.
func (s *Service) GetDoc(_ context.Context, path string) (*DocDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return s.buildDocDetail(path, data)
}

// CreateDoc writes a new doc and indexes it. Content lacking front
// matter is stamped before the write.
func (s *Service) CreateDoc(_ context.Context, path string, content []byte) (*DocDetail, error) {
	if _, err := s.store.Read(path); err == nil {
		return nil, apperr.ErrAlreadyExists
	}
	content, _ = stamp.Content(path, content, time.Now())
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := index.IndexFile(s.db, path, content); err != nil {
		return nil, err
	}
	return s.buildDocDetail(path, content)
}

// UpdateDoc writes updated content with optimistic concurrency. Content
// lacking front matter is stamped before the write.
func (s *Service) UpdateDoc(_ context.Context, path string, content []byte, ifMatch string) (*DocDetail, error) {
	existing, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	content, _ = stamp.Content(path, content, time.Now())
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := index.IndexFile(s.db, path, content); err != nil {
		return nil, err
	}
	return s.buildDocDetail(path, content)
}

// DeleteDoc removes a doc from storage and index.
func (s *Service) DeleteDoc(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.db.DeleteDoc(path)
}

// ListDocs returns paginated docs with optional filters.
func (s *Service) ListDocs(_ context.Context, q index.ListQuery) ([]DocListItem, int, error) {
	rows, total, err := s.db.ListDocs(q)
	if err != nil {
		return nil, 0, err
	}
	items := make([]DocListItem, len(rows))
	for i, r := range rows {
		items[i] = DocListItem{
			Path:       r.Path,
			Title:      r.Title,
			Category:   r.Category,
			Tags:       nonNilSlice(r.Tags),
			Difficulty: r.Difficulty,
			Stamped:    r.Stamped,
			Checksum:   r.Checksum,
			UpdatedAt:  r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Graph returns all doc nodes and reference edges.
func (s *Service) Graph(_ context.Context) ([]index.GraphNode, []index.GraphEdge, error) {
	return s.db.Graph()
}

// StampAll runs the batch stamping pass over the whole docs tree, then
// re-syncs the index so stamped metadata is queryable immediately.
func (s *Service) StampAll(_ context.Context, out io.Writer) (*stamp.Report, error) {
	report, err := stamp.Run(s.store, out, time.Now())
	if err != nil {
		return nil, err
	}
	if err := index.Sync(s.db, s.store, s.logger); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) buildDocDetail(path string, data []byte) (*DocDetail, error) {
	res, err := markdown.Parse(data)
	if err != nil {
		return nil, err
	}
	refBy, err := s.db.ReferencedBy(path)
	if err != nil {
		return nil, err
	}

	d := &DocDetail{
		Path:         path,
		Title:        res.Title,
		Content:      string(data),
		Checksum:     checksum.Sum(data),
		Frontmatter:  res.Frontmatter,
		ReferencedBy: nonNilSlice(refBy),
		UpdatedAt:    time.Now(),
	}
	if res.Frontmatter != nil {
		d.Description = markdown.FieldString(res.Frontmatter, "description")
		d.Category = markdown.FieldString(res.Frontmatter, "category")
		d.Tags = markdown.FieldStrings(res.Frontmatter, "tags")
		d.Difficulty = markdown.FieldString(res.Frontmatter, "difficulty")
	}
	d.Tags = nonNilSlice(d.Tags)
	return d, nil
}

func nonNilSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
