package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DocRow represents a row in the docs table.
type DocRow struct {
	Path        string
	Title       string
	Description string
	Category    string
	Tags        []string
	Difficulty  string
	Checksum    string
	Stamped     bool
	UpdatedAt   time.Time
}

// ListQuery holds the filters for ListDocs.
type ListQuery struct {
	Limit      int
	Offset     int
	Category   string
	Tag        string
	Difficulty string
	Sort       string // "updated_at", "title", or "path" (default)
}

// SearchResult represents one search hit.
type SearchResult struct {
	Path    string
	Title   string
	Snippet string
}

// GraphNode is a document node in the reference graph.
type GraphNode struct {
	Path  string
	Title string
}

// GraphEdge is a directed reference between two documents.
type GraphEdge struct {
	Source string
	Target string
}

// UpsertDoc inserts or replaces a doc, its FTS entry, and outgoing
// references within a transaction.
func (db *DB) UpsertDoc(d DocRow, body string, refs []string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, _ := json.Marshal(d.Tags)
	stamped := 0
	if d.Stamped {
		stamped = 1
	}

	// Upsert docs table (includes body for fallback search).
	_, err = tx.Exec(`
		INSERT INTO docs (path, title, description, category, tags, difficulty, checksum, stamped, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title       = excluded.title,
			description = excluded.description,
			category    = excluded.category,
			tags        = excluded.tags,
			difficulty  = excluded.difficulty,
			checksum    = excluded.checksum,
			stamped     = excluded.stamped,
			body        = excluded.body,
			updated_at  = excluded.updated_at
	`, d.Path, d.Title, d.Description, d.Category, string(tagsJSON), d.Difficulty, d.Checksum, stamped, body, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert doc: %w", err)
	}

	// FTS upsert (no-op when the FTS5 tag is absent).
	if err := ftsUpsert(tx, d.Path, d.Title, d.Description, body, d.Tags); err != nil {
		return err
	}

	// Replace outgoing references: delete old then bulk insert.
	_, _ = tx.Exec(`DELETE FROM doc_links WHERE source = ?`, d.Path)
	if len(refs) > 0 {
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO doc_links (source, target) VALUES (?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare ref insert: %w", err)
		}
		defer stmt.Close()
		for _, target := range refs {
			if _, err := stmt.Exec(d.Path, target); err != nil {
				return fmt.Errorf("index: insert ref: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteDoc removes a doc, its FTS entry, and outgoing references.
func (db *DB) DeleteDoc(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	_, _ = tx.Exec(`DELETE FROM doc_links WHERE source = ?`, path)
	_, _ = tx.Exec(`DELETE FROM docs WHERE path = ?`, path)

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a doc, or empty string if
// not found.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM docs WHERE path = ?`, path).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil // not found is fine
	}
	if err != nil {
		return "", fmt.Errorf("index: get checksum: %w", err)
	}
	return cs, nil
}

// GetDoc returns a single doc row, or nil when not indexed.
func (db *DB) GetDoc(path string) (*DocRow, error) {
	row := db.conn.QueryRow(`
		SELECT path, title, description, category, tags, difficulty, checksum, stamped, updated_at
		FROM docs WHERE path = ?
	`, path)
	d, err := scanDocRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get doc: %w", err)
	}
	return d, nil
}

// ListDocs returns paginated docs with optional category, tag, and
// difficulty filters, plus the total count matching the filters.
func (db *DB) ListDocs(q ListQuery) ([]DocRow, int, error) {
	if q.Limit <= 0 || q.Limit > 500 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	where := ` WHERE 1=1`
	var args []any
	if q.Category != "" {
		where += ` AND category = ?`
		args = append(args, q.Category)
	}
	if q.Difficulty != "" {
		where += ` AND difficulty = ?`
		args = append(args, q.Difficulty)
	}
	if q.Tag != "" {
		// Tags are stored as a JSON array of strings.
		where += ` AND tags LIKE ?`
		args = append(args, `%"`+q.Tag+`"%`)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM docs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count docs: %w", err)
	}

	order := ` ORDER BY path`
	switch q.Sort {
	case "updated_at":
		order = ` ORDER BY updated_at DESC`
	case "title":
		order = ` ORDER BY title COLLATE NOCASE`
	}

	query := `
		SELECT path, title, description, category, tags, difficulty, checksum, stamped, updated_at
		FROM docs` + where + order + ` LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list docs: %w", err)
	}
	defer rows.Close()

	var out []DocRow
	for rows.Next() {
		d, err := scanDocRow(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *d)
	}
	return out, total, rows.Err()
}

// Graph returns all doc nodes and reference edges.
func (db *DB) Graph() ([]GraphNode, []GraphEdge, error) {
	rows, err := db.conn.Query(`SELECT path, title FROM docs ORDER BY path`)
	if err != nil {
		return nil, nil, fmt.Errorf("index: graph nodes: %w", err)
	}
	defer rows.Close()

	var nodes []GraphNode
	for rows.Next() {
		var n GraphNode
		if err := rows.Scan(&n.Path, &n.Title); err != nil {
			return nil, nil, err
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	erows, err := db.conn.Query(`SELECT source, target FROM doc_links`)
	if err != nil {
		return nil, nil, fmt.Errorf("index: graph edges: %w", err)
	}
	defer erows.Close()

	var edges []GraphEdge
	for erows.Next() {
		var e GraphEdge
		if err := erows.Scan(&e.Source, &e.Target); err != nil {
			return nil, nil, err
		}
		edges = append(edges, e)
	}
	return nodes, edges, erows.Err()
}

// ReferencedBy returns all doc paths that reference the given target.
func (db *DB) ReferencedBy(target string) ([]string, error) {
	rows, err := db.conn.Query(`SELECT source FROM doc_links WHERE target = ? ORDER BY source`, target)
	if err != nil {
		return nil, fmt.Errorf("index: referenced by: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// AllChecksums returns path → checksum for every indexed doc.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM docs`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocRow(r rowScanner) (*DocRow, error) {
	var d DocRow
	var tagsJSON string
	var stamped int
	if err := r.Scan(&d.Path, &d.Title, &d.Description, &d.Category, &tagsJSON, &d.Difficulty, &d.Checksum, &stamped, &d.UpdatedAt); err != nil {
		return nil, err
	}
	_ = json.Unmarshal([]byte(tagsJSON), &d.Tags)
	d.Stamped = stamped != 0
	return &d, nil
}
