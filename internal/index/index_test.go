package index

import (
	"os"
	"testing"
	"time"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "docstamp-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM docs`).Scan(&count); err != nil {
		t.Fatalf("docs table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM doc_links`).Scan(&count); err != nil {
		t.Fatalf("doc_links table missing: %v", err)
	}
}

func TestUpsertAndGetChecksum(t *testing.T) {
	db := testDB(t)
	row := DocRow{
		Path:        "guides/hello.md",
		Title:       "Hello World",
		Description: "Hello World documentation",
		Category:    "howto",
		Tags:        []string{"documentation", "guide"},
		Checksum:    "abc123",
		Stamped:     true,
		UpdatedAt:   time.Now(),
	}
	if err := db.UpsertDoc(row, "This is a hello world doc.", []string{"other.md"}); err != nil {
		t.Fatalf("UpsertDoc: %v", err)
	}
	cs, err := db.GetChecksum("guides/hello.md")
	if err != nil {
		t.Fatalf("GetChecksum: %v", err)
	}
	if cs != "abc123" {
		t.Errorf("checksum = %q, want %q", cs, "abc123")
	}
}

func TestGetDoc(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDoc(DocRow{
		Path:       "adr/001.md",
		Title:      "ADR 001",
		Category:   "reference",
		Tags:       []string{"adr", "architecture"},
		Difficulty: "advanced",
		Checksum:   "1",
		Stamped:    true,
		UpdatedAt:  time.Now(),
	}, "body", nil)

	d, err := db.GetDoc("adr/001.md")
	if err != nil {
		t.Fatalf("GetDoc: %v", err)
	}
	if d == nil {
		t.Fatal("expected a row")
	}
	if d.Title != "ADR 001" || d.Difficulty != "advanced" || !d.Stamped {
		t.Errorf("row = %+v", d)
	}
	if len(d.Tags) != 2 || d.Tags[0] != "adr" {
		t.Errorf("tags = %v", d.Tags)
	}

	missing, err := db.GetDoc("nope.md")
	if err != nil {
		t.Fatalf("GetDoc missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unindexed path, got %+v", missing)
	}
}

func TestReferencedBy(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDoc(DocRow{Path: "a.md", Checksum: "1", Tags: []string{}, UpdatedAt: time.Now()}, "body", []string{"b.md"})
	_ = db.UpsertDoc(DocRow{Path: "c.md", Checksum: "2", Tags: []string{}, UpdatedAt: time.Now()}, "body", []string{"b.md"})

	refs, err := db.ReferencedBy("b.md")
	if err != nil {
		t.Fatalf("ReferencedBy: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 referrers, got %d", len(refs))
	}
}

func TestDeleteDoc(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDoc(DocRow{Path: "del.md", Checksum: "x", Tags: []string{}, UpdatedAt: time.Now()}, "body", []string{"target.md"})

	if err := db.DeleteDoc("del.md"); err != nil {
		t.Fatalf("DeleteDoc: %v", err)
	}
	cs, _ := db.GetChecksum("del.md")
	if cs != "" {
		t.Errorf("deleted doc still has checksum %q", cs)
	}
	refs, _ := db.ReferencedBy("target.md")
	if len(refs) != 0 {
		t.Errorf("expected 0 referrers after delete, got %d", len(refs))
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertDoc(DocRow{Path: "up.md", Title: "Old", Checksum: "1", Tags: []string{}, UpdatedAt: now}, "old body", []string{"x.md"})
	_ = db.UpsertDoc(DocRow{Path: "up.md", Title: "New", Checksum: "2", Tags: []string{"new"}, UpdatedAt: now}, "new body", []string{"y.md"})

	cs, _ := db.GetChecksum("up.md")
	if cs != "2" {
		t.Errorf("checksum = %q, want %q", cs, "2")
	}
	refs, _ := db.ReferencedBy("x.md")
	if len(refs) != 0 {
		t.Error("old reference should be removed on upsert")
	}
	refs, _ = db.ReferencedBy("y.md")
	if len(refs) != 1 {
		t.Error("new reference should exist")
	}
}

func TestGetChecksum_NotFound(t *testing.T) {
	db := testDB(t)
	cs, err := db.GetChecksum("nonexistent.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs != "" {
		t.Errorf("expected empty checksum, got %q", cs)
	}
}

func TestGetChecksum_QueryFailure(t *testing.T) {
	// A failing query (closed connection) must surface as an error, not
	// masquerade as not-found.
	db := testDB(t)
	db.Close()
	if _, err := db.GetChecksum("any.md"); err == nil {
		t.Error("expected error from closed database")
	}
}

func TestListDocs_Filters(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertDoc(DocRow{Path: "a.md", Title: "A", Category: "howto", Tags: []string{"guide"}, Difficulty: "beginner", Checksum: "1", UpdatedAt: now}, "", nil)
	_ = db.UpsertDoc(DocRow{Path: "b.md", Title: "B", Category: "reference", Tags: []string{"api", "guide"}, Difficulty: "advanced", Checksum: "2", UpdatedAt: now}, "", nil)
	_ = db.UpsertDoc(DocRow{Path: "c.md", Title: "C", Category: "reference", Tags: []string{"adr"}, Checksum: "3", UpdatedAt: now}, "", nil)

	rows, total, err := db.ListDocs(ListQuery{})
	if err != nil {
		t.Fatalf("ListDocs: %v", err)
	}
	if total != 3 || len(rows) != 3 {
		t.Fatalf("total = %d, rows = %d, want 3/3", total, len(rows))
	}
	// Default sort is by path.
	if rows[0].Path != "a.md" || rows[2].Path != "c.md" {
		t.Errorf("rows out of order: %v, %v, %v", rows[0].Path, rows[1].Path, rows[2].Path)
	}

	rows, total, _ = db.ListDocs(ListQuery{Category: "reference"})
	if total != 2 {
		t.Errorf("category filter total = %d, want 2", total)
	}

	rows, total, _ = db.ListDocs(ListQuery{Tag: "guide"})
	if total != 2 {
		t.Errorf("tag filter total = %d, want 2", total)
	}

	rows, total, _ = db.ListDocs(ListQuery{Difficulty: "advanced"})
	if total != 1 || rows[0].Path != "b.md" {
		t.Errorf("difficulty filter: total = %d, rows = %+v", total, rows)
	}

	rows, total, _ = db.ListDocs(ListQuery{Limit: 2})
	if len(rows) != 2 || total != 3 {
		t.Errorf("pagination: rows = %d, total = %d, want 2/3", len(rows), total)
	}
}

func TestGraph(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertDoc(DocRow{Path: "a.md", Title: "A", Tags: []string{}, Checksum: "1", UpdatedAt: now}, "", []string{"b.md"})
	_ = db.UpsertDoc(DocRow{Path: "b.md", Title: "B", Tags: []string{}, Checksum: "2", UpdatedAt: now}, "", nil)

	nodes, edges, err := db.Graph()
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if len(nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(nodes))
	}
	if len(edges) != 1 || edges[0].Source != "a.md" || edges[0].Target != "b.md" {
		t.Errorf("edges = %+v", edges)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDoc(DocRow{Path: "s.md", Title: "Search Me", Checksum: "1", Tags: []string{}, UpdatedAt: time.Now()}, "uniqueword appears here", nil)

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "s.md" {
		t.Errorf("search results = %+v, want 1 hit for s.md", results)
	}
}

func TestIndexFile_StampedFields(t *testing.T) {
	db := testDB(t)
	data := []byte(`---
title: "Auth Setup"
description: "How to configure authentication."
category: reference
tags: [authentication, developer]
difficulty: intermediate
last-updated: 2025-03-14
---

# Auth Setup

How to configure authentication. See [tokens](tokens.md).
`)
	if err := IndexFile(db, "developer/auth-setup.md", data); err != nil {
		t.Fatalf("IndexFile: %v", err)
	}

	d, err := db.GetDoc("developer/auth-setup.md")
	if err != nil || d == nil {
		t.Fatalf("GetDoc: %v, %+v", err, d)
	}
	if d.Title != "Auth Setup" || d.Category != "reference" || d.Difficulty != "intermediate" {
		t.Errorf("row = %+v", d)
	}
	if !d.Stamped {
		t.Error("stamped flag should be set")
	}
	if len(d.Tags) != 2 {
		t.Errorf("tags = %v", d.Tags)
	}
	refs, _ := db.ReferencedBy("developer/tokens.md")
	if len(refs) != 1 {
		t.Errorf("expected 1 referrer via relative link, got %d", len(refs))
	}
}

func TestIndexFile_UnstampedFile(t *testing.T) {
	db := testDB(t)
	data := []byte("# Plain Doc\n\nNo front matter here.\n")
	if err := IndexFile(db, "plain.md", data); err != nil {
		t.Fatalf("IndexFile: %v", err)
	}

	d, _ := db.GetDoc("plain.md")
	if d == nil {
		t.Fatal("expected a row")
	}
	if d.Stamped {
		t.Error("stamped flag should be unset")
	}
	if d.Title != "Plain Doc" {
		t.Errorf("title = %q", d.Title)
	}
}
