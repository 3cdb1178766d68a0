package docservice

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/halvard/docstamp/internal/apperr"
	"github.com/halvard/docstamp/internal/index"
	"github.com/halvard/docstamp/internal/testutil"
)

func testService(t *testing.T) *Service {
	t.Helper()
	_, store := testutil.TestDocs(t)
	db := testutil.TestDB(t)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService(store, db, logger)
}

func TestCreateDoc_StampsContent(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	d, err := svc.CreateDoc(ctx, "guides/setup.md", []byte("# Setup\n\nInstall the thing.\n"))
	if err != nil {
		t.Fatalf("CreateDoc: %v", err)
	}
	if !strings.HasPrefix(d.Content, "---\n") {
		t.Errorf("created content should be stamped:\n%s", d.Content)
	}
	if d.Title != "Setup" {
		t.Errorf("title = %q", d.Title)
	}
	if d.Category == "" {
		t.Error("stamped doc should expose its category")
	}
	if len(d.Tags) == 0 {
		t.Error("stamped doc should expose its tags")
	}
}

func TestCreateDoc_PreservesExistingFrontmatter(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	content := "---\ntitle: \"Custom\"\n---\nbody\n"
	d, err := svc.CreateDoc(ctx, "custom.md", []byte(content))
	if err != nil {
		t.Fatalf("CreateDoc: %v", err)
	}
	if d.Content != content {
		t.Errorf("content changed:\ngot  %q\nwant %q", d.Content, content)
	}
}

func TestCreateDoc_Duplicate(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateDoc(ctx, "dup.md", []byte("# Dup\n")); err != nil {
		t.Fatalf("CreateDoc: %v", err)
	}
	_, err := svc.CreateDoc(ctx, "dup.md", []byte("# Dup Again\n"))
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestGetDoc_NotFound(t *testing.T) {
	svc := testService(t)
	_, err := svc.GetDoc(context.Background(), "missing.md")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetDoc_ReferencedBy(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateDoc(ctx, "target.md", []byte("# Target\n\nLinked to.\n")); err != nil {
		t.Fatalf("CreateDoc target: %v", err)
	}
	if _, err := svc.CreateDoc(ctx, "source.md", []byte("# Source\n\nSee [target](target.md).\n")); err != nil {
		t.Fatalf("CreateDoc source: %v", err)
	}

	d, err := svc.GetDoc(ctx, "target.md")
	if err != nil {
		t.Fatalf("GetDoc: %v", err)
	}
	if len(d.ReferencedBy) != 1 || d.ReferencedBy[0] != "source.md" {
		t.Errorf("referenced_by = %v, want [source.md]", d.ReferencedBy)
	}
}

func TestUpdateDoc_OptimisticLock(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.CreateDoc(ctx, "lock.md", []byte("# Lock\n\nFirst.\n"))
	if err != nil {
		t.Fatalf("CreateDoc: %v", err)
	}

	// Stale checksum must conflict.
	_, err = svc.UpdateDoc(ctx, "lock.md", []byte("# Lock\n\nStale.\n"), "not-the-checksum")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}

	// Matching checksum succeeds.
	updated, err := svc.UpdateDoc(ctx, "lock.md", []byte("# Lock\n\nSecond.\n"), created.Checksum)
	if err != nil {
		t.Fatalf("UpdateDoc: %v", err)
	}
	if !strings.Contains(updated.Content, "Second.") {
		t.Errorf("content = %q", updated.Content)
	}
}

func TestUpdateDoc_NotFound(t *testing.T) {
	svc := testService(t)
	_, err := svc.UpdateDoc(context.Background(), "missing.md", []byte("x"), "")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteDoc(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.CreateDoc(ctx, "del.md", []byte("# Del\n")); err != nil {
		t.Fatalf("CreateDoc: %v", err)
	}
	if err := svc.DeleteDoc(ctx, "del.md"); err != nil {
		t.Fatalf("DeleteDoc: %v", err)
	}
	if _, err := svc.GetDoc(ctx, "del.md"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteDoc(ctx, "del.md"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestListDocs(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	_, _ = svc.CreateDoc(ctx, "user/getting-started.md", []byte("# Getting Started\n\nWelcome.\n"))
	_, _ = svc.CreateDoc(ctx, "developer/api.md", []byte("# API\n\nEndpoints.\n"))

	items, total, err := svc.ListDocs(ctx, index.ListQuery{})
	if err != nil {
		t.Fatalf("ListDocs: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("total = %d, items = %d, want 2/2", total, len(items))
	}
	for _, it := range items {
		if !it.Stamped {
			t.Errorf("%s should be stamped", it.Path)
		}
		if it.Tags == nil {
			t.Errorf("%s tags must not be nil", it.Path)
		}
	}

	items, total, _ = svc.ListDocs(ctx, index.ListQuery{Category: "tutorial"})
	if total != 1 || items[0].Path != "user/getting-started.md" {
		t.Errorf("category filter: total = %d, items = %+v", total, items)
	}
}

func TestStampAll_SyncsIndex(t *testing.T) {
	_, store := testutil.TestDocs(t)
	db := testutil.TestDB(t)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := NewService(store, db, logger)

	// Files placed directly in storage, bypassing the service.
	_ = store.Write("raw/one.md", []byte("# One\n\nFirst doc.\n"))
	_ = store.Write("raw/two.md", []byte("# Two\n\nSecond doc.\n"))

	var out bytes.Buffer
	report, err := svc.StampAll(context.Background(), &out)
	if err != nil {
		t.Fatalf("StampAll: %v", err)
	}
	if report.Count != 2 {
		t.Errorf("count = %d, want 2", report.Count)
	}

	// Stamped metadata is queryable right away.
	row, err := db.GetDoc("raw/one.md")
	if err != nil || row == nil {
		t.Fatalf("GetDoc: %v, %+v", err, row)
	}
	if !row.Stamped || row.Title != "One" {
		t.Errorf("row = %+v", row)
	}
}

func TestSearch(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	_, _ = svc.CreateDoc(ctx, "s.md", []byte("# Searchable\n\nA flamboyant keyword lives here.\n"))

	results, err := svc.Search(ctx, "flamboyant", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "s.md" {
		t.Errorf("results = %+v", results)
	}
}
