package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/lzyyzznl/work-tools/internal/domain"
	"github.com/lzyyzznl/work-tools/internal/testutil"
)

func TestExists(t *testing.T) {
	a := New()
	ctx := context.Background()
	dir := t.TempDir()
	path := testutil.CreateTestFile(t, dir, "a.txt", []byte("x"))

	ok, err := a.Exists(ctx, path)
	if err != nil || !ok {
		t.Errorf("Exists(existing) = (%v, %v)", ok, err)
	}

	ok, err = a.Exists(ctx, filepath.Join(dir, "missing.txt"))
	if err != nil || ok {
		t.Errorf("Exists(missing) = (%v, %v)", ok, err)
	}
}

func TestRename(t *testing.T) {
	a := New()
	ctx := context.Background()
	dir := t.TempDir()
	old := testutil.CreateTestFile(t, dir, "report.txt", []byte("data"))
	renamed := filepath.Join(dir, "report_final.txt")

	if err := a.Rename(ctx, old, renamed); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old path still present")
	}
	content, err := os.ReadFile(renamed)
	if err != nil || string(content) != "data" {
		t.Errorf("renamed file content = (%s, %v)", content, err)
	}
}

func TestRename_SourceMissing(t *testing.T) {
	a := New()
	dir := t.TempDir()

	err := a.Rename(context.Background(),
		filepath.Join(dir, "nope.txt"), filepath.Join(dir, "other.txt"))
	if !errors.Is(err, domain.ErrFileMissing) {
		t.Errorf("expected ErrFileMissing, got %v", err)
	}
}

func TestRename_DestinationExists(t *testing.T) {
	a := New()
	dir := t.TempDir()
	old := testutil.CreateTestFile(t, dir, "a.txt", []byte("a"))
	occupied := testutil.CreateTestFile(t, dir, "b.txt", []byte("b"))

	err := a.Rename(context.Background(), old, occupied)
	if !errors.Is(err, domain.ErrFileExists) {
		t.Errorf("expected ErrFileExists, got %v", err)
	}
	// Neither file may be touched
	content, _ := os.ReadFile(occupied)
	if string(content) != "b" {
		t.Errorf("destination clobbered: %s", content)
	}
	if _, err := os.Stat(old); err != nil {
		t.Errorf("source lost: %v", err)
	}
}

func TestList_Recursive(t *testing.T) {
	a := New()
	dir := t.TempDir()
	testutil.CreateTestFile(t, dir, "top.txt", []byte("1"))
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	testutil.CreateTestFile(t, sub, "nested.csv", []byte("22"))

	files, err := a.List(context.Background(), dir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}

	names := []string{files[0].Name, files[1].Name}
	sort.Strings(names)
	if names[0] != "nested.csv" || names[1] != "top.txt" {
		t.Errorf("unexpected names: %v", names)
	}

	for _, f := range files {
		if f.Size == 0 || f.LastModified.IsZero() {
			t.Errorf("metadata incomplete for %s: %+v", f.Name, f)
		}
	}
}

func TestList_MimeFromExtension(t *testing.T) {
	a := New()
	dir := t.TempDir()
	testutil.CreateTestFile(t, dir, "doc.html", []byte("<p>"))

	files, err := a.List(context.Background(), dir)
	if err != nil || len(files) != 1 {
		t.Fatalf("List = (%v, %v)", files, err)
	}
	if !strings.HasPrefix(files[0].MimeType, "text/html") {
		t.Errorf("mime = %q", files[0].MimeType)
	}
}

func TestList_Errors(t *testing.T) {
	a := New()
	ctx := context.Background()
	dir := t.TempDir()

	if _, err := a.List(ctx, filepath.Join(dir, "missing")); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing root: expected ErrNotFound, got %v", err)
	}

	file := testutil.CreateTestFile(t, dir, "plain.txt", []byte("x"))
	if _, err := a.List(ctx, file); !errors.Is(err, domain.ErrNotDirectory) {
		t.Errorf("file root: expected ErrNotDirectory, got %v", err)
	}
}

func TestList_CancelledContext(t *testing.T) {
	a := New()
	dir := t.TempDir()
	testutil.CreateTestFile(t, dir, "a.txt", []byte("x"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.List(ctx, dir); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
