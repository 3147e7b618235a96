// Package testutil holds shared helpers for package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lzyyzznl/work-tools/internal/domain"
)

// CreateTestFile creates a test file with the given content
func CreateTestFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

// Metadata builds file metadata rooted in dir without touching the disk
func Metadata(dir, name string, size int64) domain.FileMetadata {
	return domain.FileMetadata{
		Name:         name,
		Path:         filepath.Join(dir, name),
		Size:         size,
		LastModified: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}
