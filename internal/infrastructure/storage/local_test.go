package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/learnhub/course-platform/internal/core/domain"
)

func seedMaterial(t *testing.T, root, courseID, filename, content string) {
	t.Helper()

	dir := filepath.Join(root, courseID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLocalStore_Open(t *testing.T) {
	root := t.TempDir()
	seedMaterial(t, root, "course_1", "intro.pdf", "%PDF-1.4 test")

	store := NewLocalStore(root)
	rc, err := store.Open(context.Background(), "course_1", &domain.Material{
		Filename:    "intro.pdf",
		ContentType: "application/pdf",
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "%PDF-1.4 test" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestLocalStore_MissingFile(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Open(context.Background(), "course_1", &domain.Material{
		Filename:    "gone.pdf",
		ContentType: "application/pdf",
	})
	if !errors.Is(err, domain.ErrMaterialNotFound) {
		t.Fatalf("expected ErrMaterialNotFound, got %v", err)
	}
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	root := t.TempDir()
	seedMaterial(t, root, "course_1", "intro.pdf", "data")

	store := NewLocalStore(root)
	_, err := store.Open(context.Background(), "course_1", &domain.Material{
		Filename:    "../course_1/intro.pdf",
		ContentType: "application/pdf",
	})
	if !errors.Is(err, domain.ErrMaterialNotFound) {
		t.Fatalf("expected ErrMaterialNotFound for traversal, got %v", err)
	}
}

func TestLocalStore_ContentTypeMismatch(t *testing.T) {
	root := t.TempDir()
	seedMaterial(t, root, "course_1", "intro.pdf", "data")

	store := NewLocalStore(root)
	_, err := store.Open(context.Background(), "course_1", &domain.Material{
		Filename:    "intro.pdf",
		ContentType: "video/mp4",
	})
	if err == nil {
		t.Fatalf("expected error for mismatched content type")
	}
	if errors.Is(err, domain.ErrMaterialNotFound) {
		t.Fatalf("mismatch must not be reported as not-found")
	}
}

func TestLocalStore_NilMaterial(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	if _, err := store.Open(context.Background(), "course_1", nil); !errors.Is(err, domain.ErrMaterialNotFound) {
		t.Fatalf("expected ErrMaterialNotFound, got %v", err)
	}
}
