// Package storage implements the content store behind the access gate on
// the local filesystem: material files live under <root>/<course_id>/.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/learnhub/course-platform/internal/core/domain"
)

// LocalStore serves course material from a directory tree. Open fails
// closed: a missing file, a directory, a traversal attempt, or a content
// type that does not match the catalog entry all yield errors, never bytes.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Open(_ context.Context, courseID string, m *domain.Material) (io.ReadSeekCloser, error) {
	if m == nil || m.Filename == "" {
		return nil, domain.ErrMaterialNotFound
	}

	// The catalog stores a bare filename; anything with path separators or
	// dot segments is rejected outright.
	if filepath.Base(m.Filename) != m.Filename || strings.HasPrefix(m.Filename, ".") {
		return nil, domain.ErrMaterialNotFound
	}

	path := filepath.Join(s.root, courseID, m.Filename)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrMaterialNotFound
		}
		return nil, fmt.Errorf("open material: %w", err)
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat material: %w", err)
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, domain.ErrMaterialNotFound
	}

	if err := checkContentType(m); err != nil {
		_ = f.Close()
		return nil, err
	}

	return f, nil
}

// checkContentType verifies the on-disk extension agrees with the content
// type declared in the catalog.
func checkContentType(m *domain.Material) error {
	ext := filepath.Ext(m.Filename)
	if ext == "" {
		return fmt.Errorf("material %q: missing extension", m.Filename)
	}

	detected := mime.TypeByExtension(ext)
	if detected == "" {
		return fmt.Errorf("material %q: unknown content type", m.Filename)
	}

	// mime may append parameters (e.g. "; charset=utf-8").
	if base, _, _ := strings.Cut(detected, ";"); strings.TrimSpace(base) != m.ContentType {
		return fmt.Errorf("material %q: content type %q does not match declared %q", m.Filename, detected, m.ContentType)
	}
	return nil
}
