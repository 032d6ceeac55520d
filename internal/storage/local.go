package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"expedientes/internal/utils"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// LocalStore keeps uploads on local disk under a single root directory.
// Stored names are generated server-side; client-supplied names never touch
// the filesystem directly.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		root = "uploads"
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}

	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Root() string {
	return s.root
}

// StoredName builds a collision-resistant storage name: millisecond
// timestamp, a short random suffix, and the sanitized original filename.
func (s *LocalStore) StoredName(original string) string {
	base := filepath.Base(original)
	base = whitespacePattern.ReplaceAllString(base, "_")

	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), utils.NanoIDSize(8), base)
}

func (s *LocalStore) Save(_ context.Context, storedName string, data io.Reader) error {
	f, err := os.Create(s.Path(storedName))
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

func (s *LocalStore) Open(_ context.Context, storedName string) (io.ReadCloser, error) {
	f, err := os.Open(s.Path(storedName))
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

func (s *LocalStore) Exists(storedName string) bool {
	_, err := os.Stat(s.Path(storedName))
	return err == nil
}

func (s *LocalStore) Remove(storedName string) error {
	return os.Remove(s.Path(storedName))
}

// Path resolves a stored name to an absolute location under the root.
// filepath.Base strips any directory components a stale row could carry.
func (s *LocalStore) Path(storedName string) string {
	return filepath.Join(s.root, filepath.Base(storedName))
}
