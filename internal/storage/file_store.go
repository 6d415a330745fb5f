package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore saves uploaded files to disk under a base directory.
// Stored names are randomized so clients cannot collide or overwrite.
type FileStore struct {
	basePath string
}

// NewFileStore creates the base directory if missing.
func NewFileStore(basePath string) (*FileStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// Save writes the content under a random name, keeping the original
// extension, and returns the stored name.
func (f *FileStore) Save(originalName string, r io.Reader) (string, error) {
	storedName := uuid.NewString() + sanitizeExt(originalName)
	target := filepath.Join(f.basePath, storedName)

	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("write file: %w", err)
	}
	return storedName, nil
}

// Open returns the stored file for reading. The name is reduced to its
// base component so callers cannot traverse out of the store.
func (f *FileStore) Open(storedName string) (*os.File, error) {
	return os.Open(filepath.Join(f.basePath, filepath.Base(storedName)))
}

// Delete removes a stored file. Missing files are not an error.
func (f *FileStore) Delete(storedName string) error {
	err := os.Remove(filepath.Join(f.basePath, filepath.Base(storedName)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the on-disk path of a stored file.
func (f *FileStore) Path(storedName string) string {
	return filepath.Join(f.basePath, filepath.Base(storedName))
}

func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) > 10 {
		return ""
	}
	for _, r := range ext {
		if r != '.' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
