package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"report-backend/storage"
)

// ErrBlobNotFound is returned when the addressed file does not exist
var ErrBlobNotFound = errors.New("blob not found")

// FilesystemStorage implements the storage interface on a local directory
// tree rooted at baseDir.
type FilesystemStorage struct {
	baseDir string
}

// New creates a new filesystem-backed storage
func New(baseDir string) (*FilesystemStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FilesystemStorage{baseDir: baseDir}, nil
}

// Store writes content under baseDir, creating intermediate directories
func (s *FilesystemStorage) Store(path string, content []byte) error {
	fullPath := s.resolve(path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return &storage.Error{
			Op:    "store",
			Path:  path,
			Inner: fmt.Errorf("failed to create directory: %w", err),
		}
	}
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return &storage.Error{
			Op:    "store",
			Path:  path,
			Inner: fmt.Errorf("failed to write file: %w", err),
		}
	}

	return nil
}

// Delete removes a single file
func (s *FilesystemStorage) Delete(path string) error {
	if err := os.Remove(s.resolve(path)); err != nil {
		if os.IsNotExist(err) {
			return &storage.Error{Op: "delete", Path: path, Inner: ErrBlobNotFound}
		}

		return &storage.Error{
			Op:    "delete",
			Path:  path,
			Inner: fmt.Errorf("failed to remove file: %w", err),
		}
	}

	return nil
}

// MoveDir renames a directory with its contents. Moving a directory that
// does not exist is a no-op so callers deleting never-uploaded-to reports
// do not trip over it.
func (s *FilesystemStorage) MoveDir(src, dst string) error {
	srcPath := s.resolve(src)
	if _, err := os.Stat(srcPath); os.IsNotExist(err) {
		return nil
	}

	dstPath := s.resolve(dst)
	if err := os.Rename(srcPath, dstPath); err != nil {
		return &storage.Error{
			Op:    "move",
			Path:  src,
			Inner: fmt.Errorf("failed to rename directory: %w", err),
		}
	}

	return nil
}

func (s *FilesystemStorage) resolve(path string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(path))
}
