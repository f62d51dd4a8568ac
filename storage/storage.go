package storage

// Storage is the blob-storage collaborator consumed by the report core.
// Paths are slash-separated and relative to the backend's base location.
type Storage interface {
	// Store writes content at path, creating parent directories (or key
	// prefixes) as needed.
	Store(path string, content []byte) error
	// Delete removes the blob at path. Deleting a missing blob is an
	// error so callers can decide whether to care.
	Delete(path string) error
	// MoveDir renames the directory (or key prefix) src to dst with its
	// entire contents.
	MoveDir(src, dst string) error
}

// Error wraps a failed blob operation
type Error struct {
	Op    string
	Path  string
	Inner error
}

func (e *Error) Error() string {
	return "Storage operation " + e.Op + " failed for " + e.Path + ": " + e.Inner.Error()
}

func (e *Error) Unwrap() error {
	return e.Inner
}
