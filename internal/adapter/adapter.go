package adapter

import (
	"context"

	"github.com/Ning0612/drawfolders/internal/domain"
)

// Filesystem defines the directory operations the folder convention needs.
// All implementations take absolute paths and return domain-level errors
// for consistent error handling.
type Filesystem interface {
	// List returns the immediate children of path
	// Returns domain.ErrNotFound if path doesn't exist
	// Returns domain.ErrNotDirectory if path is a file
	// Returns domain.ErrTimeout if ctx expires before the listing completes
	List(ctx context.Context, path string) ([]domain.FileInfo, error)

	// Stat returns metadata for a single path
	// Returns domain.ErrNotFound if path doesn't exist
	Stat(ctx context.Context, path string) (domain.FileInfo, error)

	// Exists checks if a path exists
	Exists(ctx context.Context, path string) (bool, error)

	// Mkdir creates a directory and any necessary parents
	// No error if directory already exists
	Mkdir(ctx context.Context, path string) error

	// MkdirExclusive creates a single directory
	// Returns domain.ErrAlreadyExists if anything exists at path
	MkdirExclusive(ctx context.Context, path string) error

	// Rename moves oldPath to newPath
	// Returns domain.ErrAlreadyExists if newPath exists
	Rename(ctx context.Context, oldPath, newPath string) error
}
