package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/Ning0612/drawfolders/internal/domain"
)

// Adapter implements adapter.Filesystem for local disks and mounted or UNC shares.
// Every call runs on a helper goroutine so that an unreachable share
// returns domain.ErrTimeout when ctx expires instead of blocking the caller.
type Adapter struct {
	dirPerm os.FileMode
}

// Option configures an Adapter
type Option func(*Adapter)

// WithDirPerm sets the permission bits for created directories
func WithDirPerm(perm os.FileMode) Option {
	return func(a *Adapter) {
		a.dirPerm = perm
	}
}

// New creates a new local filesystem adapter
func New(opts ...Option) *Adapter {
	a := &Adapter{dirPerm: 0755}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// List returns the immediate children of path
func (a *Adapter) List(ctx context.Context, path string) ([]domain.FileInfo, error) {
	fullPath, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	return call(ctx, func() ([]domain.FileInfo, error) {
		entries, err := os.ReadDir(fullPath)
		if err != nil {
			return nil, mapError(err)
		}

		result := make([]domain.FileInfo, 0, len(entries))
		for _, entry := range entries {
			info, err := entry.Info()
			if err != nil {
				continue // Skip entries removed or unreadable since ReadDir
			}
			entryPath := filepath.Join(fullPath, entry.Name())
			result = append(result, fileInfoFromOS(entryPath, followLink(entryPath, info)))
		}
		return result, nil
	})
}

// Stat returns metadata for a single path
func (a *Adapter) Stat(ctx context.Context, path string) (domain.FileInfo, error) {
	fullPath, err := resolvePath(path)
	if err != nil {
		return domain.FileInfo{}, err
	}

	return call(ctx, func() (domain.FileInfo, error) {
		info, err := os.Stat(fullPath)
		if err != nil {
			return domain.FileInfo{}, mapError(err)
		}
		return fileInfoFromOS(fullPath, info), nil
	})
}

// Exists checks if a path exists
func (a *Adapter) Exists(ctx context.Context, path string) (bool, error) {
	_, err := a.Stat(ctx, path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// Mkdir creates a directory and any necessary parents
func (a *Adapter) Mkdir(ctx context.Context, path string) error {
	fullPath, err := resolvePath(path)
	if err != nil {
		return err
	}

	_, err = call(ctx, func() (struct{}, error) {
		return struct{}{}, mapError(os.MkdirAll(fullPath, a.dirPerm))
	})
	return err
}

// MkdirExclusive creates a single directory, failing if it already exists
func (a *Adapter) MkdirExclusive(ctx context.Context, path string) error {
	fullPath, err := resolvePath(path)
	if err != nil {
		return err
	}

	_, err = call(ctx, func() (struct{}, error) {
		return struct{}{}, mapError(os.Mkdir(fullPath, a.dirPerm))
	})
	return err
}

// Rename moves oldPath to newPath without replacing an existing destination
func (a *Adapter) Rename(ctx context.Context, oldPath, newPath string) error {
	from, err := resolvePath(oldPath)
	if err != nil {
		return err
	}
	to, err := resolvePath(newPath)
	if err != nil {
		return err
	}

	_, err = call(ctx, func() (struct{}, error) {
		// os.Rename replaces empty directories on Unix
		if _, err := os.Lstat(to); err == nil {
			return struct{}{}, domain.ErrAlreadyExists
		}
		return struct{}{}, mapError(os.Rename(from, to))
	})
	return err
}

// resolvePath cleans path and requires it to be absolute
func resolvePath(path string) (string, error) {
	if path == "" {
		return "", domain.ErrNotFound
	}
	path = filepath.Clean(filepath.FromSlash(path))
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", err
		}
		path = abs
	}
	return path, nil
}

// call runs fn on a helper goroutine and returns early when ctx is done.
// The helper finishes on its own once the OS call returns.
func call[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, ctxError(err)
	}

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		return zero, ctxError(ctx.Err())
	}
}

func ctxError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTimeout
	}
	return err
}

// followLink returns the target's info for symlinks and Windows junctions,
// which ReadDir reports as links or irregular entries.
// A dangling link keeps its own info.
func followLink(path string, info os.FileInfo) os.FileInfo {
	if info.Mode()&(os.ModeSymlink|os.ModeIrregular) == 0 {
		return info
	}
	target, err := os.Stat(path)
	if err != nil {
		return info
	}
	return target
}

// fileInfoFromOS converts os.FileInfo to domain.FileInfo
func fileInfoFromOS(path string, info os.FileInfo) domain.FileInfo {
	fileType := domain.FileTypeRegular
	if info.IsDir() {
		fileType = domain.FileTypeDirectory
	} else if info.Mode()&os.ModeSymlink != 0 {
		fileType = domain.FileTypeSymlink
	}

	return domain.FileInfo{
		Name:    filepath.Base(path),
		Path:    path,
		Type:    fileType,
		ModTime: info.ModTime(),
	}
}

// mapError converts OS errors to domain errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if os.IsNotExist(err) {
		return domain.ErrNotFound
	}
	if os.IsPermission(err) {
		return domain.ErrPermissionDenied
	}
	if os.IsExist(err) {
		return domain.ErrAlreadyExists
	}
	if mapped, ok := mapPlatformError(err); ok {
		return mapped
	}
	return err
}
