package domain

import (
	"errors"
	"fmt"
)

// Adapter errors - filesystem layer
var (
	// ErrNotFound indicates the requested path does not exist
	ErrNotFound = errors.New("path not found")

	// ErrAlreadyExists indicates the path already exists
	ErrAlreadyExists = errors.New("path already exists")

	// ErrPermissionDenied indicates insufficient permissions
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotDirectory indicates expected a directory but got a file
	ErrNotDirectory = errors.New("not a directory")

	// ErrTimeout indicates the filesystem did not answer before the deadline
	ErrTimeout = errors.New("operation timed out")

	// ErrDiskFull indicates the device has no space left
	ErrDiskFull = errors.New("disk full")

	// ErrInvalidName indicates the name contains characters the filesystem rejects
	ErrInvalidName = errors.New("invalid name")

	// ErrNameTooLong indicates the path exceeds the filesystem limit
	ErrNameTooLong = errors.New("path too long")
)

// Engine errors - folder convention layer
var (
	// ErrDirectoryUnavailable indicates a root, client or drawing folder could not be listed
	ErrDirectoryUnavailable = errors.New("directory unavailable")

	// ErrCreationFailed indicates a drawing or revision folder could not be created
	ErrCreationFailed = errors.New("creation failed")

	// ErrClientNotFound indicates no client matched a lookup
	ErrClientNotFound = errors.New("client not found")

	// ErrAmbiguousClient indicates more than one client matched a lookup
	ErrAmbiguousClient = errors.New("ambiguous client")

	// ErrNoDrawings indicates a client folder holds no drawing folders
	ErrNoDrawings = errors.New("no drawings")

	// ErrInvalidRange indicates a batch range is empty or out of bounds
	ErrInvalidRange = errors.New("invalid drawing range")
)

// Config errors
var (
	// ErrConfigNotFound indicates config file not found
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigInvalid indicates config file is malformed
	ErrConfigInvalid = errors.New("invalid config")

	// ErrRootNotFound indicates a referenced root is not configured
	ErrRootNotFound = errors.New("root not found")
)

// DirectoryError reports a folder that could not be listed.
// It matches ErrDirectoryUnavailable and the underlying cause with errors.Is.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDirectoryUnavailable, e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() []error {
	return []error{ErrDirectoryUnavailable, e.Err}
}

// CreationError reports a folder that could not be created.
// Reason is short and meant to be shown to the operator as is.
type CreationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrCreationFailed, e.Path, e.Reason)
}

func (e *CreationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCreationFailed}
	}
	return []error{ErrCreationFailed, e.Err}
}

// CreationReason maps an adapter error to the short reason carried by CreationError
func CreationReason(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "permission denied"
	case errors.Is(err, ErrDiskFull):
		return "disk full"
	case errors.Is(err, ErrInvalidName):
		return "invalid characters in name"
	case errors.Is(err, ErrNameTooLong):
		return "path too long"
	case errors.Is(err, ErrNotDirectory):
		return "a file is in the way"
	case errors.Is(err, ErrNotFound):
		return "parent folder missing"
	case errors.Is(err, ErrTimeout):
		return "filesystem timed out"
	case err == nil:
		return "unknown"
	default:
		return err.Error()
	}
}
