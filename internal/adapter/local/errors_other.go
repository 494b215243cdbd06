//go:build !windows

package local

import (
	"errors"
	"syscall"

	"github.com/Ning0612/drawfolders/internal/domain"
)

// mapPlatformError maps errno values os does not classify itself
func mapPlatformError(err error) (error, bool) {
	switch {
	case errors.Is(err, syscall.ENOTDIR):
		return domain.ErrNotDirectory, true
	case errors.Is(err, syscall.ENOSPC):
		return domain.ErrDiskFull, true
	case errors.Is(err, syscall.ENAMETOOLONG):
		return domain.ErrNameTooLong, true
	case errors.Is(err, syscall.EINVAL):
		return domain.ErrInvalidName, true
	case errors.Is(err, syscall.ETIMEDOUT):
		return domain.ErrTimeout, true
	}
	return nil, false
}
