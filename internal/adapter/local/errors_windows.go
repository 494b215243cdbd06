//go:build windows

package local

import (
	"errors"

	"golang.org/x/sys/windows"

	"github.com/Ning0612/drawfolders/internal/domain"
)

// mapPlatformError maps Windows error codes, mostly from UNC shares
func mapPlatformError(err error) (error, bool) {
	switch {
	case errors.Is(err, windows.ERROR_BAD_NETPATH),
		errors.Is(err, windows.ERROR_BAD_NET_NAME),
		errors.Is(err, windows.ERROR_NETNAME_DELETED):
		return domain.ErrNotFound, true
	case errors.Is(err, windows.ERROR_SEM_TIMEOUT):
		return domain.ErrTimeout, true
	case errors.Is(err, windows.ERROR_INVALID_NAME):
		return domain.ErrInvalidName, true
	case errors.Is(err, windows.ERROR_DISK_FULL),
		errors.Is(err, windows.ERROR_HANDLE_DISK_FULL):
		return domain.ErrDiskFull, true
	case errors.Is(err, windows.ERROR_FILENAME_EXCED_RANGE):
		return domain.ErrNameTooLong, true
	case errors.Is(err, windows.ERROR_DIRECTORY):
		return domain.ErrNotDirectory, true
	}
	return nil, false
}
