//go:build !windows

package local

import (
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/Ning0612/drawfolders/internal/domain"
)

func TestMapError_Errno(t *testing.T) {
	tests := []struct {
		errno syscall.Errno
		want  error
	}{
		{syscall.ENOTDIR, domain.ErrNotDirectory},
		{syscall.ENOSPC, domain.ErrDiskFull},
		{syscall.ENAMETOOLONG, domain.ErrNameTooLong},
		{syscall.EINVAL, domain.ErrInvalidName},
		{syscall.ETIMEDOUT, domain.ErrTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.errno.Error(), func(t *testing.T) {
			got := mapError(&os.PathError{Op: "mkdir", Path: "/x", Err: tt.errno})
			if !errors.Is(got, tt.want) {
				t.Errorf("mapError(%v) = %v, want %v", tt.errno, got, tt.want)
			}
		})
	}

	other := &os.PathError{Op: "mkdir", Path: "/x", Err: syscall.EIO}
	if got := mapError(other); got != other {
		t.Errorf("unmapped errors pass through, got %v", got)
	}
}
