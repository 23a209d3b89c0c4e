package kernel

import (
	"errors"

	"github.com/desertwitch/nachosys/internal/memory"
	"github.com/desertwitch/nachosys/internal/storage"
	"golang.org/x/sys/unix"
)

// errnoOf translates an error into the errno reported at the syscall
// boundary.
func errnoOf(err error) unix.Errno {
	switch {
	case errors.Is(err, ErrInvalidDescriptor):
		return unix.EBADF
	case errors.Is(err, ErrDescriptorExhausted):
		return unix.EMFILE
	case errors.Is(err, ErrInvalidCount), errors.Is(err, storage.ErrNameEmpty):
		return unix.EINVAL
	case errors.Is(err, ErrNotImplemented):
		return unix.ENOSYS
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrDirectoryMissing):
		return unix.ENOENT
	case errors.Is(err, storage.ErrNameTooLong), errors.Is(err, memory.ErrTooLong):
		return unix.ENAMETOOLONG
	case errors.Is(err, storage.ErrIsDirectory):
		return unix.EISDIR
	case errors.Is(err, storage.ErrStorageFull):
		return unix.ENOSPC
	case errors.Is(err, storage.ErrRemoved):
		return unix.ESTALE
	case errors.Is(err, memory.ErrFault):
		return unix.EFAULT
	default:
		return unix.EIO
	}
}

// ret converts an errno into a syscall return value.
func ret(errno unix.Errno) int {
	return -int(errno)
}
