package storage

import "errors"

var (
	// ErrNameEmpty occurs when a file name is empty.
	ErrNameEmpty = errors.New("file name is empty")

	// ErrNameTooLong occurs when a file name exceeds the configured maximum
	// name length.
	ErrNameTooLong = errors.New("file name too long")

	// ErrDirectoryMissing occurs when the directory that should contain a
	// file does not exist.
	ErrDirectoryMissing = errors.New("containing directory does not exist")

	// ErrIsDirectory occurs when a file name refers to a directory.
	ErrIsDirectory = errors.New("is a directory")

	// ErrNotFound occurs when a file does not exist.
	ErrNotFound = errors.New("file does not exist")

	// ErrStorageFull occurs when either the directory or the content capacity
	// of the disk is exhausted.
	ErrStorageFull = errors.New("storage is full")

	// ErrRemoved occurs when writing through a handle whose file was removed.
	ErrRemoved = errors.New("file was removed")
)
