package storage

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
)

// File is an open file of the disk. Offsets are supplied by the caller, so
// any number of cursors can share one [File] or many.
type File interface {
	Name() string
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
	Size() int64
	Close() error
}

// Handle is the [File] returned by [Handler.Open].
type Handle struct {
	handler *Handler
	entry   *entry
	file    billy.File
}

func (f *Handle) Name() string {
	return f.entry.name
}

// ReadAt reads from the file at the given offset. At the end of the file it
// returns the bytes read together with [io.EOF].
func (f *Handle) ReadAt(p []byte, off int64) (int, error) {
	f.handler.Lock()
	defer f.handler.Unlock()

	if off >= f.entry.size {
		return 0, io.EOF
	}

	n, err := f.file.ReadAt(p, off)
	f.handler.stats.BytesRead += uint64(n)

	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("(storage) failed to read %s: %w", f.entry.name, err)
	}

	return n, err
}

// WriteAt writes to the file at the given offset, growing it as needed. A
// write that would exceed the disk capacity writes nothing.
func (f *Handle) WriteAt(p []byte, off int64) (int, error) {
	f.handler.Lock()
	defer f.handler.Unlock()

	if f.entry.removed {
		return 0, fmt.Errorf("(storage) %w: %s", ErrRemoved, f.entry.name)
	}

	var growth uint64
	if end := off + int64(len(p)); end > f.entry.size {
		growth = uint64(end - f.entry.size)
	}

	if f.handler.used+growth > f.handler.opts.Capacity {
		return 0, fmt.Errorf("(storage) %w: %d of %d bytes used", ErrStorageFull, f.handler.used, f.handler.opts.Capacity)
	}

	if _, err := f.file.Seek(off, io.SeekStart); err != nil {
		return 0, fmt.Errorf("(storage) failed to seek %s: %w", f.entry.name, err)
	}

	n, err := f.file.Write(p)
	f.handler.stats.BytesWritten += uint64(n)

	if end := off + int64(n); end > f.entry.size {
		f.handler.used += uint64(end - f.entry.size)
		f.entry.size = end
	}

	if err != nil {
		return n, fmt.Errorf("(storage) failed to write %s: %w", f.entry.name, err)
	}

	return n, nil
}

// Size returns the current length of the file.
func (f *Handle) Size() int64 {
	f.handler.Lock()
	defer f.handler.Unlock()

	return f.entry.size
}

func (f *Handle) Close() error {
	if err := f.file.Close(); err != nil {
		return fmt.Errorf("(storage) failed to close %s: %w", f.entry.name, err)
	}

	return nil
}
