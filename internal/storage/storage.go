package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/zeebo/blake3"
)

const filePerm = 0o644

// Options bound what the disk can hold.
type Options struct {
	// MaxNameLength is the longest accepted file name in bytes.
	MaxNameLength int

	// MaxFiles is the number of files the directory can hold.
	MaxFiles int

	// Capacity is the number of content bytes the disk can hold.
	Capacity uint64
}

// FileInfo describes a file on the disk.
type FileInfo struct {
	Name   string
	Size   int64
	Digest [32]byte
}

// Statistics are the disk transfer counters.
type Statistics struct {
	BytesRead    uint64
	BytesWritten uint64
}

// entry is the disk's record of a file. A removed entry stays reachable
// through handles that were open at removal time.
type entry struct {
	name    string
	size    int64
	removed bool
}

// Handler is the disk: a directory of named byte sequences kept in a
// [billy.Filesystem]. It is safe for concurrent use.
type Handler struct {
	sync.Mutex
	fs      billy.Filesystem
	opts    Options
	used    uint64
	entries map[string]*entry
	stats   Statistics
}

// NewHandler returns a pointer to a new [Handler] on top of the given
// filesystem. Regular files already present on the filesystem are adopted and
// count against the limits of the disk.
func NewHandler(fsys billy.Filesystem, opts Options) (*Handler, error) {
	h := &Handler{
		fs:      fsys,
		opts:    opts,
		entries: make(map[string]*entry),
	}

	if err := h.adoptAll(); err != nil {
		return nil, err
	}

	return h, nil
}

// Create creates an empty file. An existing file is left untouched and is not
// an error.
func (h *Handler) Create(name string) error {
	name, err := h.validateName(name)
	if err != nil {
		return err
	}

	h.Lock()
	defer h.Unlock()

	if _, err := h.lookup(name); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	if dir := path.Dir(name); dir != "." {
		fi, err := h.fs.Stat(dir)
		if err != nil || !fi.IsDir() {
			return fmt.Errorf("(storage) %w: %s", ErrDirectoryMissing, dir)
		}
	}

	if len(h.entries) >= h.opts.MaxFiles {
		return fmt.Errorf("(storage) %w: directory holds %d files", ErrStorageFull, len(h.entries))
	}

	f, err := h.fs.OpenFile(name, os.O_CREATE|os.O_RDWR, filePerm)
	if err != nil {
		return fmt.Errorf("(storage) failed to create %s: %w", name, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("(storage) failed to close %s: %w", name, err)
	}

	h.entries[name] = &entry{name: name}

	slog.Debug("File created.", "name", name)

	return nil
}

// Open returns a new [Handle] on an existing file.
func (h *Handler) Open(name string) (File, error) {
	name, err := h.validateName(name)
	if err != nil {
		return nil, err
	}

	h.Lock()
	defer h.Unlock()

	e, err := h.lookup(name)
	if err != nil {
		return nil, err
	}

	f, err := h.fs.OpenFile(name, os.O_RDWR, filePerm)
	if err != nil {
		return nil, fmt.Errorf("(storage) failed to open %s: %w", name, err)
	}

	return &Handle{handler: h, entry: e, file: f}, nil
}

// Remove deletes a file from the directory. Open handles keep reading the
// contents they had.
func (h *Handler) Remove(name string) error {
	name, err := h.validateName(name)
	if err != nil {
		return err
	}

	h.Lock()
	defer h.Unlock()

	e, err := h.lookup(name)
	if err != nil {
		return err
	}

	if err := h.fs.Remove(name); err != nil {
		return fmt.Errorf("(storage) failed to remove %s: %w", name, err)
	}

	e.removed = true
	h.used -= uint64(e.size)
	delete(h.entries, name)

	slog.Debug("File removed.", "name", name)

	return nil
}

// Files lists the files of the directory, sorted by name, with a BLAKE3
// digest of their contents.
func (h *Handler) Files() ([]FileInfo, error) {
	h.Lock()
	defer h.Unlock()

	names := make([]string, 0, len(h.entries))
	for name := range h.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	infos := make([]FileInfo, 0, len(names))

	for _, name := range names {
		digest, err := h.digest(name)
		if err != nil {
			return nil, err
		}

		infos = append(infos, FileInfo{
			Name:   name,
			Size:   h.entries[name].size,
			Digest: digest,
		})
	}

	return infos, nil
}

// Statistics returns a copy of the transfer counters.
func (h *Handler) Statistics() Statistics {
	h.Lock()
	defer h.Unlock()

	return h.stats
}

func (h *Handler) digest(name string) ([32]byte, error) {
	var sum [32]byte

	f, err := h.fs.Open(name)
	if err != nil {
		return sum, fmt.Errorf("(storage) failed to open %s: %w", name, err)
	}
	defer f.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return sum, fmt.Errorf("(storage) failed to hash %s: %w", name, err)
	}
	copy(sum[:], hasher.Sum(nil))

	return sum, nil
}

// adoptAll records every regular file found on the filesystem. An empty
// filesystem may have no root directory yet.
func (h *Handler) adoptAll() error {
	err := util.Walk(h.fs, ".", func(name string, fi os.FileInfo, err error) error {
		if err != nil {
			if name == "." && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}

			return err
		}

		if !fi.Mode().IsRegular() {
			return nil
		}

		name = filepath.ToSlash(name)
		h.entries[name] = &entry{name: name, size: fi.Size()}
		h.used += uint64(fi.Size())

		return nil
	})
	if err != nil {
		return fmt.Errorf("(storage) failed to scan disk: %w", err)
	}

	if len(h.entries) > 0 {
		slog.Debug("Adopted existing files.",
			"files", len(h.entries),
			"bytes", h.used,
		)
	}

	return nil
}

// lookup returns the entry of a file, adopting files that exist on the
// underlying filesystem but were not created through this [Handler].
func (h *Handler) lookup(name string) (*entry, error) {
	if e, ok := h.entries[name]; ok {
		return e, nil
	}

	fi, err := h.fs.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("(storage) %w: %s", ErrNotFound, name)
		}

		return nil, fmt.Errorf("(storage) failed to stat %s: %w", name, err)
	}

	if fi.IsDir() {
		return nil, fmt.Errorf("(storage) %w: %s", ErrIsDirectory, name)
	}

	e := &entry{name: name, size: fi.Size()}
	h.entries[name] = e
	h.used += uint64(e.size)

	return e, nil
}

func (h *Handler) validateName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("(storage) %w", ErrNameEmpty)
	}

	if len(name) > h.opts.MaxNameLength {
		return "", fmt.Errorf("(storage) %w: %d > %d bytes", ErrNameTooLong, len(name), h.opts.MaxNameLength)
	}

	cleaned := strings.TrimPrefix(path.Clean("/"+name), "/")
	if cleaned == "" {
		return "", fmt.Errorf("(storage) %w: %s", ErrIsDirectory, name)
	}

	return cleaned, nil
}
