package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
)

const (
	// StorageMemory keeps the disk in memory for the lifetime of the machine.
	StorageMemory = "memory"

	// StorageOS keeps the disk in a directory of the host filesystem.
	StorageOS = "os"
)

const (
	KeyMaxOpenFiles  = "NACHOS_MAX_OPEN_FILES"
	KeyMaxNameLength = "NACHOS_MAX_NAME_LENGTH"
	KeyMaxFiles      = "NACHOS_MAX_FILES"
	KeyDiskCapacity  = "NACHOS_DISK_CAPACITY"
	KeyMemorySize    = "NACHOS_MEMORY_SIZE"
	KeyStorage       = "NACHOS_STORAGE"
	KeyStorageRoot   = "NACHOS_STORAGE_ROOT"
	KeyLogLevel      = "NACHOS_LOG_LEVEL"
)

const (
	// minOpenFiles leaves room for the two console descriptors and at least
	// one file.
	minOpenFiles = 3
	maxOpenFiles = 1024

	maxNameLength = 4096

	minMemorySize = 256
	maxMemorySize = 64 << 20
)

// Settings are the parameters of a simulated machine.
type Settings struct {
	// MaxOpenFiles is the size of each process' descriptor table,
	// including the console descriptors.
	MaxOpenFiles int

	// MaxNameLength is the longest accepted file name in bytes.
	MaxNameLength int

	// MaxFiles is the number of files the disk directory can hold.
	MaxFiles int

	// DiskCapacity is the number of content bytes the disk can hold.
	DiskCapacity uint64

	// MemorySize is the size of each process' user memory in bytes.
	MemorySize uint64

	Storage     string
	StorageRoot string
	LogLevel    slog.Level
}

// DefaultSettings returns the settings used for keys that are not configured.
func DefaultSettings() Settings {
	return Settings{
		MaxOpenFiles:  16,
		MaxNameLength: 256,
		MaxFiles:      64,
		DiskCapacity:  128 * 1024,
		MemorySize:    8 * 1024,
		Storage:       StorageMemory,
		StorageRoot:   ".",
		LogLevel:      slog.LevelInfo,
	}
}

// LoadSettings reads the given configuration files and returns the resulting
// [Settings]. When none of the files exist, the [DefaultSettings] are
// returned.
func (c *Handler) LoadSettings(filenames ...string) (Settings, error) {
	settings := DefaultSettings()

	envMap, err := c.ReadGeneric(filenames...)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return settings, fmt.Errorf("(config) failed to read: %w", err)
		}

		slog.Debug("No configuration file found, using defaults.",
			"files", filenames,
		)

		return settings, nil
	}

	if settings.MaxOpenFiles, err = c.MapKeyToInt(envMap, KeyMaxOpenFiles, settings.MaxOpenFiles); err != nil {
		return settings, fmt.Errorf("(config) %w", err)
	}

	if settings.MaxNameLength, err = c.MapKeyToInt(envMap, KeyMaxNameLength, settings.MaxNameLength); err != nil {
		return settings, fmt.Errorf("(config) %w", err)
	}

	if settings.MaxFiles, err = c.MapKeyToInt(envMap, KeyMaxFiles, settings.MaxFiles); err != nil {
		return settings, fmt.Errorf("(config) %w", err)
	}

	if settings.DiskCapacity, err = c.MapKeyToBytes(envMap, KeyDiskCapacity, settings.DiskCapacity); err != nil {
		return settings, fmt.Errorf("(config) %w", err)
	}

	if settings.MemorySize, err = c.MapKeyToBytes(envMap, KeyMemorySize, settings.MemorySize); err != nil {
		return settings, fmt.Errorf("(config) %w", err)
	}

	if v := c.MapKeyToString(envMap, KeyStorage); v != "" {
		settings.Storage = strings.ToLower(v)
	}

	if v := c.MapKeyToString(envMap, KeyStorageRoot); v != "" {
		settings.StorageRoot = v
	}

	if v := c.MapKeyToString(envMap, KeyLogLevel); v != "" {
		if err := settings.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return settings, fmt.Errorf("(config) %w: %s=%q: %w", ErrInvalidSetting, KeyLogLevel, v, err)
		}
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("(config) %w", err)
	}

	return settings, nil
}

// Validate checks that the settings describe a machine that can run.
func (s Settings) Validate() error {
	switch {
	case s.MaxOpenFiles < minOpenFiles || s.MaxOpenFiles > maxOpenFiles:
		return fmt.Errorf("%w: %s must be within %d and %d", ErrSettingOutOfRange, KeyMaxOpenFiles, minOpenFiles, maxOpenFiles)
	case s.MaxNameLength < 1 || s.MaxNameLength > maxNameLength:
		return fmt.Errorf("%w: %s must be within 1 and %d", ErrSettingOutOfRange, KeyMaxNameLength, maxNameLength)
	case s.MaxFiles < 1:
		return fmt.Errorf("%w: %s must be positive", ErrSettingOutOfRange, KeyMaxFiles)
	case s.MemorySize < minMemorySize || s.MemorySize > maxMemorySize:
		return fmt.Errorf("%w: %s must be within %d and %d bytes", ErrSettingOutOfRange, KeyMemorySize, minMemorySize, maxMemorySize)
	}

	if s.Storage != StorageMemory && s.Storage != StorageOS {
		return fmt.Errorf("%w: %q", ErrUnknownStorage, s.Storage)
	}

	return nil
}
