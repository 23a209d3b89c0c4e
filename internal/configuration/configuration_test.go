package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadSettings_Success_File reads a real configuration file through
// [GodotenvProvider].
func TestLoadSettings_Success_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "machine.env")
	content := "NACHOS_MAX_OPEN_FILES=8\n" +
		"NACHOS_MAX_NAME_LENGTH=9\n" +
		"NACHOS_DISK_CAPACITY=\"4 KiB\"\n" +
		"NACHOS_MEMORY_SIZE=2kB\n" +
		"NACHOS_STORAGE=OS\n" +
		"NACHOS_STORAGE_ROOT=/tmp/disk\n" +
		"NACHOS_LOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	handler := NewHandler(&GodotenvProvider{})

	settings, err := handler.LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, 8, settings.MaxOpenFiles)
	assert.Equal(t, 9, settings.MaxNameLength)
	assert.Equal(t, DefaultSettings().MaxFiles, settings.MaxFiles)
	assert.Equal(t, uint64(4096), settings.DiskCapacity)
	assert.Equal(t, uint64(2000), settings.MemorySize)
	assert.Equal(t, StorageOS, settings.Storage)
	assert.Equal(t, "/tmp/disk", settings.StorageRoot)
	assert.Equal(t, slog.LevelDebug, settings.LogLevel)
}

// TestLoadSettings_Success_MissingFile falls back to the defaults.
func TestLoadSettings_Success_MissingFile(t *testing.T) {
	t.Parallel()

	handler := NewHandler(&GodotenvProvider{})

	settings, err := handler.LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

// TestLoadSettings_Fail_ReadError propagates errors other than a missing file.
func TestLoadSettings_Fail_ReadError(t *testing.T) {
	t.Parallel()

	provider := newMockGenericConfigProvider(t)
	provider.On("Read", "machine.env").Return(nil, errors.New("permission denied"))

	handler := NewHandler(provider)

	_, err := handler.LoadSettings("machine.env")
	require.Error(t, err)
	assert.NotErrorIs(t, err, fs.ErrNotExist)
}

// TestLoadSettings_Success_NotExistWrapped treats a wrapped missing file as
// missing.
func TestLoadSettings_Success_NotExistWrapped(t *testing.T) {
	t.Parallel()

	provider := newMockGenericConfigProvider(t)
	provider.On("Read", "machine.env").Return(nil, fmt.Errorf("(config-godotenv) %w", fs.ErrNotExist))

	handler := NewHandler(provider)

	settings, err := handler.LoadSettings("machine.env")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

// TestLoadSettings_Fail_Invalid covers malformed and out-of-range values.
func TestLoadSettings_Fail_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		envMap   map[string]string
		expected error
	}{
		{
			name:     "Fail_OpenFiles_NotNumber",
			envMap:   map[string]string{KeyMaxOpenFiles: "many"},
			expected: ErrInvalidSetting,
		},
		{
			name:     "Fail_OpenFiles_TooFew",
			envMap:   map[string]string{KeyMaxOpenFiles: "2"},
			expected: ErrSettingOutOfRange,
		},
		{
			name:     "Fail_OpenFiles_TooMany",
			envMap:   map[string]string{KeyMaxOpenFiles: "100000"},
			expected: ErrSettingOutOfRange,
		},
		{
			name:     "Fail_NameLength_TooLong",
			envMap:   map[string]string{KeyMaxNameLength: "1000000"},
			expected: ErrSettingOutOfRange,
		},
		{
			name:     "Fail_NameLength_Zero",
			envMap:   map[string]string{KeyMaxNameLength: "0"},
			expected: ErrSettingOutOfRange,
		},
		{
			name:     "Fail_MaxFiles_NotNumber",
			envMap:   map[string]string{KeyMaxFiles: "ten"},
			expected: ErrInvalidSetting,
		},
		{
			name:     "Fail_Capacity_NotSize",
			envMap:   map[string]string{KeyDiskCapacity: "lots"},
			expected: ErrInvalidSetting,
		},
		{
			name:     "Fail_Memory_TooSmall",
			envMap:   map[string]string{KeyMemorySize: "16B"},
			expected: ErrSettingOutOfRange,
		},
		{
			name:     "Fail_Memory_TooLarge",
			envMap:   map[string]string{KeyMemorySize: "8 EiB"},
			expected: ErrSettingOutOfRange,
		},
		{
			name:     "Fail_Storage_Unknown",
			envMap:   map[string]string{KeyStorage: "tape"},
			expected: ErrUnknownStorage,
		},
		{
			name:     "Fail_LogLevel_Unknown",
			envMap:   map[string]string{KeyLogLevel: "verbose"},
			expected: ErrInvalidSetting,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			provider := newMockGenericConfigProvider(t)
			provider.On("Read", "machine.env").Return(tt.envMap, nil)

			handler := NewHandler(provider)

			_, err := handler.LoadSettings("machine.env")
			require.ErrorIs(t, err, tt.expected)
		})
	}
}

// TestMapKeyToInt_Fallback returns the fallback for missing keys.
func TestMapKeyToInt_Fallback(t *testing.T) {
	t.Parallel()

	handler := NewHandler(nil)

	v, err := handler.MapKeyToInt(map[string]string{}, KeyMaxFiles, 42)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = handler.MapKeyToInt(map[string]string{KeyMaxFiles: "7"}, KeyMaxFiles, 42)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
