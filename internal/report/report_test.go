package report

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/desertwitch/nachosys/internal/kernel"
	"github.com/desertwitch/nachosys/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

// TestRender_Success renders the banner, counters and file table.
func TestRender_Success(t *testing.T) {
	t.Parallel()

	digest := blake3.Sum256([]byte("Hello World"))

	var out bytes.Buffer
	err := Render(&out, kernel.Statistics{
		Syscalls:            6,
		Processes:           1,
		ConsoleBytesWritten: 12,
		DiskBytesRead:       2048,
	}, []storage.FileInfo{
		{Name: "Test.txt", Size: 11, Digest: digest},
	})
	require.NoError(t, err)

	s := out.String()
	assert.True(t, strings.HasPrefix(s, HaltBanner+"\n"))
	assert.Contains(t, s, "Syscalls: 6, Processes: 1")
	assert.Contains(t, s, "12 B written")
	assert.Contains(t, s, "2.0 KiB read")
	assert.Contains(t, s, "Test.txt")
	assert.Contains(t, s, "11 B")
	assert.Contains(t, s, hex.EncodeToString(digest[:digestLength]))
}

// TestRender_Success_NoFiles renders an empty disk.
func TestRender_Success_NoFiles(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, Render(&out, kernel.Statistics{}, nil))

	assert.Contains(t, out.String(), "No files on disk.")
}

// TestRender_Fail_Writer reports a failing writer.
func TestRender_Fail_Writer(t *testing.T) {
	t.Parallel()

	require.Error(t, Render(failingWriter{}, kernel.Statistics{}, nil))
}
