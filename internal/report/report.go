// Package report renders the statistics printed when the machine halts.
package report

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertwitch/nachosys/internal/kernel"
	"github.com/desertwitch/nachosys/internal/storage"
	"github.com/dustin/go-humanize"
)

// HaltBanner is the first line printed when the machine halts.
const HaltBanner = "Machine halting!"

// digestLength is the number of digest bytes shown per file.
const digestLength = 8

//nolint:gochecknoglobals
var (
	// titleStyle defines the style for a panel's title.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	// borderStyle defines the style for a panel's borders.
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	// infoStyle defines the style for a panel's text.
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	// headerStyle defines the style for the file table's header row.
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#626262"))
)

// Render writes the halt banner followed by the machine statistics and the
// files left on the disk.
func Render(w io.Writer, stats kernel.Statistics, files []storage.FileInfo) error {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		formatStatistics(stats),
		"", // Empty line for spacing.
		formatFiles(files),
	)

	if _, err := fmt.Fprintf(w, "%s\n%s\n", HaltBanner, borderStyle.Render(content)); err != nil {
		return fmt.Errorf("(report) failed to write: %w", err)
	}

	return nil
}

func formatStatistics(stats kernel.Statistics) string {
	details := fmt.Sprintf(
		"Syscalls: %d, Processes: %d\n"+
			"Console I/O: %s read, %s written\n"+
			"Disk I/O: %s read, %s written",
		stats.Syscalls,
		stats.Processes,
		humanize.IBytes(stats.ConsoleBytesRead),
		humanize.IBytes(stats.ConsoleBytesWritten),
		humanize.IBytes(stats.DiskBytesRead),
		humanize.IBytes(stats.DiskBytesWritten),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Statistics"),
		infoStyle.Render(details),
	)
}

func formatFiles(files []storage.FileInfo) string {
	if len(files) == 0 {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			titleStyle.Render("Files"),
			infoStyle.Render("No files on disk."),
		)
	}

	nameWidth := len("Name")
	for _, f := range files {
		nameWidth = max(nameWidth, len(f.Name))
	}

	name := lipgloss.NewStyle().Width(nameWidth + 2)
	size := lipgloss.NewStyle().Width(12)

	rows := make([]string, 0, len(files)+1)
	rows = append(rows, headerStyle.Render(
		name.Render("Name")+size.Render("Size")+"BLAKE3",
	))

	for _, f := range files {
		rows = append(rows, infoStyle.Render(
			name.Render(f.Name)+
				size.Render(humanize.IBytes(uint64(f.Size)))+
				hex.EncodeToString(f.Digest[:digestLength]),
		))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Files"),
		strings.Join(rows, "\n"),
	)
}
