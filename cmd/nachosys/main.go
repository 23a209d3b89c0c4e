package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/desertwitch/nachosys/internal/configuration"
	"github.com/desertwitch/nachosys/internal/kernel"
	"github.com/desertwitch/nachosys/internal/programs"
	"github.com/desertwitch/nachosys/internal/storage"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/lmittmann/tint"
)

const (
	stackTraceBufMax = 1 << 24
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string

	programName = flag.String("x", programs.Default, "user program to run ("+strings.Join(programs.Names(), ", ")+")")
	configFile  = flag.String("config", "nachos.env", "machine settings file")
	debug       = flag.Bool("debug", false, "trace every syscall")
	showReport  = flag.Bool("report", true, "print statistics when the machine halts")
	cpuprofile  = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile  = flag.String("memprofile", "", "write memory profile to this file")
)

// setupLogging logs to standard error, leaving standard output to the
// machine console.
func setupLogging(level slog.Leveler) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()

	sigChan2 := make(chan os.Signal, 1)
	signal.Notify(sigChan2, syscall.SIGUSR1)
	go func() {
		for range sigChan2 {
			buf := make([]byte, stackTraceBufMax)
			stacklen := runtime.Stack(buf, true)
			os.Stderr.Write(buf[:stacklen])
		}
	}()
}

// newFilesystem returns the filesystem holding the machine's disk.
func newFilesystem(settings configuration.Settings) (billy.Filesystem, error) {
	switch settings.Storage {
	case configuration.StorageOS:
		if err := os.MkdirAll(settings.StorageRoot, 0o755); err != nil {
			return nil, fmt.Errorf("(main) failed to create storage root: %w", err)
		}

		return osfs.New(settings.StorageRoot), nil
	case configuration.StorageMemory:
		return memfs.New(), nil
	default:
		return nil, fmt.Errorf("(main) %w: %q", configuration.ErrUnknownStorage, settings.Storage)
	}
}

// newMachine assembles a kernel with its disk from the settings.
func newMachine(settings configuration.Settings, stdin io.Reader, stdout io.Writer) (*kernel.Kernel, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("(main) %w", err)
	}

	fsys, err := newFilesystem(settings)
	if err != nil {
		return nil, err
	}

	disk, err := storage.NewHandler(fsys, storage.Options{
		MaxNameLength: settings.MaxNameLength,
		MaxFiles:      settings.MaxFiles,
		Capacity:      settings.DiskCapacity,
	})
	if err != nil {
		return nil, fmt.Errorf("(main) %w", err)
	}

	return kernel.NewKernel(disk, stdin, stdout, kernel.Options{
		MaxOpenFiles:  settings.MaxOpenFiles,
		MaxNameLength: settings.MaxNameLength,
		MemorySize:    int(settings.MemorySize),
	}), nil
}

// exitCode maps a process exit status to a host exit code.
func exitCode(status int) int {
	if status < 0 {
		return 1
	}

	return status & 0xff //nolint:mnd
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flag.Parse()
	setupLogging(slog.LevelInfo)
	setupSignalHandlers(cancel)

	cpuProfiler := newProfiler(ctx, profileCPU, *cpuprofile)
	defer cpuProfiler.Stop()

	allocProfiler := newProfiler(ctx, profileAllocs, *memprofile)
	defer allocProfiler.Stop()

	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{})

	settings, err := configHandler.LoadSettings(*configFile)
	if err != nil {
		slog.Error("Failed to load machine settings.",
			"file", *configFile,
			"err", err,
		)
		ExitCode = 1

		return
	}

	if *debug {
		setupLogging(slog.LevelDebug)
	} else {
		setupLogging(settings.LogLevel)
	}

	program, err := programs.Lookup(*programName)
	if err != nil {
		slog.Error("Failed to find user program.",
			"program", *programName,
			"available", programs.Names(),
			"err", err,
		)
		ExitCode = 1

		return
	}

	k, err := newMachine(settings, os.Stdin, os.Stdout)
	if err != nil {
		slog.Error("Failed to establish the machine.",
			"err", err,
		)
		ExitCode = 1

		return
	}

	var reportOut io.Writer
	if *showReport {
		reportOut = os.Stdout
	}

	slog.Debug("Machine starting.",
		"version", Version,
		"program", *programName,
		"storage", settings.Storage,
	)

	status, err := NewApp(k, *programName, program, reportOut).Launch(ctx)
	if err != nil {
		slog.Error("Machine failure.",
			"err", err,
		)
		ExitCode = 1

		return
	}

	ExitCode = exitCode(status)
}
