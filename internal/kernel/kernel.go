// Package kernel implements the file-I/O syscall layer of a simulated
// teaching operating system. User programs run as processes, each in its own
// goroutine, and reach the kernel only through the syscall methods of their
// [Process].
package kernel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/desertwitch/nachosys/internal/schema"
	"github.com/desertwitch/nachosys/internal/storage"
)

type storageProvider interface {
	Create(name string) error
	Open(name string) (fileProvider, error)
	Remove(name string) error
	Files() ([]storage.FileInfo, error)
	Statistics() storage.Statistics
}

// fileProvider is an open file of the disk.
type fileProvider = storage.File

// Program is the body of a user program. It runs in the goroutine of its
// process and must reach the kernel only through p.
type Program func(ctx context.Context, p *Process)

// Options are the per-process limits of a [Kernel].
type Options struct {
	// MaxOpenFiles is the size of a descriptor table, including the two
	// console descriptors.
	MaxOpenFiles int

	// MaxNameLength is the longest file name read from user memory.
	MaxNameLength int

	// MemorySize is the size of a process' user memory in bytes.
	MemorySize int
}

// Statistics are the machine-wide counters reported when the machine halts.
// The disk counters are taken from the disk itself.
type Statistics struct {
	Syscalls            uint64
	Processes           uint64
	ConsoleBytesRead    uint64
	ConsoleBytesWritten uint64
	DiskBytesRead       uint64
	DiskBytesWritten    uint64
}

type statistics struct {
	syscalls            atomic.Uint64
	processes           atomic.Uint64
	consoleBytesRead    atomic.Uint64
	consoleBytesWritten atomic.Uint64
}

// Kernel owns the disk, the console and the process table of a machine.
type Kernel struct {
	storageHandler storageProvider
	opts           Options
	stats          statistics

	consoleMu sync.Mutex
	stdin     io.Reader
	stdout    io.Writer

	mu        sync.Mutex
	nextPID   int
	root      *Process
	processes map[int]*Process

	halted   chan struct{}
	haltOnce sync.Once
}

// NewKernel returns a pointer to a new [Kernel] running on the given disk and
// console streams.
func NewKernel(storageHandler storageProvider, stdin io.Reader, stdout io.Writer, opts Options) *Kernel {
	return &Kernel{
		storageHandler: storageHandler,
		opts:           opts,
		stdin:          stdin,
		stdout:         stdout,
		processes:      make(map[int]*Process),
		halted:         make(chan struct{}),
	}
}

// Spawn starts program in a new process. The first process spawned on a
// machine is its root process.
func (k *Kernel) Spawn(ctx context.Context, name string, program Program) (*Process, error) {
	k.mu.Lock()

	select {
	case <-k.halted:
		k.mu.Unlock()

		return nil, fmt.Errorf("(kernel) %w: cannot spawn %s", ErrMachineHalted, name)
	default:
	}

	k.nextPID++
	p := newProcess(k, k.nextPID, name)

	if k.root == nil {
		k.root = p
	}
	k.processes[p.pid] = p

	k.mu.Unlock()

	k.stats.processes.Add(1)

	slog.Debug("Process spawned.",
		"pid", p.pid,
		"name", name,
	)

	go p.run(ctx, program)

	return p, nil
}

// Halt stops the machine: every running process loses its descriptors and
// is terminated when it next enters the kernel. Halting twice is a no-op.
func (k *Kernel) Halt() {
	k.haltOnce.Do(func() {
		k.mu.Lock()
		close(k.halted)

		procs := make([]*Process, 0, len(k.processes))
		for _, p := range k.processes {
			procs = append(procs, p)
		}
		k.mu.Unlock()

		for _, p := range procs {
			p.setExit(schema.StatusKilled)
			p.release()
		}

		slog.Debug("Machine halted.",
			"processes", len(procs),
		)
	})
}

// Done returns a channel that is closed once the machine has halted.
func (k *Kernel) Done() <-chan struct{} {
	return k.halted
}

// Wait blocks until the machine has halted or the context is done.
func (k *Kernel) Wait(ctx context.Context) error {
	select {
	case <-k.halted:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("(kernel) %w", ctx.Err())
	}
}

// Statistics returns a snapshot of the machine counters.
func (k *Kernel) Statistics() Statistics {
	disk := k.storageHandler.Statistics()

	return Statistics{
		Syscalls:            k.stats.syscalls.Load(),
		Processes:           k.stats.processes.Load(),
		ConsoleBytesRead:    k.stats.consoleBytesRead.Load(),
		ConsoleBytesWritten: k.stats.consoleBytesWritten.Load(),
		DiskBytesRead:       disk.BytesRead,
		DiskBytesWritten:    disk.BytesWritten,
	}
}

// Files lists the files on the disk.
func (k *Kernel) Files() ([]storage.FileInfo, error) {
	files, err := k.storageHandler.Files()
	if err != nil {
		return nil, fmt.Errorf("(kernel) %w", err)
	}

	return files, nil
}

// reap removes a terminated process. The machine halts when no process is
// left.
func (k *Kernel) reap(p *Process) {
	k.mu.Lock()
	delete(k.processes, p.pid)
	last := len(k.processes) == 0
	k.mu.Unlock()

	if last {
		k.Halt()
	}
}

func (k *Kernel) isRoot(p *Process) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	return k.root == p
}

func (k *Kernel) readConsole(p []byte) (int, error) {
	k.consoleMu.Lock()
	defer k.consoleMu.Unlock()

	if k.stdin == nil {
		return 0, nil
	}

	n, err := k.stdin.Read(p)
	k.stats.consoleBytesRead.Add(uint64(n))

	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("(kernel) console read: %w", err)
	}

	return n, nil
}

func (k *Kernel) writeConsole(p []byte) (int, error) {
	k.consoleMu.Lock()
	defer k.consoleMu.Unlock()

	n, err := k.stdout.Write(p)
	k.stats.consoleBytesWritten.Add(uint64(n))

	if err != nil {
		return n, fmt.Errorf("(kernel) console write: %w", err)
	}

	return n, nil
}
