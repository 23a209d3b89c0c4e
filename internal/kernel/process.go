package kernel

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/desertwitch/nachosys/internal/memory"
	"github.com/desertwitch/nachosys/internal/schema"
)

// Process is a running user program: its descriptor table, its user memory
// and its exit status.
//
// The syscall methods of a Process must only be called from the goroutine
// running its [Program]; terminating syscalls end that goroutine.
type Process struct {
	kernel *Kernel
	pid    int
	name   string
	memory *memory.Memory

	mu     sync.Mutex
	files  []*descriptor
	exited bool
	status int

	done chan struct{}
}

func newProcess(k *Kernel, pid int, name string) *Process {
	files := make([]*descriptor, k.opts.MaxOpenFiles)
	files[schema.FdStandardInput] = &descriptor{kind: kindConsoleIn, name: "stdin"}
	files[schema.FdStandardOutput] = &descriptor{kind: kindConsoleOut, name: "stdout"}

	return &Process{
		kernel: k,
		pid:    pid,
		name:   name,
		memory: memory.New(k.opts.MemorySize),
		files:  files,
		done:   make(chan struct{}),
	}
}

func (p *Process) PID() int {
	return p.pid
}

func (p *Process) Name() string {
	return p.name
}

// Memory returns the user memory of the process.
func (p *Process) Memory() *memory.Memory {
	return p.memory
}

// Wait blocks until the process has terminated and returns its exit status.
func (p *Process) Wait(ctx context.Context) (int, error) {
	select {
	case <-p.done:
		p.mu.Lock()
		defer p.mu.Unlock()

		return p.status, nil
	case <-ctx.Done():
		return 0, fmt.Errorf("(kernel) pid %d: %w", p.pid, ctx.Err())
	}
}

// OpenDescriptors returns the number of occupied descriptor slots.
func (p *Process) OpenDescriptors() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, d := range p.files {
		if d != nil {
			n++
		}
	}

	return n
}

func (p *Process) run(ctx context.Context, program Program) {
	defer p.finish()

	program(ctx, p)
}

// finish runs when the program goroutine ends, whether by returning, by a
// terminating syscall or by a panic.
func (p *Process) finish() {
	if r := recover(); r != nil {
		slog.Error("Process faulted, terminating.",
			"pid", p.pid,
			"name", p.name,
			"err", r,
		)
		p.setExit(schema.StatusFault)
	}

	// Returning from the program is an implicit exit(0).
	p.setExit(schema.StatusOK)
	p.release()

	p.mu.Lock()
	status := p.status
	p.mu.Unlock()

	slog.Debug("Process terminated.",
		"pid", p.pid,
		"name", p.name,
		"status", status,
	)

	close(p.done)
	p.kernel.reap(p)
}

// setExit records the exit status. Only the first status is kept.
func (p *Process) setExit(status int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.exited {
		p.exited = true
		p.status = status
	}
}

// terminate reclaims all descriptors and ends the program goroutine. It
// never returns.
func (p *Process) terminate() {
	p.release()
	runtime.Goexit()
}

// release closes every open descriptor. Each slot is closed exactly once no
// matter how often release runs.
func (p *Process) release() {
	p.mu.Lock()
	files := p.files
	p.files = make([]*descriptor, len(files))
	p.mu.Unlock()

	for fd, d := range files {
		if d == nil {
			continue
		}

		if err := d.close(); err != nil {
			slog.Warn("Failed to close descriptor on release (skipped).",
				"pid", p.pid,
				"fd", fd,
				"name", d.name,
				"err", err,
			)
		}
	}
}

// enter is the prologue of every syscall. A process whose machine has
// halted is terminated here.
func (p *Process) enter(num schema.Syscall) {
	select {
	case <-p.kernel.halted:
		p.setExit(schema.StatusKilled)
		p.terminate()
	default:
	}

	p.kernel.stats.syscalls.Add(1)

	slog.Debug("Syscall.",
		"pid", p.pid,
		"syscall", num,
	)
}

// fail logs a failed syscall and returns its negative errno.
func (p *Process) fail(num schema.Syscall, err error) int {
	errno := errnoOf(err)

	slog.Debug("Syscall failed.",
		"pid", p.pid,
		"syscall", num,
		"errno", errno.Error(),
		"err", err,
	)

	return ret(errno)
}
