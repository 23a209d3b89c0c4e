package kernel

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/desertwitch/nachosys/internal/schema"
)

// Creat creates the file named by the NUL-terminated string at nameAddr. An
// existing file keeps its contents. No descriptor is opened. It returns 0 on
// success or a negative errno: ENAMETOOLONG, ENOENT (containing directory
// missing), ENOSPC (directory full), EINVAL (empty name), EFAULT.
func (p *Process) Creat(nameAddr int) int {
	p.enter(schema.SyscallCreat)

	name, err := p.readName(nameAddr)
	if err != nil {
		return p.fail(schema.SyscallCreat, err)
	}

	if err := p.kernel.storageHandler.Create(name); err != nil {
		return p.fail(schema.SyscallCreat, err)
	}

	return 0
}

// Open opens an existing file and returns a new descriptor whose cursor is
// at 0, or a negative errno: ENOENT when the file does not exist, EMFILE
// when the descriptor table is full.
func (p *Process) Open(nameAddr int) int {
	p.enter(schema.SyscallOpen)

	name, err := p.readName(nameAddr)
	if err != nil {
		return p.fail(schema.SyscallOpen, err)
	}

	f, err := p.kernel.storageHandler.Open(name)
	if err != nil {
		return p.fail(schema.SyscallOpen, err)
	}

	fd, err := p.insert(&descriptor{kind: kindFile, name: name, file: f})
	if err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close unbound file (skipped).",
				"pid", p.pid,
				"name", name,
				"err", cerr,
			)
		}

		return p.fail(schema.SyscallOpen, err)
	}

	return fd
}

// Read copies up to count bytes from the cursor of fd into user memory at
// bufAddr and advances the cursor by the bytes copied. It returns that
// number, 0 at the end of the file, or a negative errno: EBADF for a
// descriptor that is not open for reading, EINVAL for a negative count,
// EFAULT for a buffer outside of user memory.
//
// The buffer is not checked against count. A buffer that runs into the end
// of user memory receives a short copy.
func (p *Process) Read(fd, bufAddr, count int) int {
	p.enter(schema.SyscallRead)

	d, err := p.lookup(fd)
	if err != nil {
		return p.fail(schema.SyscallRead, err)
	}

	if count < 0 {
		return p.fail(schema.SyscallRead, fmt.Errorf("(kernel) %w: %d", ErrInvalidCount, count))
	}

	if count == 0 {
		return 0
	}

	avail, err := p.memory.Available(bufAddr)
	if err != nil {
		return p.fail(schema.SyscallRead, err)
	}

	buf := make([]byte, min(count, avail))

	var n int
	switch d.kind {
	case kindFile:
		n, err = p.readFile(d, buf)
	case kindConsoleIn:
		n, err = p.kernel.readConsole(buf)
	default:
		err = fmt.Errorf("(kernel) %w: %d is not readable", ErrInvalidDescriptor, fd)
	}

	if err != nil {
		return p.fail(schema.SyscallRead, err)
	}

	if _, err := p.memory.Write(bufAddr, buf[:n]); err != nil {
		return p.fail(schema.SyscallRead, err)
	}

	return n
}

// Write copies up to count bytes from user memory at bufAddr to the cursor
// of fd and advances the cursor by the bytes written. It returns that number
// or a negative errno; ENOSPC when the disk is full.
func (p *Process) Write(fd, bufAddr, count int) int {
	p.enter(schema.SyscallWrite)

	d, err := p.lookup(fd)
	if err != nil {
		return p.fail(schema.SyscallWrite, err)
	}

	if count < 0 {
		return p.fail(schema.SyscallWrite, fmt.Errorf("(kernel) %w: %d", ErrInvalidCount, count))
	}

	if count == 0 {
		return 0
	}

	data, err := p.memory.Read(bufAddr, count)
	if err != nil {
		return p.fail(schema.SyscallWrite, err)
	}

	var n int
	switch d.kind {
	case kindFile:
		n, err = p.writeFile(d, data)
	case kindConsoleOut:
		n, err = p.kernel.writeConsole(data)
	default:
		err = fmt.Errorf("(kernel) %w: %d is not writable", ErrInvalidDescriptor, fd)
	}

	if err != nil {
		return p.fail(schema.SyscallWrite, err)
	}

	return n
}

// Close releases fd. It returns 0 or -EBADF when fd is not open.
func (p *Process) Close(fd int) int {
	p.enter(schema.SyscallClose)

	d, err := p.remove(fd)
	if err != nil {
		return p.fail(schema.SyscallClose, err)
	}

	if err := d.close(); err != nil {
		return p.fail(schema.SyscallClose, err)
	}

	return 0
}

// Unlink deletes the file named by the string at nameAddr. Descriptors that
// are still open on it keep reading its contents until closed.
func (p *Process) Unlink(nameAddr int) int {
	p.enter(schema.SyscallUnlink)

	name, err := p.readName(nameAddr)
	if err != nil {
		return p.fail(schema.SyscallUnlink, err)
	}

	if err := p.kernel.storageHandler.Remove(name); err != nil {
		return p.fail(schema.SyscallUnlink, err)
	}

	return 0
}

// Halt terminates the calling process and reclaims all of its descriptors.
// When called by the root process it halts the whole machine. It never
// returns.
func (p *Process) Halt() {
	p.enter(schema.SyscallHalt)
	p.setExit(schema.StatusOK)

	if p.kernel.isRoot(p) {
		slog.Debug("Root process requested machine halt.",
			"pid", p.pid,
		)
		p.kernel.Halt()
	}

	p.terminate()
}

// Exit terminates the calling process with the given status and reclaims
// all of its descriptors. It never returns.
func (p *Process) Exit(status int) {
	p.enter(schema.SyscallExit)
	p.setExit(status)
	p.terminate()
}

// Syscall dispatches a syscall by number with up to three arguments. An
// unknown number terminates the process with [schema.StatusFault].
func (p *Process) Syscall(num schema.Syscall, a0, a1, a2 int) int {
	switch num {
	case schema.SyscallHalt:
		p.Halt()
	case schema.SyscallExit:
		p.Exit(a0)
	case schema.SyscallCreat:
		return p.Creat(a0)
	case schema.SyscallOpen:
		return p.Open(a0)
	case schema.SyscallRead:
		return p.Read(a0, a1, a2)
	case schema.SyscallWrite:
		return p.Write(a0, a1, a2)
	case schema.SyscallClose:
		return p.Close(a0)
	case schema.SyscallUnlink:
		return p.Unlink(a0)
	case schema.SyscallExec, schema.SyscallJoin:
		p.enter(num)

		return p.fail(num, fmt.Errorf("(kernel) %w: %s", ErrNotImplemented, num))
	default:
		p.enter(num)

		slog.Error("Unknown syscall, terminating process.",
			"pid", p.pid,
			"name", p.name,
			"syscall", num,
		)
		p.setExit(schema.StatusFault)
		p.terminate()
	}

	panic("kernel: terminating syscall returned")
}

func (p *Process) readName(addr int) (string, error) {
	name, err := p.memory.ReadString(addr, p.kernel.opts.MaxNameLength+1)
	if err != nil {
		return "", fmt.Errorf("(kernel) file name: %w", err)
	}

	return name, nil
}

func (p *Process) readFile(d *descriptor, buf []byte) (int, error) {
	d.Lock()
	defer d.Unlock()

	if d.closed {
		return 0, fmt.Errorf("(kernel) %w: %s was closed", ErrInvalidDescriptor, d.name)
	}

	n, err := d.file.ReadAt(buf, d.offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("(kernel) %w", err)
	}

	d.offset += int64(n)

	return n, nil
}

func (p *Process) writeFile(d *descriptor, data []byte) (int, error) {
	d.Lock()
	defer d.Unlock()

	if d.closed {
		return 0, fmt.Errorf("(kernel) %w: %s was closed", ErrInvalidDescriptor, d.name)
	}

	n, err := d.file.WriteAt(data, d.offset)
	d.offset += int64(n)

	if err != nil {
		return n, fmt.Errorf("(kernel) %w", err)
	}

	return n, nil
}
