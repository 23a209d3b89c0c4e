// Package memory implements the user memory of a simulated process: a flat
// byte array addressed by integers, with a bump allocator for the
// automatics of user programs.
package memory

import "fmt"

// NullGuard is the number of bytes at address zero that are never valid.
const NullGuard = 16

// Memory is the user memory of a single process. It is owned by the
// process and is not safe for concurrent use.
type Memory struct {
	data []byte
	brk  int
}

// New returns a pointer to a new zeroed [Memory] of the given size.
func New(size int) *Memory {
	return &Memory{
		data: make([]byte, size),
		brk:  NullGuard,
	}
}

// Size returns the size of the memory in bytes.
func (m *Memory) Size() int {
	return len(m.data)
}

// Alloc reserves n zeroed bytes and returns their address.
func (m *Memory) Alloc(n int) (int, error) {
	if n < 0 || n > len(m.data)-m.brk {
		return 0, fmt.Errorf("(memory) %w: %d bytes requested, %d free", ErrOutOfMemory, n, len(m.data)-m.brk)
	}

	addr := m.brk
	m.brk += n
	clear(m.data[addr:m.brk])

	return addr, nil
}

// Frame reserves n bytes for the duration of fn and releases them after.
func (m *Memory) Frame(n int, fn func(addr int)) error {
	mark := m.brk

	addr, err := m.Alloc(n)
	if err != nil {
		return err
	}

	defer func() {
		m.brk = mark
	}()

	fn(addr)

	return nil
}

// Available returns the number of addressable bytes from addr to the end of
// the memory.
func (m *Memory) Available(addr int) (int, error) {
	if addr < NullGuard || addr >= len(m.data) {
		return 0, fmt.Errorf("(memory) %w: %#x", ErrFault, addr)
	}

	return len(m.data) - addr, nil
}

// Read copies up to n bytes starting at addr. The copy is short when the end
// of the memory is reached first.
func (m *Memory) Read(addr, n int) ([]byte, error) {
	avail, err := m.Available(addr)
	if err != nil {
		return nil, err
	}

	n = min(n, avail)
	out := make([]byte, n)
	copy(out, m.data[addr:addr+n])

	return out, nil
}

// Write copies p to addr and returns the number of bytes copied, which is
// short when the end of the memory is reached first.
func (m *Memory) Write(addr int, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if _, err := m.Available(addr); err != nil {
		return 0, err
	}

	return copy(m.data[addr:], p), nil
}

// ReadString reads a NUL-terminated string at addr. The terminator must lie
// within maxLen bytes; reaching the end of the memory first is a fault.
func (m *Memory) ReadString(addr, maxLen int) (string, error) {
	avail, err := m.Available(addr)
	if err != nil {
		return "", err
	}

	for i := 0; i < maxLen; i++ {
		if i == avail {
			return "", fmt.Errorf("(memory) %w: unterminated string at %#x", ErrFault, addr)
		}

		if m.data[addr+i] == 0 {
			return string(m.data[addr : addr+i]), nil
		}
	}

	return "", fmt.Errorf("(memory) %w: %d bytes at %#x", ErrTooLong, maxLen, addr)
}

// WriteString copies s to addr followed by a NUL terminator.
func (m *Memory) WriteString(addr int, s string) error {
	avail, err := m.Available(addr)
	if err != nil {
		return err
	}

	if len(s)+1 > avail {
		return fmt.Errorf("(memory) %w: %d bytes at %#x", ErrFault, len(s)+1, addr)
	}

	copy(m.data[addr:], s)
	m.data[addr+len(s)] = 0

	return nil
}
