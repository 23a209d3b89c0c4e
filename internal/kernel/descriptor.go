package kernel

import (
	"fmt"
	"sync"
)

type descriptorKind int

const (
	kindFile descriptorKind = iota
	kindConsoleIn
	kindConsoleOut
)

// descriptor is an open instance of a file together with its cursor.
type descriptor struct {
	sync.Mutex
	kind   descriptorKind
	name   string
	file   fileProvider
	offset int64
	closed bool
}

// close releases the descriptor. Only the first call closes the file.
func (d *descriptor) close() error {
	d.Lock()
	defer d.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	if d.file != nil {
		return d.file.Close()
	}

	return nil
}

// insert binds d to the lowest free descriptor number.
func (p *Process) insert(d *descriptor) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for fd, slot := range p.files {
		if slot == nil {
			p.files[fd] = d

			return fd, nil
		}
	}

	return -1, fmt.Errorf("(kernel) %w: %d slots", ErrDescriptorExhausted, len(p.files))
}

func (p *Process) lookup(fd int) (*descriptor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if fd < 0 || fd >= len(p.files) || p.files[fd] == nil {
		return nil, fmt.Errorf("(kernel) %w: %d", ErrInvalidDescriptor, fd)
	}

	return p.files[fd], nil
}

func (p *Process) remove(fd int) (*descriptor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if fd < 0 || fd >= len(p.files) || p.files[fd] == nil {
		return nil, fmt.Errorf("(kernel) %w: %d", ErrInvalidDescriptor, fd)
	}

	d := p.files[fd]
	p.files[fd] = nil

	return d, nil
}
