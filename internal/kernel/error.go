package kernel

import "errors"

var (
	// ErrInvalidDescriptor occurs when a descriptor is negative, out of
	// range, closed, or not usable for the requested direction.
	ErrInvalidDescriptor = errors.New("invalid descriptor")

	// ErrDescriptorExhausted occurs when a process' descriptor table has no
	// free slot left.
	ErrDescriptorExhausted = errors.New("descriptor table full")

	// ErrInvalidCount occurs when a transfer is requested with a negative
	// byte count.
	ErrInvalidCount = errors.New("negative byte count")

	// ErrNotImplemented occurs for syscalls that have a number but no
	// handler.
	ErrNotImplemented = errors.New("syscall not implemented")

	// ErrMachineHalted occurs when a process is spawned on a halted machine.
	ErrMachineHalted = errors.New("machine is halted")
)
