package memory

import "errors"

var (
	// ErrFault occurs when an address lies outside of the user memory or
	// inside of the null guard.
	ErrFault = errors.New("address out of bounds")

	// ErrOutOfMemory occurs when an allocation does not fit the remaining
	// user memory.
	ErrOutOfMemory = errors.New("out of user memory")

	// ErrTooLong occurs when no NUL terminator is found within the maximum
	// length of a string.
	ErrTooLong = errors.New("string not terminated within limit")
)
