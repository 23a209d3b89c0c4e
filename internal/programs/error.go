package programs

import "errors"

// ErrUnknownProgram is for a program name that is not registered.
var ErrUnknownProgram = errors.New("unknown program")
