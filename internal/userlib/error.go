package userlib

import "errors"

var (
	// ErrBadDirective is for a conversion the formatter does not know.
	ErrBadDirective = errors.New("bad printf directive")

	// ErrMissingArgument is for a directive without a matching argument.
	ErrMissingArgument = errors.New("missing printf argument")
)
