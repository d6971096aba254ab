package service

import "errors"

var (
	// ErrInvalidInput marks missing or malformed operator input. Nothing
	// has been committed when it is returned.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorage marks counter, ledger or database failures. A document
	// number consumed before the failure is not refunded.
	ErrStorage = errors.New("storage failure")
	// ErrRender marks document assembly failures on valid input.
	ErrRender = errors.New("render failure")
	// ErrNotFound marks a register lookup that matched nothing.
	ErrNotFound = errors.New("not found")
)
