package dstrace

import "github.com/pkg/errors"

// Precondition failures shared by every engine. Engines wrap them with context, so test them with errors.Is.
var (
	ErrOutOfRange      = errors.New("position out of range")
	ErrEmpty           = errors.New("structure is empty")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidExpr     = errors.New("invalid hash expression")
)
