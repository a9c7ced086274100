package types

import (
	"errors"

	sdkerrors "cosmossdk.io/errors"
)

const ModuleName = "numtools"

// numtools errors
var (
	ErrUsage           = sdkerrors.Register(ModuleName, 2, "invalid usage")
	ErrFileNotFound    = sdkerrors.Register(ModuleName, 3, "file not found")
	ErrInvalidDataLine = sdkerrors.Register(ModuleName, 4, "invalid data line")
	ErrEmptyResult     = sdkerrors.Register(ModuleName, 5, "no valid data in the file")
	ErrNegativeValue   = sdkerrors.Register(ModuleName, 6, "negative value")
	ErrOutOfRange      = sdkerrors.Register(ModuleName, 7, "value out of range")
	ErrInvalidConfig   = sdkerrors.Register(ModuleName, 8, "invalid configuration")
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	default:
		return ExitError
	}
}
