package transfer

import (
	"errors"
	"fmt"
)

var (
	// ErrProtocolViolation is the root of every wire-level contract breach.
	ErrProtocolViolation = errors.New("transfer: protocol violation")

	ErrLengthMismatch = fmt.Errorf("%w: payload length mismatch", ErrProtocolViolation)
	ErrBadCompletion  = fmt.Errorf("%w: bad completion signal", ErrProtocolViolation)
	ErrSourceChanged  = fmt.Errorf("%w: source file changed during transfer", ErrProtocolViolation)
)
