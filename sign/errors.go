package sign

import (
	"errors"
	"fmt"

	"github.com/BeatGlow/flipdot/protocol"
)

// Errors
var (
	ErrNoResponse     = errors.New("sign: no response")
	ErrConfigRejected = errors.New("sign: configuration rejected")
	ErrPixelsRejected = errors.New("sign: pixel data rejected")
	ErrTimeout        = errors.New("sign: timed out waiting for state change")
	ErrNoPages        = errors.New("sign: no pages to send")
	ErrTooMuchData    = errors.New("sign: too much data for a single transfer")
)

// UnexpectedResponseError is returned when a sign answers with something other than what the
// protocol prescribes.
type UnexpectedResponseError struct {
	Address  Address
	Expected string
	Got      protocol.Message
}

func (err *UnexpectedResponseError) Error() string {
	if err.Got == nil {
		return fmt.Sprintf("sign: %s: expected %s, got no response", err.Address, err.Expected)
	}
	return fmt.Sprintf("sign: %s: expected %s, got %s", err.Address, err.Expected, err.Got)
}

func (err *UnexpectedResponseError) Unwrap() error {
	if err.Got == nil {
		return ErrNoResponse
	}
	return nil
}
