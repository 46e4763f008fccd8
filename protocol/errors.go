package protocol

import (
	"errors"
	"fmt"
)

// ErrCommunication classifies failures to exchange a command with the device.
var ErrCommunication = errors.New("communication error")

// CommunicationError reports a write failure or a response shorter than
// expected: the device was unplugged, the bootloader left on its idle
// timeout, or the framing is corrupted.
type CommunicationError struct {
	// Operation is the command that failed
	Operation string

	// Want is the expected response size (0 for write failures)
	Want int

	// Got is the number of response bytes received
	Got int

	// Err is the underlying I/O error, if any
	Err error
}

func (e *CommunicationError) Error() string {
	if e.Want == 0 {
		return fmt.Sprintf("%s: write failed: %v", e.Operation, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: short response: got %d of %d bytes: %v", e.Operation, e.Got, e.Want, e.Err)
	}
	return fmt.Sprintf("%s: short response: got %d of %d bytes", e.Operation, e.Got, e.Want)
}

func (e *CommunicationError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrCommunication) match any CommunicationError.
func (e *CommunicationError) Is(target error) bool {
	return target == ErrCommunication
}

// MalformedResponseError reports response bytes outside the protocol's range.
type MalformedResponseError struct {
	Operation string
	Response  []byte
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response % 02X", e.Operation, e.Response)
}

// IsCommunicationError returns true if err is or wraps a CommunicationError.
func IsCommunicationError(err error) bool {
	var ce *CommunicationError
	return errors.As(err, &ce)
}
