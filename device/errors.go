package device

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrDeviceNotFound means no serial port matched the match table
	ErrDeviceNotFound = errors.New("arduboy or compatible board not found")

	// ErrSwitchTimeout classifies SwitchTimeoutError
	ErrSwitchTimeout = errors.New("mode switch timed out")
)

// Switch phases reported by SwitchTimeoutError.
const (
	PhaseDisconnect = "disconnect"
	PhaseReconnect  = "reconnect"
)

// SwitchTimeoutError indicates the board did not re-enumerate in bootloader
// mode within the configured time.
type SwitchTimeoutError struct {
	// Port is the port the board was on before the reset
	Port string

	// Phase is PhaseDisconnect or PhaseReconnect
	Phase string

	// Timeout is the configured bound
	Timeout time.Duration
}

func (e *SwitchTimeoutError) Error() string {
	switch e.Phase {
	case PhaseDisconnect:
		return fmt.Sprintf("board on %s did not disconnect within %s after reset", e.Port, e.Timeout)
	default:
		return fmt.Sprintf("board from %s did not reappear within %s after reset", e.Port, e.Timeout)
	}
}

func (e *SwitchTimeoutError) Is(target error) bool {
	return target == ErrSwitchTimeout
}
