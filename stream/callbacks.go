package stream

import (
	"time"

	"github.com/moffa90/go-arduboot/protocol"
)

// Progress is passed to ProgressCallback after every frame.
type Progress struct {
	// Frames is the number of frames sent so far
	Frames int

	// Buttons is the button state polled after the frame
	Buttons protocol.Buttons

	// Elapsed is the time since streaming started
	Elapsed time.Duration
}

// ProgressCallback is called after each frame. It runs on the streaming
// loop and must return quickly or it will eat into the frame budget.
type ProgressCallback func(Progress)

// Logger is an optional logging interface, satisfied by any
// bootloader.Logger.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}
