package stream

import (
	"errors"
	"fmt"

	"github.com/moffa90/go-arduboot/protocol"
)

var (
	// ErrPartialFrame classifies PartialFrameError
	ErrPartialFrame = errors.New("partial frame")

	// ErrNotRewindable means the frame source cannot restart
	ErrNotRewindable = errors.New("frame source is not rewindable")
)

// PartialFrameError reports a trailing chunk shorter than a frame under
// BoundaryReject.
type PartialFrameError struct {
	// Offset is the byte offset of the chunk in the source
	Offset int64

	// Size is the length of the chunk
	Size int
}

func (e *PartialFrameError) Error() string {
	return fmt.Sprintf("partial frame at offset %d: %d bytes, want %d", e.Offset, e.Size, protocol.FrameSize)
}

func (e *PartialFrameError) Is(target error) bool {
	return target == ErrPartialFrame
}
