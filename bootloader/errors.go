package bootloader

import (
	"errors"
	"fmt"
)

var (
	// ErrStreamingUnsupported means the bootloader answered the handshake
	// with '?'
	ErrStreamingUnsupported = errors.New("bootloader doesn't support streaming")

	// ErrEdgeTimeout means no button press and release happened in time
	ErrEdgeTimeout = errors.New("timed out waiting for button press")
)

// PageOrderError indicates a page write out of display order. The display
// cursor only moves forward, so a gap or repeat would corrupt the frame.
type PageOrderError struct {
	// Page is the page index that was requested
	Page int

	// Expected is the page index the display cursor points at, or -1 when
	// no display window is set
	Expected int
}

func (e *PageOrderError) Error() string {
	if e.Expected < 0 {
		return fmt.Sprintf("write page %d: display window not set", e.Page)
	}
	return fmt.Sprintf("write page %d: display cursor is at page %d", e.Page, e.Expected)
}
