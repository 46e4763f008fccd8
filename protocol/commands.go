package protocol

import (
	"fmt"
)

// BuildVersionCmd constructs the version / button poll command.
//
// Frame structure:
//
//	['v']
func BuildVersionCmd() []byte {
	return []byte{CmdVersion}
}

// BuildResetTimeoutCmd constructs the command that restores the default
// (long) bootloader idle timeout. The bootloader does not answer it.
//
// Frame structure:
//
//	['g'][0x00][0x00]['F']
func BuildResetTimeoutCmd() []byte {
	return []byte{CmdSetTimeout, 0x00, 0x00, TimeoutDefault}
}

// BuildShortTimeoutCmd constructs the command that makes the bootloader
// return to the application after a short idle period.
//
// Frame structure:
//
//	['E']
func BuildShortTimeoutCmd() []byte {
	return []byte{CmdShortTimeout}
}

// BuildSetDisplayWindowCmd constructs the command that selects full-frame
// addressing, rewinding the display cursor to page 0.
//
// Frame structure:
//
//	['A'][0x00][0x00]
func BuildSetDisplayWindowCmd() []byte {
	return []byte{CmdSetAddress, 0x00, 0x00}
}

// BuildWritePageCmd constructs a block load of one display page.
// The page lands at the display cursor, which advances by one page per
// command, so pages must be sent in order after BuildSetDisplayWindowCmd.
//
// Frame structure:
//
//	['B'][SIZE_H=0x00][SIZE_L=0x80]['D'][DATA(128)]
func BuildWritePageCmd(data []byte) ([]byte, error) {
	if len(data) != PageSize {
		return nil, fmt.Errorf("page data must be exactly %d bytes, got %d", PageSize, len(data))
	}

	frame := make([]byte, 0, 4+PageSize)
	frame = append(frame, CmdBlockLoad)

	// Block size (big-endian, AVR109)
	frame = append(frame, byte(PageSize>>8), byte(PageSize&0xFF))

	frame = append(frame, MemoryDisplay)
	frame = append(frame, data...)

	return frame, nil
}

// BuildIndicatorCmd constructs the LED control command.
//
// Frame structure:
//
//	['x'][FLAGS]
func BuildIndicatorCmd(flags Indicator) []byte {
	return []byte{CmdLEDControl, byte(flags)}
}
