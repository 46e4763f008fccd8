package device

import "fmt"

// Mode is the firmware a board is currently running.
type Mode int

const (
	// ModeBootloader means the bootloader is running
	ModeBootloader Mode = iota

	// ModeApplication means the application firmware is running
	ModeApplication
)

func (m Mode) String() string {
	switch m {
	case ModeBootloader:
		return "bootloader"
	case ModeApplication:
		return "application"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MatchTable lists hardware id substrings in bootloader/application pairs.
// An entry at an even index is a bootloader identity, an entry at an odd
// index the application identity of the same board.
type MatchTable []string

// DefaultTable holds the boards known to run the Arduboy bootloader.
var DefaultTable = MatchTable{
	// Arduino Leonardo
	"VID:PID=2341:0036", "VID:PID=2341:8036",
	"VID:PID=2A03:0036", "VID:PID=2A03:8036",
	// Arduino Micro
	"VID:PID=2341:0037", "VID:PID=2341:8037",
	"VID:PID=2A03:0037", "VID:PID=2A03:8037",
	// Genuino Micro
	"VID:PID=2341:0237", "VID:PID=2341:8237",
	// Sparkfun Pro Micro 5V
	"VID:PID=1B4F:9205", "VID:PID=1B4F:9206",
}

// ModeAt returns the mode implied by the entry at index i.
func (t MatchTable) ModeAt(i int) Mode {
	if i%2 == 0 {
		return ModeBootloader
	}
	return ModeApplication
}

// Validate checks that the table is made of complete pairs.
func (t MatchTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("match table is empty")
	}
	if len(t)%2 != 0 {
		return fmt.Errorf("match table must hold bootloader/application pairs, got %d entries", len(t))
	}
	for i, e := range t {
		if e == "" {
			return fmt.Errorf("match table entry %d is empty", i)
		}
	}
	return nil
}

// Handle identifies a located board. It is only valid until the board
// resets: the host may assign a different port afterwards.
type Handle struct {
	// Port is the serial port name (COM3, /dev/ttyACM0, ...)
	Port string

	// Description is the product string reported by the host, if any
	Description string

	// Mode is the firmware the board was running when located
	Mode Mode
}
