package protocol

// Serial line parameters.
const (
	// TouchBaudRate is the signalling rate that asks the application
	// firmware to reset into the bootloader ("1200 baud touch")
	TouchBaudRate = 1200

	// SessionBaudRate is the baud rate of the bootloader command session
	SessionBaudRate = 57600
)

// Command opcodes.
const (
	// CmdVersion queries the hardware version; the streaming bootloader
	// answers with the button state
	CmdVersion = 'v'

	// CmdSetTimeout sets the bootloader idle timeout
	CmdSetTimeout = 'g'

	// CmdShortTimeout makes the bootloader leave after a short idle time
	CmdShortTimeout = 'E'

	// CmdSetAddress sets the load address (display cursor)
	CmdSetAddress = 'A'

	// CmdBlockLoad loads a block of data into the selected memory
	CmdBlockLoad = 'B'

	// CmdLEDControl drives the display, LEDs and status functions
	CmdLEDControl = 'x'
)

// Parameter bytes.
const (
	// MemoryDisplay selects display memory for CmdBlockLoad
	MemoryDisplay = 'D'

	// TimeoutDefault is the CmdSetTimeout argument for the default timeout
	TimeoutDefault = 'F'
)

// Response markers.
const (
	// Unsupported is returned by bootloaders that do not implement a command
	Unsupported = '?'

	// ButtonBase0 is the baseline character of the first button byte
	ButtonBase0 = '1'

	// ButtonBase1 is the baseline character of the second button byte
	ButtonBase1 = 'A'
)

// Response sizes.
const (
	// AckSize is the size of a command acknowledgement
	AckSize = 1

	// VersionResponseSize is the size of a supported CmdVersion response
	VersionResponseSize = 2
)

// Display geometry of the 128x64 monochrome OLED.
const (
	// DisplayWidth is the display width in pixels
	DisplayWidth = 128

	// DisplayHeight is the display height in pixels
	DisplayHeight = 64

	// PageSize is the size of one horizontal 8-pixel display bank
	PageSize = DisplayWidth

	// PagesPerFrame is the number of pages in a full frame
	PagesPerFrame = DisplayHeight / 8

	// FrameSize is the size of a full frame in bytes
	FrameSize = PageSize * PagesPerFrame
)
