package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.bug.st/serial/enumerator"
)

func TestPortInfoFromDetails(t *testing.T) {
	usb := portInfoFromDetails(&enumerator.PortDetails{
		Name:         "/dev/ttyACM0",
		IsUSB:        true,
		VID:          "2341",
		PID:          "8036",
		SerialNumber: "HIDPC",
		Product:      "Arduino Leonardo",
	})
	assert.Equal(t, "USB VID:PID=2341:8036 SER=HIDPC", usb.HardwareID)
	assert.Equal(t, "Arduino Leonardo", usb.Description)

	lower := portInfoFromDetails(&enumerator.PortDetails{
		Name:  "COM4",
		IsUSB: true,
		VID:   "2a03",
		PID:   "0036",
	})
	assert.Equal(t, "USB VID:PID=2A03:0036", lower.HardwareID)
	assert.Equal(t, "COM4", lower.Description)
	assert.Contains(t, lower.HardwareID, DefaultTable[2])

	plain := portInfoFromDetails(&enumerator.PortDetails{Name: "/dev/ttyS0"})
	assert.Equal(t, "n/a", plain.HardwareID)
}
