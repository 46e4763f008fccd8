package device

import (
	"fmt"
	"strings"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// EnumeratorLister lists ports with go.bug.st/serial/enumerator and renders
// USB details in the "VID:PID=xxxx:yyyy" form the match table uses.
type EnumeratorLister struct{}

// ListPorts implements PortLister.
func (EnumeratorLister) ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}

	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		ports = append(ports, portInfoFromDetails(d))
	}
	return ports, nil
}

func portInfoFromDetails(d *enumerator.PortDetails) PortInfo {
	info := PortInfo{
		Name:        d.Name,
		Description: d.Product,
		HardwareID:  "n/a",
	}
	if d.IsUSB {
		info.HardwareID = fmt.Sprintf("USB VID:PID=%s:%s",
			strings.ToUpper(d.VID), strings.ToUpper(d.PID))
		if d.SerialNumber != "" {
			info.HardwareID += " SER=" + d.SerialNumber
		}
	}
	if info.Description == "" {
		info.Description = d.Name
	}
	return info
}

// Toucher performs the reset trigger on a port.
type Toucher interface {
	Touch(port string, baud int) error
}

// SerialToucher opens the port at the given rate and closes it right away
// without exchanging data.
type SerialToucher struct{}

// Touch implements Toucher.
func (SerialToucher) Touch(port string, baud int) error {
	p, err := serial.Open(port, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return fmt.Errorf("open %s at %d baud: %w", port, baud, err)
	}
	return p.Close()
}
