package device

import (
	"fmt"
	"strings"
)

// PortInfo describes one serial port as reported by the host.
type PortInfo struct {
	// Name is the port name used to open it
	Name string

	// Description is a human readable product string
	Description string

	// HardwareID identifies the USB device, e.g. "USB VID:PID=2341:8036 SER=..."
	HardwareID string
}

// PortLister enumerates the serial ports currently attached to the host.
type PortLister interface {
	ListPorts() ([]PortInfo, error)
}

// Locator finds the first attached board listed in the match table.
type Locator struct {
	ports  PortLister
	config Config
}

// NewLocator creates a Locator that enumerates ports through ports.
func NewLocator(ports PortLister, opts ...Option) *Locator {
	if ports == nil {
		panic("port lister cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Table.Validate(); err != nil {
		panic(err)
	}

	return &Locator{
		ports:  ports,
		config: cfg,
	}
}

// Locate returns the first port whose hardware id contains a table entry.
// Ports are checked in enumeration order, entries in table order. ok is
// false when nothing matches; that is not an error.
//
// With verbose set the result is logged at info level, otherwise Locate is
// silent, which suits the tight polling loop of the Switcher.
func (l *Locator) Locate(verbose bool) (h Handle, ok bool, err error) {
	ports, err := l.ports.ListPorts()
	if err != nil {
		return Handle{}, false, fmt.Errorf("list serial ports: %w", err)
	}

	for _, p := range ports {
		for i, entry := range l.config.Table {
			if !strings.Contains(p.HardwareID, entry) {
				continue
			}

			h = Handle{
				Port:        p.Name,
				Description: p.Description,
				Mode:        l.config.Table.ModeAt(i),
			}
			if verbose {
				l.config.Logger.Info("found device",
					"device", h.Description,
					"port", h.Port,
					"mode", h.Mode.String(),
				)
			}
			return h, true, nil
		}
	}

	if verbose {
		l.config.Logger.Info("device not found", "ports", len(ports))
	}
	return Handle{}, false, nil
}
