package bootloader

import (
	"fmt"

	"go.bug.st/serial"

	"github.com/moffa90/go-arduboot/protocol"
)

// Session is a Client that owns its serial port.
type Session struct {
	*Client
	port serial.Port
	name string
}

// Open opens the named port at 57600 baud, 8N1, and returns a session on it.
// The caller must Close the session.
func Open(name string, opts ...Option) (*Session, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	port, err := serial.Open(name, &serial.Mode{
		BaudRate: protocol.SessionBaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", name, err)
	}
	if err := port.ResetInputBuffer(); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("reset input buffer on %s: %w", name, err)
	}

	return &Session{
		Client: New(port, opts...),
		port:   port,
		name:   name,
	}, nil
}

// Port returns the name of the session's serial port.
func (s *Session) Port() string {
	return s.name
}

// Close closes the serial port.
func (s *Session) Close() error {
	return s.port.Close()
}
