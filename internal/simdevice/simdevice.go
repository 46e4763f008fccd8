// Package simdevice simulates an Arduboy streaming bootloader behind an
// io.ReadWriter. It decodes commands, keeps a display framebuffer, answers
// with the bytes a real bootloader sends, and records everything for
// inspection by tests and demos.
package simdevice

import (
	"errors"
	"sync"
	"time"

	"github.com/moffa90/go-arduboot/protocol"
)

// Ack is the acknowledgement byte (carriage return, as AVR109).
const Ack = '\r'

// ErrVanished is returned once the simulated board has been unplugged.
var ErrVanished = errors.New("simulated device disconnected")

// Command is one decoded command.
type Command struct {
	Op      byte
	Params  []byte
	Payload []byte
}

// Device is a simulated bootloader.
type Device struct {
	// Streaming reports whether the bootloader supports streaming
	Streaming bool

	// Buttons returns the button state for the n-th poll (0-based);
	// nil means no buttons pressed
	Buttons func(n int) protocol.Buttons

	// Fragment makes Read return one byte per call
	Fragment bool

	// Latency is added to every command
	Latency time.Duration

	mu        sync.Mutex
	in        []byte
	pending   []byte
	commands  []Command
	polls     int
	display   [protocol.FrameSize]byte
	cursor    int
	frames    int
	failAfter int
	vanished  bool
}

// New returns a streaming-capable device with no buttons pressed.
func New() *Device {
	return &Device{Streaming: true}
}

// PressAfter returns a button script that reports b from poll n on.
func PressAfter(n int, b protocol.Buttons) func(int) protocol.Buttons {
	return func(i int) protocol.Buttons {
		if i >= n {
			return b
		}
		return 0
	}
}

// FailAfter unplugs the device once n commands have been handled.
func (d *Device) FailAfter(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failAfter = n
}

// Write decodes complete commands from p and queues their responses.
func (d *Device) Write(p []byte) (int, error) {
	if d.Latency > 0 {
		time.Sleep(d.Latency)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.vanished {
		return 0, ErrVanished
	}

	d.in = append(d.in, p...)
	for d.step() {
		if d.failAfter > 0 && len(d.commands) >= d.failAfter {
			d.vanished = true
			d.pending = nil
			break
		}
	}
	return len(p), nil
}

// Read returns queued response bytes. With nothing queued it returns no
// data and no error, which is how a serial port reports a read timeout.
func (d *Device) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.vanished && len(d.pending) == 0 {
		return 0, ErrVanished
	}
	if len(d.pending) == 0 || len(p) == 0 {
		return 0, nil
	}

	n := len(p)
	if d.Fragment {
		n = 1
	}
	if n > len(d.pending) {
		n = len(d.pending)
	}
	copy(p, d.pending[:n])
	d.pending = d.pending[n:]
	return n, nil
}

// step decodes one command from the input buffer. It reports false when
// the buffer holds no complete command.
func (d *Device) step() bool {
	if len(d.in) == 0 {
		return false
	}

	op := d.in[0]
	params, payload := 0, 0
	switch op {
	case protocol.CmdVersion, protocol.CmdShortTimeout:
	case protocol.CmdSetTimeout:
		params = 3
	case protocol.CmdSetAddress:
		params = 2
	case protocol.CmdLEDControl:
		params = 1
	case protocol.CmdBlockLoad:
		params = 3
		if len(d.in) < 1+params {
			return false
		}
		payload = int(d.in[1])<<8 | int(d.in[2])
	default:
		d.in = d.in[1:]
		d.commands = append(d.commands, Command{Op: op})
		d.pending = append(d.pending, protocol.Unsupported)
		return true
	}

	size := 1 + params + payload
	if len(d.in) < size {
		return false
	}

	cmd := Command{
		Op:      op,
		Params:  append([]byte(nil), d.in[1:1+params]...),
		Payload: append([]byte(nil), d.in[1+params:size]...),
	}
	d.in = d.in[size:]
	d.commands = append(d.commands, cmd)
	d.handle(cmd)
	return true
}

func (d *Device) handle(cmd Command) {
	switch cmd.Op {
	case protocol.CmdVersion:
		if !d.Streaming {
			d.pending = append(d.pending, protocol.Unsupported)
			return
		}
		var b protocol.Buttons
		if d.Buttons != nil {
			b = d.Buttons(d.polls)
		}
		d.polls++
		b0, b1 := protocol.EncodeButtons(b)
		d.pending = append(d.pending, b0, b1)
	case protocol.CmdSetTimeout:
		// no response
	case protocol.CmdSetAddress:
		d.cursor = 0
		d.pending = append(d.pending, Ack)
	case protocol.CmdBlockLoad:
		if cmd.Params[2] == protocol.MemoryDisplay && d.cursor+len(cmd.Payload) <= len(d.display) {
			copy(d.display[d.cursor:], cmd.Payload)
			d.cursor += len(cmd.Payload)
			if d.cursor == len(d.display) {
				d.frames++
			}
		}
		d.pending = append(d.pending, Ack)
	default:
		d.pending = append(d.pending, Ack)
	}
}

// Commands returns a copy of the command log.
func (d *Device) Commands() []Command {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Command(nil), d.commands...)
}

// Count returns how many commands with the given opcode were handled.
func (d *Device) Count(op byte) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, c := range d.commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Ops returns the opcodes of the command log as a string, e.g. "vABBBBBBBBv".
func (d *Device) Ops() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	ops := make([]byte, len(d.commands))
	for i, c := range d.commands {
		ops[i] = c.Op
	}
	return string(ops)
}

// Display returns a copy of the framebuffer.
func (d *Device) Display() [protocol.FrameSize]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.display
}

// Frames returns how many complete frames were drawn.
func (d *Device) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Pending returns the number of response bytes not yet read.
func (d *Device) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
