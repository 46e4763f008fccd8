package bootloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/moffa90/go-arduboot/protocol"
)

// noWindow marks the display cursor as unset.
const noWindow = -1

// Client speaks the streaming bootloader protocol over an owned connection.
//
// Client is not safe for concurrent use: the protocol is half-duplex and
// every command must be answered before the next one is sent.
type Client struct {
	device  io.ReadWriter
	config  Config
	cursor  int
	version byte
}

// New creates a new Client with the given connection and options.
// The connection must already be open at protocol.SessionBaudRate.
//
// Example:
//
//	port, _ := serial.Open(name, &serial.Mode{BaudRate: protocol.SessionBaudRate})
//	c := bootloader.New(port, bootloader.WithLogger(logger))
func New(device io.ReadWriter, opts ...Option) *Client {
	if device == nil {
		panic("device cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Client{
		device: device,
		config: cfg,
		cursor: noWindow,
	}
}

// QueryHandshake checks whether the bootloader implements streaming.
// A '?' reply means it does not; the second byte is then never read.
// Otherwise the second (version) byte is read and kept for Version.
func (c *Client) QueryHandshake(ctx context.Context) (protocol.HandshakeResult, error) {
	resp, err := c.exchange(ctx, "query handshake", protocol.BuildVersionCmd(), 1)
	if err != nil {
		return protocol.HandshakeUnsupported, err
	}

	result := protocol.ParseHandshake(resp[0])
	if result == protocol.HandshakeUnsupported {
		c.logInfo("bootloader doesn't support streaming")
		return result, nil
	}

	rest, err := c.read("query handshake", 1)
	if err != nil {
		return protocol.HandshakeUnsupported, err
	}
	c.version = rest[0]

	c.logDebug("bootloader supports streaming",
		"hardware", fmt.Sprintf("%c", resp[0]),
		"version", fmt.Sprintf("0x%02X", c.version),
	)
	return result, nil
}

// Version returns the version byte read by the last supported handshake.
func (c *Client) Version() byte {
	return c.version
}

// PollButtons reads the current button state.
func (c *Client) PollButtons(ctx context.Context) (protocol.Buttons, error) {
	resp, err := c.exchange(ctx, "poll buttons", protocol.BuildVersionCmd(), protocol.VersionResponseSize)
	if err != nil {
		return 0, err
	}
	return protocol.ParseButtons(resp[0], resp[1])
}

// WaitForButtonEdge blocks until a button is pressed and then released.
// It gives up with ErrEdgeTimeout after the configured edge timeout.
func (c *Client) WaitForButtonEdge(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.EdgeTimeout)
	defer cancel()

	if err := c.waitButtons(ctx, func(b protocol.Buttons) bool { return b != 0 }); err != nil {
		return err
	}
	return c.waitButtons(ctx, func(b protocol.Buttons) bool { return b == 0 })
}

func (c *Client) waitButtons(ctx context.Context, done func(protocol.Buttons) bool) error {
	for {
		// PollButtons checks ctx before writing, so an expired deadline
		// always surfaces here.
		b, err := c.PollButtons(ctx)
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s", ErrEdgeTimeout, c.config.EdgeTimeout)
		}
		if err != nil {
			return err
		}
		if done(b) {
			return nil
		}

		if c.config.EdgePollInterval > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(c.config.EdgePollInterval):
			}
		}
	}
}

// ResetTimeout restores the bootloader's default idle timeout.
// The bootloader does not acknowledge this command.
func (c *Client) ResetTimeout(ctx context.Context) error {
	_, err := c.exchange(ctx, "reset timeout", protocol.BuildResetTimeoutCmd(), 0)
	return err
}

// SetShortTimeout makes the bootloader start the application shortly after
// the session goes idle instead of waiting out its long default timeout.
func (c *Client) SetShortTimeout(ctx context.Context) error {
	_, err := c.exchange(ctx, "short timeout", protocol.BuildShortTimeoutCmd(), protocol.AckSize)
	return err
}

// SetDisplayWindow selects full-frame addressing and rewinds the display
// cursor to page 0. It must precede a run of WritePage calls.
func (c *Client) SetDisplayWindow(ctx context.Context) error {
	c.cursor = noWindow
	if _, err := c.exchange(ctx, "set display window", protocol.BuildSetDisplayWindowCmd(), protocol.AckSize); err != nil {
		return err
	}
	c.cursor = 0
	return nil
}

// WritePage sends one 128-byte display page. Pages must be written in order
// 0..7 after SetDisplayWindow; anything else is rejected with a
// *PageOrderError before touching the wire.
func (c *Client) WritePage(ctx context.Context, page int, data []byte) error {
	if c.cursor == noWindow || page != c.cursor || page >= protocol.PagesPerFrame {
		expected := c.cursor
		if expected >= protocol.PagesPerFrame {
			expected = noWindow
		}
		return &PageOrderError{Page: page, Expected: expected}
	}

	cmd, err := protocol.BuildWritePageCmd(data)
	if err != nil {
		return fmt.Errorf("write page %d: %w", page, err)
	}

	if _, err := c.exchange(ctx, fmt.Sprintf("write page %d", page), cmd, protocol.AckSize); err != nil {
		c.cursor = noWindow
		return err
	}
	c.cursor++
	return nil
}

// SetIndicator drives the LEDs and status functions.
//
// Example:
//
//	// RGB breathing and Rx/Tx transfer status off
//	err := c.SetIndicator(ctx, protocol.IndicatorQuiet)
func (c *Client) SetIndicator(ctx context.Context, flags protocol.Indicator) error {
	_, err := c.exchange(ctx, "set indicator", protocol.BuildIndicatorCmd(flags), protocol.AckSize)
	return err
}

// exchange writes a command and reads exactly n response bytes.
func (c *Client) exchange(ctx context.Context, op string, cmd []byte, n int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := c.device.Write(cmd); err != nil {
		c.logError("write failed", "operation", op, "error", err)
		return nil, &protocol.CommunicationError{Operation: op, Err: err}
	}

	if n == 0 {
		return nil, nil
	}
	return c.read(op, n)
}

// read blocks until n bytes arrived. A read returning no data and no error
// is a serial read timeout.
func (c *Client) read(op string, n int) ([]byte, error) {
	buf := make([]byte, n)
	got := 0
	for got < n {
		m, err := c.device.Read(buf[got:])
		got += m
		if got >= n {
			break
		}
		if err != nil || m == 0 {
			c.logError("short response", "operation", op, "want", n, "got", got)
			return nil, &protocol.CommunicationError{Operation: op, Want: n, Got: got, Err: err}
		}
	}
	return buf, nil
}

// logDebug logs a debug message if a logger is configured.
func (c *Client) logDebug(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (c *Client) logInfo(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (c *Client) logError(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Error(msg, keysAndValues...)
	}
}
