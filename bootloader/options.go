package bootloader

import "time"

// Config holds the client configuration.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// ReadTimeout bounds a single serial read; only used by Open
	ReadTimeout time.Duration

	// EdgeTimeout bounds WaitForButtonEdge
	EdgeTimeout time.Duration

	// EdgePollInterval is the pause between polls in WaitForButtonEdge
	EdgePollInterval time.Duration
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		ReadTimeout:      2 * time.Second,
		EdgeTimeout:      60 * time.Second,
		EdgePollInterval: 10 * time.Millisecond,
	}
}

// Option is a functional option for configuring the Client.
type Option func(*Config)

// WithLogger sets a logger for the client operations.
//
// Example:
//
//	c := bootloader.New(port, bootloader.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithReadTimeout sets the serial read timeout used by Open. A response
// that does not arrive within it is reported as a CommunicationError.
//
// Example:
//
//	sess, err := bootloader.Open(port, bootloader.WithReadTimeout(time.Second))
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ReadTimeout = timeout
		}
	}
}

// WithEdgeTimeout bounds how long WaitForButtonEdge waits for a press and
// release.
func WithEdgeTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.EdgeTimeout = timeout
		}
	}
}

// WithEdgePollInterval sets the pause between button polls while waiting
// for an edge. Zero polls back to back.
func WithEdgePollInterval(interval time.Duration) Option {
	return func(c *Config) {
		if interval >= 0 {
			c.EdgePollInterval = interval
		}
	}
}
