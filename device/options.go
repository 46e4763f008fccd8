package device

import "time"

// Config holds the locator and switcher configuration.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// Table is the hardware id match table
	Table MatchTable

	// SwitchTimeout bounds the wait for the board to re-enumerate
	SwitchTimeout time.Duration

	// PollInterval is the delay between port scans while switching
	PollInterval time.Duration
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Logger:        nopLogger{},
		Table:         DefaultTable,
		SwitchTimeout: 30 * time.Second,
		PollInterval:  100 * time.Millisecond,
	}
}

// Option is a functional option for configuring the Locator and Switcher.
type Option func(*Config)

// WithLogger sets a logger.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithTable replaces the default match table.
//
// Example:
//
//	loc := device.NewLocator(lister, device.WithTable(device.MatchTable{
//	    "VID:PID=2341:0036", "VID:PID=2341:8036",
//	}))
func WithTable(table MatchTable) Option {
	return func(c *Config) {
		c.Table = table
	}
}

// WithSwitchTimeout bounds the wait after a touch reset.
func WithSwitchTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.SwitchTimeout = timeout
		}
	}
}

// WithPollInterval sets the delay between port scans while switching.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Config) {
		if interval > 0 {
			c.PollInterval = interval
		}
	}
}
