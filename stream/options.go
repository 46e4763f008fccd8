package stream

import "time"

// Config holds the scheduler configuration.
type Config struct {
	// ProgressCallback is called after every frame (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// Clock drives the pacer; nil uses the system clock
	Clock Clock

	// Interval is the time between the end of one frame and the start of
	// the next
	Interval time.Duration

	// SpinMargin is the final part of the interval that is busy-waited
	SpinMargin time.Duration

	// Loop restarts rewindable sources when they run out
	Loop bool
}

// defaultConfig returns the default configuration (~30 fps).
func defaultConfig() Config {
	return Config{
		Interval:   33 * time.Millisecond,
		SpinMargin: time.Millisecond,
	}
}

// Option is a functional option for configuring the Scheduler.
type Option func(*Config)

// WithProgressCallback sets a callback invoked after every frame.
//
// Example:
//
//	s := stream.New(stream.WithProgressCallback(func(p stream.Progress) {
//	    fmt.Printf("\r%d frames", p.Frames)
//	}))
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the scheduler.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithClock replaces the system clock, mainly for tests.
func WithClock(clock Clock) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}

// WithInterval sets the frame interval.
//
// Example:
//
//	s := stream.New(stream.WithInterval(time.Second / 25))
func WithInterval(interval time.Duration) Option {
	return func(c *Config) {
		if interval >= 0 {
			c.Interval = interval
		}
	}
}

// WithSpinMargin sets how much of the interval is busy-waited rather than
// slept.
func WithSpinMargin(margin time.Duration) Option {
	return func(c *Config) {
		if margin >= 0 {
			c.SpinMargin = margin
		}
	}
}

// WithLoop makes the scheduler restart rewindable sources until the user
// exits.
func WithLoop(loop bool) Option {
	return func(c *Config) {
		c.Loop = loop
	}
}
