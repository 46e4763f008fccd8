package flasher

import (
	"io"

	"github.com/moffa90/go-arduboot/protocol"
)

// Config holds the avrdude invocation settings.
type Config struct {
	// Path is the avrdude executable, looked up in PATH when it has no
	// directory part
	Path string

	// ConfigFile is passed as -C when set
	ConfigFile string

	// Part is the -p target
	Part string

	// Programmer is the -c programmer type
	Programmer string

	// Baud is the -b serial rate
	Baud int

	// Verbose adds -v
	Verbose bool

	// Stdout and Stderr receive avrdude's output (optional)
	Stdout io.Writer
	Stderr io.Writer

	// Env is appended to the process environment
	Env []string

	// Logger is used for logging operations (optional)
	Logger Logger
}

// defaultConfig targets an ATmega32u4 Caterina bootloader.
func defaultConfig() Config {
	return Config{
		Path:       "avrdude",
		Part:       "atmega32u4",
		Programmer: "avr109",
		Baud:       protocol.SessionBaudRate,
		Verbose:    true,
	}
}

// Option is a functional option for configuring Avrdude.
type Option func(*Config)

// WithPath sets the avrdude executable.
func WithPath(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.Path = path
		}
	}
}

// WithConfigFile sets the avrdude.conf passed with -C.
func WithConfigFile(path string) Option {
	return func(c *Config) {
		c.ConfigFile = path
	}
}

// WithPart sets the target part.
func WithPart(part string) Option {
	return func(c *Config) {
		if part != "" {
			c.Part = part
		}
	}
}

// WithProgrammer sets the programmer type.
func WithProgrammer(programmer string) Option {
	return func(c *Config) {
		if programmer != "" {
			c.Programmer = programmer
		}
	}
}

// WithBaud sets the serial rate.
func WithBaud(baud int) Option {
	return func(c *Config) {
		if baud > 0 {
			c.Baud = baud
		}
	}
}

// WithVerbose toggles avrdude's -v flag.
func WithVerbose(verbose bool) Option {
	return func(c *Config) {
		c.Verbose = verbose
	}
}

// WithOutput sets where avrdude's output goes.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *Config) {
		c.Stdout = stdout
		c.Stderr = stderr
	}
}

// WithEnv adds environment variables for the avrdude process.
func WithEnv(env ...string) Option {
	return func(c *Config) {
		c.Env = append(c.Env, env...)
	}
}

// WithLogger sets a logger.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
