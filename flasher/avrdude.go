package flasher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrAvrdudeNotFound means the avrdude executable could not be located.
var ErrAvrdudeNotFound = errors.New("avrdude not found")

// Logger is an optional logging interface, satisfied by any
// bootloader.Logger.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// FlashError reports a failed avrdude run.
type FlashError struct {
	// ExitCode is avrdude's exit status, -1 if it did not exit normally
	ExitCode int

	// Err is the underlying error
	Err error
}

func (e *FlashError) Error() string {
	return fmt.Sprintf("avrdude failed (exit code %d): %v", e.ExitCode, e.Err)
}

func (e *FlashError) Unwrap() error {
	return e.Err
}

// Avrdude runs avrdude against a bootloader.
type Avrdude struct {
	config Config
}

// New creates an Avrdude with the given options.
func New(opts ...Option) *Avrdude {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Avrdude{config: cfg}
}

// Args returns the avrdude arguments for writing image to the board on
// port. Flash memory is not erased first (-D); the bootloader erases each
// page as it is written.
func (a *Avrdude) Args(port, image string) []string {
	var args []string
	if a.config.ConfigFile != "" {
		args = append(args, "-C"+a.config.ConfigFile)
	}
	if a.config.Verbose {
		args = append(args, "-v")
	}
	return append(args,
		"-p"+a.config.Part,
		"-c"+a.config.Programmer,
		"-P"+port,
		fmt.Sprintf("-b%d", a.config.Baud),
		"-D",
		fmt.Sprintf("-Uflash:w:%s:i", image),
	)
}

// Flash writes image to the board on port and waits for avrdude to exit.
// Cancelling ctx kills avrdude.
func (a *Avrdude) Flash(ctx context.Context, port, image string) error {
	path, err := exec.LookPath(a.config.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAvrdudeNotFound, err)
	}

	args := a.Args(port, image)
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = a.config.Stdout
	cmd.Stderr = a.config.Stderr
	if len(a.config.Env) > 0 {
		cmd.Env = append(os.Environ(), a.config.Env...)
	}

	a.logInfo("running avrdude", "path", path, "port", port, "image", image)
	a.logDebug("avrdude arguments", "args", args)

	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		a.logError("avrdude failed", "exit_code", code, "error", err)
		return &FlashError{ExitCode: code, Err: err}
	}

	a.logInfo("upload complete", "port", port)
	return nil
}

func (a *Avrdude) logDebug(msg string, keysAndValues ...interface{}) {
	if a.config.Logger != nil {
		a.config.Logger.Debug(msg, keysAndValues...)
	}
}

func (a *Avrdude) logInfo(msg string, keysAndValues ...interface{}) {
	if a.config.Logger != nil {
		a.config.Logger.Info(msg, keysAndValues...)
	}
}

func (a *Avrdude) logError(msg string, keysAndValues ...interface{}) {
	if a.config.Logger != nil {
		a.config.Logger.Error(msg, keysAndValues...)
	}
}
