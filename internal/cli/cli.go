// Package cli holds the plumbing shared by the command-line tools: config
// and logger setup, board discovery, the confirmation prompt and the
// delayed exit.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/moffa90/go-arduboot/device"
	"github.com/moffa90/go-arduboot/internal/config"
	"github.com/moffa90/go-arduboot/internal/logging"
)

// Env is the configured environment of a command.
type Env struct {
	Config *config.Config
	Log    zerolog.Logger
	Logger *logging.Adapter
}

// Setup loads the config file at path, applies override and builds the
// logger writing to w.
func Setup(path string, w io.Writer, override func(*config.Config)) (*Env, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log, err := logging.New(cfg.Log, w)
	if err != nil {
		return nil, err
	}

	return &Env{
		Config: cfg,
		Log:    log,
		Logger: logging.NewAdapter(log),
	}, nil
}

// FindBootloader returns a board in bootloader mode. A configured port is
// trusted as is; otherwise the board is discovered and, if it runs an
// application, reset into the bootloader.
func FindBootloader(ctx context.Context, cfg *config.Config, logger device.Logger, ports device.PortLister, toucher device.Toucher) (device.Handle, error) {
	if cfg.Serial.Port != "" {
		return device.Handle{Port: cfg.Serial.Port, Mode: device.ModeBootloader}, nil
	}

	opts := []device.Option{
		device.WithLogger(logger),
		device.WithSwitchTimeout(cfg.Switch.Timeout),
		device.WithPollInterval(cfg.Switch.PollInterval),
	}
	locator := device.NewLocator(ports, opts...)

	h, ok, err := locator.Locate(true)
	if err != nil {
		return device.Handle{}, err
	}
	if !ok {
		return device.Handle{}, device.ErrDeviceNotFound
	}

	return device.NewSwitcher(locator, toucher, opts...).EnsureBootloader(ctx, h)
}

// Confirm writes prompt to out and reads one line from in. It reports true
// for "y" or "yes" in any case.
func Confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprint(out, prompt); err != nil {
		return false, err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// DelayedExit waits d so a message stays readable in a console window that
// closes with the process, then exits with code.
func DelayedExit(d time.Duration, code int) {
	time.Sleep(d)
	os.Exit(code)
}
