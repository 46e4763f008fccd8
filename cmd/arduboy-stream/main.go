// Command arduboy-stream plays raw 1-bit frames on an Arduboy through its
// bootloader's streaming commands.
//
// Usage:
//
//	arduboy-stream [flags] [imagedata.bin]
//
// The frames file is a sequence of 1024-byte frames in display page order.
// Press Up or Down on the board to stop, Left to turn the RGB and RxTx
// status LEDs off, Right to turn them back on.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moffa90/go-arduboot/bootloader"
	"github.com/moffa90/go-arduboot/device"
	"github.com/moffa90/go-arduboot/internal/cli"
	"github.com/moffa90/go-arduboot/internal/config"
	"github.com/moffa90/go-arduboot/protocol"
	"github.com/moffa90/go-arduboot/stream"
)

const defaultFrames = "imagedata.bin"

var (
	configFile string
	port       string
	boundary   string
	interval   time.Duration
	logLevel   string
	loop       bool
	waitButton bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "Configuration file path")
	flag.StringVar(&port, "port", "", "Serial port of a board already in bootloader mode (skips discovery)")
	flag.StringVar(&boundary, "boundary", "", "Trailing partial frame handling: pad, truncate, reject")
	flag.DurationVar(&interval, "interval", 0, "Time between frames (default from config, 33ms)")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.BoolVar(&loop, "loop", false, "Restart the clip when it ends")
	flag.BoolVar(&waitButton, "wait", false, "Wait for a button press before streaming")
}

func main() {
	flag.Parse()

	env, err := cli.Setup(configFile, os.Stderr, overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := 0
	if err := run(ctx, env, framesPath()); err != nil {
		env.Log.Error().Err(err).Msg("streaming failed")
		code = 1
	}
	stop()

	cli.DelayedExit(env.Config.ExitDelay, code)
}

// overrides applies the flags that were set on top of the config file.
func overrides(c *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			c.Serial.Port = port
		case "boundary":
			c.Stream.Boundary = boundary
		case "interval":
			c.Stream.Interval = interval
		case "log-level":
			c.Log.Level = logLevel
		case "loop":
			c.Stream.Loop = loop
		case "wait":
			c.Stream.WaitForButton = waitButton
		}
	})
}

func framesPath() string {
	if flag.NArg() > 0 {
		return flag.Arg(0)
	}
	return defaultFrames
}

func run(ctx context.Context, env *cli.Env, path string) error {
	cfg := env.Config

	policy, err := stream.ParseBoundaryPolicy(cfg.Stream.Boundary)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open frames: %w", err)
	}
	defer f.Close()

	h, err := cli.FindBootloader(ctx, cfg, env.Logger, device.EnumeratorLister{}, device.SerialToucher{})
	if err != nil {
		return err
	}

	sess, err := bootloader.Open(h.Port,
		bootloader.WithLogger(env.Logger),
		bootloader.WithReadTimeout(cfg.Serial.ReadTimeout),
		bootloader.WithEdgeTimeout(cfg.Serial.EdgeTimeout),
	)
	if err != nil {
		return err
	}
	defer sess.Close()

	result, err := sess.QueryHandshake(ctx)
	if err != nil {
		return err
	}
	if result == protocol.HandshakeUnsupported {
		return bootloader.ErrStreamingUnsupported
	}
	env.Log.Info().Str("port", h.Port).Msg("bootloader supports streaming")

	if cfg.Stream.WaitForButton {
		// Keep the bootloader from timing out while nobody presses a button.
		if err := sess.ResetTimeout(ctx); err != nil {
			return err
		}
		env.Log.Info().Msg("press a button to start")
		if err := sess.WaitForButtonEdge(ctx); err != nil {
			return err
		}
	}

	scheduler := stream.New(
		stream.WithLogger(env.Logger),
		stream.WithInterval(cfg.Stream.Interval),
		stream.WithSpinMargin(cfg.Stream.SpinMargin),
		stream.WithLoop(cfg.Stream.Loop),
		stream.WithProgressCallback(func(p stream.Progress) {
			env.Log.Debug().
				Int("frames", p.Frames).
				Stringer("buttons", p.Buttons).
				Dur("elapsed", p.Elapsed).
				Msg("frame shown")
		}),
	)

	env.Log.Info().Str("file", path).Msg("streaming")
	outcome, err := scheduler.Stream(ctx, stream.NewReaderSource(f, policy), sess)
	if err != nil {
		return err
	}

	switch outcome {
	case stream.OutcomeUserExit:
		env.Log.Info().Msg("button pressed, streaming ended")
	case stream.OutcomeCancelled:
		env.Log.Info().Msg("interrupted, streaming ended")
	default:
		env.Log.Info().Stringer("outcome", outcome).Msg("streaming ended")
	}
	return nil
}
