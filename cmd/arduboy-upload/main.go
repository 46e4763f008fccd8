// Command arduboy-upload flashes a .hex image, or the first .hex inside a
// .zip or .arduboy archive, to an Arduboy with avrdude.
//
// Usage:
//
//	arduboy-upload [flags] game.hex
//
// Images that write into the bootloader area need confirmation, since they
// can overwrite an unprotected bootloader.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/moffa90/go-arduboot/device"
	"github.com/moffa90/go-arduboot/firmware"
	"github.com/moffa90/go-arduboot/flasher"
	"github.com/moffa90/go-arduboot/internal/cli"
	"github.com/moffa90/go-arduboot/internal/config"
)

var errAborted = errors.New("upload aborted")

var (
	configFile string
	port       string
	avrdude    string
	logLevel   string
	assumeYes  bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "Configuration file path")
	flag.StringVar(&port, "port", "", "Serial port of a board already in bootloader mode (skips discovery)")
	flag.StringVar(&avrdude, "avrdude", "", "avrdude executable (default from config, avrdude)")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.BoolVar(&assumeYes, "y", false, "Do not ask before writing into the bootloader area")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] file_to_upload.hex\n\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	env, err := cli.Setup(configFile, os.Stderr, overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		cli.DelayedExit(env.Config.ExitDelay, 2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := 0
	if err := run(ctx, env, flag.Arg(0), os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, errAborted) {
			fmt.Fprintln(os.Stdout, "Upload aborted.")
		} else {
			env.Log.Error().Err(err).Msg("upload failed")
		}
		code = 1
	}
	stop()

	cli.DelayedExit(env.Config.ExitDelay, code)
}

func overrides(c *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			c.Serial.Port = port
		case "avrdude":
			c.Avrdude.Path = avrdude
		case "log-level":
			c.Log.Level = logLevel
		}
	})
}

func run(ctx context.Context, env *cli.Env, path string, in io.Reader, out io.Writer) error {
	cfg := env.Config

	img, err := firmware.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := img.Close(); err != nil {
			env.Log.Error().Err(err).Msg("cleanup failed")
		}
	}()
	if img.Extracted() {
		env.Log.Info().Str("member", img.Member).Msg("extracted image from archive")
	}

	if err := checkBootloaderArea(img.Path, in, out); err != nil {
		return err
	}

	h, err := cli.FindBootloader(ctx, cfg, env.Logger, device.EnumeratorLister{}, device.SerialToucher{})
	if err != nil {
		return err
	}

	a := flasher.New(
		flasher.WithPath(cfg.Avrdude.Path),
		flasher.WithConfigFile(cfg.Avrdude.Config),
		flasher.WithPart(cfg.Avrdude.Part),
		flasher.WithProgrammer(cfg.Avrdude.Programmer),
		flasher.WithBaud(cfg.Avrdude.Baud),
		flasher.WithOutput(out, os.Stderr),
		flasher.WithLogger(env.Logger),
	)
	return a.Flash(ctx, h.Port, img.Path)
}

// checkBootloaderArea asks for confirmation when the image writes into the
// bootloader area.
func checkBootloaderArea(path string, in io.Reader, out io.Writer) error {
	report, err := firmware.Scan(path)
	if err != nil {
		return err
	}
	if !report.TouchesBootloader() || assumeYes {
		return nil
	}

	fmt.Fprintf(out, "Warning!!! This hex file may corrupt the bootloader on unprotected devices (%d records, first at line %d).\n",
		len(report.Bootloader), report.Bootloader[0].Line)
	ok, err := cli.Confirm(in, out, "Type 'y' followed by enter to continue. Anything else to abort. ")
	if err != nil {
		return err
	}
	if !ok {
		return errAborted
	}
	return nil
}
