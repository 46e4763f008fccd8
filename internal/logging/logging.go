// Package logging builds the zerolog logger used by the command-line tools
// and adapts it to the Logger interfaces of the library packages.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/moffa90/go-arduboot/internal/config"
)

// New returns a logger writing to w. Format "console" gives human readable
// output, colored when w is a terminal; "json" gives one JSON object per
// line.
func New(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	switch cfg.Format {
	case "", "console":
		out, color := terminal(w)
		w = zerolog.ConsoleWriter{Out: out, NoColor: !color, TimeFormat: time.TimeOnly}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q (want console or json)", cfg.Format)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// terminal wraps terminal files so ANSI colors also work on Windows
// consoles.
func terminal(w io.Writer) (io.Writer, bool) {
	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return w, false
	}
	return colorable.NewColorable(f), true
}

// Adapter implements the Debug/Info/Error Logger interfaces of the device,
// bootloader, stream and flasher packages on top of zerolog. Key/value
// pairs become fields.
type Adapter struct {
	logger zerolog.Logger
}

// NewAdapter wraps logger.
func NewAdapter(logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// Debug logs at debug level.
func (a *Adapter) Debug(msg string, keysAndValues ...interface{}) {
	a.log(a.logger.Debug(), msg, keysAndValues)
}

// Info logs at info level.
func (a *Adapter) Info(msg string, keysAndValues ...interface{}) {
	a.log(a.logger.Info(), msg, keysAndValues)
}

// Error logs at error level.
func (a *Adapter) Error(msg string, keysAndValues ...interface{}) {
	a.log(a.logger.Error(), msg, keysAndValues)
}

func (a *Adapter) log(e *zerolog.Event, msg string, kv []interface{}) {
	if len(kv)%2 != 0 {
		kv = append(kv, "(missing)")
	}
	e.Fields(kv).Msg(msg)
}
