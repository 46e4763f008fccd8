package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/moffa90/go-arduboot/protocol"
)

// Outcome tells why a streaming session ended.
type Outcome int

const (
	// OutcomeFramesExhausted means every frame was shown
	OutcomeFramesExhausted Outcome = iota

	// OutcomeUserExit means the exit buttons were pressed
	OutcomeUserExit

	// OutcomeCancelled means the context was cancelled
	OutcomeCancelled

	// OutcomeFailed means an error ended the session
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFramesExhausted:
		return "frames exhausted"
	case OutcomeUserExit:
		return "user exit"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Client is the part of the bootloader protocol the scheduler drives.
// *bootloader.Client and *bootloader.Session implement it.
type Client interface {
	SetDisplayWindow(ctx context.Context) error
	WritePage(ctx context.Context, page int, data []byte) error
	PollButtons(ctx context.Context) (protocol.Buttons, error)
	SetIndicator(ctx context.Context, flags protocol.Indicator) error
	SetShortTimeout(ctx context.Context) error
}

// Scheduler streams frames at a fixed rate.
type Scheduler struct {
	config Config
}

// New creates a Scheduler with the given options.
func New(opts ...Option) *Scheduler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Scheduler{config: cfg}
}

// Stream shows the frames of src on the device behind c until the source
// runs out, the user presses an exit button, ctx is cancelled, or an error
// occurs.
//
// Unless the link itself failed, SetShortTimeout is sent before returning.
func (s *Scheduler) Stream(ctx context.Context, src FrameSource, c Client) (Outcome, error) {
	start := time.Now()

	if err := c.SetDisplayWindow(ctx); err != nil {
		return s.fail(ctx, c, err)
	}
	pacer := NewPacer(s.config.Interval, s.config.SpinMargin, s.config.Clock)

	frames, passFrames := 0, 0
	needWindow := false
	for {
		if ctx.Err() != nil {
			return s.finish(ctx, c, OutcomeCancelled, nil)
		}

		frame, err := src.Next()
		if errors.Is(err, io.EOF) {
			if !s.config.Loop || passFrames == 0 {
				return s.finish(ctx, c, OutcomeFramesExhausted, nil)
			}
			rw, ok := src.(Rewinder)
			if !ok {
				return s.finish(ctx, c, OutcomeFramesExhausted, nil)
			}
			if err := rw.Rewind(); err != nil {
				return s.fail(ctx, c, err)
			}
			s.logDebug("restarting clip", "frames", passFrames)
			passFrames = 0
			continue
		}
		if err != nil {
			return s.fail(ctx, c, err)
		}

		// The device does not wrap its page cursor, so every frame after
		// the first starts with a fresh window.
		if needWindow {
			if err := c.SetDisplayWindow(ctx); err != nil {
				return s.fail(ctx, c, err)
			}
		}

		pacer.Wait()
		if ctx.Err() != nil {
			return s.finish(ctx, c, OutcomeCancelled, nil)
		}
		for page := 0; page < protocol.PagesPerFrame; page++ {
			if err := c.WritePage(ctx, page, frame.Page(page)); err != nil {
				return s.fail(ctx, c, fmt.Errorf("frame %d: %w", frames, err))
			}
		}
		pacer.Mark()
		frames++
		passFrames++
		needWindow = true

		buttons, err := c.PollButtons(ctx)
		if err != nil {
			return s.fail(ctx, c, err)
		}
		s.reportProgress(Progress{
			Frames:  frames,
			Buttons: buttons,
			Elapsed: time.Since(start),
		})

		if buttons.Has(protocol.ExitMask) {
			s.logInfo("button pressed, streaming ended", "frames", frames)
			return s.finish(ctx, c, OutcomeUserExit, nil)
		}

		// Level-triggered: a held button repeats every frame.
		switch {
		case buttons.Has(protocol.ButtonLeft):
			err = c.SetIndicator(ctx, protocol.IndicatorQuiet)
		case buttons.Has(protocol.ButtonRight):
			err = c.SetIndicator(ctx, protocol.IndicatorDefault)
		}
		if err != nil {
			return s.fail(ctx, c, err)
		}
	}
}

// fail ends the session with err. An error caused by ctx ending counts as
// a cancellation, not a failure.
func (s *Scheduler) fail(ctx context.Context, c Client, err error) (Outcome, error) {
	if cerr := ctx.Err(); cerr != nil && errors.Is(err, cerr) {
		return s.finish(ctx, c, OutcomeCancelled, nil)
	}
	return s.finish(ctx, c, OutcomeFailed, err)
}

// finish sends the short timeout unless the link is broken.
func (s *Scheduler) finish(ctx context.Context, c Client, outcome Outcome, err error) (Outcome, error) {
	if protocol.IsCommunicationError(err) {
		s.logError("streaming aborted", "error", err)
		return outcome, err
	}

	if terr := c.SetShortTimeout(context.WithoutCancel(ctx)); terr != nil {
		s.logError("short timeout failed", "error", terr)
		if err == nil {
			return outcome, fmt.Errorf("short timeout: %w", terr)
		}
	}
	if err != nil {
		s.logError("streaming failed", "error", err)
	}
	return outcome, err
}

// reportProgress calls the progress callback if configured.
func (s *Scheduler) reportProgress(progress Progress) {
	if s.config.ProgressCallback != nil {
		s.config.ProgressCallback(progress)
	}
}

func (s *Scheduler) logDebug(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, keysAndValues...)
	}
}

func (s *Scheduler) logInfo(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Info(msg, keysAndValues...)
	}
}

func (s *Scheduler) logError(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Error(msg, keysAndValues...)
	}
}
