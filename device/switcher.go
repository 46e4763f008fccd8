package device

import (
	"context"
	"fmt"
	"time"

	"github.com/moffa90/go-arduboot/protocol"
)

// Switcher brings a board into bootloader mode.
type Switcher struct {
	locator *Locator
	toucher Toucher
	config  Config
}

// NewSwitcher creates a Switcher that watches ports through locator and
// triggers resets through toucher.
func NewSwitcher(locator *Locator, toucher Toucher, opts ...Option) *Switcher {
	if locator == nil || toucher == nil {
		panic("locator and toucher cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Switcher{
		locator: locator,
		toucher: toucher,
		config:  cfg,
	}
}

// EnsureBootloader returns h unchanged if the board already runs its
// bootloader. Otherwise it touches the port at 1200 baud, waits until the
// original port disappears, waits until any compatible board shows up
// again, and returns a fresh handle from a final verbose lookup.
//
// The whole wait is bounded by the switch timeout; exceeding it yields a
// *SwitchTimeoutError.
func (s *Switcher) EnsureBootloader(ctx context.Context, h Handle) (Handle, error) {
	if h.Mode == ModeBootloader {
		return h, nil
	}

	s.config.Logger.Info("selecting bootloader mode", "port", h.Port)
	if err := s.toucher.Touch(h.Port, protocol.TouchBaudRate); err != nil {
		return Handle{}, fmt.Errorf("touch reset: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.SwitchTimeout)
	defer cancel()

	// Phase 1: the board drops off the bus.
	err := s.poll(ctx, h, PhaseDisconnect, func(cur Handle, ok bool) bool {
		return !ok || cur.Port != h.Port
	})
	if err != nil {
		return Handle{}, err
	}
	s.config.Logger.Debug("device disconnected", "port", h.Port)

	// Phase 2: any compatible board comes back.
	err = s.poll(ctx, h, PhaseReconnect, func(_ Handle, ok bool) bool {
		return ok
	})
	if err != nil {
		return Handle{}, err
	}

	next, ok, err := s.locator.Locate(true)
	if err != nil {
		return Handle{}, err
	}
	if !ok {
		return Handle{}, fmt.Errorf("after reset: %w", ErrDeviceNotFound)
	}
	return next, nil
}

// poll scans the ports until done reports true, the context ends, or the
// switch timeout expires.
func (s *Switcher) poll(ctx context.Context, orig Handle, phase string, done func(Handle, bool) bool) error {
	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		cur, ok, err := s.locator.Locate(false)
		if err != nil {
			return err
		}
		if done(cur, ok) {
			return nil
		}

		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return &SwitchTimeoutError{
					Port:    orig.Port,
					Phase:   phase,
					Timeout: s.config.SwitchTimeout,
				}
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
