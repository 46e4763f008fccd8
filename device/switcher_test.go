package device

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToucher struct {
	touched []string
	bauds   []int
	err     error
}

func (f *fakeToucher) Touch(port string, baud int) error {
	f.touched = append(f.touched, port)
	f.bauds = append(f.bauds, baud)
	return f.err
}

func fastSwitcher(lister PortLister, toucher Toucher, timeout time.Duration) *Switcher {
	loc := NewLocator(lister)
	return NewSwitcher(loc, toucher,
		WithPollInterval(time.Millisecond),
		WithSwitchTimeout(timeout),
	)
}

func TestEnsureBootloaderAlreadyInBootloader(t *testing.T) {
	toucher := &fakeToucher{}
	lister := &scriptedLister{}
	sw := fastSwitcher(lister, toucher, time.Second)

	in := Handle{Port: "/dev/ttyACM0", Mode: ModeBootloader}
	out, err := sw.EnsureBootloader(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Empty(t, toucher.touched, "no port may be opened")
	assert.Zero(t, lister.calls, "no enumeration needed")
}

func TestEnsureBootloaderTwoPhaseWait(t *testing.T) {
	app := usbPort("/dev/ttyACM0", "2341:8036")
	boot := usbPort("/dev/ttyACM1", "2341:0036")
	lister := &scriptedLister{scans: [][]PortInfo{
		{app},  // still attached
		{app},  // still attached
		{},     // gone
		{},     // not back yet
		{boot}, // back as bootloader (reconnect phase)
		{boot}, // final verbose lookup
	}}
	toucher := &fakeToucher{}
	sw := fastSwitcher(lister, toucher, time.Second)

	out, err := sw.EnsureBootloader(context.Background(), Handle{Port: "/dev/ttyACM0", Mode: ModeApplication})

	require.NoError(t, err)
	assert.Equal(t, []string{"/dev/ttyACM0"}, toucher.touched)
	assert.Equal(t, []int{1200}, toucher.bauds)
	assert.Equal(t, "/dev/ttyACM1", out.Port)
	assert.Equal(t, ModeBootloader, out.Mode)
	assert.Equal(t, 6, lister.calls)
}

// A board that comes back under another port counts as disconnected.
func TestEnsureBootloaderPortChangeEndsFirstPhase(t *testing.T) {
	boot := usbPort("/dev/ttyACM3", "2341:0036")
	lister := &scriptedLister{scans: [][]PortInfo{{boot}}}
	sw := fastSwitcher(lister, &fakeToucher{}, time.Second)

	out, err := sw.EnsureBootloader(context.Background(), Handle{Port: "/dev/ttyACM0", Mode: ModeApplication})

	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM3", out.Port)
	assert.Equal(t, 3, lister.calls)
}

func TestEnsureBootloaderDisconnectTimeout(t *testing.T) {
	app := usbPort("/dev/ttyACM0", "2341:8036")
	lister := &scriptedLister{scans: [][]PortInfo{{app}}}
	sw := fastSwitcher(lister, &fakeToucher{}, 20*time.Millisecond)

	_, err := sw.EnsureBootloader(context.Background(), Handle{Port: "/dev/ttyACM0", Mode: ModeApplication})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSwitchTimeout)
	var ste *SwitchTimeoutError
	require.ErrorAs(t, err, &ste)
	assert.Equal(t, PhaseDisconnect, ste.Phase)
	assert.Contains(t, err.Error(), "did not disconnect")
}

func TestEnsureBootloaderReconnectTimeout(t *testing.T) {
	app := usbPort("/dev/ttyACM0", "2341:8036")
	lister := &scriptedLister{scans: [][]PortInfo{{app}, {}}}
	sw := fastSwitcher(lister, &fakeToucher{}, 20*time.Millisecond)

	_, err := sw.EnsureBootloader(context.Background(), Handle{Port: "/dev/ttyACM0", Mode: ModeApplication})

	var ste *SwitchTimeoutError
	require.ErrorAs(t, err, &ste)
	assert.Equal(t, PhaseReconnect, ste.Phase)
	assert.Equal(t, "/dev/ttyACM0", ste.Port)
}

func TestEnsureBootloaderCancelled(t *testing.T) {
	app := usbPort("/dev/ttyACM0", "2341:8036")
	lister := &scriptedLister{scans: [][]PortInfo{{app}}}
	sw := fastSwitcher(lister, &fakeToucher{}, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := sw.EnsureBootloader(ctx, Handle{Port: "/dev/ttyACM0", Mode: ModeApplication})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrSwitchTimeout)
}

func TestEnsureBootloaderTouchFailure(t *testing.T) {
	cause := errors.New("port busy")
	lister := &scriptedLister{}
	sw := fastSwitcher(lister, &fakeToucher{err: cause}, time.Second)

	_, err := sw.EnsureBootloader(context.Background(), Handle{Port: "COM3", Mode: ModeApplication})

	assert.ErrorIs(t, err, cause)
	assert.Zero(t, lister.calls)
}
