package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-arduboot/device"
	"github.com/moffa90/go-arduboot/internal/config"
)

type listerFunc func() ([]device.PortInfo, error)

func (f listerFunc) ListPorts() ([]device.PortInfo, error) { return f() }

type toucherFunc func(port string, baud int) error

func (f toucherFunc) Touch(port string, baud int) error { return f(port, baud) }

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"  YES \r\n", true},
		{"y", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yep\n", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got, err := Confirm(strings.NewReader(tt.input), &out, "continue? ")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "continue? ", out.String())
	}
}

func TestSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arduboot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: json\n"), 0o644))

	var buf bytes.Buffer
	env, err := Setup(path, &buf, func(c *config.Config) {
		c.Stream.Loop = true
	})
	require.NoError(t, err)
	assert.True(t, env.Config.Stream.Loop)

	env.Logger.Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestSetupInvalidOverride(t *testing.T) {
	_, err := Setup("", &bytes.Buffer{}, func(c *config.Config) {
		c.Stream.Boundary = "squash"
	})
	assert.Error(t, err)
}

func TestFindBootloaderConfiguredPort(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Serial.Port = "/dev/ttyACM9"
	lister := listerFunc(func() ([]device.PortInfo, error) {
		t.Fatal("ports listed although a port is configured")
		return nil, nil
	})

	h, err := FindBootloader(context.Background(), cfg, nopLogger{}, lister, nil)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyACM9", h.Port)
	assert.Equal(t, device.ModeBootloader, h.Mode)
}

func TestFindBootloaderNotFound(t *testing.T) {
	lister := listerFunc(func() ([]device.PortInfo, error) { return nil, nil })

	_, err := FindBootloader(context.Background(), config.GetDefaultConfig(), nopLogger{}, lister, nil)
	assert.ErrorIs(t, err, device.ErrDeviceNotFound)
}

func TestFindBootloaderSwitches(t *testing.T) {
	app := device.PortInfo{Name: "COM3", Description: "Arduboy", HardwareID: "USB VID:PID=2341:8036"}
	boot := device.PortInfo{Name: "COM4", Description: "Arduboy", HardwareID: "USB VID:PID=2341:0036"}

	touched := false
	calls := 0
	lister := listerFunc(func() ([]device.PortInfo, error) {
		calls++
		switch {
		case !touched:
			return []device.PortInfo{app}, nil
		case calls < 4:
			return nil, nil
		default:
			return []device.PortInfo{boot}, nil
		}
	})
	toucher := toucherFunc(func(port string, baud int) error {
		assert.Equal(t, "COM3", port)
		assert.Equal(t, 1200, baud)
		touched = true
		return nil
	})

	cfg := config.GetDefaultConfig()
	cfg.Switch.PollInterval = time.Millisecond

	h, err := FindBootloader(context.Background(), cfg, nopLogger{}, lister, toucher)
	require.NoError(t, err)
	assert.Equal(t, "COM4", h.Port)
	assert.Equal(t, device.ModeBootloader, h.Mode)
}

func TestFindBootloaderListError(t *testing.T) {
	cause := errors.New("no permission")
	lister := listerFunc(func() ([]device.PortInfo, error) { return nil, cause })

	_, err := FindBootloader(context.Background(), config.GetDefaultConfig(), nopLogger{}, lister, nil)
	assert.ErrorIs(t, err, cause)
}
