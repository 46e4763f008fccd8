package flasher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain lets the test binary stand in for avrdude: with
// FAKE_AVRDUDE set it prints its arguments and exits with the requested
// status.
func TestMain(m *testing.M) {
	if os.Getenv("FAKE_AVRDUDE") == "1" {
		fmt.Fprintln(os.Stdout, strings.Join(os.Args[1:], " "))
		fmt.Fprintln(os.Stderr, "avrdude done.  Thank you.")
		if d, err := time.ParseDuration(os.Getenv("FAKE_AVRDUDE_SLEEP")); err == nil {
			time.Sleep(d)
		}
		code, _ := strconv.Atoi(os.Getenv("FAKE_AVRDUDE_EXIT"))
		os.Exit(code)
	}
	os.Exit(m.Run())
}

func fake(env ...string) []Option {
	var stdout, stderr bytes.Buffer
	return []Option{
		WithPath(os.Args[0]),
		WithEnv(append([]string{"FAKE_AVRDUDE=1"}, env...)...),
		WithOutput(&stdout, &stderr),
	}
}

func TestArgs(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want []string
	}{
		{
			name: "defaults",
			want: []string{"-v", "-patmega32u4", "-cavr109", "-P/dev/ttyACM0", "-b57600", "-D", "-Uflash:w:game.hex:i"},
		},
		{
			name: "config file, quiet",
			opts: []Option{WithConfigFile("/opt/avrdude.conf"), WithVerbose(false)},
			want: []string{"-C/opt/avrdude.conf", "-patmega32u4", "-cavr109", "-P/dev/ttyACM0", "-b57600", "-D", "-Uflash:w:game.hex:i"},
		},
		{
			name: "overrides",
			opts: []Option{WithPart("m32u4"), WithProgrammer("avr109"), WithBaud(115200), WithVerbose(false)},
			want: []string{"-pm32u4", "-cavr109", "-P/dev/ttyACM0", "-b115200", "-D", "-Uflash:w:game.hex:i"},
		},
		{
			name: "empty overrides keep defaults",
			opts: []Option{WithPath(""), WithPart(""), WithProgrammer(""), WithBaud(0), WithVerbose(false)},
			want: []string{"-patmega32u4", "-cavr109", "-P/dev/ttyACM0", "-b57600", "-D", "-Uflash:w:game.hex:i"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.opts...).Args("/dev/ttyACM0", "game.hex")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlash(t *testing.T) {
	var stdout, stderr bytes.Buffer
	a := New(
		WithPath(os.Args[0]),
		WithEnv("FAKE_AVRDUDE=1"),
		WithOutput(&stdout, &stderr),
		WithVerbose(false),
	)

	err := a.Flash(context.Background(), "COM7", "C:\\games\\game.hex")

	require.NoError(t, err)
	assert.Equal(t, "-patmega32u4 -cavr109 -PCOM7 -b57600 -D -Uflash:w:C:\\games\\game.hex:i\n", stdout.String())
	assert.Contains(t, stderr.String(), "Thank you")
}

func TestFlashExitCode(t *testing.T) {
	a := New(fake("FAKE_AVRDUDE_EXIT=1")...)

	err := a.Flash(context.Background(), "/dev/ttyACM0", "game.hex")

	var fe *FlashError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 1, fe.ExitCode)
	assert.Contains(t, err.Error(), "exit code 1")
}

func TestFlashCancelled(t *testing.T) {
	a := New(fake("FAKE_AVRDUDE_SLEEP=10s")...)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := a.Flash(ctx, "/dev/ttyACM0", "game.hex")

	var fe *FlashError
	require.ErrorAs(t, err, &fe)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestFlashNotFound(t *testing.T) {
	a := New(WithPath(filepath.Join(t.TempDir(), "no-such-avrdude")))

	err := a.Flash(context.Background(), "/dev/ttyACM0", "game.hex")

	assert.True(t, errors.Is(err, ErrAvrdudeNotFound), "got %v", err)
}
