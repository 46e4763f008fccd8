package protocol

import (
	"bytes"
	"testing"
)

func TestFixedCommands(t *testing.T) {
	tests := []struct {
		name  string
		frame []byte
		want  []byte
	}{
		{
			name:  "version",
			frame: BuildVersionCmd(),
			want:  []byte{'v'},
		},
		{
			name:  "reset timeout",
			frame: BuildResetTimeoutCmd(),
			want:  []byte{'g', 0x00, 0x00, 'F'},
		},
		{
			name:  "short timeout",
			frame: BuildShortTimeoutCmd(),
			want:  []byte{'E'},
		},
		{
			name:  "set display window",
			frame: BuildSetDisplayWindowCmd(),
			want:  []byte{'A', 0x00, 0x00},
		},
		{
			name:  "indicator quiet",
			frame: BuildIndicatorCmd(IndicatorQuiet),
			want:  []byte{'x', 0x60},
		},
		{
			name:  "indicator default",
			frame: BuildIndicatorCmd(IndicatorDefault),
			want:  []byte{'x', 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !bytes.Equal(tt.frame, tt.want) {
				t.Errorf("frame = % 02X, want % 02X", tt.frame, tt.want)
			}
		})
	}
}

func TestBuildWritePageCmd(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
		errMsg  string
	}{
		{
			name: "full page",
			data: bytes.Repeat([]byte{0xA5}, PageSize),
		},
		{
			name:    "short page",
			data:    make([]byte, PageSize-1),
			wantErr: true,
			errMsg:  "page data must be exactly 128 bytes",
		},
		{
			name:    "long page",
			data:    make([]byte, PageSize+1),
			wantErr: true,
			errMsg:  "page data must be exactly 128 bytes",
		},
		{
			name:    "nil page",
			data:    nil,
			wantErr: true,
			errMsg:  "got 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := BuildWritePageCmd(tt.data)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errMsg)
				}
				if !bytes.Contains([]byte(err.Error()), []byte(tt.errMsg)) {
					t.Errorf("error = %v, want substring %q", err, tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(frame) != 4+PageSize {
				t.Fatalf("frame length = %d, want %d", len(frame), 4+PageSize)
			}

			header := []byte{'B', 0x00, 0x80, 'D'}
			if !bytes.Equal(frame[:4], header) {
				t.Errorf("header = % 02X, want % 02X", frame[:4], header)
			}

			if !bytes.Equal(frame[4:], tt.data) {
				t.Error("payload does not match page data")
			}
		})
	}
}

func TestBuildWritePageCmdCopiesData(t *testing.T) {
	data := make([]byte, PageSize)
	frame, err := BuildWritePageCmd(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data[0] = 0xFF
	if frame[4] != 0x00 {
		t.Error("frame aliases the caller's page buffer")
	}
}
