package stream

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/moffa90/go-arduboot/protocol"
)

// Frame is one full display refresh: 8 pages of 128 bytes, page 0 first.
type Frame [protocol.FrameSize]byte

// Page returns page i of the frame.
func (f *Frame) Page(i int) []byte {
	return f[i*protocol.PageSize : (i+1)*protocol.PageSize]
}

// FrameSource yields frames in display order. Next returns io.EOF when the
// source is exhausted.
type FrameSource interface {
	Next() (Frame, error)
}

// Rewinder is implemented by sources that can restart from the first frame.
type Rewinder interface {
	Rewind() error
}

// BoundaryPolicy decides what happens to a trailing chunk shorter than a
// frame.
type BoundaryPolicy int

const (
	// BoundaryPad zero-fills the partial chunk and sends it as a frame
	BoundaryPad BoundaryPolicy = iota

	// BoundaryTruncate drops the partial chunk
	BoundaryTruncate

	// BoundaryReject fails with a *PartialFrameError
	BoundaryReject
)

func (p BoundaryPolicy) String() string {
	switch p {
	case BoundaryPad:
		return "pad"
	case BoundaryTruncate:
		return "truncate"
	case BoundaryReject:
		return "reject"
	default:
		return fmt.Sprintf("BoundaryPolicy(%d)", int(p))
	}
}

// ParseBoundaryPolicy parses "pad", "truncate" or "reject".
func ParseBoundaryPolicy(s string) (BoundaryPolicy, error) {
	switch s {
	case "pad", "":
		return BoundaryPad, nil
	case "truncate":
		return BoundaryTruncate, nil
	case "reject":
		return BoundaryReject, nil
	default:
		return 0, fmt.Errorf("unknown boundary policy %q (want pad, truncate or reject)", s)
	}
}

// ReaderSource cuts an io.Reader into frames.
type ReaderSource struct {
	r      io.Reader
	policy BoundaryPolicy
	offset int64
	done   bool
}

// NewReaderSource returns a source reading frames from r.
func NewReaderSource(r io.Reader, policy BoundaryPolicy) *ReaderSource {
	return &ReaderSource{r: r, policy: policy}
}

// NewSliceSource returns a rewindable source over in-memory frame data.
func NewSliceSource(data []byte, policy BoundaryPolicy) *ReaderSource {
	return NewReaderSource(bytes.NewReader(data), policy)
}

// Next implements FrameSource.
func (s *ReaderSource) Next() (Frame, error) {
	var f Frame
	if s.done {
		return f, io.EOF
	}

	n, err := io.ReadFull(s.r, f[:])
	switch {
	case err == nil:
		s.offset += int64(n)
		return f, nil
	case errors.Is(err, io.EOF):
		s.done = true
		return f, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		s.done = true
		offset := s.offset
		s.offset += int64(n)
		switch s.policy {
		case BoundaryTruncate:
			return f, io.EOF
		case BoundaryReject:
			return f, &PartialFrameError{Offset: offset, Size: n}
		default:
			return f, nil
		}
	default:
		return f, fmt.Errorf("read frame at offset %d: %w", s.offset, err)
	}
}

// Rewind implements Rewinder when the underlying reader is an io.Seeker.
func (s *ReaderSource) Rewind() error {
	seeker, ok := s.r.(io.Seeker)
	if !ok {
		return ErrNotRewindable
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind frame source: %w", err)
	}
	s.offset = 0
	s.done = false
	return nil
}
