// Package stream plays a sequence of 128x64 frames on the Arduboy display
// through the streaming bootloader at a steady frame rate.
//
// # Overview
//
// Scheduler.Stream runs a single-goroutine loop:
//   - wait until the frame interval has passed since the previous frame
//     finished transmitting
//   - send the frame's 8 pages
//   - poll the buttons; down or up ends the session, left silences the
//     RGB breathing and Rx/Tx status LEDs, right restores them
//
// When the loop ends, for whatever reason other than a broken link, the
// bootloader is switched to its short idle timeout so the board returns to
// its application promptly.
//
// # Basic Usage
//
//	f, _ := os.Open("imagedata.bin")
//	defer f.Close()
//
//	s := stream.New(
//	    stream.WithInterval(33*time.Millisecond),
//	    stream.WithProgressCallback(func(p stream.Progress) {
//	        fmt.Printf("\rframe %d", p.Frames)
//	    }),
//	)
//	outcome, err := s.Stream(ctx, stream.NewReaderSource(f, stream.BoundaryPad), sess)
//
// # Frame Sources
//
// ReaderSource cuts any io.Reader into 1024-byte frames. A trailing partial
// frame is padded with zeros, dropped, or rejected depending on the
// BoundaryPolicy. Sources backed by an io.Seeker can be rewound, which
// WithLoop uses to repeat the clip until the user exits.
package stream
