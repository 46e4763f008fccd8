// Package bootloader talks to the Arduboy streaming bootloader over an
// open serial connection.
//
// # Overview
//
// Client implements one method per protocol command. Each method writes the
// command and blocks until the complete response has been read, so commands
// never overlap on the wire:
//   - QueryHandshake checks that the bootloader supports streaming
//   - PollButtons reads the button state
//   - SetDisplayWindow and WritePage draw a frame page by page
//   - SetIndicator drives the LEDs and status functions
//   - ResetTimeout and SetShortTimeout control the bootloader idle timer
//
// # Basic Usage
//
// Open the port of a board that runs its bootloader:
//
//	sess, err := bootloader.Open("/dev/ttyACM0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close()
//
//	result, err := sess.QueryHandshake(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result == protocol.HandshakeUnsupported {
//	    log.Fatal(bootloader.ErrStreamingUnsupported)
//	}
//
// # Configuration Options
//
//	sess, err := bootloader.Open(port,
//	    bootloader.WithLogger(myLogger),
//	    bootloader.WithReadTimeout(2*time.Second),
//	    bootloader.WithEdgeTimeout(time.Minute),
//	)
//
// Any io.ReadWriter works with New, which is how the tests drive the client
// against a simulated device.
//
// # Error Handling
//
// A missing or short response is a protocol.CommunicationError; the client
// never retries. Once it occurs the session should be abandoned:
//
//	if errors.Is(err, protocol.ErrCommunication) {
//	    // device unplugged or bootloader timed out
//	}
package bootloader
