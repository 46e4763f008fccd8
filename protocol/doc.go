// Package protocol implements the wire format of the Arduboy streaming
// bootloader (a Caterina/AVR109 derivative with display and LED extensions).
//
// # Protocol Overview
//
// The protocol is strictly request/response and half-duplex. Every command
// starts with a single ASCII opcode, optionally followed by parameter bytes,
// and is answered with a fixed number of bytes (0, 1 or 2):
//
//	v                 version / button poll     2 bytes ('?' if unsupported)
//	g 0x00 0x00 'F'   reset idle timeout        no response
//	E                 short idle timeout        1 byte ack
//	A 0x00 0x00       set display address       1 byte ack
//	B 0x00 0x80 'D'   load 128 bytes to display 1 byte ack
//	x <flags>         LED / display control     1 byte ack
//
// A response must be consumed completely before the next command is sent.
//
// # Command Builders
//
// Use the Build* functions to create command frames:
//
//	frame := protocol.BuildVersionCmd()
//	frame, err := protocol.BuildWritePageCmd(page)
//
// # Response Decoders
//
// The version command doubles as the button poll. Its two response bytes
// are offsets from the characters '1' and 'A' and are decoded with an
// explicit bit table:
//
//	buttons, err := protocol.ParseButtons(b0, b1)
//	if buttons.Has(protocol.ExitMask) {
//	    // stop streaming
//	}
//
// # Error Handling
//
// CommunicationError reports a missing or short response. Use errors.Is with
// ErrCommunication to classify it:
//
//	if errors.Is(err, protocol.ErrCommunication) {
//	    // device vanished or bootloader timed out
//	}
package protocol
