// Package flasher writes .hex images to a board in bootloader mode by
// running avrdude.
//
// The board must already be in bootloader mode on the given port; see
// device.Switcher. Flash blocks until avrdude exits.
//
//	a := flasher.New(flasher.WithPath("/usr/bin/avrdude"))
//	if err := a.Flash(ctx, "/dev/ttyACM0", "game.hex"); err != nil {
//	    log.Fatal(err)
//	}
package flasher
