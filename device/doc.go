// Package device finds an Arduboy (or compatible ATmega32U4 board) among
// the host's serial ports and switches it into bootloader mode.
//
// A board enumerates under one of two USB identities: the bootloader
// identity while the bootloader runs and the application identity while a
// sketch runs. MatchTable lists both identities of every supported board as
// consecutive pairs, so the table position of a match tells the firmware
// mode:
//
//	loc := device.NewLocator(device.EnumeratorLister{})
//	h, ok, err := loc.Locate(true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !ok {
//	    // no board attached
//	}
//
// Switcher performs the 1200 baud "touch" that makes the application reset
// into its bootloader, then waits for the board to re-enumerate:
//
//	sw := device.NewSwitcher(loc, device.SerialToucher{},
//	    device.WithSwitchTimeout(30*time.Second),
//	)
//	h, err = sw.EnsureBootloader(ctx, h)
package device
