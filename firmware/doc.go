// Package firmware locates and inspects Intel HEX images before they are
// handed to the flasher.
//
// # Archives
//
// Games are often distributed as .arduboy or .zip archives holding a .hex
// image. Open accepts either a plain .hex file or such an archive; for an
// archive the first .hex member is extracted to a temporary file that the
// returned Image removes on Close.
//
//	img, err := firmware.Open("game.arduboy")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer img.Close()
//
// # Bootloader area
//
// The ATmega32u4 bootloader lives at 0x7000 and up. A record whose address
// starts with hex digit 7 writes into that area and can brick a board whose
// bootloader is not write protected. Scan reports such records so a caller
// can ask for confirmation:
//
//	report, err := firmware.Scan(img.Path)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if report.TouchesBootloader() {
//	    fmt.Println("warning: image writes into the bootloader area")
//	}
//
// Scan is a line filter, not an Intel HEX parser. Checksums, record types
// and extended addressing are not interpreted.
package firmware
