package firmware

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

const (
	// RecordMark starts every Intel HEX record
	RecordMark = ':'

	// AddressDigitIndex is the position of the most significant address
	// digit in a record line (":LLAAAATT...")
	AddressDigitIndex = 3

	// BootloaderAreaDigit is the leading address digit of the 0x7000-0x7FFF
	// bootloader area
	BootloaderAreaDigit = '7'
)

// Record is a line that writes into the bootloader area.
type Record struct {
	// Line is the 1-based line number
	Line int

	// Text is the record as found in the file
	Text string
}

// Report is the result of scanning an image.
type Report struct {
	// Lines is the number of lines read
	Lines int

	// Bootloader lists records that write into the bootloader area
	Bootloader []Record
}

// TouchesBootloader reports whether any record writes into the bootloader
// area.
func (r *Report) TouchesBootloader() bool {
	return len(r.Bootloader) > 0
}

// Scan scans the image at path.
func Scan(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ScanReader(f)
}

// ScanReader scans an image from any io.Reader.
func ScanReader(r io.Reader) (*Report, error) {
	scanner := bufio.NewScanner(r)
	report := &Report{}

	for scanner.Scan() {
		report.Lines++
		line := scanner.Text()

		if isBootloaderRecord(line) {
			report.Bootloader = append(report.Bootloader, Record{
				Line: report.Lines,
				Text: line,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", report.Lines+1, err)
	}

	return report, nil
}

func isBootloaderRecord(line string) bool {
	return len(line) > AddressDigitIndex &&
		line[0] == RecordMark &&
		line[AddressDigitIndex] == BootloaderAreaDigit
}
