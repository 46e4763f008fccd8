package protocol

// buttonTable maps each offset bit of the two button bytes to a Buttons bit.
// The first byte carries offsets from '1', the second offsets from 'A';
// together they reproduce (b0-'1')<<2 | (b1-'A')<<4.
var buttonTable = [2][4]Buttons{
	{0x04, 0x08, 0x10, 0x20},
	{0x10, 0x20, 0x40, 0x80},
}

// maxButtonOffset is the largest offset the table can represent.
const maxButtonOffset = 0x0F

// ParseButtons decodes the two response bytes of a button poll.
//
// Examples:
//
//	ParseButtons('1', 'A') // none
//	ParseButtons('2', 'A') // ButtonDown
//	ParseButtons('1', 'C') // ButtonLeft
//	ParseButtons('5', 'A') // 0x10, not a named button
func ParseButtons(b0, b1 byte) (Buttons, error) {
	var buttons Buttons
	for i, pair := range [2]struct {
		value, base byte
	}{
		{b0, ButtonBase0},
		{b1, ButtonBase1},
	} {
		if pair.value < pair.base || pair.value-pair.base > maxButtonOffset {
			return 0, &MalformedResponseError{
				Operation: "poll buttons",
				Response:  []byte{b0, b1},
			}
		}
		offset := pair.value - pair.base
		for bit := 0; bit < len(buttonTable[i]); bit++ {
			if offset&(1<<bit) != 0 {
				buttons |= buttonTable[i][bit]
			}
		}
	}

	return buttons, nil
}

// EncodeButtons is the inverse of ParseButtons. Bit 0x10, which both bytes
// can carry, is placed in the first byte.
func EncodeButtons(b Buttons) (b0, b1 byte) {
	b0 = ButtonBase0 + byte(b>>2)&0x07
	b1 = ButtonBase1 + byte(b>>4)&0x0E
	return b0, b1
}

// ParseHandshake classifies the first byte of a version response.
func ParseHandshake(first byte) HandshakeResult {
	if first == Unsupported {
		return HandshakeUnsupported
	}
	return HandshakeSupported
}
