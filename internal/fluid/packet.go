package fluid

import "strings"

// Packet is a single slot of a container: either empty or one unit of
// colored fluid. Color ids are open-ended non-negative integers; the text
// format labels them Excel-style (A=0 ... Z=25, AA=26, AB=27, ...).
//
// The natural integer order doubles as the canonical packet order: an
// empty slot sorts before any fluid, fluids sort by color id.
type Packet int

const Empty Packet = -1

func NewPacket(colorId int) Packet {
	return Packet(colorId)
}

func (p Packet) IsEmpty() bool {
	return p < 0
}

func (p Packet) ColorId() (int, bool) {
	if p < 0 {
		return 0, false
	}
	return int(p), true
}

// ParsePacket decodes one token of the text format. A "." or blank token is
// an empty slot; a letter sequence is a base-26 color label. Anything else
// degrades to an empty slot rather than failing.
func ParsePacket(token string) Packet {
	s := strings.TrimSpace(token)
	if s == "" || s == "." {
		return Empty
	}
	if len(s) > 12 { // would overflow the accumulator
		return Empty
	}
	acc := 0
	for _, ch := range s {
		switch {
		case 'A' <= ch && ch <= 'Z':
			acc = acc*26 + int(ch-'A') + 1
		case 'a' <= ch && ch <= 'z':
			acc = acc*26 + int(ch-'a') + 1
		default:
			return Empty
		}
	}
	return Packet(acc - 1)
}

// String renders the base-26 letter label, or "." for an empty slot.
func (p Packet) String() string {
	if p < 0 {
		return "."
	}
	var buf [16]byte
	i := len(buf)
	for id := int(p) + 1; id > 0; id = (id - 1) / 26 {
		i--
		buf[i] = byte('A' + (id-1)%26)
	}
	return string(buf[i:])
}
