package fluid

import "strings"

// Container is a fixed-capacity stack of packets. Packets[0] is the bottom
// slot, Packets[len-1] the top. Filled slots form a contiguous run from the
// bottom because the only mutators are stack push/pop; the one exception is
// ChangeCapacity, which may cut off filled packets at the top.
type Container struct {
	Packets []Packet
}

func NewContainer(capacity int) Container {
	c := Container{Packets: make([]Packet, capacity)}
	for i := range c.Packets {
		c.Packets[i] = Empty
	}
	return c
}

// ParseContainer reads one line of the text format, bottom-to-top. A line
// containing a comma is split into base-26 tokens (a trailing comma keeps a
// single multi-letter label from being split per character); otherwise
// every character is one packet.
func ParseContainer(line string) Container {
	var packets []Packet
	if strings.Contains(line, ",") {
		tokens := strings.Split(line, ",")
		// A trailing comma only marks the line as tokenized, it does not
		// add an empty slot.
		if last := len(tokens) - 1; strings.TrimSpace(tokens[last]) == "" {
			tokens = tokens[:last]
		}
		for _, token := range tokens {
			packets = append(packets, ParsePacket(token))
		}
	} else {
		for _, ch := range line {
			packets = append(packets, ParsePacket(string(ch)))
		}
	}
	return Container{Packets: packets}
}

func (c Container) Capacity() int {
	return len(c.Packets)
}

func (c Container) IsEmpty() bool {
	for _, p := range c.Packets {
		if !p.IsEmpty() {
			return false
		}
	}
	return true
}

func (c Container) IsFull() bool {
	return c.EmptySpace() == 0
}

func (c Container) EmptySpace() (count int) {
	for _, p := range c.Packets {
		if p.IsEmpty() {
			count++
		}
	}
	return
}

func (c Container) FilledAmount() int {
	return c.Capacity() - c.EmptySpace()
}

// TopColor returns the highest filled slot, or Empty if there is none.
func (c Container) TopColor() Packet {
	for i := len(c.Packets) - 1; i >= 0; i-- {
		if !c.Packets[i].IsEmpty() {
			return c.Packets[i]
		}
	}
	return Empty
}

// TopBlockDepth counts the contiguous same-color packets at the top.
func (c Container) TopBlockDepth() int {
	top := c.TopColor()
	if top.IsEmpty() {
		return 0
	}
	depth := 0
	for i := len(c.Packets) - 1; i >= 0; i-- {
		if c.Packets[i].IsEmpty() {
			continue
		}
		if c.Packets[i] != top {
			break
		}
		depth++
	}
	return depth
}

// AddPacket drops a packet into the first empty slot from the bottom.
// Returns false when the container is full.
func (c *Container) AddPacket(p Packet) bool {
	for i := range c.Packets {
		if c.Packets[i].IsEmpty() {
			c.Packets[i] = p
			return true
		}
	}
	return false
}

// PushPacket adds a packet only when it keeps the top block uniform.
func (c *Container) PushPacket(p Packet) bool {
	if c.IsEmpty() || c.TopColor() == p {
		return c.AddPacket(p)
	}
	return false
}

// PopPacket removes and returns the topmost filled packet.
func (c *Container) PopPacket() (Packet, bool) {
	for i := len(c.Packets) - 1; i >= 0; i-- {
		if !c.Packets[i].IsEmpty() {
			p := c.Packets[i]
			c.Packets[i] = Empty
			return p, true
		}
	}
	return Empty, false
}

// Pourable computes the forward pour amount into other: the whole top block,
// capped by the destination's empty space; zero when colors mismatch or
// there is nothing to pour.
func (c Container) Pourable(other *Container) int {
	if c.TopColor() != other.TopColor() && !other.IsEmpty() {
		return 0
	}
	return min(c.TopBlockDepth(), other.EmptySpace())
}

// PourInto transfers the maximal pourable amount into other. Returns false,
// leaving both containers untouched, when that amount is zero.
func (c *Container) PourInto(other *Container) bool {
	amount := c.Pourable(other)
	if amount == 0 {
		return false
	}
	for range amount {
		if p, ok := c.PopPacket(); ok {
			other.PushPacket(p)
		}
	}
	return true
}

// ReversePourable computes how much of the top block may be lifted into
// other by a reverse pour. A reverse pour must leave at least one packet of
// the block behind, unless it would empty the container entirely. The
// destination's top color does not matter.
func (c Container) ReversePourable(other *Container) int {
	depth := c.TopBlockDepth()
	if depth != c.FilledAmount() {
		depth--
	}
	return min(other.EmptySpace(), depth)
}

// ReversePourInto transfers up to amount packets into other's first empty
// slots, ignoring other's top color. The structural inverse of PourInto,
// used for editing and puzzle generation.
func (c *Container) ReversePourInto(other *Container, amount int) bool {
	amount = min(amount, c.ReversePourable(other))
	if amount == 0 {
		return false
	}
	for range amount {
		if p, ok := c.PopPacket(); ok {
			other.AddPacket(p)
		}
	}
	return true
}

// Resize grows by appending empty slots or shrinks by truncating from the
// top. Shrinking below the fill line discards the cut-off packets; editor
// flows rely on that.
func (c *Container) Resize(newCapacity int) {
	if newCapacity > len(c.Packets) {
		for len(c.Packets) < newCapacity {
			c.Packets = append(c.Packets, Empty)
		}
	} else if newCapacity < len(c.Packets) {
		c.Packets = c.Packets[:newCapacity]
	}
}

func (c *Container) ChangeCapacity(delta int) {
	newCapacity := len(c.Packets) + delta
	if newCapacity < 0 {
		newCapacity = 0
	}
	c.Resize(newCapacity)
}

// Compare is a total order over container contents, used to canonicalize
// container order for state equality.
func (c Container) Compare(other Container) int {
	for i := 0; i < len(c.Packets) && i < len(other.Packets); i++ {
		if c.Packets[i] != other.Packets[i] {
			if c.Packets[i] < other.Packets[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(c.Packets) < len(other.Packets):
		return -1
	case len(c.Packets) > len(other.Packets):
		return 1
	}
	return 0
}

func (c Container) Clone() Container {
	packets := make([]Packet, len(c.Packets))
	copy(packets, c.Packets)
	return Container{Packets: packets}
}

// String writes the container bottom-to-top over its logical stack: filled
// packets first, then the empty space. Labels are comma-separated as soon
// as any of them is longer than one letter; a single multi-letter label
// gets a trailing comma so it round-trips as one token.
func (c Container) String() string {
	labels := make([]string, 0, len(c.Packets))
	for _, p := range c.Packets {
		if !p.IsEmpty() {
			labels = append(labels, p.String())
		}
	}
	for range c.EmptySpace() {
		labels = append(labels, ".")
	}
	multi := false
	for _, l := range labels {
		if len(l) > 1 {
			multi = true
			break
		}
	}
	if !multi {
		return strings.Join(labels, "")
	}
	out := strings.Join(labels, ",")
	if len(labels) == 1 {
		out += ","
	}
	return out
}
