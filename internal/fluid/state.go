package fluid

import (
	"bytes"
	"encoding/gob"
	"log/slog"
	"slices"
	"strings"
)

var Log *slog.Logger = slog.Default()

// GameState is an unordered collection of containers. Container order only
// matters for addressing moves by index; equality is order-independent.
type GameState struct {
	Containers []Container
}

func NewGameState(capacities ...int) *GameState {
	s := &GameState{}
	for _, capacity := range capacities {
		s.Containers = append(s.Containers, NewContainer(capacity))
	}
	return s
}

// SolvedGameState lays out one full single-color container per color plus
// the given number of spare empty containers, all of the same capacity.
func SolvedGameState(colors, spares, capacity int) *GameState {
	s := &GameState{}
	for color := range colors {
		c := NewContainer(capacity)
		for range capacity {
			c.AddPacket(NewPacket(color))
		}
		s.Containers = append(s.Containers, c)
	}
	for range spares {
		s.Containers = append(s.Containers, NewContainer(capacity))
	}
	return s
}

// ParseGameState reads the text format, one container per line. Blank lines
// and lines decoding to zero capacity are skipped; garbage never fails, it
// decodes to empty slots.
func ParseGameState(text string) *GameState {
	s := &GameState{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		c := ParseContainer(line)
		if c.Capacity() == 0 {
			continue
		}
		s.Containers = append(s.Containers, c)
	}
	return s
}

func DecodeGameState(buf []byte) (*GameState, error) {
	var state GameState
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&state)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s GameState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s GameState) String() string {
	lines := make([]string, 0, len(s.Containers))
	for _, c := range s.Containers {
		lines = append(lines, c.String())
	}
	return strings.Join(lines, "\n")
}

func (s GameState) Clone() *GameState {
	clone := &GameState{Containers: make([]Container, 0, len(s.Containers))}
	for _, c := range s.Containers {
		clone.Containers = append(clone.Containers, c.Clone())
	}
	return clone
}

// Equal compares states up to container order.
func (s GameState) Equal(other *GameState) bool {
	if len(s.Containers) != len(other.Containers) {
		return false
	}
	a := slices.Clone(s.Containers)
	b := slices.Clone(other.Containers)
	slices.SortFunc(a, Container.Compare)
	slices.SortFunc(b, Container.Compare)
	for i := range a {
		if a[i].Compare(b[i]) != 0 {
			return false
		}
	}
	return true
}

// IsSolved reports whether every container is empty or uniformly filled to
// capacity with a single color.
func (s GameState) IsSolved() bool {
	for _, c := range s.Containers {
		if !c.IsEmpty() && c.TopBlockDepth() != c.Capacity() {
			return false
		}
	}
	return true
}

// ColorCounts maps every color id present to its total packet count.
func (s GameState) ColorCounts() map[int]int {
	counts := make(map[int]int)
	for _, c := range s.Containers {
		for _, p := range c.Packets {
			if id, ok := p.ColorId(); ok {
				counts[id]++
			}
		}
	}
	return counts
}

// ContainerSizes returns all capacities in ascending order.
func (s GameState) ContainerSizes() []int {
	sizes := make([]int, 0, len(s.Containers))
	for _, c := range s.Containers {
		sizes = append(sizes, c.Capacity())
	}
	slices.Sort(sizes)
	return sizes
}

func (s GameState) EmptySpace() (total int) {
	for _, c := range s.Containers {
		total += c.EmptySpace()
	}
	return
}

func (s GameState) ContainerInBounds(index int) bool {
	return 0 <= index && index < len(s.Containers)
}

// Editor operations, driven by the gameplay layer.

func (s *GameState) AddContainer(capacity int) {
	s.Containers = append(s.Containers, NewContainer(capacity))
}

func (s *GameState) RemoveContainer(index int) {
	s.Containers = append(s.Containers[:index], s.Containers[index+1:]...)
}

func (s *GameState) AddFluid(index, colorId int) bool {
	return s.Containers[index].AddPacket(NewPacket(colorId))
}

func (s *GameState) RemoveFluid(index int) bool {
	_, ok := s.Containers[index].PopPacket()
	return ok
}

func (s *GameState) ChangeCapacity(index, delta int) {
	s.Containers[index].ChangeCapacity(delta)
}
