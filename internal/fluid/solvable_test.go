package fluid

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSolvableFastPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		solvable bool
	}{
		{"already solved", "AAA\n...\nBB", true},
		{"matching sizes", "AAB\nBBA\n...", true},
		{"single mixed container", "AAABB", false},
		{"empty space unreachable", "AAB\nB.", false},
		{"uniform capacity", "ABC\nBCA\nCAB\n...", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.solvable, ParseGameState(test.text).IsSolvable())
		})
	}
}

func TestIsSolvableExact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		solvable bool
	}{
		// Both colors need 3 packets across capacities 3, 2 and 1; one
		// color takes the 3, the other 2+1.
		{"split color", "AAB\nBA\nB", true},
		// Both colors need 3+3 but only one pair of capacity-3 containers
		// exists; the forced commitment exhausts the pool.
		{"forced conflict", "AABB.\nABAB\nAB.\nBA.", false},
		// A single color may span several containers, leaving the rest to
		// the empty group.
		{"color spans containers", "AA..\nAA.\nAA.", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.solvable, ParseGameState(test.text).IsSolvable())
		})
	}
}

// partitionExists is the reference oracle: assign every container to one
// color's group or the leftover group and check each group's capacities sum
// to that color's packet count.
func partitionExists(s *GameState) bool {
	if s.IsSolved() {
		return true
	}
	counts := s.ColorCounts()
	colors := make([]int, 0, len(counts))
	for id := range counts {
		colors = append(colors, id)
	}

	var assign func(idx int, remaining map[int]int) bool
	assign = func(idx int, remaining map[int]int) bool {
		if idx == len(s.Containers) {
			for _, left := range remaining {
				if left != 0 {
					return false
				}
			}
			return true
		}
		capacity := s.Containers[idx].Capacity()
		for _, id := range colors {
			if remaining[id] >= capacity {
				remaining[id] -= capacity
				if assign(idx+1, remaining) {
					return true
				}
				remaining[id] += capacity
			}
		}
		return assign(idx+1, remaining) // leftover group
	}

	remaining := make(map[int]int, len(counts))
	for id, n := range counts {
		remaining[id] = n
	}
	return assign(0, remaining)
}

func randomState(r *rand.Rand) *GameState {
	s := &GameState{}
	containers := 2 + r.IntN(5)
	colors := 1 + r.IntN(4)
	for range containers {
		c := NewContainer(1 + r.IntN(4))
		for range r.IntN(c.Capacity() + 1) {
			c.AddPacket(NewPacket(r.IntN(colors)))
		}
		s.Containers = append(s.Containers, c)
	}
	return s
}

func TestOracleAgreesWithBruteForce(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		s := randomState(r)
		want := partitionExists(s)
		got := s.IsSolvable()
		if got != want {
			t.Fatalf(
				"oracle disagrees with brute force on\n%s\ngot %v, want %v",
				s, got, want,
			)
		}
	}
}

func TestIsSolvableDoesNotMutate(t *testing.T) {
	t.Parallel()

	s := ParseGameState("AABA\nBA.\n..")
	before := s.String()
	s.IsSolvable()
	require.Equal(t, before, s.String())
}
