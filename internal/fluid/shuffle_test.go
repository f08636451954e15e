package fluid

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffleStaysSolvable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                     string
		colors, spares, capacity int
	}{
		{"2 colors", 2, 1, 4},
		{"3 colors", 3, 1, 4},
		{"4 colors tall", 4, 2, 5},
		{"6 colors", 6, 2, 4},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			for range 25 {
				s := SolvedGameState(test.colors, test.spares, test.capacity)
				s.Shuffle(r)
				require.True(t, s.IsSolvable(), "unsolvable shuffle:\n%s", s)
			}
		})
	}
}

func TestShufflePreservesLiquid(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	s := SolvedGameState(3, 1, 4)
	counts := s.ColorCounts()
	sizes := s.ContainerSizes()

	s.Shuffle(r)

	assert.Equal(t, counts, s.ColorCounts())
	assert.Equal(t, sizes, s.ContainerSizes())
}

func TestShuffleScrambles(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	s := SolvedGameState(3, 1, 4)
	applied := s.Shuffle(r)

	assert.Positive(t, applied)
	assert.False(t, s.IsSolved())
}

func TestShuffleStopsWithoutCandidates(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))

	// No spare space anywhere: no reverse move is possible at all.
	s := ParseGameState("AAA\nBBB")
	assert.Zero(t, s.Shuffle(r))
	assert.Equal(t, "AAA\nBBB", s.String())
}
