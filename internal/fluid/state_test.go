package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSolved(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		solved bool
	}{
		{"uniform and empty", "AAA\n...\nBB", true},
		{"mixed", "AAB", false},
		{"underfilled uniform", "AA.\n...", false},
		{"no containers", "", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.solved, ParseGameState(test.text).IsSolved())
		})
	}
}

func TestCanonicalEquality(t *testing.T) {
	t.Parallel()

	a := ParseGameState("AAB\nB..\n...")
	b := ParseGameState("...\nAAB\nB..")
	c := ParseGameState("AAB\nB..\nA..")

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(ParseGameState("AAB\nB..")))
}

func TestColorCounts(t *testing.T) {
	t.Parallel()

	s := ParseGameState("AAB\nBC.\n...")
	assert.Equal(t, map[int]int{0: 2, 1: 2, 2: 1}, s.ColorCounts())
	assert.Equal(t, []int{3, 3, 3}, s.ContainerSizes())
	assert.Equal(t, 4, s.EmptySpace())
}

func TestTextRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []string{
		"AAB\nB..",
		"AAA\n...\nBB",
		"A",
		"AB,CD",
		"AB,",
		"AB,CD,.",
		"ZZ..",
	}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			t.Parallel()
			first := ParseGameState(text)
			second := ParseGameState(first.String())
			require.Equal(t, len(first.Containers), len(second.Containers))
			assert.True(t, first.Equal(second), "round trip of %q gave %q", text, first.String())
		})
	}
}

func TestParseMultiLetterTokens(t *testing.T) {
	t.Parallel()

	s := ParseGameState("AB,CD,")
	require.Len(t, s.Containers, 1)
	require.Equal(t, 2, s.Containers[0].Capacity())
	assert.Equal(t, Packet(27), s.Containers[0].Packets[0])
	assert.Equal(t, Packet(81), s.Containers[0].Packets[1])
}

func TestParseSkipsBlankAndZeroCapacityLines(t *testing.T) {
	t.Parallel()

	s := ParseGameState("AAB\n\n   \nB..\n,\n")
	// "," decodes to a single empty slot, not zero capacity.
	require.Len(t, s.Containers, 3)
	assert.Equal(t, 1, s.Containers[2].Capacity())
}

func TestParseGarbageDegradesToEmpty(t *testing.T) {
	t.Parallel()

	s := ParseGameState("A?B")
	require.Len(t, s.Containers, 1)
	assert.Equal(t, []Packet{0, Empty, 1}, s.Containers[0].Packets)
}

func TestGobRoundTrip(t *testing.T) {
	t.Parallel()

	s := ParseGameState("AAB\nB..\n...")
	buf, err := s.Bytes()
	require.NoError(t, err)
	decoded, err := DecodeGameState(buf)
	require.NoError(t, err)
	assert.True(t, s.Equal(decoded))
}

func TestEditorOperations(t *testing.T) {
	t.Parallel()

	s := NewGameState(3, 3)
	require.True(t, s.AddFluid(0, 4))
	require.True(t, s.AddFluid(0, 4))
	assert.Equal(t, "EE.", s.Containers[0].String())

	s.AddContainer(2)
	require.Len(t, s.Containers, 3)
	assert.Equal(t, []int{2, 3, 3}, s.ContainerSizes())

	require.True(t, s.RemoveFluid(0))
	assert.Equal(t, 1, s.Containers[0].FilledAmount())

	s.RemoveContainer(2)
	assert.Equal(t, []int{3, 3}, s.ContainerSizes())

	s.ChangeCapacity(0, -2)
	assert.Equal(t, 1, s.Containers[0].Capacity())
}

func TestPossibleMoves(t *testing.T) {
	t.Parallel()

	// Whole-top-block transfers only: the BB block does not fit into the
	// single free slot of the second container, so that pair is skipped
	// even though a capacity-limited pour of 1 would be legal.
	s := ParseGameState("ABB\nBB.\n...")
	moves := s.PossibleMoves()
	assert.NotContains(t, moves, Move{From: 0, To: 1, Amount: 1})
	assert.NotContains(t, moves, Move{From: 0, To: 1, Amount: 2})
	assert.Contains(t, moves, Move{From: 0, To: 2, Amount: 2})
	assert.Contains(t, moves, Move{From: 1, To: 2, Amount: 2})
}

func TestPossibleReverseMovesSkipsMatchingTops(t *testing.T) {
	t.Parallel()

	s := ParseGameState("AAB\nB..\n...")
	for _, m := range s.PossibleReverseMoves(false) {
		assert.NotEqual(t,
			s.Containers[m.From].TopColor(),
			s.Containers[m.To].TopColor(),
			"move %+v pairs equal top colors", m,
		)
		assert.Positive(t, m.Amount)
	}
}

func TestPossibleReverseMovesLimitSize(t *testing.T) {
	t.Parallel()

	// BB can drain fully into the empty container, but with limitSize the
	// amount is shaved so generation never empties a container outright.
	s := ParseGameState("BB.\n...")
	unlimited := s.PossibleReverseMoves(false)
	require.Contains(t, unlimited, Move{From: 0, To: 1, Amount: 2})

	limited := s.PossibleReverseMoves(true)
	require.Contains(t, limited, Move{From: 0, To: 1, Amount: 1})
	assert.NotContains(t, limited, Move{From: 0, To: 1, Amount: 2})
}
