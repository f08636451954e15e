package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func totalPackets(cs ...*Container) int {
	n := 0
	for _, c := range cs {
		n += c.FilledAmount()
	}
	return n
}

func TestPourScenario(t *testing.T) {
	t.Parallel()

	s := ParseGameState("AAB\nB..")
	require.Len(t, s.Containers, 2)

	src, dst := &s.Containers[0], &s.Containers[1]
	assert.Equal(t, 1, src.Pourable(dst))
	assert.True(t, src.PourInto(dst))
	assert.Equal(t, "AA.", src.String())
	assert.Equal(t, "BB.", dst.String())
}

func TestPourConservation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to string
	}{
		{"into empty", "AAB", "..."},
		{"matching top", "BBA", "B.."},
		{"capacity limited", "ABB", "B."},
		{"illegal colors", "AAB", "A.."},
		{"full destination", "AB", "BB"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			from := ParseContainer(test.from)
			to := ParseContainer(test.to)
			before := totalPackets(&from, &to)
			from.PourInto(&to)
			assert.Equal(t, before, totalPackets(&from, &to))
		})
	}
}

func TestPourIllegalIsNoop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to string
	}{
		{"empty source", "...", "A.."},
		{"full destination", "AA", "BB"},
		{"mismatched tops", "AAB", "A.."},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			from := ParseContainer(test.from)
			to := ParseContainer(test.to)
			fromBefore, toBefore := from.String(), to.String()

			assert.Zero(t, from.Pourable(&to))
			assert.False(t, from.PourInto(&to))
			assert.Equal(t, fromBefore, from.String())
			assert.Equal(t, toBefore, to.String())
		})
	}
}

func TestReversePourLeavesRemainder(t *testing.T) {
	t.Parallel()

	from := ParseContainer("ABBB")
	to := ParseContainer("....")

	// Top block depth 3, but one B must stay behind.
	assert.Equal(t, 2, from.ReversePourable(&to))
	require.True(t, from.ReversePourInto(&to, 5))
	assert.Equal(t, NewPacket(1), from.TopColor())
	assert.Equal(t, "AB..", from.String())
	assert.Equal(t, "BB..", to.String())
}

func TestReversePourCanEmptySource(t *testing.T) {
	t.Parallel()

	// A uniform container may be drained entirely.
	from := ParseContainer("BB.")
	to := ParseContainer("A..")

	assert.Equal(t, 2, from.ReversePourable(&to))
	require.True(t, from.ReversePourInto(&to, 2))
	assert.True(t, from.IsEmpty())
	assert.Equal(t, "ABB", to.String())
}

func TestReversePourIgnoresDestinationColor(t *testing.T) {
	t.Parallel()

	from := ParseContainer("AAA")
	to := ParseContainer("B..")

	require.True(t, from.ReversePourInto(&to, 1))
	assert.Equal(t, "BA.", to.String())
}

func TestResize(t *testing.T) {
	t.Parallel()

	c := ParseContainer("AAB.")
	c.ChangeCapacity(2)
	// Shrinking below the fill line discards the top packets.
	assert.Equal(t, 2, c.Capacity())
	assert.Equal(t, "AA", c.String())

	c.ChangeCapacity(3)
	assert.Equal(t, 5, c.Capacity())
	assert.Equal(t, "AA...", c.String())

	c.ChangeCapacity(-10)
	assert.Zero(t, c.Capacity())
}

func TestTopBlockDepth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		repr  string
		depth int
	}{
		{"...", 0},
		{"A..", 1},
		{"AAA", 3},
		{"BAA", 2},
		{"AAB", 1},
	}
	for _, test := range tests {
		c := ParseContainer(test.repr)
		assert.Equal(t, test.depth, c.TopBlockDepth(), test.repr)
	}
}

func TestParsePacket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		token string
		want  Packet
	}{
		{".", Empty},
		{"", Empty},
		{" ", Empty},
		{"A", 0},
		{"Z", 25},
		{"AA", 26},
		{"AB", 27},
		{"CD", 81},
		{"a", 0},
		{"4", Empty},
		{"A1", Empty},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, ParsePacket(test.token), test.token)
	}
}

func TestPacketString(t *testing.T) {
	t.Parallel()

	for _, p := range []Packet{Empty, 0, 25, 26, 27, 81, 700} {
		assert.Equal(t, p, ParsePacket(p.String()), p.String())
	}
}
