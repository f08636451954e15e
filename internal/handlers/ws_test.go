package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkov/fluidsort-server/internal/fluid"
)

func TestExecutePlayCommand(t *testing.T) {
	t.Parallel()

	t.Run("pour", func(t *testing.T) {
		t.Parallel()
		state := fluid.ParseGameState("AAB\nB..")

		res, err := executePlayCommand(state, "p 0 1")
		require.NoError(t, err)
		assert.True(t, res.poured)
		assert.Equal(t, "AA.\nBB.", state.String())
	})

	t.Run("illegal pour", func(t *testing.T) {
		t.Parallel()
		state := fluid.ParseGameState("AAB\nA..")

		_, err := executePlayCommand(state, "p 0 1")
		assert.ErrorIs(t, err, ErrIllegalPour)
	})

	t.Run("reverse pour", func(t *testing.T) {
		t.Parallel()
		state := fluid.ParseGameState("BBB\nA..")

		res, err := executePlayCommand(state, "r 0 1 2")
		require.NoError(t, err)
		assert.False(t, res.poured)
		assert.Equal(t, "B..\nABB", state.String())
	})

	t.Run("verdict", func(t *testing.T) {
		t.Parallel()
		state := fluid.ParseGameState("AAB\nBBA\n...")

		res, err := executePlayCommand(state, "v")
		require.NoError(t, err)
		require.NotNil(t, res.solvable)
		assert.True(t, *res.solvable)
	})

	t.Run("noop get", func(t *testing.T) {
		t.Parallel()
		state := fluid.ParseGameState("AAB\nB..")

		res, err := executePlayCommand(state, "g")
		require.NoError(t, err)
		assert.False(t, res.poured)
		assert.Nil(t, res.solvable)
	})

	t.Run("bad input", func(t *testing.T) {
		t.Parallel()
		state := fluid.ParseGameState("AAB\nB..")

		for _, c := range []string{"x", "p 0", "p 0 nope", "p 0 9", "p 1 1", "r 0 1"} {
			_, err := executePlayCommand(state, c)
			assert.Error(t, err, c)
		}
	})
}
