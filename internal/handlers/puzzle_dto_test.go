package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNewPuzzleDTO(t *testing.T) {
	t.Parallel()

	query, err := url.ParseQuery("containers=5&colors=4&capacity=4&extra=1")
	require.NoError(t, err)

	dto, err := ParseNewPuzzleDTO(query)
	require.NoError(t, err)
	assert.Equal(t, NewPuzzleDTO{Containers: 5, Colors: 4, Capacity: 4}, dto)
	assert.NoError(t, dto.Validate())

	_, err = ParseNewPuzzleDTO(url.Values{"containers": {"5"}})
	assert.Error(t, err)
}

func TestNewPuzzleDTOValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dto  NewPuzzleDTO
		ok   bool
	}{
		{"typical", NewPuzzleDTO{Containers: 6, Colors: 4, Capacity: 4}, true},
		{"no spare container", NewPuzzleDTO{Containers: 4, Colors: 4, Capacity: 4}, false},
		{"zero colors", NewPuzzleDTO{Containers: 2, Colors: 0, Capacity: 4}, false},
		{"zero capacity", NewPuzzleDTO{Containers: 5, Colors: 4, Capacity: 0}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			err := test.dto.Validate()
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
