package handlers

import (
	"fmt"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/dmarkov/fluidsort-server/internal/fluid"
	"github.com/dmarkov/fluidsort-server/internal/repository"
)

type NewPuzzleDTO struct {
	Containers int `schema:"containers,required"`
	Colors     int `schema:"colors,required"`
	Capacity   int `schema:"capacity,required"`
}

func ParseNewPuzzleDTO(src map[string][]string) (NewPuzzleDTO, error) {
	var dto NewPuzzleDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

func (dto NewPuzzleDTO) Validate() error {
	if dto.Colors < 1 {
		return fmt.Errorf("colors must be positive")
	}
	if dto.Capacity < 1 {
		return fmt.Errorf("capacity must be positive")
	}
	// At least one spare container, or the shuffled puzzle has no room
	// to maneuver.
	if dto.Containers <= dto.Colors {
		return fmt.Errorf("containers must exceed colors")
	}
	return nil
}

type PuzzleSessionDTO struct {
	PuzzleSessionId string `json:"puzzle_session_id"`
	State           string `json:"state"`
	ContainerCount  int    `json:"container_count"`
	ColorCount      int    `json:"color_count"`
	Capacity        int    `json:"capacity"`
	Moves           int    `json:"moves"`
	Solved          bool   `json:"solved"`
	StartedAt       int64  `json:"started_at"`
	EndedAt         *int64 `json:"ended_at,omitempty"`
}

func NewPuzzleSessionDTO(
	session *repository.PuzzleSession, state *fluid.GameState,
) *PuzzleSessionDTO {
	var endedAt *int64
	if session.EndedAt.Valid {
		e := session.EndedAt.Time.UnixMilli()
		endedAt = &e
	}
	return &PuzzleSessionDTO{
		PuzzleSessionId: strconv.FormatInt(session.PuzzleSessionId, 10),
		State:           state.String(),
		ContainerCount:  session.ContainerCount,
		ColorCount:      session.ColorCount,
		Capacity:        session.Capacity,
		Moves:           session.Moves,
		Solved:          session.Solved,
		StartedAt:       session.StartedAt.Time.UnixMilli(),
		EndedAt:         endedAt,
	}
}
