package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/dmarkov/fluidsort-server/internal/fluid"
)

type PuzzleSession struct {
	PuzzleSessionId int64
	PlayerId        *int64
	ContainerCount  int
	ColorCount      int
	Capacity        int
	Moves           int
	Solved          bool
	StartedAt       pgtype.Timestamptz
	EndedAt         pgtype.Timestamptz
	State           []byte
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

type CreatePuzzleSessionParams struct {
	PlayerId       *int64
	ContainerCount int
	ColorCount     int
	Capacity       int
}

func (q Queries) CreatePuzzleSession(
	ctx context.Context, state *fluid.GameState, params CreatePuzzleSessionParams,
) (*PuzzleSession, error) {
	buf, err := state.Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"player_id":       params.PlayerId,
		"container_count": params.ContainerCount,
		"color_count":     params.ColorCount,
		"capacity":        params.Capacity,
		"solved":          state.IsSolved(),
		"state":           buf,
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO puzzle_session (
			player_id, container_count, color_count, capacity, solved, state
		)
		VALUES (
			@player_id, @container_count, @color_count, @capacity, @solved, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[PuzzleSession],
	)
}

func (q Queries) FetchPuzzleSession(
	ctx context.Context, puzzleSessionId int64,
) (*PuzzleSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM puzzle_session WHERE puzzle_session_id = $1",
		puzzleSessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[PuzzleSession])
}

type UpdatePuzzleSessionParams struct {
	Moves          *int
	Solved         *bool
	ContainerCount *int
	Capacity       *int
	EndedAt        *time.Time
	State          *[]byte
}

func (p UpdatePuzzleSessionParams) SetClause() (string, map[string]any) {
	parts := []string{"updated_at = now()"}
	args := make(map[string]any)

	if p.Moves != nil {
		parts = append(parts, "moves = @moves")
		args["moves"] = *p.Moves
	}
	if p.Solved != nil {
		parts = append(parts, "solved = @solved")
		args["solved"] = *p.Solved
	}
	if p.ContainerCount != nil {
		parts = append(parts, "container_count = @container_count")
		args["container_count"] = *p.ContainerCount
	}
	if p.Capacity != nil {
		parts = append(parts, "capacity = @capacity")
		args["capacity"] = *p.Capacity
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}

	return strings.Join(parts, ", "), args
}

func (q Queries) UpdatePuzzleSession(
	ctx context.Context, puzzleSessionId int64, params UpdatePuzzleSessionParams,
) (*PuzzleSession, error) {
	setClause, args := params.SetClause()
	args["puzzle_session_id"] = puzzleSessionId
	rows, _ := q.db.Query(
		ctx,
		"UPDATE puzzle_session SET "+setClause+
			" WHERE puzzle_session_id = @puzzle_session_id RETURNING *",
		pgx.NamedArgs(args),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[PuzzleSession])
}
