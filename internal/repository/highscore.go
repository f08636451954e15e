package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

type Highscore struct {
	PuzzleSessionId string  `json:"puzzle_session_id"`
	Username        *string `json:"username"`
	ContainerCount  int     `json:"container_count"`
	ColorCount      int     `json:"color_count"`
	Capacity        int     `json:"capacity"`
	Moves           int     `json:"moves"`
	PlaytimeMs      float64 `json:"playtime_ms"`
}

type PuzzleShape struct {
	ContainerCount int
	ColorCount     int
	Capacity       int
}

type HighscoreFilter struct {
	Username *string
	Shape    *PuzzleShape
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.Shape != nil {
		clauses = append(
			clauses,
			"container_count = @containerCount",
			"color_count = @colorCount",
			"capacity = @capacity",
		)
		args["containerCount"] = f.Shape.ContainerCount
		args["colorCount"] = f.Shape.ColorCount
		args["capacity"] = f.Shape.Capacity
	}
	return strings.Join(clauses, " AND "), args
}

// Fewest moves wins; playtime breaks ties.
func (q Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		puzzle_session_id::text,
		username,
		container_count,
		color_count,
		capacity,
		moves,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 playtime_ms
	FROM puzzle_session
		LEFT OUTER JOIN player using (player_id)
	WHERE
		solved = true
		AND ended_at IS NOT NULL
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY moves, playtime_ms;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
