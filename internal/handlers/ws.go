package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmarkov/fluidsort-server/internal/fluid"
	"github.com/dmarkov/fluidsort-server/internal/repository"
)

// Maps known play commands to number of arguments.
var commandNargs = map[string]int{
	"p": 2, // pour <from> <to>
	"r": 3, // reverse pour <from> <to> <amount>
	"v": 0, // solvability verdict
	"g": 0, // get current state
}

func parseIndexes(words []string) ([]int, error) {
	parsed := make([]int, len(words))
	for i, word := range words {
		n, err := strconv.Atoi(word)
		if err != nil {
			return nil, fmt.Errorf("argument %d must be an int", i+1)
		}
		parsed[i] = n
	}
	return parsed, nil
}

type commandResult struct {
	poured   bool
	solvable *bool
}

func executePlayCommand(g *fluid.GameState, c string) (commandResult, error) {
	var res commandResult

	parts := strings.Split(c, " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return res, fmt.Errorf("unknown command")
	}
	if nargs != len(parts)-1 {
		return res, fmt.Errorf("invalid number of arguments")
	}

	switch parts[0] {
	case "g":
		return res, nil
	case "v":
		solvable := g.IsSolvable()
		res.solvable = &solvable
		return res, nil
	case "p":
		args, err := parseIndexes(parts[1:])
		if err != nil {
			return res, err
		}
		from, to := args[0], args[1]
		if !g.ContainerInBounds(from) || !g.ContainerInBounds(to) || from == to {
			return res, fmt.Errorf("invalid container index")
		}
		amount := g.Containers[from].Pourable(&g.Containers[to])
		if amount == 0 {
			return res, ErrIllegalPour
		}
		g.ApplyMove(fluid.Move{From: from, To: to, Amount: amount})
		res.poured = true
		return res, nil
	case "r":
		args, err := parseIndexes(parts[1:])
		if err != nil {
			return res, err
		}
		from, to, amount := args[0], args[1], args[2]
		if !g.ContainerInBounds(from) || !g.ContainerInBounds(to) || from == to {
			return res, fmt.Errorf("invalid container index")
		}
		if !g.ApplyReverseMove(fluid.Move{From: from, To: to, Amount: amount}) {
			return res, ErrIllegalPour
		}
		return res, nil
	}
	return res, fmt.Errorf("invalid command")
}

func (h PuzzleHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, state, ok := h.fetchSession(w, r)
	if !ok {
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}

	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				h.logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		text := strings.TrimSpace(string(message))
		h.logger.Debug("ws command batch", slog.String("text", text))

		moves := session.Moves
		var verdict *bool
		failed := false
		for _, line := range strings.Split(text, "\n") {
			res, err := executePlayCommand(state, line)
			if err != nil {
				h.logger.Error("unable to process command", slog.Any("error", err))
				if err := c.WriteJSON(wrapError(err)); err != nil {
					h.logger.Error("unable to write json", slog.Any("error", err))
				}
				failed = true
				break
			}
			if res.poured {
				moves += 1
			}
			if res.solvable != nil {
				verdict = res.solvable
			}
		}
		if failed {
			continue
		}

		params := repository.UpdatePuzzleSessionParams{Moves: &moves}
		if state.IsSolved() && !session.Solved {
			solved := true
			now := time.Now().UTC()
			params.Solved = &solved
			params.EndedAt = &now
		}

		b, err := state.Bytes()
		if err != nil {
			h.logger.Error("unable to serialize puzzle state", slog.Any("error", err))
			return
		}
		params.State = &b

		session, err = h.repo.UpdatePuzzleSession(
			r.Context(), session.PuzzleSessionId, params,
		)
		if err != nil {
			h.logger.Error("unable to update session in db", slog.Any("error", err))
			return
		}

		reply := struct {
			*PuzzleSessionDTO
			Solvable *bool `json:"solvable,omitempty"`
		}{NewPuzzleSessionDTO(session, state), verdict}

		if err := c.WriteJSON(reply); err != nil {
			h.logger.Error("unable to write json", slog.Any("error", err))
			break
		}
	}
}
