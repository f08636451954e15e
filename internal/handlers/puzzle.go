package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmarkov/fluidsort-server/internal/config"
	"github.com/dmarkov/fluidsort-server/internal/fluid"
	"github.com/dmarkov/fluidsort-server/internal/middleware"
	"github.com/dmarkov/fluidsort-server/internal/repository"
)

type PuzzleHandler struct {
	logger *slog.Logger
	repo   *repository.Queries
	ws     *config.WebSocket
	rnd    *rand.Rand
}

func NewPuzzleHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *PuzzleHandler {
	return &PuzzleHandler{
		logger: logger,
		repo:   repository.New(db),
		ws:     ws,
		rnd:    rnd,
	}
}

var ErrIllegalPour = fmt.Errorf("illegal pour")

func playerId(r *http.Request) *int64 {
	claims, ok := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if !ok {
		return nil
	}
	return &claims.PlayerId
}

func maxContainerSize(state *fluid.GameState) int {
	sizes := state.ContainerSizes()
	if len(sizes) == 0 {
		return 0
	}
	return sizes[len(sizes)-1]
}

func (h PuzzleHandler) createSession(
	w http.ResponseWriter, r *http.Request, state *fluid.GameState,
) {
	session, err := h.repo.CreatePuzzleSession(
		r.Context(), state, repository.CreatePuzzleSessionParams{
			PlayerId:       playerId(r),
			ContainerCount: len(state.Containers),
			ColorCount:     len(state.ColorCounts()),
			Capacity:       maxContainerSize(state),
		},
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to create puzzle session", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewPuzzleSessionDTO(session, state))
}

func (h PuzzleHandler) NewPuzzle(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewPuzzleDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}
	if err := dto.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	state := fluid.SolvedGameState(dto.Colors, dto.Containers-dto.Colors, dto.Capacity)
	state.Shuffle(h.rnd)

	h.createSession(w, r, state)
}

func (h PuzzleHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	state := fluid.ParseGameState(string(body))
	if len(state.Containers) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(fmt.Errorf("no containers in puzzle text")))
		return
	}

	h.createSession(w, r, state)
}

// fetchSession loads a session and its decoded state, writing the error
// response itself when something goes wrong.
func (h PuzzleHandler) fetchSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.PuzzleSession, *fluid.GameState, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}

	session, err := h.repo.FetchPuzzleSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch session from db", "error", err)
		return nil, nil, false
	}

	state, err := fluid.DecodeGameState(session.State)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("db returned invalid puzzle_session.state", "error", err)
		return nil, nil, false
	}

	return session, state, true
}

func (h PuzzleHandler) saveAndReply(
	w http.ResponseWriter, r *http.Request,
	session *repository.PuzzleSession, state *fluid.GameState,
	params repository.UpdatePuzzleSessionParams,
) {
	b, err := state.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to serialize puzzle state", "error", err)
		return
	}
	params.State = &b

	updated, err := h.repo.UpdatePuzzleSession(
		r.Context(), session.PuzzleSessionId, params,
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to update session in db", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, NewPuzzleSessionDTO(updated, state))
}

func (h PuzzleHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, state, ok := h.fetchSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, h.logger, NewPuzzleSessionDTO(session, state))
}

func (h PuzzleHandler) Export(w http.ResponseWriter, r *http.Request) {
	_, state, ok := h.fetchSession(w, r)
	if !ok {
		return
	}
	w.Header().Add("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, state.String())
}

func (h PuzzleHandler) Solvable(w http.ResponseWriter, r *http.Request) {
	_, state, ok := h.fetchSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, h.logger, map[string]bool{
		"solvable": state.IsSolvable(),
	})
}

func (h PuzzleHandler) Move(w http.ResponseWriter, r *http.Request) {
	session, state, ok := h.fetchSession(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	from, errFrom := strconv.Atoi(query.Get("from"))
	to, errTo := strconv.Atoi(query.Get("to"))
	if errFrom != nil || errTo != nil ||
		!state.ContainerInBounds(from) || !state.ContainerInBounds(to) || from == to {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	amount := state.Containers[from].Pourable(&state.Containers[to])
	if amount == 0 {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(ErrIllegalPour))
		return
	}

	state.ApplyMove(fluid.Move{From: from, To: to, Amount: amount})

	moves := session.Moves + 1
	params := repository.UpdatePuzzleSessionParams{Moves: &moves}
	if state.IsSolved() {
		solved := true
		now := time.Now().UTC()
		params.Solved = &solved
		params.EndedAt = &now
	}

	h.saveAndReply(w, r, session, state, params)
}

func (h PuzzleHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	session, state, ok := h.fetchSession(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	from, errFrom := strconv.Atoi(query.Get("from"))
	to, errTo := strconv.Atoi(query.Get("to"))
	amount, errAmount := strconv.Atoi(query.Get("amount"))
	if errFrom != nil || errTo != nil || errAmount != nil ||
		!state.ContainerInBounds(from) || !state.ContainerInBounds(to) || from == to {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if !state.ApplyReverseMove(fluid.Move{From: from, To: to, Amount: amount}) {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(ErrIllegalPour))
		return
	}

	h.saveAndReply(w, r, session, state, repository.UpdatePuzzleSessionParams{})
}

func (h PuzzleHandler) Resize(w http.ResponseWriter, r *http.Request) {
	session, state, ok := h.fetchSession(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	container, errContainer := strconv.Atoi(query.Get("container"))
	delta, errDelta := strconv.Atoi(query.Get("delta"))
	if errContainer != nil || errDelta != nil || !state.ContainerInBounds(container) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	state.ChangeCapacity(container, delta)

	capacity := maxContainerSize(state)
	h.saveAndReply(w, r, session, state, repository.UpdatePuzzleSessionParams{
		Capacity: &capacity,
	})
}

func (h PuzzleHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, state, ok := h.fetchSession(w, r)
	if !ok {
		return
	}

	params := repository.UpdatePuzzleSessionParams{}
	if !session.EndedAt.Valid {
		now := time.Now().UTC()
		params.EndedAt = &now
	}

	h.saveAndReply(w, r, session, state, params)
}
