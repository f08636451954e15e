package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/dmarkov/fluidsort-server/internal/repository"
)

func (h PuzzleHandler) Highscores(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repository.HighscoreFilter{}

	if query.Has("username") {
		username := query.Get("username")
		filter.Username = &username
	}

	if query.Has("containers") {
		containers, errContainers := strconv.Atoi(query.Get("containers"))
		colors, errColors := strconv.Atoi(query.Get("colors"))
		capacity, errCapacity := strconv.Atoi(query.Get("capacity"))
		if errContainers != nil || errColors != nil || errCapacity != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		filter.Shape = &repository.PuzzleShape{
			ContainerCount: containers,
			ColorCount:     colors,
			Capacity:       capacity,
		}
	}

	highscores, err := h.repo.GetHighscores(r.Context(), filter)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch highscores", "error", err)
		return
	}
	if highscores == nil {
		highscores = []repository.Highscore{}
	}

	sendJSONOrLog(w, h.logger, highscores)
}
