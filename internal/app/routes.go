package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/dmarkov/fluidsort-server/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	puzzle := handlers.NewPuzzleHandler(a.logger, a.db, a.ws, createRand())
	auth := handlers.NewAuth(a.logger, a.db, a.cookies, a.jwt)

	a.router.HandleFunc("POST /puzzle", puzzle.NewPuzzle)
	a.router.HandleFunc("POST /puzzle/import", puzzle.Import)
	a.router.HandleFunc("GET /puzzle/{id}", puzzle.Fetch)
	a.router.HandleFunc("GET /puzzle/{id}/export", puzzle.Export)
	a.router.HandleFunc("GET /puzzle/{id}/solvable", puzzle.Solvable)
	a.router.HandleFunc("POST /puzzle/{id}/move", puzzle.Move)
	a.router.HandleFunc("POST /puzzle/{id}/reverse", puzzle.Reverse)
	a.router.HandleFunc("POST /puzzle/{id}/resize", puzzle.Resize)
	a.router.HandleFunc("POST /puzzle/{id}/forfeit", puzzle.Forfeit)
	a.router.HandleFunc("/puzzle/{id}/connect", puzzle.ConnectWS)

	a.router.HandleFunc("GET /highscores", puzzle.Highscores)

	a.router.HandleFunc("GET /auth/status", auth.Status)
	a.router.HandleFunc("POST /auth/register", auth.Register)
	a.router.HandleFunc("POST /auth/login", auth.Login)
	a.router.HandleFunc("POST /auth/logout", auth.Logout)
}
