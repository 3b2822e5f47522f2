package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, opts Options) {
	broker := NewBroker()
	cache := NewLeaderboardCache(opts.Redis, opts.CacheTTL)
	store := opts.Store

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Bingo Hunt API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, store, opts.Redis))

	// Player-facing routes — registration, card, polling reads.
	r.Post("/api/register", handleRegister(store))
	r.Get("/api/game/state", handleGameState(store, opts.Policy))
	r.Get("/api/game/events", handleEvents(store, broker))
	r.Get("/api/leaderboard", handleLeaderboard(store, cache))
	r.Post("/api/team/start", handleTeamStart(store, broker, opts.Policy))
	r.Post("/api/card/mark", handleMarkCell(store, broker, cache, opts.Policy))
	r.Post("/api/team/end", handleTeamEnd(store, broker, cache))

	// Admin console routes — gated client-side by the shared password.
	r.Post("/api/admin/verify", handleAdminVerify(store))
	r.Get("/api/teams", handleListTeams(store))
	r.Post("/api/team/update", handleTeamUpdate(store))
	r.Post("/api/team/delete", handleTeamDelete(store, cache))
	r.Post("/api/admin/game/start", handleGameStart(store, opts.Policy))
	r.Post("/api/admin/game/reset", handleGameReset(store, broker, cache))

	if opts.SPADir != "" {
		if info, err := os.Stat(opts.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", opts.SPADir)
			r.NotFound(handleSPA(opts.SPADir))
		}
	}
}
