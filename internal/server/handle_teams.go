package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bingorally/hunt-api/internal/bingo"
)

type TeamListResponse struct {
	Teams []TeamView `json:"teams"`
}

// handleListTeams serves the admin console ordering: completed teams first
// by ascending completion time, the rest in registration order.
func handleListTeams(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, max-age=0")

		teams, err := store.ListTeams(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		state, err := store.GameState(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		now := time.Now()
		views := make([]TeamView, 0, len(teams))
		for _, t := range bingo.AdminOrder(teams) {
			views = append(views, teamView(t, now, state.Duration))
		}
		writeJSON(w, http.StatusOK, TeamListResponse{Teams: views})
	}
}

// SplitView is one per-cell time split in a leaderboard row.
type SplitView struct {
	Label     string `json:"label"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// StandingView is one leaderboard row.
type StandingView struct {
	TeamID       string      `json:"teamId"`
	Name         string      `json:"name"`
	WordsFound   int         `json:"wordsFound"`
	Started      bool        `json:"started"`
	DurationMs   int64       `json:"durationMs"`
	AvgPerWordMs int64       `json:"avgPerWordMs"`
	Splits       []SplitView `json:"splits"`
}

type LeaderboardResponse struct {
	Standings []StandingView `json:"standings"`
}

func handleLeaderboard(store Store, cache *LeaderboardCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, max-age=0")

		if body, ok := cache.Get(r.Context()); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write(body)
			return
		}

		teams, err := store.ListTeams(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := LeaderboardResponse{Standings: []StandingView{}}
		for _, s := range bingo.Rank(teams, time.Now()) {
			view := StandingView{
				TeamID:       s.Team.ID,
				Name:         s.Team.Name,
				WordsFound:   s.WordsFound,
				Started:      s.Started,
				DurationMs:   s.Elapsed.Milliseconds(),
				AvgPerWordMs: s.AvgPerWord.Milliseconds(),
				Splits:       []SplitView{},
			}
			for _, sp := range s.Splits {
				view.Splits = append(view.Splits, SplitView{
					Label:     sp.Label,
					ElapsedMs: sp.Elapsed.Milliseconds(),
				})
			}
			resp.Standings = append(resp.Standings, view)
		}

		body, err := json.Marshal(resp)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		cache.Set(r.Context(), body)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}
