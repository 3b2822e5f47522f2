package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bingorally/hunt-api/internal/bingo"
)

// TeamRequest addresses a single team for start/end/delete.
type TeamRequest struct {
	TeamID string `json:"teamId"`
}

// TeamUpdateRequest is the request body for POST /api/team/update.
type TeamUpdateRequest struct {
	TeamID string `json:"teamId"`
	Name   string `json:"name"`
}

type StartResponse struct {
	StartTime time.Time `json:"startTime"`
}

type AckResponse struct {
	Success bool `json:"success"`
}

func handleTeamStart(store Store, broker *Broker, policy StartPolicy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TeamRequest
		if err := readJSON(r, &req); err != nil || req.TeamID == "" {
			writeError(w, http.StatusBadRequest, "teamId is required")
			return
		}

		if policy == PolicyGlobal {
			writeError(w, http.StatusConflict, "start policy is global; teams start together")
			return
		}

		now := time.Now()
		var started time.Time
		team, err := store.UpdateTeam(r.Context(), req.TeamID, func(t *bingo.Team) error {
			started = t.Start(now)
			return nil
		})
		if errors.Is(err, bingo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "team not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if started.Equal(now) {
			broker.Publish(Event{Type: eventTeamStarted, TeamID: team.ID})
		}
		writeJSON(w, http.StatusOK, StartResponse{StartTime: started})
	}
}

func handleTeamEnd(store Store, broker *Broker, cache *LeaderboardCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TeamRequest
		if err := readJSON(r, &req); err != nil || req.TeamID == "" {
			writeError(w, http.StatusBadRequest, "teamId is required")
			return
		}

		now := time.Now()
		team, err := store.UpdateTeam(r.Context(), req.TeamID, func(t *bingo.Team) error {
			t.End(now)
			return nil
		})
		if errors.Is(err, bingo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "team not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		cache.Invalidate(r.Context())
		broker.Publish(Event{Type: eventTeamEnded, TeamID: team.ID})
		writeJSON(w, http.StatusOK, AckResponse{Success: true})
	}
}

func handleTeamUpdate(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TeamUpdateRequest
		if err := readJSON(r, &req); err != nil || req.TeamID == "" {
			writeError(w, http.StatusBadRequest, "teamId is required")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		_, err := store.UpdateTeam(r.Context(), req.TeamID, func(t *bingo.Team) error {
			t.Name = req.Name
			return nil
		})
		switch {
		case errors.Is(err, bingo.ErrNotFound):
			writeError(w, http.StatusNotFound, "team not found")
			return
		case errors.Is(err, bingo.ErrNameTaken):
			writeError(w, http.StatusConflict, "team name already exists")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, AckResponse{Success: true})
	}
}

func handleTeamDelete(store Store, cache *LeaderboardCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TeamRequest
		if err := readJSON(r, &req); err != nil || req.TeamID == "" {
			writeError(w, http.StatusBadRequest, "teamId is required")
			return
		}

		// Deleting an absent team is a no-op, so retries stay safe.
		if err := store.DeleteTeam(r.Context(), req.TeamID); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		cache.Invalidate(r.Context())
		writeJSON(w, http.StatusOK, AckResponse{Success: true})
	}
}
