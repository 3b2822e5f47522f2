package server

import (
	"errors"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bingorally/hunt-api/internal/bingo"
)

// VerifyRequest is the request body for POST /api/admin/verify.
type VerifyRequest struct {
	Password string `json:"password"`
}

type VerifyResponse struct {
	Success bool `json:"success"`
}

// handleAdminVerify checks the shared admin password against the stored
// bcrypt hash. It never distinguishes "wrong password" from "no password
// configured" in the response.
func handleAdminVerify(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Password == "" {
			writeError(w, http.StatusBadRequest, "password is required")
			return
		}

		hash, err := store.AdminPasswordHash(r.Context())
		if errors.Is(err, bingo.ErrNotFound) {
			writeJSON(w, http.StatusOK, VerifyResponse{Success: false})
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		match := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) == nil
		writeJSON(w, http.StatusOK, VerifyResponse{Success: match})
	}
}

type GameStartResponse struct {
	StartTime time.Time `json:"startTime"`
}

// handleGameStart begins the shared clock under the global start policy.
func handleGameStart(store Store, policy StartPolicy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if policy != PolicyGlobal {
			writeError(w, http.StatusConflict, "start policy is per-team")
			return
		}

		now := time.Now()
		state, err := store.UpdateGameState(r.Context(), func(s *bingo.GameState) error {
			if s.Started {
				return bingo.ErrAlreadyStarted
			}
			s.Started = true
			s.StartTime = &now
			return nil
		})
		if errors.Is(err, bingo.ErrAlreadyStarted) {
			writeError(w, http.StatusConflict, "game already started")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, GameStartResponse{StartTime: *state.StartTime})
	}
}

// handleGameReset clears every team's progress and, under the global policy,
// the shared clock. Card label assignments survive; only completion and
// timing state is wiped.
func handleGameReset(store Store, broker *Broker, cache *LeaderboardCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := store.ListTeams(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		for _, team := range teams {
			_, err := store.UpdateTeam(r.Context(), team.ID, func(t *bingo.Team) error {
				t.ResetProgress()
				return nil
			})
			// A team deleted mid-reset is fine; everything else is not.
			if err != nil && !errors.Is(err, bingo.ErrNotFound) {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			broker.Publish(Event{Type: eventTeamReset, TeamID: team.ID})
		}

		if _, err := store.UpdateGameState(r.Context(), func(s *bingo.GameState) error {
			s.Started = false
			s.StartTime = nil
			return nil
		}); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		cache.Invalidate(r.Context())
		writeJSON(w, http.StatusOK, AckResponse{Success: true})
	}
}
