package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bingorally/hunt-api/internal/bingo"
)

// RegisterRequest is the request body for POST /api/register.
type RegisterRequest struct {
	Name    string   `json:"name"`
	Players []string `json:"players"`
}

type RegisterResponse struct {
	TeamID string `json:"teamId"`
}

func handleRegister(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "team name is required")
			return
		}

		players, err := bingo.NormalizeRoster(req.Players)
		if errors.Is(err, bingo.ErrInvalidRoster) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		card, err := bingo.NewCard(bingo.Vocabulary)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		team := bingo.Team{
			ID:           uuid.NewString(),
			Name:         req.Name,
			Players:      players,
			Card:         card,
			RegisteredAt: time.Now(),
		}

		err = store.CreateTeam(r.Context(), team)
		if errors.Is(err, bingo.ErrNameTaken) {
			writeError(w, http.StatusConflict, "team name already exists")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{TeamID: team.ID})
	}
}
