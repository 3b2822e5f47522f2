package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/bingorally/hunt-api/internal/bingo"
)

// MarkRequest is the request body for POST /api/card/mark.
type MarkRequest struct {
	TeamID string `json:"teamId"`
	CellID string `json:"cellId"`
}

type MarkResponse struct {
	Card           []bingo.Cell `json:"card"`
	Completed      bool         `json:"completed"`
	CompletedLines [][3]int     `json:"completedLines"`
}

// handleMarkCell toggles one cell inside the store's atomic per-team update,
// so concurrent marks on different cells of the same team both land. Marks
// after an ended attempt are accepted, matching the event's observed rules.
func handleMarkCell(store Store, broker *Broker, cache *LeaderboardCache, policy StartPolicy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MarkRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.TeamID == "" || req.CellID == "" {
			writeError(w, http.StatusBadRequest, "teamId and cellId are required")
			return
		}

		var globalStart *time.Time
		if policy == PolicyGlobal {
			state, err := store.GameState(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if !state.Started {
				writeError(w, http.StatusConflict, "game not started")
				return
			}
			globalStart = state.StartTime
		}

		now := time.Now()
		var (
			fullyCompleted bool
			marked         bingo.Cell
			teamFound      bool
		)

		team, err := store.UpdateTeam(r.Context(), req.TeamID, func(t *bingo.Team) error {
			teamFound = true
			// Under the global policy a team's clock starts at the shared
			// start rather than by an explicit per-team call.
			if t.StartTime == nil && globalStart != nil {
				t.StartTime = globalStart
			}
			var err error
			fullyCompleted, err = t.Mark(req.CellID, now)
			if err != nil {
				return err
			}
			for _, c := range t.Card {
				if c.ID == req.CellID {
					marked = c
					break
				}
			}
			return nil
		})

		switch {
		case errors.Is(err, bingo.ErrNotFound) && !teamFound:
			writeError(w, http.StatusNotFound, "team not found")
			return
		case errors.Is(err, bingo.ErrNotFound):
			writeError(w, http.StatusNotFound, "cell not found")
			return
		case errors.Is(err, bingo.ErrNotStarted):
			writeError(w, http.StatusConflict, "attempt not started")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		cache.Invalidate(r.Context())

		broker.Publish(Event{
			Type:      eventCellMarked,
			TeamID:    team.ID,
			CellID:    marked.ID,
			Label:     marked.Label,
			Completed: marked.Completed,
		})
		if fullyCompleted {
			broker.Publish(Event{Type: eventTeamCompleted, TeamID: team.ID})
		}

		lines := bingo.CompletedLines(team.Card)
		if lines == nil {
			lines = [][3]int{}
		}
		writeJSON(w, http.StatusOK, MarkResponse{
			Card:           team.Card,
			Completed:      fullyCompleted,
			CompletedLines: lines,
		})
	}
}
