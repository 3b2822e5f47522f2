package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/bingorally/hunt-api/internal/bingo"
)

// GameInfo is the event-wide portion of the game state response.
type GameInfo struct {
	DurationMs  int64      `json:"durationMs"`
	StartPolicy string     `json:"startPolicy"`
	IsStarted   bool       `json:"isStarted,omitempty"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
}

// TeamView is a team snapshot enriched with derived state: lifecycle phase
// and completed lines, so clients need not recompute them.
type TeamView struct {
	bingo.Team
	State          bingo.State `json:"state"`
	WordsFound     int         `json:"wordsFound"`
	CompletedLines [][3]int    `json:"completedLines"`
}

type GameStateResponse struct {
	Game GameInfo  `json:"game"`
	Team *TeamView `json:"team"`
}

func teamView(t bingo.Team, now time.Time, duration time.Duration) TeamView {
	lines := bingo.CompletedLines(t.Card)
	if lines == nil {
		lines = [][3]int{}
	}
	return TeamView{
		Team:           t,
		State:          t.State(now, duration),
		WordsFound:     t.WordsFound(),
		CompletedLines: lines,
	}
}

func handleGameState(store Store, policy StartPolicy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Clients poll this endpoint every few seconds; never cache.
		w.Header().Set("Cache-Control", "no-store, max-age=0")

		state, err := store.GameState(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := GameStateResponse{
			Game: GameInfo{
				DurationMs:  state.Duration.Milliseconds(),
				StartPolicy: string(policy),
			},
		}
		if policy == PolicyGlobal {
			resp.Game.IsStarted = state.Started
			resp.Game.StartedAt = state.StartTime
		}

		if teamID := r.URL.Query().Get("teamId"); teamID != "" {
			team, err := store.GetTeam(r.Context(), teamID)
			if err != nil && !errors.Is(err, bingo.ErrNotFound) {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if err == nil {
				v := teamView(team, time.Now(), state.Duration)
				resp.Team = &v
			}
			// Unknown teamId mirrors the listing contract: state without a
			// team snapshot, not an error.
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
