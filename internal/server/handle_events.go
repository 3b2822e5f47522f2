package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bingorally/hunt-api/internal/bingo"
)

// handleEvents streams a team's mark/completion events over SSE. Polling
// remains the source of truth; this is a latency optimization for the card
// view.
func handleEvents(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.URL.Query().Get("teamId")
		if teamID == "" {
			writeError(w, http.StatusBadRequest, "teamId query parameter required")
			return
		}

		if _, err := store.GetTeam(r.Context(), teamID); err != nil {
			if errors.Is(err, bingo.ErrNotFound) {
				writeError(w, http.StatusNotFound, "team not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		flusher.Flush()

		ch := broker.Subscribe(teamID)
		defer broker.Unsubscribe(teamID, ch)

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data := <-ch:
				fmt.Fprintf(w, "event: game\ndata: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
