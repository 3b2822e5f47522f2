// Package bingo defines the core domain of the scavenger hunt: teams and
// their cards, the attempt lifecycle, line detection, and the leaderboard.
// Everything here is pure logic over in-memory values; persistence and
// transport live in internal/server.
package bingo

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrNameTaken      = errors.New("team name already exists")
	ErrNotStarted     = errors.New("attempt not started")
	ErrAlreadyStarted = errors.New("game already started")
	ErrInvalidRoster  = errors.New("team must have 3 to 5 players")
	ErrSmallVocabulary = errors.New("vocabulary has fewer entries than a card")
)

// Cell is one labeled, independently completable entry of a card.
type Cell struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Team is a registered group with a roster, a card, and attempt timing.
// The card's cell membership is fixed at registration; only completion
// flags and timestamps change afterwards.
type Team struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Players      []string   `json:"players"`
	Card         []Cell     `json:"card"`
	RegisteredAt time.Time  `json:"registeredAt"`
	StartTime    *time.Time `json:"startTime,omitempty"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// GameState is the single event-wide record. StartedAt and Started are only
// meaningful under the global start policy; the per-team policy ignores them.
type GameState struct {
	Duration  time.Duration `json:"duration"`
	Started   bool          `json:"isStarted,omitempty"`
	StartTime *time.Time    `json:"startTime,omitempty"`
}

// DefaultDuration is the fixed time budget for an attempt.
const DefaultDuration = 12 * time.Minute

// State is the derived lifecycle state of a team's attempt.
type State string

const (
	StateRegistered State = "registered"
	StateRunning    State = "running"
	StateCompleted  State = "completed"
	StateEnded      State = "ended"
	StateExpired    State = "expired"
)

// State derives the attempt state at now given the event duration. Expired
// is never persisted; it is computed from startTime so that a stored flag
// cannot drift from the clock.
func (t *Team) State(now time.Time, duration time.Duration) State {
	switch {
	case t.CompletedAt != nil:
		return StateCompleted
	case t.EndTime != nil:
		return StateEnded
	case t.StartTime == nil:
		return StateRegistered
	case now.Sub(*t.StartTime) > duration:
		return StateExpired
	default:
		return StateRunning
	}
}

// WordsFound counts the completed cells of the card.
func (t *Team) WordsFound() int {
	n := 0
	for _, c := range t.Card {
		if c.Completed {
			n++
		}
	}
	return n
}

// Elapsed is the attempt duration so far: (endTime ?? now) - (startTime ?? now).
// Teams that never started yield zero.
func (t *Team) Elapsed(now time.Time) time.Duration {
	start, end := now, now
	if t.StartTime != nil {
		start = *t.StartTime
	}
	if t.EndTime != nil {
		end = *t.EndTime
	}
	return end.Sub(start)
}
