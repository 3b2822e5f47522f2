package bingo

import (
	"strings"
	"time"
)

// NormalizeRoster trims each player name, drops blanks, and validates the
// resulting size. Returns ErrInvalidRoster unless 3 to 5 names remain.
func NormalizeRoster(players []string) ([]string, error) {
	out := make([]string, 0, len(players))
	for _, p := range players {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) < 3 || len(out) > 5 {
		return nil, ErrInvalidRoster
	}
	return out, nil
}

// Start begins the team's timed attempt. Idempotent: a second call returns
// the original start time unchanged.
func (t *Team) Start(now time.Time) time.Time {
	if t.StartTime == nil {
		t.StartTime = &now
	}
	return *t.StartTime
}

// Mark toggles one cell's completion and recomputes whole-card status.
// Completing the 9th cell sets CompletedAt and EndTime to the same instant;
// un-marking a cell of a fully completed card clears both. Returns whether
// the card is now fully completed.
//
// Marks are accepted after EndTime as the original behavior allows; callers
// own any stricter policy.
func (t *Team) Mark(cellID string, now time.Time) (bool, error) {
	if t.StartTime == nil {
		return false, ErrNotStarted
	}

	idx := -1
	for i := range t.Card {
		if t.Card[i].ID == cellID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, ErrNotFound
	}

	cell := &t.Card[idx]
	if cell.Completed {
		cell.Completed = false
		cell.CompletedAt = nil
	} else {
		cell.Completed = true
		cell.CompletedAt = &now
	}

	full := FullCard(t.Card)
	switch {
	case full && t.CompletedAt == nil:
		t.CompletedAt = &now
		t.EndTime = &now
	case !full && t.CompletedAt != nil:
		t.CompletedAt = nil
		t.EndTime = nil
	}
	return full, nil
}

// End stops the attempt without a full card (gave up or timed out).
// Idempotent: a team that already ended or completed keeps its timestamps.
func (t *Team) End(now time.Time) {
	if t.EndTime == nil && t.CompletedAt == nil {
		t.EndTime = &now
	}
}

// ResetProgress clears all completion and timing state while preserving the
// roster, the name, and the card's label assignment.
func (t *Team) ResetProgress() {
	for i := range t.Card {
		t.Card[i].Completed = false
		t.Card[i].CompletedAt = nil
	}
	t.StartTime = nil
	t.EndTime = nil
	t.CompletedAt = nil
}
