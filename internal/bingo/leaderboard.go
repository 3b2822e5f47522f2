package bingo

import (
	"sort"
	"time"
)

// CellSplit is the per-cell elapsed time since the attempt started, for the
// leaderboard detail breakdown.
type CellSplit struct {
	Label   string        `json:"label"`
	Elapsed time.Duration `json:"elapsed"`
}

// Standing is one leaderboard row with its derived stats.
type Standing struct {
	Team       Team          `json:"team"`
	WordsFound int           `json:"wordsFound"`
	Started    bool          `json:"started"`
	Elapsed    time.Duration `json:"elapsed"`
	AvgPerWord time.Duration `json:"avgPerWord"`
	Splits     []CellSplit   `json:"splits"`
}

// Rank orders a snapshot of teams for the leaderboard: descending by words
// found, ties broken by ascending elapsed time. Teams that never started
// carry a degenerate zero elapsed and sort on it as-is.
func Rank(teams []Team, now time.Time) []Standing {
	standings := make([]Standing, len(teams))
	for i, t := range teams {
		s := Standing{
			Team:       t,
			WordsFound: t.WordsFound(),
			Started:    t.StartTime != nil,
			Elapsed:    t.Elapsed(now),
		}
		if s.WordsFound > 0 {
			s.AvgPerWord = s.Elapsed / time.Duration(s.WordsFound)
		}
		if t.StartTime != nil {
			for _, c := range t.Card {
				if c.Completed && c.CompletedAt != nil {
					s.Splits = append(s.Splits, CellSplit{
						Label:   c.Label,
						Elapsed: c.CompletedAt.Sub(*t.StartTime),
					})
				}
			}
		}
		standings[i] = s
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].WordsFound != standings[j].WordsFound {
			return standings[i].WordsFound > standings[j].WordsFound
		}
		return standings[i].Elapsed < standings[j].Elapsed
	})
	return standings
}

// AdminOrder sorts teams for the admin listing: completed teams first by
// ascending completion time, everything else in stored order. This is a
// distinct view from Rank.
func AdminOrder(teams []Team) []Team {
	out := make([]Team, len(teams))
	copy(out, teams)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CompletedAt, out[j].CompletedAt
		switch {
		case a != nil && b != nil:
			return a.Before(*b)
		case a != nil:
			return true
		default:
			return false
		}
	})
	return out
}
