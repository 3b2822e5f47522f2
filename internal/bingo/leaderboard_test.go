package bingo

import (
	"testing"
	"time"
)

// rankedTeam builds a finished-or-partial team with the given number of
// completed cells over a fixed elapsed window.
func rankedTeam(t *testing.T, name string, words int, elapsed time.Duration, now time.Time) Team {
	t.Helper()
	card, err := NewCard(Vocabulary)
	if err != nil {
		t.Fatalf("NewCard: %v", err)
	}
	team := Team{ID: name, Name: name, Card: card}
	if elapsed > 0 {
		start := now.Add(-elapsed)
		end := now
		team.StartTime = &start
		team.EndTime = &end
		for i := 0; i < words; i++ {
			at := start.Add(time.Duration(i+1) * time.Second)
			team.Card[i].Completed = true
			team.Card[i].CompletedAt = &at
		}
	}
	return team
}

func TestRankOrdering(t *testing.T) {
	now := time.Now()
	teams := []Team{
		rankedTeam(t, "zeroes", 0, 0, now),
		rankedTeam(t, "slow-five", 5, 10*time.Minute, now),
		rankedTeam(t, "winner", 9, 11*time.Minute, now),
		rankedTeam(t, "fast-five", 5, 6*time.Minute, now),
	}

	standings := Rank(teams, now)

	wantOrder := []string{"winner", "fast-five", "slow-five", "zeroes"}
	for i, want := range wantOrder {
		if standings[i].Team.Name != want {
			t.Errorf("position %d: got %q, want %q", i, standings[i].Team.Name, want)
		}
	}
}

func TestRankStats(t *testing.T) {
	now := time.Now()
	team := rankedTeam(t, "stats", 4, 8*time.Minute, now)

	standings := Rank([]Team{team}, now)
	s := standings[0]

	if s.WordsFound != 4 {
		t.Errorf("wordsFound = %d, want 4", s.WordsFound)
	}
	if s.Elapsed != 8*time.Minute {
		t.Errorf("elapsed = %v, want 8m", s.Elapsed)
	}
	if s.AvgPerWord != 2*time.Minute {
		t.Errorf("avgPerWord = %v, want 2m", s.AvgPerWord)
	}
	if len(s.Splits) != 4 {
		t.Fatalf("expected 4 splits, got %d", len(s.Splits))
	}
	if s.Splits[0].Elapsed != time.Second {
		t.Errorf("first split = %v, want 1s", s.Splits[0].Elapsed)
	}
}

func TestRankUnstartedTeam(t *testing.T) {
	now := time.Now()
	team := rankedTeam(t, "idle", 0, 0, now)

	s := Rank([]Team{team}, now)[0]
	if s.Started {
		t.Error("expected started=false")
	}
	if s.Elapsed != 0 {
		t.Errorf("elapsed = %v, want 0", s.Elapsed)
	}
	if s.AvgPerWord != 0 {
		t.Errorf("avgPerWord = %v, want 0", s.AvgPerWord)
	}
}

func TestAdminOrder(t *testing.T) {
	now := time.Now()
	early := now.Add(-10 * time.Minute)
	late := now.Add(-2 * time.Minute)

	teams := []Team{
		{ID: "a", Name: "registered-first"},
		{ID: "b", Name: "finished-late", CompletedAt: &late},
		{ID: "c", Name: "registered-second"},
		{ID: "d", Name: "finished-early", CompletedAt: &early},
	}

	ordered := AdminOrder(teams)

	wantOrder := []string{"finished-early", "finished-late", "registered-first", "registered-second"}
	for i, want := range wantOrder {
		if ordered[i].Name != want {
			t.Errorf("position %d: got %q, want %q", i, ordered[i].Name, want)
		}
	}

	// Input slice untouched.
	if teams[0].Name != "registered-first" {
		t.Error("AdminOrder mutated its input")
	}
}
