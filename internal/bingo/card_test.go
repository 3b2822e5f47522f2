package bingo

import "testing"

func TestNewCard(t *testing.T) {
	card, err := NewCard(Vocabulary)
	if err != nil {
		t.Fatalf("NewCard: %v", err)
	}
	if len(card) != CardSize {
		t.Fatalf("expected %d cells, got %d", CardSize, len(card))
	}

	labels := make(map[string]bool)
	ids := make(map[string]bool)
	vocab := make(map[string]bool)
	for _, w := range Vocabulary {
		vocab[w] = true
	}

	for _, c := range card {
		if c.ID == "" {
			t.Error("cell has empty id")
		}
		if ids[c.ID] {
			t.Errorf("duplicate cell id %q", c.ID)
		}
		ids[c.ID] = true

		if !vocab[c.Label] {
			t.Errorf("label %q not in vocabulary", c.Label)
		}
		if labels[c.Label] {
			t.Errorf("duplicate label %q", c.Label)
		}
		labels[c.Label] = true

		if c.Completed || c.CompletedAt != nil {
			t.Errorf("cell %q not fresh: completed=%v completedAt=%v", c.Label, c.Completed, c.CompletedAt)
		}
	}
}

func TestNewCardSmallVocabulary(t *testing.T) {
	_, err := NewCard([]string{"Stack", "Queue", "Graph"})
	if err != ErrSmallVocabulary {
		t.Fatalf("expected ErrSmallVocabulary, got %v", err)
	}
}

func TestNewCardVaries(t *testing.T) {
	// Two draws agreeing on all 9 labels in order is astronomically unlikely
	// with a 50-word vocabulary.
	a, _ := NewCard(Vocabulary)
	b, _ := NewCard(Vocabulary)

	same := true
	for i := range a {
		if a[i].Label != b[i].Label {
			same = false
			break
		}
	}
	if same {
		t.Error("two generated cards have identical label order")
	}
}
