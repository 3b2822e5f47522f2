package bingo

import "testing"

func cardWithCompleted(indices ...int) []Cell {
	card := make([]Cell, CardSize)
	for i := range card {
		card[i] = Cell{ID: string(rune('a' + i)), Label: Vocabulary[i]}
	}
	for _, i := range indices {
		card[i].Completed = true
	}
	return card
}

func TestCompletedLines(t *testing.T) {
	tests := []struct {
		name      string
		completed []int
		want      int
	}{
		{"empty card", nil, 0},
		{"top row", []int{0, 1, 2}, 1},
		{"middle column", []int{1, 4, 7}, 1},
		{"main diagonal", []int{0, 4, 8}, 1},
		{"anti diagonal", []int{2, 4, 6}, 1},
		{"two cells only", []int{0, 1}, 0},
		{"row plus column sharing a corner", []int{0, 1, 2, 3, 6}, 2},
		{"full card", []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompletedLines(cardWithCompleted(tt.completed...))
			if len(got) != tt.want {
				t.Errorf("got %d lines, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFullCard(t *testing.T) {
	if FullCard(cardWithCompleted(0, 1, 2, 3, 4, 5, 6, 7)) {
		t.Error("8 of 9 cells should not be a full card")
	}
	if !FullCard(cardWithCompleted(0, 1, 2, 3, 4, 5, 6, 7, 8)) {
		t.Error("all 9 cells should be a full card")
	}
	if FullCard(nil) {
		t.Error("empty card should not be full")
	}
}
