package bingo

// Lines are the 8 winning index triples over the card's fixed positional
// order: 3 rows, 3 columns, 2 diagonals.
var Lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// CompletedLines returns the triples whose three cells are all completed.
func CompletedLines(card []Cell) [][3]int {
	if len(card) != CardSize {
		return nil
	}
	var done [][3]int
	for _, line := range Lines {
		if card[line[0]].Completed && card[line[1]].Completed && card[line[2]].Completed {
			done = append(done, line)
		}
	}
	return done
}

// FullCard reports whether every cell of the card is completed.
func FullCard(card []Cell) bool {
	for _, c := range card {
		if !c.Completed {
			return false
		}
	}
	return len(card) == CardSize
}
