package game

// Termination is the outcome of a finished game.
type Termination struct {
	// Winner is 0 for player 1 and 1 for player 2. Patchwork has no
	// draws: equal scores go to the player who reached the end first.
	Winner int
	// Score1 and Score2 are the final scores (buttons minus 2 per empty
	// tile, plus the full-board bonus if earned).
	Score1 int
	Score2 int
}

// Score is the score difference from the neutral perspective: positive
// when player 1 won the exchange of points.
func (t Termination) Score() int {
	return t.Score1 - t.Score2
}
