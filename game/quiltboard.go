package game

import "strings"

const (
	// Rows and Columns are the dimensions of each player's quilt board.
	Rows    = 9
	Columns = 9
	// Tiles is the total number of tiles on a quilt board.
	Tiles = Rows * Columns
	// FullBoardBonus is the button reward for the first player to fill
	// their board completely.
	FullBoardBonus = 7
)

// QuiltBoard is one player's 9x9 patch grid plus the button income the
// placed patches generate at every income trigger.
type QuiltBoard struct {
	Tiles        Mask
	ButtonIncome int
}

func (b QuiltBoard) IsFull() bool {
	return b.Tiles.Count() == Tiles
}

func (b QuiltBoard) TilesFilled() int {
	return b.Tiles.Count()
}

// Score is the board's contribution to the final score: -2 per empty tile.
func (b QuiltBoard) Score() int {
	return -2 * (Tiles - b.Tiles.Count())
}

// Fits reports whether the placement overlaps nothing already on the board.
func (b QuiltBoard) Fits(p Placement) bool {
	return !b.Tiles.Overlaps(p.Mask)
}

// Place covers the placement's tiles and adds the patch's income.
func (b QuiltBoard) Place(p Placement, buttonIncome int) QuiltBoard {
	return QuiltBoard{
		Tiles:        b.Tiles.Union(p.Mask),
		ButtonIncome: b.ButtonIncome + buttonIncome,
	}
}

// PlaceSingle covers one tile (special leather patches).
func (b QuiltBoard) PlaceSingle(row, col int) QuiltBoard {
	return QuiltBoard{
		Tiles:        b.Tiles.Set(row*Columns + col),
		ButtonIncome: b.ButtonIncome,
	}
}

func (b QuiltBoard) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if b.Tiles.Test(row*Columns + col) {
				sb.WriteRune('█')
			} else {
				sb.WriteRune('░')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
