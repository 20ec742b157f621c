package game

// The central time board: 54 spaces, both time tokens start on space 0.
// Crossing a button-income space pays the mover their board income; crossing
// a leather-patch space forces an immediate single-tile placement.
const (
	// MaxPosition is the last space of the time board. Tokens never move
	// past it.
	MaxPosition = 53
	boardSpaces = MaxPosition + 1
)

var buttonIncomeSpaces = [...]int{5, 11, 17, 23, 29, 35, 41, 47, 53}

var specialPatchSpaces = [...]int{26, 32, 38, 44, 50}

// initialSpecialPatches is the bitmask of time-board spaces that still hold
// a leather patch at the start of the game.
func initialSpecialPatches() uint64 {
	var mask uint64
	for _, space := range specialPatchSpaces {
		mask |= 1 << uint(space)
	}
	return mask
}

// buttonIncomeTriggersIn counts income spaces in [from, to], both clamped
// to the board.
func buttonIncomeTriggersIn(from, to int) int {
	count := 0
	for _, space := range buttonIncomeSpaces {
		if space >= from && space <= to {
			count++
		}
	}
	return count
}

// IncomeTriggersAhead counts the button-income spaces a token at position
// has yet to cross. Heuristic evaluators weight board income by it.
func IncomeTriggersAhead(position int) int {
	return buttonIncomeTriggersIn(position+1, MaxPosition)
}

// specialPatchIn returns the first remaining leather-patch space in
// [from, to], or -1. At most one can be crossed by a single move.
func specialPatchIn(remaining uint64, from, to int) int {
	for _, space := range specialPatchSpaces {
		if space >= from && space <= to && remaining&(1<<uint(space)) != 0 {
			return space
		}
	}
	return -1
}
