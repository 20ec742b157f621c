package nn

import (
	"math/bits"

	"patchwork/game"
)

// FeatureCount is the length of the input vector fed to the value
// network.
const FeatureCount = 13

// Features packs a game state into a fixed vector, every component
// roughly normalized into [0, 1] so no input dominates the first layer.
// The encoding is neutral: player 1's half always comes first.
func Features(gs *game.GameState) []float64 {
	f := make([]float64, 0, FeatureCount)
	for i := range gs.Players {
		p := &gs.Players[i]
		f = append(f,
			float64(p.Position)/game.MaxPosition,
			float64(p.Buttons)/50,
			float64(p.Board.ButtonIncome)/20,
			float64(p.Board.TilesFilled())/game.Tiles,
			float64(game.IncomeTriggersAhead(p.Position))/9,
		)
	}

	current := 0.0
	if !gs.Player1ToMove() {
		current = 1
	}
	pending := 0.0
	if gs.PendingSpecial {
		pending = 1
	}
	f = append(f, current, pending, float64(bits.OnesCount64(gs.SpecialPatches))/5)
	return f
}
