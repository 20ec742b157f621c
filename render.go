package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"patchwork/game"
)

var output = termenv.NewOutput(os.Stdout)

// renderState draws both quilt boards side by side with the token
// positions and button balances underneath.
func renderState(gs *game.GameState) string {
	profile := output.ColorProfile()
	filled := [2]termenv.Style{
		output.String("██").Foreground(profile.Color("4")),
		output.String("██").Foreground(profile.Color("1")),
	}
	empty := output.String("··").Foreground(profile.Color("8"))

	var b strings.Builder
	b.WriteString("  player 1             player 2\n")
	for row := 0; row < game.Rows; row++ {
		for i := range gs.Players {
			board := gs.Players[i].Board
			for col := 0; col < game.Columns; col++ {
				if board.Tiles.Test(row*game.Columns + col) {
					b.WriteString(filled[i].String())
				} else {
					b.WriteString(empty.String())
				}
			}
			if i == 0 {
				b.WriteString("   ")
			}
		}
		b.WriteByte('\n')
	}

	for i := range gs.Players {
		p := &gs.Players[i]
		fmt.Fprintf(&b, "player %d: position %d/%d, %d buttons, income %d\n",
			i+1, p.Position, game.MaxPosition, p.Buttons, p.Board.ButtonIncome)
	}

	head := gs.Market
	if len(head) > 3 {
		head = head[:3]
	}
	fmt.Fprintf(&b, "market: %v (%d left)\n", head, len(gs.Market))
	return b.String()
}
