package search

import (
	"github.com/adambyle/goblet/game"
	"github.com/adambyle/goblet/rules"
)

// Cells on either diagonal sit on three potential winning lines instead of
// two, so their visible pieces weigh more.
const (
	diagonalWeight = 3
	edgeWeight     = 2
)

// Evaluate scores a position without searching.
//
// Only the side that just moved can have completed a line, so the win check
// targets Turn.Other(). This relies on the invariant that the turn flips as
// part of move application, before the resulting position is evaluated;
// both rules.ApplyMove and rules.Branch maintain it.
func Evaluate(state *game.GameState) Score {
	justMoved := state.Turn.Other()
	if rules.HasWon(state, justMoved) {
		return WinFor(justMoved)
	}

	var sum int32
	for row := 0; row < game.BoardDim; row++ {
		for col := 0; col < game.BoardDim; col++ {
			color := state.Board.Cells[row][col].TopColor()
			if color == game.Empty {
				continue
			}
			weight := int32(edgeWeight)
			if row == col || row == game.BoardDim-col-1 {
				weight = diagonalWeight
			}
			if color == game.White {
				sum += weight
			} else {
				sum -= weight
			}
		}
	}
	return Balanced(sum)
}
