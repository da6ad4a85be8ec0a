// visualize.go - Console visualization for debugging self-play games.
package selfplay

import (
	"fmt"
	"strings"

	"github.com/adambyle/goblet/game"
)

// BoardString renders a position as ASCII: per cell the visible piece's
// color letter and size ("w3", "b0"), or "." when empty, plus the turn and
// both reserves.
func BoardString(state *game.GameState) string {
	var sb strings.Builder
	for row := 0; row < game.BoardDim; row++ {
		for col := 0; col < game.BoardDim; col++ {
			cell := &state.Board.Cells[row][col]
			top := cell.Top()
			if top == 0 {
				sb.WriteString(" . ")
				continue
			}
			ch := byte('w')
			if cell.TopColor() == game.Black {
				ch = 'b'
			}
			fmt.Fprintf(&sb, " %c%d", ch, top-1)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "turn: %s  white reserve: %v  black reserve: %v\n",
		state.Turn, state.WhitePieces, state.BlackPieces)
	return sb.String()
}

// PrintBoard writes BoardString to stdout.
func PrintBoard(state *game.GameState) {
	fmt.Print(BoardString(state))
}
