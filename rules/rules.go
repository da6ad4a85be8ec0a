// Package rules implements move legality for Goblet: full legal-move
// enumeration with resulting child positions, the single in-place move
// application used by drivers, and win detection.
package rules

import (
	"github.com/adambyle/goblet/game"
)

// Child pairs a legal move with the position it leads to. The child
// position already has the turn flipped to the opponent.
type Child struct {
	Move  game.GameMove
	State *game.GameState
}

// ApplyMove mutates state in place: it applies mv for the side to move and
// flips the turn. This is the driver-side entry point; the search tree only
// ever works on the fresh copies produced by Branch.
//
// mv must be legal for state (a move produced by Branch from this exact
// position). Passing anything else is a programming error, not a
// recoverable condition.
func ApplyMove(state *game.GameState, mv game.GameMove) {
	switch mv.Kind {
	case game.MovePlace:
		state.Board.Cells[mv.Dest.Row][mv.Dest.Col].Pieces[mv.Size] = state.Turn
		state.Reserve(state.Turn)[mv.Size]--
	case game.MoveLift:
		top := state.Board.Cells[mv.Source.Row][mv.Source.Col].Top() - 1
		state.Board.Cells[mv.Dest.Row][mv.Dest.Col].Pieces[top] =
			state.Board.Cells[mv.Source.Row][mv.Source.Col].Pieces[top]
		state.Board.Cells[mv.Source.Row][mv.Source.Col].Pieces[top] = game.Empty
	}
	state.Turn = state.Turn.Other()
}

// Branch returns every legal move for the side to move, paired with the
// resulting position.
//
// The order is fixed and must stay reproducible: destinations row-major;
// per destination, placements in ascending size, then lifts in row-major
// source order. Tests and deterministic self-play depend on it.
func Branch(state *game.GameState) []Child {
	reserve := state.Reserve(state.Turn)

	// Compute every stack height once up front.
	var tops [game.BoardDim][game.BoardDim]int
	for row := 0; row < game.BoardDim; row++ {
		for col := 0; col < game.BoardDim; col++ {
			tops[row][col] = state.Board.Cells[row][col].Top()
		}
	}

	var children []Child

	for destRow := 0; destRow < game.BoardDim; destRow++ {
		for destCol := 0; destCol < game.BoardDim; destCol++ {
			destTop := tops[destRow][destCol]
			if destTop == game.NumSizes {
				// Full stack, nothing can land here.
				continue
			}

			for size := 0; size < game.NumSizes; size++ {
				if reserve[size] > 0 && size >= destTop {
					child := state.Clone()
					child.Board.Cells[destRow][destCol].Pieces[size] = state.Turn
					child.Reserve(state.Turn)[size]--
					child.Turn = state.Turn.Other()
					children = append(children, Child{
						Move: game.GameMove{
							Kind: game.MovePlace,
							Size: size,
							Dest: game.Cell{Row: destRow, Col: destCol},
						},
						State: child,
					})
				}
			}

			for srcRow := 0; srcRow < game.BoardDim; srcRow++ {
				for srcCol := 0; srcCol < game.BoardDim; srcCol++ {
					srcTop := tops[srcRow][srcCol]
					if srcTop <= destTop || (srcRow == destRow && srcCol == destCol) {
						continue
					}
					top := srcTop - 1
					child := state.Clone()
					child.Board.Cells[destRow][destCol].Pieces[top] =
						child.Board.Cells[srcRow][srcCol].Pieces[top]
					child.Board.Cells[srcRow][srcCol].Pieces[top] = game.Empty
					child.Turn = state.Turn.Other()
					children = append(children, Child{
						Move: game.GameMove{
							Kind:   game.MoveLift,
							Source: game.Cell{Row: srcRow, Col: srcCol},
							Dest:   game.Cell{Row: destRow, Col: destCol},
						},
						State: child,
					})
				}
			}
		}
	}

	return children
}

// HasWon reports whether c controls a full row, column, or either diagonal
// by top-visible color.
func HasWon(state *game.GameState, c game.Color) bool {
	for i := 0; i < game.BoardDim; i++ {
		rowWin, colWin := true, true
		for j := 0; j < game.BoardDim; j++ {
			if state.Board.Cells[i][j].TopColor() != c {
				rowWin = false
			}
			if state.Board.Cells[j][i].TopColor() != c {
				colWin = false
			}
		}
		if rowWin || colWin {
			return true
		}
	}

	mainWin, antiWin := true, true
	for i := 0; i < game.BoardDim; i++ {
		if state.Board.Cells[i][i].TopColor() != c {
			mainWin = false
		}
		if state.Board.Cells[i][game.BoardDim-i-1].TopColor() != c {
			antiWin = false
		}
	}
	return mainWin || antiWin
}
