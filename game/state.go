// Package game defines the core state types for Goblet, a 4x4 stacking
// board game where each cell holds at most one piece of each size and a
// player wins by controlling a full row, column, or diagonal by top-visible
// color.
//
// The state is plain value types throughout, so cloning a position for
// tree exploration is a single struct copy.
package game

const (
	// BoardDim is the board side length.
	BoardDim = 4

	// NumSizes is the number of distinct piece sizes. Size 0 is the smallest.
	NumSizes = 4

	// NumEachSize is how many pieces of each size a player starts with.
	NumEachSize = 3
)

// Color identifies a player, or the absence of a piece.
type Color int8

const (
	Empty Color = iota
	White
	Black
)

// Other returns the opposing color. It must not be called with Empty.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "empty"
}

// Stack is the pile of pieces on one cell, indexed by size. A non-Empty
// entry at index i means a piece of size i sits in the stack; only the
// largest piece is visible.
type Stack struct {
	Pieces [NumSizes]Color
}

// Top returns one past the highest occupied size index. A return of
// NumSizes means the stack is full and nothing more can be placed here.
func (s *Stack) Top() int {
	for i := NumSizes - 1; i >= 0; i-- {
		if s.Pieces[i] != Empty {
			return i + 1
		}
	}
	return 0
}

// TopColor returns the color of the visible (largest) piece, or Empty
// for an empty stack.
func (s *Stack) TopColor() Color {
	for i := NumSizes - 1; i >= 0; i-- {
		if s.Pieces[i] != Empty {
			return s.Pieces[i]
		}
	}
	return Empty
}

// Board is the full grid of stacks, addressed (row, col).
type Board struct {
	Cells [BoardDim][BoardDim]Stack
}

// GameState is one immutable snapshot of a game: each player's remaining
// pieces per size, the board, and whose turn it is.
//
// The search tree never mutates a state it has stored; rules.ApplyMove is
// the single in-place mutation path and exists for drivers only.
type GameState struct {
	// WhitePieces and BlackPieces count the unplaced reserve per size,
	// where the index is the size.
	WhitePieces [NumSizes]int32
	BlackPieces [NumSizes]int32

	Board Board
	Turn  Color
}

// NewGame returns the starting position: full reserves, empty board,
// White to move.
func NewGame() *GameState {
	s := &GameState{Turn: White}
	for i := range s.WhitePieces {
		s.WhitePieces[i] = NumEachSize
		s.BlackPieces[i] = NumEachSize
	}
	return s
}

// Clone performs a deep copy of the game state. Everything is value
// typed, so this is a plain struct copy.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

// Reserve returns the remaining piece counts for the given player.
func (s *GameState) Reserve(c Color) *[NumSizes]int32 {
	if c == White {
		return &s.WhitePieces
	}
	return &s.BlackPieces
}
