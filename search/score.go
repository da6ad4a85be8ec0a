// Package search implements the full-width minimax engine for Goblet:
// static position evaluation, the score order, and an incrementally
// deepenable search tree.
package search

import (
	"math"
	"strconv"

	"github.com/adambyle/goblet/game"
)

// Score is a position valuation. A forced win for either side sits at the
// extremes of the int32 range; everything in between is a heuristic
// balance (positive favors White). The heuristic magnitude is bounded well
// below the win sentinels, so plain integer comparison is the total order
// the engine backs scores up with.
type Score int32

const (
	// BlackWin means Black has a winning line (or is forced into one).
	BlackWin Score = math.MinInt32
	// WhiteWin means White has a winning line (or is forced into one).
	WhiteWin Score = math.MaxInt32
)

// Balanced wraps a heuristic valuation as a Score.
func Balanced(n int32) Score {
	return Score(n)
}

// WinFor returns the win score for c. c must be White or Black.
func WinFor(c game.Color) Score {
	if c == game.White {
		return WhiteWin
	}
	return BlackWin
}

// IsWin reports whether s marks a forced win for either side.
func (s Score) IsWin() bool {
	return s == WhiteWin || s == BlackWin
}

func (s Score) String() string {
	switch s {
	case WhiteWin:
		return "white win"
	case BlackWin:
		return "black win"
	}
	return strconv.FormatInt(int64(s), 10)
}
