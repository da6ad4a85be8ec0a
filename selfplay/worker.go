// Package selfplay plays the engine against itself and records each game
// as store rows for archival and later analysis.
package selfplay

import (
	"fmt"
	"time"

	"github.com/adambyle/goblet/game"
	"github.com/adambyle/goblet/rules"
	"github.com/adambyle/goblet/search"
	"github.com/adambyle/goblet/store"
)

// Config controls one self-play game.
type Config struct {
	// GameID labels the archive rows. Generated when empty.
	GameID string

	// Depth is the search depth per move. Defaults to 3.
	Depth int

	// MaxTurns caps the game; minimax play is deterministic and Goblet can
	// shuttle pieces forever, so hitting the cap ends the game as a draw.
	// Defaults to 200.
	MaxTurns int

	// OnTurn, if set, is called after every applied move.
	OnTurn func(Progress)
}

// Progress describes one applied move.
type Progress struct {
	Turn  int
	Mover game.Color
	Move  game.GameMove
	Score search.Score
}

// Result is the outcome of a finished game.
type Result struct {
	// Winner is Empty for a draw (turn cap or no legal moves).
	Winner game.Color
	Turns  int
}

// PlayGame plays one engine-vs-engine game from the starting position and
// returns the per-turn archive rows together with the result.
func PlayGame(cfg Config) ([]store.TurnRow, Result, error) {
	if cfg.GameID == "" {
		cfg.GameID = fmt.Sprintf("selfplay_%d", time.Now().UnixNano())
	}
	if cfg.Depth <= 0 {
		cfg.Depth = 3
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 200
	}

	state := game.NewGame()
	rows := make([]store.TurnRow, 0, cfg.MaxTurns)
	var result Result

	for turn := 0; turn < cfg.MaxTurns; turn++ {
		mover := state.Turn

		mv, score, ok := chooseMove(state, cfg.Depth)
		if !ok {
			// Completely full board. Defined terminal case, scored as a draw.
			break
		}

		rules.ApplyMove(state, mv)
		won := rules.HasWon(state, mover)

		encoded, err := store.EncodePositionJSON(state)
		if err != nil {
			return nil, Result{}, fmt.Errorf("encode position: %w", err)
		}
		rows = append(rows, store.TurnRow{
			GameID:      cfg.GameID,
			Turn:        int32(turn),
			Mover:       mover.String(),
			MoveKind:    moveKindName(mv.Kind),
			Size:        int32(mv.Size),
			SourceRow:   int32(mv.Source.Row),
			SourceCol:   int32(mv.Source.Col),
			DestRow:     int32(mv.Dest.Row),
			DestCol:     int32(mv.Dest.Col),
			RootScore:   int32(score),
			Win:         won,
			StateFormat: store.StateFormatJSONV1,
			State:       encoded,
		})
		result.Turns = turn + 1

		if cfg.OnTurn != nil {
			cfg.OnTurn(Progress{Turn: turn, Mover: mover, Move: mv, Score: score})
		}

		if won {
			result.Winner = mover
			break
		}
	}

	return rows, result, nil
}

// chooseMove runs the minimax search one move at a time from the root: each
// legal child is expanded to depth-1 and the best score for the mover wins.
// Doing the top ply here (instead of expanding a single root node) keeps the
// move list available even when the root value is a forced win, which
// resolves a root node and releases its children. Ties keep generation
// order, so play is deterministic.
func chooseMove(state *game.GameState, depth int) (game.GameMove, search.Score, bool) {
	children := rules.Branch(state)
	if len(children) == 0 {
		return game.GameMove{}, 0, false
	}

	var bestMove game.GameMove
	var bestScore search.Score
	for i, c := range children {
		node := search.NewNode(c.State)
		if depth > 1 {
			node.Expand(depth - 1)
		}
		s := node.Score()
		if i == 0 || betterFor(state.Turn, s, bestScore) {
			bestMove, bestScore = c.Move, s
		}
	}
	return bestMove, bestScore, true
}

func betterFor(mover game.Color, s, than search.Score) bool {
	if mover == game.White {
		return s > than
	}
	return s < than
}

func moveKindName(k game.MoveKind) string {
	if k == game.MovePlace {
		return "place"
	}
	return "lift"
}
