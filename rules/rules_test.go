package rules

import (
	"strings"
	"testing"

	"github.com/adambyle/goblet/game"
)

// dumpState is a test helper to visualize board state.
func dumpState(state *game.GameState) string {
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
			sb.WriteByte(' ')
			sb.WriteByte(ch)
			sb.WriteByte('0' + byte(top-1))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestBranchEmptyBoard(t *testing.T) {
	state := game.NewGame()
	children := Branch(state)

	want := game.BoardDim * game.BoardDim * game.NumSizes
	if len(children) != want {
		t.Fatalf("children=%d want %d (every cell x every size, no lifts)", len(children), want)
	}
	for i, c := range children {
		if c.Move.Kind != game.MovePlace {
			t.Fatalf("child %d kind=%v want MovePlace on empty board", i, c.Move.Kind)
		}
		if c.State.Turn != game.Black {
			t.Fatalf("child %d turn=%v want Black", i, c.State.Turn)
		}
	}

	// Order contract: row-major destination, ascending size within it.
	first := children[0].Move
	if first.Dest != (game.Cell{Row: 0, Col: 0}) || first.Size != 0 {
		t.Errorf("first move=%v want place size 0 at (0,0)", first)
	}
	second := children[1].Move
	if second.Dest != (game.Cell{Row: 0, Col: 0}) || second.Size != 1 {
		t.Errorf("second move=%v want place size 1 at (0,0)", second)
	}
	last := children[len(children)-1].Move
	if last.Dest != (game.Cell{Row: 3, Col: 3}) || last.Size != game.NumSizes-1 {
		t.Errorf("last move=%v want place size %d at (3,3)", last, game.NumSizes-1)
	}
}

func TestBranchSingleOccupiedCell(t *testing.T) {
	// White's size-0 piece sits alone at (0,0); Black to move with a full
	// reserve. Every other cell accepts every size, (0,0) accepts sizes
	// above 0, and (0,0) is a lift source to every other cell.
	state := game.NewGame()
	ApplyMove(state, game.GameMove{Kind: game.MovePlace, Size: 0, Dest: game.Cell{Row: 0, Col: 0}})
	t.Logf("position:\n%s", dumpState(state))

	children := Branch(state)

	cells := game.BoardDim * game.BoardDim
	wantPlaces := (cells-1)*game.NumSizes + (game.NumSizes - 1)
	wantLifts := cells - 1

	places, lifts := 0, 0
	for _, c := range children {
		switch c.Move.Kind {
		case game.MovePlace:
			places++
			if c.Move.Dest == (game.Cell{Row: 0, Col: 0}) && c.Move.Size == 0 {
				t.Errorf("generated place size 0 onto occupied size-0 slot at (0,0)")
			}
		case game.MoveLift:
			lifts++
			if c.Move.Source != (game.Cell{Row: 0, Col: 0}) {
				t.Errorf("lift source=%v want (0,0)", c.Move.Source)
			}
		}
	}
	if places != wantPlaces {
		t.Errorf("places=%d want %d", places, wantPlaces)
	}
	if lifts != wantLifts {
		t.Errorf("lifts=%d want %d", lifts, wantLifts)
	}
}

func TestBranchLegality(t *testing.T) {
	// Mid-game position: every generated move must satisfy the legality
	// rules relative to its parent.
	state := game.NewGame()
	seq := []game.GameMove{
		{Kind: game.MovePlace, Size: 1, Dest: game.Cell{Row: 1, Col: 1}},
		{Kind: game.MovePlace, Size: 0, Dest: game.Cell{Row: 2, Col: 2}},
		{Kind: game.MovePlace, Size: 2, Dest: game.Cell{Row: 2, Col: 2}},
		{Kind: game.MovePlace, Size: 3, Dest: game.Cell{Row: 0, Col: 3}},
	}
	for _, mv := range seq {
		ApplyMove(state, mv)
	}
	t.Logf("position:\n%s", dumpState(state))

	reserve := state.Reserve(state.Turn)
	for i, c := range Branch(state) {
		destTop := state.Board.Cells[c.Move.Dest.Row][c.Move.Dest.Col].Top()
		switch c.Move.Kind {
		case game.MovePlace:
			if c.Move.Size < destTop {
				t.Errorf("child %d: place size %d under dest top %d", i, c.Move.Size, destTop)
			}
			if reserve[c.Move.Size] <= 0 {
				t.Errorf("child %d: place of size %d with empty reserve", i, c.Move.Size)
			}
		case game.MoveLift:
			srcTop := state.Board.Cells[c.Move.Source.Row][c.Move.Source.Col].Top()
			if srcTop <= destTop {
				t.Errorf("child %d: lift from top %d onto top %d", i, srcTop, destTop)
			}
			if c.Move.Source == c.Move.Dest {
				t.Errorf("child %d: lift onto itself", i)
			}
		}
	}
}

func TestApplyMoveRoundTrip(t *testing.T) {
	// Replaying every generated move through ApplyMove must reproduce the
	// generator's child position exactly. GameState is all value types, so
	// direct comparison covers the whole position.
	state := game.NewGame()
	for step := 0; step < 6; step++ {
		children := Branch(state)
		if len(children) == 0 {
			t.Fatalf("step %d: no legal moves", step)
		}
		for i, c := range children {
			replay := state.Clone()
			ApplyMove(replay, c.Move)
			if *replay != *c.State {
				t.Fatalf("step %d child %d (%v): ApplyMove result differs from generator child\nparent:\n%s",
					step, i, c.Move, dumpState(state))
			}
		}
		// Walk one deterministic line to vary the position.
		next := children[len(children)/2]
		state = next.State
	}
}

func TestBranchDoesNotMutateParent(t *testing.T) {
	state := game.NewGame()
	before := *state
	Branch(state)
	if before != *state {
		t.Fatalf("Branch mutated its input position")
	}
}

func TestBranchRespectsEmptyReserve(t *testing.T) {
	state := game.NewGame()
	state.WhitePieces[0] = 0

	for _, c := range Branch(state) {
		if c.Move.Kind == game.MovePlace && c.Move.Size == 0 {
			t.Fatalf("generated %v with no size-0 pieces left", c.Move)
		}
	}
}

func TestApplyMoveDecrementsReserve(t *testing.T) {
	state := game.NewGame()
	ApplyMove(state, game.GameMove{Kind: game.MovePlace, Size: 2, Dest: game.Cell{Row: 3, Col: 0}})
	if state.WhitePieces[2] != game.NumEachSize-1 {
		t.Errorf("WhitePieces[2]=%d want %d", state.WhitePieces[2], game.NumEachSize-1)
	}
	if state.Turn != game.Black {
		t.Errorf("turn=%v want Black", state.Turn)
	}
}

func TestApplyMoveLiftMovesTopPiece(t *testing.T) {
	state := game.NewGame()
	ApplyMove(state, game.GameMove{Kind: game.MovePlace, Size: 1, Dest: game.Cell{Row: 0, Col: 0}}) // white
	ApplyMove(state, game.GameMove{Kind: game.MovePlace, Size: 0, Dest: game.Cell{Row: 1, Col: 1}}) // black
	ApplyMove(state, game.GameMove{Kind: game.MoveLift, Source: game.Cell{Row: 0, Col: 0}, Dest: game.Cell{Row: 1, Col: 1}})

	src := &state.Board.Cells[0][0]
	dst := &state.Board.Cells[1][1]
	if src.Top() != 0 {
		t.Errorf("source top=%d want 0 after lift", src.Top())
	}
	if dst.Pieces[1] != game.White {
		t.Errorf("dest size-1 slot=%v want White", dst.Pieces[1])
	}
	if dst.Pieces[0] != game.Black {
		t.Errorf("dest size-0 slot=%v want Black (covered, not removed)", dst.Pieces[0])
	}
}

// fullBoardPosition returns a position with every stack full: all size-3
// slots occupied in a striped pattern that forms no winning line, both
// reserves empty, White to move. Unreachable in ordinary play, but the
// no-legal-moves case must still be well defined.
func fullBoardPosition() *game.GameState {
	s := game.NewGame()
	for row := 0; row < game.BoardDim; row++ {
		for col := 0; col < game.BoardDim; col++ {
			c := game.White
			if (row%2+col/2)%2 == 1 {
				c = game.Black
			}
			s.Board.Cells[row][col].Pieces[game.NumSizes-1] = c
		}
	}
	for size := 0; size < game.NumSizes; size++ {
		s.WhitePieces[size] = 0
		s.BlackPieces[size] = 0
	}
	return s
}

func TestBranchFullBoard(t *testing.T) {
	state := fullBoardPosition()
	t.Logf("position:\n%s", dumpState(state))

	if children := Branch(state); len(children) != 0 {
		t.Fatalf("children=%d want 0 on a completely full board", len(children))
	}
	if HasWon(state, game.White) || HasWon(state, game.Black) {
		t.Fatalf("striped full board must not contain a winning line")
	}
}

func TestHasWon(t *testing.T) {
	line := func(set func(s *game.GameState, i int)) *game.GameState {
		s := game.NewGame()
		for i := 0; i < game.BoardDim; i++ {
			set(s, i)
		}
		return s
	}

	tests := []struct {
		name  string
		state *game.GameState
		color game.Color
		want  bool
	}{
		{
			"row", line(func(s *game.GameState, i int) {
				s.Board.Cells[2][i].Pieces[0] = game.White
			}), game.White, true,
		},
		{
			"column", line(func(s *game.GameState, i int) {
				s.Board.Cells[i][1].Pieces[0] = game.Black
			}), game.Black, true,
		},
		{
			"main diagonal", line(func(s *game.GameState, i int) {
				s.Board.Cells[i][i].Pieces[3] = game.White
			}), game.White, true,
		},
		{
			"anti diagonal", line(func(s *game.GameState, i int) {
				s.Board.Cells[i][game.BoardDim-i-1].Pieces[2] = game.Black
			}), game.Black, true,
		},
		{
			"covered piece breaks line", func() *game.GameState {
				s := line(func(s *game.GameState, i int) {
					s.Board.Cells[2][i].Pieces[0] = game.White
				})
				// Black gobbles one cell of the row with a bigger piece.
				s.Board.Cells[2][1].Pieces[3] = game.Black
				return s
			}(), game.White, false,
		},
		{
			"no line", game.NewGame(), game.White, false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasWon(tc.state, tc.color); got != tc.want {
				t.Errorf("HasWon(%v)=%v want %v\n%s", tc.color, got, tc.want, dumpState(tc.state))
			}
		})
	}
}

func TestHasWonIgnoresOtherColor(t *testing.T) {
	s := game.NewGame()
	for i := 0; i < game.BoardDim; i++ {
		s.Board.Cells[0][i].Pieces[0] = game.White
	}
	if HasWon(s, game.Black) {
		t.Errorf("white row reported as black win")
	}
}
