package game

import "fmt"

// Cell addresses one board position.
type Cell struct {
	Row int
	Col int
}

// MoveKind discriminates the two move types.
type MoveKind int8

const (
	// MovePlace introduces a reserved piece onto a cell.
	MovePlace MoveKind = iota
	// MoveLift relocates the visible piece of one cell onto another.
	MoveLift
)

// GameMove is one move, either a placement or a relocation. It is a pure
// value: it carries no reference to a position and is meaningful only
// paired with the position it was generated from.
//
// Size is set for MovePlace, Source for MoveLift. Dest is always set.
type GameMove struct {
	Kind   MoveKind
	Size   int
	Source Cell
	Dest   Cell
}

func (m GameMove) String() string {
	switch m.Kind {
	case MovePlace:
		return fmt.Sprintf("place size %d at (%d,%d)", m.Size, m.Dest.Row, m.Dest.Col)
	case MoveLift:
		return fmt.Sprintf("lift (%d,%d) to (%d,%d)", m.Source.Row, m.Source.Col, m.Dest.Row, m.Dest.Col)
	}
	return "invalid move"
}
