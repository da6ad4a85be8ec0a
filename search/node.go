package search

import (
	"github.com/adambyle/goblet/game"
	"github.com/adambyle/goblet/rules"
)

// nodeState is the three-way lifecycle of a tree node. Exactly one of the
// position (leaf) or the children (expanded) is held at a time; a resolved
// node holds neither.
type nodeState int8

const (
	// stateLeaf: unexpanded, still owns its position.
	stateLeaf nodeState = iota
	// stateExpanded: interior node owning its ordered (move, child) list.
	stateExpanded
	// stateResolved: the outcome is a forced win, further search is
	// pointless and the subtree has been released.
	stateResolved
)

// Branch pairs a move with the subtree it leads to.
type Branch struct {
	Move game.GameMove
	Node *Node
}

// Node is one position embedded in the search tree. Each node exclusively
// owns its children; there is no sharing between tree branches, so dropping
// a node releases its whole subtree.
type Node struct {
	score Score
	turn  game.Color
	state nodeState

	pos      *game.GameState // leaf only
	children []Branch        // expanded only
}

// NewNode wraps a position as a fresh search tree root. The node takes
// ownership of state; the score starts as the static evaluation.
func NewNode(state *game.GameState) *Node {
	return &Node{
		score: Evaluate(state),
		turn:  state.Turn,
		state: stateLeaf,
		pos:   state,
	}
}

// Score returns the node's current best-known score: the static evaluation
// for an unexpanded leaf, the backed-up minimax value otherwise.
func (n *Node) Score() Score {
	return n.score
}

// Turn returns the side to move at this node.
func (n *Node) Turn() game.Color {
	return n.turn
}

// Children returns the ordered (move, child) list, or nil if the node has
// not been expanded or has resolved.
func (n *Node) Children() []Branch {
	return n.children
}

// Resolved reports whether this subtree's outcome is forced and no further
// expansion will happen.
func (n *Node) Resolved() bool {
	return n.state == stateResolved
}

// Expand grows the tree below n to the given depth. Repeated calls with
// increasing depth deepen the same tree incrementally; repeating a call
// with the same depth is a no-op, since the recursion reaches the already
// expanded frontier with depth 1 left.
//
// Search is full width: every reachable position at the requested depth is
// evaluated once. The only early termination is per node, when its own
// backed-up score becomes a forced win.
func (n *Node) Expand(depth int) {
	switch n.state {
	case stateLeaf:
		if n.score.IsWin() {
			// The game is already over here; nothing below matters.
			n.state = stateResolved
			n.pos = nil
			return
		}

		branches := rules.Branch(n.pos)
		children := make([]Branch, len(branches))
		for i, c := range branches {
			children[i] = Branch{Move: c.Move, Node: NewNode(c.State)}
		}

		if depth > 1 {
			for i := range children {
				children[i].Node.Expand(depth - 1)
			}
		}

		n.state = stateExpanded
		n.children = children
		n.pos = nil
		n.backUp()

	case stateExpanded:
		if depth <= 1 {
			return
		}
		for i := range n.children {
			n.children[i].Node.Expand(depth - 1)
		}
		n.backUp()

	case stateResolved:
		// Forced outcome, leave it alone.
	}
}

// backUp recomputes the node's score from its children: the maximum when
// White is to move here, the minimum when Black is. A backed-up win marker
// means the outcome is forced regardless of deeper search, so the node
// resolves and releases its subtree.
//
// A node with no children (completely full board) keeps its static score;
// it is a terminal degenerate case, not an error.
func (n *Node) backUp() {
	if len(n.children) == 0 {
		return
	}

	best := n.children[0].Node.score
	for _, b := range n.children[1:] {
		s := b.Node.score
		if n.turn == game.White {
			if s > best {
				best = s
			}
		} else if s < best {
			best = s
		}
	}
	n.score = best

	if best.IsWin() {
		n.state = stateResolved
		n.children = nil
	}
}

// BestBranch returns the child whose score is best for the side to move
// at n, under the same max/min rule as backUp. It reports false when n has
// no child list to choose from (unexpanded, resolved, or no legal moves).
// Ties keep the earliest child in generation order.
func (n *Node) BestBranch() (Branch, bool) {
	if n.state != stateExpanded || len(n.children) == 0 {
		return Branch{}, false
	}

	best := n.children[0]
	for _, b := range n.children[1:] {
		if n.turn == game.White {
			if b.Node.score > best.Node.score {
				best = b
			}
		} else if b.Node.score < best.Node.score {
			best = b
		}
	}
	return best, true
}
