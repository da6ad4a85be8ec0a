// Command analyze runs a minimax search from the starting position and
// prints the ranked root moves.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/adambyle/goblet/game"
	"github.com/adambyle/goblet/rules"
	"github.com/adambyle/goblet/search"
	"github.com/adambyle/goblet/selfplay"
)

func main() {
	depth := flag.Int("depth", 3, "Search depth in plies")
	top := flag.Int("top", 10, "Number of ranked moves to print")
	flag.Parse()

	state := game.NewGame()

	fmt.Print(selfplay.BoardString(state))

	type ranked struct {
		move  game.GameMove
		score search.Score
	}

	start := time.Now()
	children := rules.Branch(state)
	if len(children) == 0 {
		log.Fatalf("No legal moves from the starting position")
	}

	moves := make([]ranked, 0, len(children))
	for _, c := range children {
		node := search.NewNode(c.State)
		if *depth > 1 {
			node.Expand(*depth - 1)
		}
		moves = append(moves, ranked{move: c.Move, score: node.Score()})
	}
	elapsed := time.Since(start)

	// Best for the side to move first. Stable keeps generation order on ties.
	mover := state.Turn
	sort.SliceStable(moves, func(i, j int) bool {
		if mover == game.White {
			return moves[i].score > moves[j].score
		}
		return moves[i].score < moves[j].score
	})

	log.Printf("Searched %d root moves to depth %d in %s", len(moves), *depth, elapsed)

	n := *top
	if n > len(moves) {
		n = len(moves)
	}
	fmt.Printf("Best moves for %s:\n", mover)
	for i := 0; i < n; i++ {
		fmt.Printf("%3d. %-24s %s\n", i+1, moves[i].move, moves[i].score)
	}
}
