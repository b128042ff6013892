package search

import (
	"fmt"
	"time"

	"github.com/maelic13/beast/pkg/board"
	"github.com/maelic13/beast/pkg/eval"
)

// PV represents the principal variation found by one iteration of a search, along with
// the statistics needed to report UCI "info" lines.
type PV struct {
	Depth int           // depth of search, in plies
	Moves []board.Move  // principal variation, best move first
	Score eval.Score    // evaluation at depth, from the side to move's perspective
	Nodes uint64        // interior and leaf nodes visited
	Time  time.Duration // wall-clock time taken by this iteration
	Hash  float64       // transposition table utilization, [0;1]
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v",
		p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), board.PrintMoves(p.Moves))
}
