package eval

import (
	"context"
	"sync"

	"github.com/maelic13/beast/pkg/board"
)

// Switchable is an Evaluator whose underlying implementation can be swapped at runtime.
// The search tree (AlphaBeta/Quiescence/StaticEvaluator) is built once around a Switchable
// leaf; the Engine Worker reconfigures the Switchable in place whenever the sticky Heuristic/
// ModelFile/Syzygy options change, so a running or future search always reads the current
// selection without the tree itself needing to be rebuilt per command.
type Switchable struct {
	mu  sync.RWMutex
	cur Evaluator
}

// NewSwitchable returns a Switchable initialized to under.
func NewSwitchable(under Evaluator) *Switchable {
	return &Switchable{cur: under}
}

// Set replaces the active evaluator.
func (s *Switchable) Set(under Evaluator) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = under
}

func (s *Switchable) Evaluate(ctx context.Context, b *board.Board) Score {
	s.mu.RLock()
	cur := s.cur
	s.mu.RUnlock()

	return cur.Evaluate(ctx, b)
}
