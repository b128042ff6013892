package search

import (
	"context"
	"errors"

	"github.com/maelic13/beast/pkg/board"
	"github.com/maelic13/beast/pkg/eval"
)

// ErrHalted is returned by a Search when it was cancelled before completing a depth.
var ErrHalted = errors.New("search halted")

// Context carries the per-call parameters of a single iterative-deepening step: the
// alpha-beta window to search within, the transposition table to consult, the noise
// evaluator (if self-play randomization is enabled), and a ponder move sequence to explore
// first regardless of move ordering.
type Context struct {
	Alpha, Beta eval.Score
	TT          TranspositionTable
	Noise       eval.Random
	Ponder      []board.Move

	// Killers and History are search-local move-ordering tables. Both are created once per
	// Go command and persist across iterative-deepening depths within it (the later,
	// deeper iteration benefits from the previous iteration's cutoffs); nil disables the
	// corresponding ordering tier.
	Killers *KillerTable
	History *HistoryTable
}

// Search is a full-width search from the root position to the given depth.
type Search interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error)
}

// QuietSearch extends a position until it is "quiet" -- no more profitable captures or
// checks -- and returns a stable heuristic score. Used as the leaf evaluator of a full
// search to avoid the horizon effect.
type QuietSearch interface {
	QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score)
}

// Evaluator is a search-aware position evaluator: unlike eval.Evaluator, it receives the
// current search Context so it can, for example, consult the noise evaluator or bail out
// early on cancellation.
type Evaluator interface {
	Evaluate(ctx context.Context, sctx *Context, b *board.Board) eval.Score
}

// Exploration defines move ordering and selective search in a given position: the
// MovePriorityFn controls the order moves are tried, and the returned predicate decides
// whether a given legal move is explored at all (used to restrict quiescence search to
// captures/checks, or for forward pruning).
type Exploration func(ctx context.Context, b *board.Board) (board.MovePriorityFn, func(move board.Move) bool)

// FullExploration orders moves by MVV-LVA and explores all of them. The default for
// full-width search.
func FullExploration(_ context.Context, _ *board.Board) (board.MovePriorityFn, func(board.Move) bool) {
	return MVVLVA, IsAnyMove
}

// IsAnyMove explores every move. Default selection for full-width search.
func IsAnyMove(board.Move) bool {
	return true
}

// NoMove explores no move. Used to disable quiescence search entirely.
func NoMove(board.Move) bool {
	return false
}

// IsTactical reports whether m is a capture or promotion, the material-changing half of
// the quiescence tactical set. See TacticalExploration, which also admits checks.
func IsTactical(m board.Move) bool {
	return m.IsCapture() || m.IsPromotion()
}

// TacticalExploration bounds quiescence search to captures, promotions and checking moves:
// a quiet-looking position that forks into a check is not actually quiet, so checks are
// explored alongside captures/promotions even though they gain no material.
func TacticalExploration(_ context.Context, b *board.Board) (board.MovePriorityFn, func(board.Move) bool) {
	pos := b.Position()
	turn := b.Turn()

	return MVVLVA, func(m board.Move) bool {
		return IsTactical(m) || pos.GivesCheck(turn, m)
	}
}

// MVVLVA implements "most valuable victim, least valuable attacker" move priority: among
// captures, prefer taking the most valuable piece with the least valuable one. Scaled down
// from the nominal centipawn values (factor 5, not 100) so even a queen-takes-queen capture
// promotion fits board.MovePriority's 16 bits; the scaling only affects magnitude, not
// relative order.
func MVVLVA(m board.Move) board.MovePriority {
	if p := board.MovePriority(5 * eval.NominalValueGain(m)); p > 0 {
		return p - board.MovePriority(eval.NominalValue(m.Piece)/5)
	}
	return 0
}

// StaticEvaluator adapts a plain eval.Evaluator into a search.Evaluator that ignores the
// search Context. Used to bottom out quiescence search at a leaf evaluator that has no use
// for TT/noise/alpha-beta plumbing.
type StaticEvaluator struct {
	Eval eval.Evaluator
}

func (s StaticEvaluator) Evaluate(ctx context.Context, _ *Context, b *board.Board) eval.Score {
	return s.Eval.Evaluate(ctx, b)
}
