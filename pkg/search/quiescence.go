package search

import (
	"context"
	"github.com/maelic13/beast/pkg/board"
	"github.com/maelic13/beast/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// deltaPruningMinPieces is the piece count above which delta pruning is active; below it,
// in sparse endgames, material-swing heuristics are unreliable.
const deltaPruningMinPieces = 8

// deltaPruningMargin pads a capture's nominal material gain to allow for positional
// compensation when deciding whether it can possibly recover a position below alpha.
const deltaPruningMargin = 200

// Quiescence implements a configurable alpha-beta QuietSearch.
type Quiescence struct {
	Explore Exploration
	Eval    Evaluator
}

func (q Quiescence) QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score) {
	run := &runQuiescence{explore: q.Explore, eval: q.Eval, b: b, rootPly: b.Ply()}

	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}

	score := run.search(ctx, sctx, low, high)
	return run.nodes, score
}

type runQuiescence struct {
	explore Exploration
	eval    Evaluator
	b       *board.Board
	nodes   uint64
	rootPly int
}

// search returns the positive score for the color.
func (r *runQuiescence) search(ctx context.Context, sctx *Context, alpha, beta eval.Score) eval.Score {
	if contextx.IsCancelled(ctx) {
		return eval.ZeroScore
	}
	if r.b.Result().Outcome == board.Draw {
		return eval.ZeroScore
	}

	r.nodes++

	hasLegalMoves := false
	turn := r.b.Turn()

	// Stand-pat: the side to move is assumed to always have the option of making no capture
	// at all (even though, strictly, only a legal move establishes that -- checked below via
	// hasLegalMoves once the move loop has run).
	standPat := eval.HeuristicScore(r.eval.Evaluate(ctx, sctx, r.b) + sctx.Noise.Evaluate(ctx, r.b))
	if !standPat.Less(beta) {
		return standPat
	}
	alpha = eval.Max(alpha, standPat)

	// Delta pruning: while more than deltaPruningMinPieces pieces remain, a position already
	// more than a queen below alpha is not searched further, since no single capture's
	// material swing can plausibly recover it. Disabled in sparse endgames, where unusual
	// tactics are more likely.
	deltaPruning := r.b.Position().Occupied().PopCount() > deltaPruningMinPieces
	if deltaPruning && standPat.Less(alpha-eval.NominalValue(board.Queen)) {
		return alpha
	}

	priority, explore := r.explore(ctx, r.b)

	moves := board.NewMoveList(r.b.Position().PseudoLegalMoves(turn), priority)
	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		if !r.b.PushMove(m) {
			continue // skip: not legal
		}

		prune := false
		if deltaPruning && m.IsCapture() {
			gain := eval.NominalValue(m.Capture) + deltaPruningMargin
			prune = standPat+gain < alpha
		}

		if explore(m) && !prune {
			score := r.search(ctx, sctx, beta.Negate(), alpha.Negate())
			score = eval.IncrementMateDistance(score).Negate()
			alpha = eval.Max(alpha, score)
		}

		r.b.PopMove()
		hasLegalMoves = true

		if alpha == beta || beta.Less(alpha) {
			break // cutoff
		}
	}

	if !hasLegalMoves {
		if result := r.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.Mated(r.b.Ply() - r.rootPly)
		}
		return eval.ZeroScore
	}
	return alpha
}
