package search

import (
	"context"

	"github.com/maelic13/beast/pkg/board"
	"github.com/maelic13/beast/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// AlphaBeta implements alpha-beta pruning. Pseudo-code:
//
// function alphabeta(node, depth, α, β, maximizingPlayer) is
//
//	if depth = 0 or node is a terminal node then
//	    return the heuristic value of node
//	if maximizingPlayer then
//	    value := −∞
//	    for each child of node do
//	        value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
//	        α := max(α, value)
//	        if α ≥ β then
//	            break (* β cutoff *)
//	    return value
//	else
//	    value := +∞
//	    for each child of node do
//	        value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
//	        β := min(β, value)
//	        if β ≤ α then
//	            break (* α cutoff *)
//	    return value
//
// This implementation is the negamax formulation, so only the maximizing branch appears,
// with child scores negated rather than alternating min/max. Beyond plain pruning, it adds
// mate-distance pruning, a check extension, null-move pruning, late-move reductions, and
// killer/history move ordering.
//
// See: https://en.wikipedia.org/wiki/Alpha–beta_pruning.
type AlphaBeta struct {
	Explore Exploration
	Eval    QuietSearch
}

func (p AlphaBeta) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runAlphaBeta{
		explore:  fullIfNotSet(p.Explore),
		eval:     p.Eval,
		tt:       sctx.TT,
		noise:    sctx.Noise,
		killers:  sctx.Killers,
		history:  sctx.History,
		ponder:   sctx.Ponder,
		b:        b,
		rootPly:  b.Ply(),
	}
	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}

	score, moves := run.search(ctx, depth, low, high)
	if contextx.IsCancelled(ctx) {
		return 0, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runAlphaBeta struct {
	explore Exploration
	eval    QuietSearch
	tt      TranspositionTable
	noise   eval.Random
	killers *KillerTable
	history *HistoryTable
	b       *board.Board
	nodes   uint64
	rootPly int

	ponder []board.Move
}

// minNullMoveDepth is the shallowest depth at which null-move pruning is attempted; below
// it, the reduced-depth verification search would be too shallow to trust.
const minNullMoveDepth = 3

// zugzwangPieceLimit: null-move pruning is disabled once total piece count drops to or below
// this, since endgames that sparse are the ones most likely to be in zugzwang (per §4.4.5).
const zugzwangPieceLimit = 10

// lmrFullDepthMoves is how many moves at a node are always searched at full depth before
// late-move reductions may apply.
const lmrFullDepthMoves = 3

// lmrMinDepth is the shallowest remaining depth at which a move may be reduced.
const lmrMinDepth = 3

// search returns the positive score for the color to move, and its principal variation.
func (m *runAlphaBeta) search(ctx context.Context, depth int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	if contextx.IsCancelled(ctx) {
		return eval.InvalidScore, nil
	}
	if m.b.Result().Outcome == board.Draw {
		return eval.ZeroScore, nil
	}

	ply := m.b.Ply() - m.rootPly

	// Mate-distance pruning: a mate already found closer to the root can never be improved
	// upon by continuing to search this node.
	alpha = eval.Max(alpha, eval.Mated(ply))
	beta = eval.Min(beta, eval.Mate(ply+1))
	if !alpha.Less(beta) {
		return alpha, nil
	}

	var ttMove board.Move
	if bound, d, score, move, ok := m.tt.Read(m.b.Hash()); ok {
		ttMove = move
		if d >= depth {
			switch bound {
			case ExactBound:
				return score, nil // cutoff
			case LowerBound:
				alpha = eval.Max(alpha, score)
			case UpperBound:
				beta = eval.Min(beta, score)
			}
			if !alpha.Less(beta) {
				return score, nil // cutoff
			}
		} // else: not deep enough; still useful as a move-ordering hint
	}

	inCheck := m.b.Position().IsChecked(m.b.Turn())
	if inCheck {
		depth++ // check extension: avoid the horizon effect on checking lines
	}

	if depth <= 0 {
		sctx := &Context{Alpha: alpha, Beta: beta, TT: m.tt, Noise: m.noise}
		nodes, score := m.eval.QuietSearch(ctx, sctx, m.b)
		m.nodes += nodes

		m.tt.Write(m.b.Hash(), ExactBound, m.b.Ply(), 0, score, board.Move{})
		return score, nil
	}

	m.nodes++

	isPVNode := beta-alpha > 1

	// Null-move pruning: skip in check, at the root (its score must be trustworthy, not
	// approximated), in a PV node, too shallow to trust a reduced verification search, or in
	// a likely zugzwang position (king+pawns only, or too few pieces left on the board).
	if !inCheck && !isPVNode && ply > 0 && depth >= minNullMoveDepth &&
		hasNonPawnMaterial(m.b.Position(), m.b.Turn()) &&
		m.b.Position().Occupied().PopCount() > zugzwangPieceLimit {

		r := 2 + depth/6
		m.b.PushNullMove()
		score, _ := m.search(ctx, depth-1-r, beta.Negate(), beta.Negate()+1)
		m.b.PopNullMove()

		if !score.IsInvalid() {
			score = eval.IncrementMateDistance(score).Negate()
			if !score.Less(beta) {
				return beta, nil // fail-high: null move already refutes, skip real search
			}
		}
	}

	hasLegalMove := false
	bound := UpperBound // stays Upper unless alpha is improved or a cutoff occurs
	var pv []board.Move
	var cutoffMove board.Move

	_, explore := m.explore(ctx, m.b)
	priority := board.First(ttMove, orderedPriority(m.b, ply, m.killers, m.history))

	if len(m.ponder) > 0 {
		explore = m.ponder[0].Equals // overwrite: use ponder move even if not intended to be explored
		m.ponder = m.ponder[1:]
	}

	turn := m.b.Turn()
	pos := m.b.Position()
	moves := board.NewMoveList(pos.PseudoLegalMoves(turn), priority)

	searched := 0
	for {
		move, ok := moves.Next()
		if !ok {
			break
		}
		quiet := isQuiet(pos, turn, move)
		if !m.b.PushMove(move) {
			continue // skip: not legal
		}

		if explore(move) {
			childDepth := depth - 1

			reduced := false
			if quiet && searched >= lmrFullDepthMoves && depth >= lmrMinDepth && !inCheck {
				r := 1 + searched/6 + depth/8
				if childDepth-r > 0 {
					childDepth -= r
					reduced = true
				}
			}

			score, rem := m.search(ctx, childDepth, beta.Negate(), alpha.Negate())
			score = eval.IncrementMateDistance(score).Negate()

			if reduced && alpha.Less(score) {
				// Reduced search beat alpha: the reduction may have hidden real value.
				// Re-search at full depth and the original window.
				score, rem = m.search(ctx, depth-1, beta.Negate(), alpha.Negate())
				score = eval.IncrementMateDistance(score).Negate()
			}

			if alpha.Less(score) {
				alpha = score
				pv = append([]board.Move{move}, rem...)
				bound = ExactBound
			}
			searched++
		}

		m.b.PopMove()
		hasLegalMove = true

		if !alpha.Less(beta) {
			bound = LowerBound
			cutoffMove = move
			if quiet {
				m.killers.Update(ply, move)
				m.history.Update(move.Piece, move.To, depth)
			}
			break // cutoff
		}
	}

	if !hasLegalMove {
		if result := m.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.Mated(ply), nil
		}
		return eval.ZeroScore, nil
	}

	best := firstOrNone(pv)
	if bound == LowerBound {
		best = cutoffMove
	}
	m.tt.Write(m.b.Hash(), bound, m.b.Ply(), depth, alpha, best)
	return alpha, pv
}

func firstOrNone(pv []board.Move) board.Move {
	if len(pv) == 0 {
		return board.Move{}
	}
	return pv[0]
}

func fullIfNotSet(p Exploration) Exploration {
	if p == nil {
		return FullExploration
	}
	return p
}
