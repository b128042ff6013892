// Package eval contains position evaluation logic and utilities.
package eval

import (
	"context"

	"github.com/maelic13/beast/pkg/board"
)

// Evaluator is a static position evaluator. Evaluate is always called for a position that
// is not already a decided terminal result; EvaluateResult handles those.
type Evaluator interface {
	// Evaluate returns the position score in centipawns, from the perspective of the side
	// to move.
	Evaluate(ctx context.Context, b *board.Board) Score
}

// EvaluateResult returns the terminal score for a decided game result, from the
// perspective of turn (the side that would otherwise move next), at the given search ply.
// Mate scores are offset by ply so that search prefers the shortest mate and most delayed
// loss.
func EvaluateResult(result board.Result, turn board.Color, ply int) Score {
	switch result.Outcome {
	case board.Draw:
		return DrawScore
	case board.Loss(turn):
		return Mated(ply)
	default:
		return Mate(ply)
	}
}

// NominalValue is the absolute nominal value in centipawns of a piece, based on classical
// piece-value theory. The King has an arbitrary large value so it is never traded away by
// move-ordering heuristics that use it.
func NominalValue(p board.Piece) Score {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight:
		return 350
	case board.Bishop:
		return 370
	case board.Rook:
		return 550
	case board.Queen:
		return 950
	case board.King:
		return 10000
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain of playing m.
func NominalValueGain(m board.Move) Score {
	switch m.Type {
	case board.CapturePromotion:
		return NominalValue(m.Capture) + NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Promotion:
		return NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Capture, board.EnPassant:
		return NominalValue(m.Capture)
	default:
		return 0
	}
}

// Material returns the signed nominal material balance for the side to move. It is the
// simplest possible Evaluator and mainly useful for tests and sanity checks.
type Material struct{}

func (Material) Evaluate(_ context.Context, b *board.Board) Score {
	pos := b.Position()
	turn := b.Turn()

	var score Score
	for p := board.ZeroPiece; p < board.NumPieces; p++ {
		diff := pos.Piece(turn, p).PopCount() - pos.Piece(turn.Opponent(), p).PopCount()
		score += Score(diff) * NominalValue(p)
	}
	return score
}
