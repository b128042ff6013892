package eval

import (
	"context"

	"github.com/maelic13/beast/internal/syzygy"
	"github.com/maelic13/beast/pkg/board"
)

// Tablebase wraps an Evaluator with a Syzygy WDL probe: a hit short-circuits to a fixed
// score -- ±(MateThreshold-1) for a win or loss, just below the mate-score range, ±1 for a
// cursed win or blessed loss, DrawScore for a draw. The score carries no distance, so an
// earlier and a later tablebase win score the same. A miss falls through to the wrapped
// Evaluator unchanged.
type Tablebase struct {
	under  Evaluator
	prober syzygy.Prober
}

func NewTablebase(under Evaluator, prober syzygy.Prober) Tablebase {
	if prober == nil {
		prober = syzygy.NoProber{}
	}
	return Tablebase{under: under, prober: prober}
}

func (t Tablebase) Evaluate(ctx context.Context, b *board.Board) Score {
	wdl, ok := t.prober.Probe(ctx, b.Position(), b.Turn())
	if !ok {
		return t.under.Evaluate(ctx, b)
	}

	switch wdl {
	case syzygy.Win:
		return MateThreshold - 1
	case syzygy.CursedWin:
		return DrawScore + 1
	case syzygy.DrawWDL:
		return DrawScore
	case syzygy.BlessedLoss:
		return DrawScore - 1
	case syzygy.Loss:
		return -(MateThreshold - 1)
	default:
		return t.under.Evaluate(ctx, b)
	}
}
