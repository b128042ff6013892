package eval_test

import (
	"context"
	"testing"

	"github.com/maelic13/beast/internal/syzygy"
	"github.com/maelic13/beast/pkg/board"
	"github.com/maelic13/beast/pkg/board/fen"
	"github.com/maelic13/beast/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	wdl syzygy.WDL
	ok  bool
}

func (f fakeProber) Probe(context.Context, *board.Position, board.Color) (syzygy.WDL, bool) {
	return f.wdl, f.ok
}

func TestTablebaseFallsThroughOnMiss(t *testing.T) {
	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	tb := eval.NewTablebase(eval.Material{}, fakeProber{ok: false})
	assert.Equal(t, eval.Material{}.Evaluate(context.Background(), b), tb.Evaluate(context.Background(), b))
}

func TestTablebaseWinLossDraw(t *testing.T) {
	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	tests := []struct {
		wdl      syzygy.WDL
		expected eval.Score
	}{
		{syzygy.Win, eval.MateThreshold - 1},
		{syzygy.CursedWin, eval.DrawScore + 1},
		{syzygy.DrawWDL, eval.DrawScore},
		{syzygy.BlessedLoss, eval.DrawScore - 1},
		{syzygy.Loss, -(eval.MateThreshold - 1)},
	}

	for _, tt := range tests {
		tb := eval.NewTablebase(eval.Material{}, fakeProber{wdl: tt.wdl, ok: true})
		assert.Equal(t, tt.expected, tb.Evaluate(context.Background(), b))
	}
}

func TestTablebaseNilProberDefaultsToNoProber(t *testing.T) {
	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	tb := eval.NewTablebase(eval.Material{}, nil)
	assert.Equal(t, eval.Material{}.Evaluate(context.Background(), b), tb.Evaluate(context.Background(), b))
}
