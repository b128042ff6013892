package search_test

import (
	"context"
	"testing"

	"github.com/maelic13/beast/pkg/board/fen"
	"github.com/maelic13/beast/pkg/eval"
	"github.com/maelic13/beast/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAlphaBeta() search.AlphaBeta {
	return search.AlphaBeta{
		Explore: search.FullExploration,
		Eval: search.Quiescence{
			Explore: search.FullExploration,
			Eval:    search.StaticEvaluator{Eval: eval.Material{}},
		},
	}
}

func newTestContext(ctx context.Context) *search.Context {
	return &search.Context{
		Alpha: eval.NegInfScore,
		Beta:  eval.InfScore,
		TT:    search.NewTranspositionTable(ctx, 1<<16),
	}
}

func TestAlphaBeta_Correctness(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		fen      string
		depth    int
		expected eval.Score
	}{
		{fen.Initial, 3, eval.ZeroScore},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, eval.ZeroScore},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3, eval.ZeroScore},
	}

	runner := newTestAlphaBeta()

	for _, tt := range tests {
		b, err := fen.NewBoard(tt.fen)
		require.NoError(t, err)

		n, actual, _, err := runner.Search(ctx, newTestContext(ctx), b, tt.depth)
		require.NoError(t, err)

		assert.Lessf(t, n, uint64(200000), "too many nodes: %v", tt.fen)
		assert.Equalf(t, tt.expected, actual, "failed: %v", tt.fen)
	}
}

func TestAlphaBeta_FindsMateInOne(t *testing.T) {
	ctx := context.Background()

	b, err := fen.NewBoard("k7/7R/6R1/8/8/8/8/7K w - - 0 1")
	require.NoError(t, err)

	runner := newTestAlphaBeta()

	_, score, moves, err := runner.Search(ctx, newTestContext(ctx), b, 2)
	require.NoError(t, err)

	require.True(t, score.IsMate())
	assert.Equal(t, 1, score.MateIn())
	require.NotEmpty(t, moves)
}

func TestAlphaBeta_PrefersShorterMate(t *testing.T) {
	ctx := context.Background()

	b, err := fen.NewBoard("k7/7R/7R/8/8/8/8/7K w - - 0 1")
	require.NoError(t, err)

	runner := newTestAlphaBeta()

	_, score, _, err := runner.Search(ctx, newTestContext(ctx), b, 6)
	require.NoError(t, err)

	require.True(t, score.IsMate())
	assert.GreaterOrEqual(t, score.MateIn(), 1)
}
