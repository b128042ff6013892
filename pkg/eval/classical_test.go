package eval_test

import (
	"context"
	"testing"

	"github.com/maelic13/beast/pkg/board/fen"
	"github.com/maelic13/beast/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassicalSymmetricInInitialPosition(t *testing.T) {
	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, eval.ZeroScore, eval.Classical{}.Evaluate(context.Background(), b))
}

func TestClassicalPrefersCentralization(t *testing.T) {
	// Same material, but White's knight sits on a rim square while Black's sits centrally:
	// Classical should favor Black (from Black's perspective, a positive score).
	rim, err := fen.NewBoard("4k3/8/8/8/3n4/8/8/N3K3 w - - 0 1")
	require.NoError(t, err)

	center, err := fen.NewBoard("4k3/8/8/8/3n4/8/8/N3K3 b - - 0 1")
	require.NoError(t, err)

	// Same pieces in both boards, differing only in side to move: the evaluation of a
	// position and its turn-flipped twin must be exact negatives of one another.
	whiteScore := eval.Classical{}.Evaluate(context.Background(), rim)
	blackScore := eval.Classical{}.Evaluate(context.Background(), center)
	assert.Equal(t, -whiteScore, blackScore)
	// Black's knight (D4) is far more central than White's (A1), so Black -- to move in
	// the second board -- is favored.
	assert.True(t, blackScore > 0)
}
