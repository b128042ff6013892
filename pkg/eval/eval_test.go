package eval_test

import (
	"context"
	"testing"

	"github.com/maelic13/beast/pkg/board"
	"github.com/maelic13/beast/pkg/board/fen"
	"github.com/maelic13/beast/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominalValue(t *testing.T) {
	assert.Equal(t, eval.Score(100), eval.NominalValue(board.Pawn))
	assert.Less(t, eval.NominalValue(board.Knight), eval.NominalValue(board.Rook))
	assert.Less(t, eval.NominalValue(board.Rook), eval.NominalValue(board.Queen))
	assert.Less(t, eval.NominalValue(board.Queen), eval.NominalValue(board.King))
}

func TestNominalValueGain(t *testing.T) {
	capture := board.Move{Type: board.Capture, Piece: board.Knight, Capture: board.Rook}
	assert.Equal(t, eval.NominalValue(board.Rook), eval.NominalValueGain(capture))

	promo := board.Move{Type: board.Promotion, Piece: board.Pawn, Promotion: board.Queen}
	assert.Equal(t, eval.NominalValue(board.Queen)-eval.NominalValue(board.Pawn), eval.NominalValueGain(promo))

	quiet := board.Move{Type: board.Normal, Piece: board.Knight}
	assert.Equal(t, eval.Score(0), eval.NominalValueGain(quiet))
}

func TestMaterialEvaluateBalanced(t *testing.T) {
	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, eval.ZeroScore, eval.Material{}.Evaluate(context.Background(), b))
}

func TestMaterialEvaluateUpAPawn(t *testing.T) {
	b, err := fen.NewBoard("rnbqkbnr/pppp1ppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)

	assert.Equal(t, eval.NominalValue(board.Pawn), eval.Material{}.Evaluate(context.Background(), b))
}

func TestEvaluateResult(t *testing.T) {
	assert.Equal(t, eval.DrawScore, eval.EvaluateResult(board.Result{Outcome: board.Draw}, board.White, 0))
	assert.Equal(t, eval.Mated(3), eval.EvaluateResult(board.Result{Outcome: board.Loss(board.White)}, board.White, 3))
	assert.Equal(t, eval.Mate(3), eval.EvaluateResult(board.Result{Outcome: board.Loss(board.Black)}, board.White, 3))
}
