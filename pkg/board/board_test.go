package board_test

import (
	"testing"

	"github.com/maelic13/beast/pkg/board"
	"github.com/maelic13/beast/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardPushPopMove(t *testing.T) {
	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	hash0 := b.Hash()
	assert.Equal(t, 0, b.Ply())

	ok := b.PushMove(board.Move{Type: board.Jump, Piece: board.Pawn, From: board.E2, To: board.E4})
	require.True(t, ok)
	assert.Equal(t, 1, b.Ply())
	assert.Equal(t, board.Black, b.Turn())
	assert.NotEqual(t, hash0, b.Hash())

	m, ok := b.PopMove()
	require.True(t, ok)
	assert.Equal(t, board.E2, m.From)
	assert.Equal(t, board.E4, m.To)
	assert.Equal(t, 0, b.Ply())
	assert.Equal(t, board.White, b.Turn())
	assert.Equal(t, hash0, b.Hash())
}

func TestBoardPushPopNullMove(t *testing.T) {
	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	hash0 := b.Hash()
	turn0 := b.Turn()

	b.PushNullMove()
	assert.Equal(t, 1, b.Ply())
	assert.Equal(t, turn0.Opponent(), b.Turn())
	assert.NotEqual(t, hash0, b.Hash())

	b.PopNullMove()
	assert.Equal(t, 0, b.Ply())
	assert.Equal(t, turn0, b.Turn())
	assert.Equal(t, hash0, b.Hash())
}

func TestBoardIllegalMoveRejected(t *testing.T) {
	b, err := fen.NewBoard("k3r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	require.NoError(t, err)

	// The E2 rook is pinned by the E8 rook: moving it off the E-file is pseudo-legal, but it
	// would leave the White king in check, so PushMove rejects it.
	ok := b.PushMove(board.Move{Type: board.Normal, Piece: board.Rook, From: board.E2, To: board.D2})
	assert.False(t, ok)
	assert.Equal(t, 0, b.Ply())
}

func TestBoardFork(t *testing.T) {
	b, err := fen.NewBoard(fen.Initial)
	require.NoError(t, err)

	require.True(t, b.PushMove(board.Move{Type: board.Jump, Piece: board.Pawn, From: board.E2, To: board.E4}))

	fork := b.Fork()
	assert.Equal(t, b.Hash(), fork.Hash())
	assert.Equal(t, b.Ply(), fork.Ply())

	require.True(t, fork.PushMove(board.Move{Type: board.Jump, Piece: board.Pawn, From: board.D7, To: board.D5}))
	assert.NotEqual(t, b.Hash(), fork.Hash())
	assert.Equal(t, 1, b.Ply()) // the original board is unaffected by moves on the fork
}
