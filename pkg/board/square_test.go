package board_test

import (
	"testing"

	"github.com/maelic13/beast/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	assert.True(t, board.Rank1.IsValid())
	assert.True(t, board.Rank3.IsValid())
	assert.True(t, board.Rank8.IsValid())
	assert.False(t, board.Rank(8).IsValid())

	assert.Equal(t, "1", board.Rank1.String())
	assert.Equal(t, "7", board.Rank7.String())
	assert.Equal(t, "5", board.Rank(4).String())
}

func TestFile(t *testing.T) {
	assert.True(t, board.FileA.IsValid())
	assert.True(t, board.FileB.IsValid())
	assert.True(t, board.FileH.IsValid())
	assert.False(t, board.File(8).IsValid())

	assert.Equal(t, "a", board.FileA.String())
	assert.Equal(t, "g", board.FileG.String())
	assert.Equal(t, "d", board.File(3).String())
}

func TestSquare(t *testing.T) {
	assert.Equal(t, board.C2, board.NewSquare(board.FileC, board.Rank2))
	assert.Equal(t, board.G5, board.NewSquare(board.FileG, board.Rank5))

	assert.True(t, board.H1.IsValid())
	assert.True(t, board.D4.IsValid())
	assert.True(t, board.A8.IsValid())
	assert.False(t, board.Square(64).IsValid())

	assert.Equal(t, "h1", board.H1.String())
	assert.Equal(t, "a1", board.A1.String())
	assert.Equal(t, "a8", board.A8.String())
	assert.Equal(t, "h8", board.H8.String())

	// A1=0 .. H8=63, little-endian rank-file: this is the one deliberate deviation from
	// the numbering the engine this module started from used.
	assert.Equal(t, board.Square(0), board.A1)
	assert.Equal(t, board.Square(63), board.H8)
	assert.Equal(t, board.Square(7), board.H1)
	assert.Equal(t, board.Square(56), board.A8)
}

func TestParseSquare(t *testing.T) {
	sq, err := board.ParseSquareStr("e4")
	assert.NoError(t, err)
	assert.Equal(t, board.E4, sq)

	_, err = board.ParseSquareStr("z9")
	assert.Error(t, err)

	_, err = board.ParseSquareStr("e")
	assert.Error(t, err)
}

func TestSquareShift(t *testing.T) {
	to, ok := board.E4.Shift(1, 1)
	assert.True(t, ok)
	assert.Equal(t, board.F5, to)

	_, ok = board.A1.Shift(-1, 0)
	assert.False(t, ok)

	_, ok = board.H8.Shift(0, 1)
	assert.False(t, ok)
}
