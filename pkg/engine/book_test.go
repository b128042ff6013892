package engine_test

import (
	"context"
	"strings"
	"testing"

	"github.com/maelic13/beast/pkg/board/fen"
	"github.com/maelic13/beast/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBook(t *testing.T) {
	ctx := context.Background()

	book, err := engine.NewBook([]engine.Line{
		{"e2e4", "d7d5", "d2d4"},
		{"e2e4", "d7d6"},
		{"d2d4", "d7d6"},
	})
	require.NoError(t, err)

	tests := []struct {
		pos   string
		moves []string
	}{
		{fen.Initial, []string{"d2d4", "e2e4"}},
		{"rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 1", []string{"d7d6"}},
	}

	for _, tt := range tests {
		list, err := book.Find(ctx, tt.pos)
		require.NoError(t, err)

		var actual []string
		for _, m := range list {
			actual = append(actual, m.String())
		}
		assert.ElementsMatch(t, tt.moves, actual, strings.Join(actual, " "))
	}
}

func TestBook_NoBook(t *testing.T) {
	ctx := context.Background()

	list, err := engine.NoBook.Find(ctx, fen.Initial)
	require.NoError(t, err)
	assert.Empty(t, list)
}
