package eval_test

import (
	"testing"

	"github.com/maelic13/beast/pkg/eval"
	"github.com/stretchr/testify/assert"
)

func TestScoreNegate(t *testing.T) {
	assert.Equal(t, eval.Score(-50), eval.Score(50).Negate())
	assert.Equal(t, eval.InvalidScore, eval.InvalidScore.Negate())
}

func TestScoreLess(t *testing.T) {
	assert.True(t, eval.Score(1).Less(eval.Score(2)))
	assert.False(t, eval.Score(2).Less(eval.Score(1)))
}

func TestScoreMateRoundTrip(t *testing.T) {
	for plies := 0; plies < 5; plies++ {
		mate := eval.Mate(plies)
		assert.True(t, mate.IsMate())
		d, ok := mate.MateDistance()
		assert.True(t, ok)
		assert.Equal(t, plies, d)

		mated := eval.Mated(plies)
		assert.True(t, mated.IsMate())
		d, ok = mated.MateDistance()
		assert.True(t, ok)
		assert.Equal(t, plies, d)
	}
}

func TestScoreMateIn(t *testing.T) {
	assert.Equal(t, 1, eval.Mate(1).MateIn())
	assert.Equal(t, -1, eval.Mated(1).MateIn())
	assert.Equal(t, 2, eval.Mate(3).MateIn())
}

func TestScoreNotMate(t *testing.T) {
	assert.False(t, eval.ZeroScore.IsMate())
	assert.False(t, eval.Score(100).IsMate())
	_, ok := eval.Score(100).MateDistance()
	assert.False(t, ok)
}

func TestIncrementMateDistance(t *testing.T) {
	assert.Equal(t, eval.Mate(2), eval.IncrementMateDistance(eval.Mate(1)))
	assert.Equal(t, eval.Mated(2), eval.IncrementMateDistance(eval.Mated(1)))
	assert.Equal(t, eval.Score(50), eval.IncrementMateDistance(eval.Score(50)))
	assert.Equal(t, eval.InvalidScore, eval.IncrementMateDistance(eval.InvalidScore))
}

func TestScoreCrop(t *testing.T) {
	assert.Equal(t, eval.WIN, eval.Crop(eval.WIN+100))
	assert.Equal(t, eval.LOSS, eval.Crop(eval.LOSS-100))
	assert.Equal(t, eval.Score(5), eval.Crop(5))
}

func TestScoreMaxMin(t *testing.T) {
	assert.Equal(t, eval.Score(5), eval.Max(5, 3))
	assert.Equal(t, eval.Score(3), eval.Min(5, 3))
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "cp 50", eval.Score(50).String())
	assert.Equal(t, "mate 1", eval.Mate(1).String())
	assert.Equal(t, "mate -1", eval.Mated(1).String())
}
