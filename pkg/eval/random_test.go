package eval_test

import (
	"context"
	"testing"

	"github.com/maelic13/beast/pkg/eval"
	"github.com/stretchr/testify/assert"
)

func TestRandomZeroValueIsNoop(t *testing.T) {
	var r eval.Random
	for i := 0; i < 10; i++ {
		assert.Equal(t, eval.Score(0), r.Evaluate(context.Background(), nil))
	}
}

func TestRandomWithinLimit(t *testing.T) {
	r := eval.NewRandom(40, 1)
	for i := 0; i < 100; i++ {
		s := r.Evaluate(context.Background(), nil)
		assert.True(t, s >= -20 && s < 20, "noise %v out of range", s)
	}
}

func TestRandomDeterministicForSeed(t *testing.T) {
	a := eval.NewRandom(40, 42)
	b := eval.NewRandom(40, 42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Evaluate(context.Background(), nil), b.Evaluate(context.Background(), nil))
	}
}
