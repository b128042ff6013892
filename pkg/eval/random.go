package eval

import (
	"context"
	"math/rand"

	"github.com/maelic13/beast/pkg/board"
)

// Random is a centipawn noise generator added on top of another Evaluator's score, so
// self-play games do not repeat identically move for move. limit specifies the noise range
// [-limit/2;limit-limit/2) in integer arithmetic, i.e. [-limit/2;limit/2) for an even limit.
// The zero value always returns zero (no noise).
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

// Evaluate returns the noise delta for this call, independent of position. It is meant to
// be added to another Evaluator's output, not used standalone.
func (n Random) Evaluate(_ context.Context, _ *board.Board) Score {
	if n.limit <= 0 {
		return 0
	}
	return Score(n.rand.Intn(n.limit) - n.limit/2)
}

// RandomEvaluator is a standalone Evaluator variant (selected via the UCI Heuristic option
// as "random") that returns a uniformly random centipawn score in [LOSS, WIN], independent
// of position. Useful for smoke-testing the search/UCI plumbing without a real heuristic;
// since its score carries no information across plies, the engine clamps search depth to 1
// whenever it is selected (see eval.Variant.NeedsDepthClamp).
type RandomEvaluator struct {
	rand *rand.Rand
}

// NewRandomEvaluator returns a RandomEvaluator seeded with seed.
func NewRandomEvaluator(seed int64) RandomEvaluator {
	return RandomEvaluator{rand: rand.New(rand.NewSource(seed))}
}

func (r RandomEvaluator) Evaluate(_ context.Context, _ *board.Board) Score {
	span := int(WIN - LOSS + 1)
	return LOSS + Score(r.rand.Intn(span))
}
