package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/maelic13/beast/pkg/board"
	"github.com/seekerror/logw"
)

// FLEX is the safety margin subtracted from every computed time budget, leaving headroom
// for move generation and I/O overhead beyond the tree search itself.
const FLEX = 10 * time.Millisecond

// TimeBudgetFunc computes how long the side to move should spend searching, given the
// clock time it has remaining and its increment per move. Parameterizes the engine's time
// allocation policy so it can be selected at Engine construction instead of hardcoded.
type TimeBudgetFunc func(remaining, inc time.Duration, movesToGo int) time.Duration

// DefaultTimeBudget implements the engine's default allocation: with an increment, spend a
// tenth of the remaining time plus the increment; without one, a twentieth of the remaining
// time. Either way, never bid more than the entire remaining clock (less FLEX).
func DefaultTimeBudget(remaining, inc time.Duration, _ int) time.Duration {
	if remaining <= 0 {
		return 0
	}

	ceiling := remaining - FLEX
	var bid time.Duration
	if inc > 0 {
		bid = remaining/10 + inc - FLEX
		if bid > ceiling {
			bid = ceiling
		}
	} else {
		bid = ceiling / 20
	}

	if bid < 0 {
		return 0
	}
	return bid
}

// TimeControl represents time control information for both sides, as reported by a UCI
// "go" command's wtime/btime/winc/binc/movestogo tokens.
type TimeControl struct {
	White, Black       time.Duration
	WhiteInc, BlackInc time.Duration
	Moves              int // 0 == rest of game, informational only
}

// Budget returns the time budget for the side to move, using fn to turn its remaining time
// and increment into a duration.
func (t TimeControl) Budget(c board.Color, fn TimeBudgetFunc) time.Duration {
	remaining, inc := t.White, t.WhiteInc
	if c == board.Black {
		remaining, inc = t.Black, t.BlackInc
	}
	return fn(remaining, inc, t.Moves)
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f(+%.1f)<>%.1f(+%.1f)", t.White.Seconds(), t.WhiteInc.Seconds(), t.Black.Seconds(), t.BlackInc.Seconds())
	}
	return fmt.Sprintf("%.1f(+%.1f)<>%.1f(+%.1f)[moves=%v]", t.White.Seconds(), t.WhiteInc.Seconds(), t.Black.Seconds(), t.BlackInc.Seconds(), t.Moves)
}

// EnforceTimeControl arms a one-shot timer that halts h once the computed budget elapses,
// following the first-matching-rule policy: an explicit MoveTime takes precedence over the
// wtime/btime/inc-derived budget; with neither set, no timer is armed at all. Returns the
// budget and whether a timer was armed.
func EnforceTimeControl(ctx context.Context, h Handle, opt Options, turn board.Color, fn TimeBudgetFunc) (time.Duration, bool) {
	switch {
	case opt.MoveTime > 0:
		budget := opt.MoveTime - FLEX
		if budget < 0 {
			budget = 0
		}
		arm(h, budget)

		logw.Debugf(ctx, "Time budget for %v: %v (movetime)", turn, budget)
		return budget, true

	default:
		tc, ok := opt.TimeControl.V()
		if !ok {
			return 0, false
		}

		budget := tc.Budget(turn, fn)
		arm(h, budget)

		logw.Debugf(ctx, "Time budget for %v: %v (clock=%v)", turn, budget, tc)
		return budget, true
	}
}

func arm(h Handle, budget time.Duration) {
	time.AfterFunc(budget, func() {
		h.Halt()
	})
}
