package eval

import "fmt"

// Score is a signed position or move score in centipawns, always from the perspective of
// the side to move (negamax convention): positive favors the mover, negative the opponent.
//
// Scores within MateThreshold of WIN/LOSS encode a forced mate, offset by the number of
// plies to deliver (or receive) it, so that shorter mates sort as more extreme than longer
// ones. Score must stay within [-WIN;WIN]. 32 bits so mate-distance arithmetic never
// overflows during search.
type Score int32

const (
	DrawScore Score = 0

	WIN  Score = 30000
	LOSS Score = -WIN

	// MateThreshold is the smallest absolute score that represents a forced mate.
	MateThreshold Score = 29000

	NegInf Score = LOSS - 1
	PosInf Score = WIN + 1

	// ZeroScore is the neutral (draw) score, spelled out for search call sites that want
	// to be explicit about returning a non-terminal, non-invalid zero.
	ZeroScore Score = DrawScore
	// NegInfScore/InfScore seed alpha-beta search windows before any real bound is known.
	NegInfScore Score = NegInf
	InfScore    Score = PosInf
	// InvalidScore marks a search result that was abandoned (e.g. cancellation) and must
	// not be used as a real score.
	InvalidScore Score = NegInf - 1
)

// IsInvalid reports whether s is the sentinel InvalidScore.
func (s Score) IsInvalid() bool {
	return s == InvalidScore
}

// Negate flips the score to the opponent's perspective, preserving InvalidScore.
func (s Score) Negate() Score {
	if s.IsInvalid() {
		return s
	}
	return -s
}

// Less reports whether s is strictly worse than other, for the same side to move.
func (s Score) Less(other Score) bool {
	return s < other
}

// MateDistance returns the number of plies to the mate encoded in s, if any.
func (s Score) MateDistance() (int, bool) {
	if !s.IsMate() {
		return 0, false
	}
	if s > 0 {
		return int(WIN - s), true
	}
	return int(WIN + s), true
}

// IncrementMateDistance ages a mate score by one ply as it is passed back up the search
// tree, so a mate found deeper in the tree is preferred less than a shallower one found at
// the same node. Non-mate and invalid scores pass through unchanged.
func IncrementMateDistance(s Score) Score {
	switch {
	case s.IsInvalid():
		return s
	case s >= MateThreshold:
		return s - 1
	case s <= -MateThreshold:
		return s + 1
	default:
		return s
	}
}

// HeuristicScore adapts a raw Evaluator score into a quiescence-search return value. It
// exists as a seam so a QuietSearch can special-case evaluator scores that coincide with
// the mate-score range without actually claiming a forced mate.
func HeuristicScore(s Score) Score {
	return Crop(s)
}

// Mate returns the score for delivering mate in the given number of plies (0 = mate on
// the board right now, for the side whose turn it no longer is).
func Mate(pliesToMate int) Score {
	return WIN - Score(pliesToMate)
}

// Mated returns the score for being mated in the given number of plies.
func Mated(pliesToMate int) Score {
	return -Mate(pliesToMate)
}

// IsMate reports whether the score represents a forced mate (for either side).
func (s Score) IsMate() bool {
	return s >= MateThreshold || s <= -MateThreshold
}

// MateIn returns the number of full moves to deliver mate, positive if the side to move
// mates, negative if it is mated. Only meaningful when IsMate() is true.
func (s Score) MateIn() int {
	var plies int
	if s > 0 {
		plies = int(WIN - s)
	} else {
		plies = int(WIN + s)
	}
	moves := (plies + 1) / 2
	if s < 0 {
		return -moves
	}
	return moves
}

// Crop clamps a score into [LOSS;WIN].
func Crop(s Score) Score {
	switch {
	case s > WIN:
		return WIN
	case s < LOSS:
		return LOSS
	default:
		return s
	}
}

// Max returns the largest of the given scores.
func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

// Min returns the smallest of the given scores.
func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}

func (s Score) String() string {
	if s.IsMate() {
		return fmt.Sprintf("mate %d", s.MateIn())
	}
	return fmt.Sprintf("cp %d", int(s))
}
