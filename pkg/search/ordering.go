package search

import "github.com/maelic13/beast/pkg/board"

// MaxPly bounds the killer table and the ply offset used for mate-distance pruning. Search
// depth is controlled by the time/depth budget, not this constant; it only needs to exceed
// any depth the engine will realistically reach in one iterative-deepening run.
const MaxPly = 128

// KillerTable records, per search ply, up to two "killer" quiet moves that recently caused
// a beta cutoff. Tried early in sibling nodes at the same ply, on the theory that a move
// that refuted one line is likely to refute a similar one. Not a transposition table: it is
// indexed by ply, not position, and is cleared at the start of every new search (every
// iterative-deepening run).
type KillerTable struct {
	killers [MaxPly][2]board.Move
}

// NewKillerTable returns an empty killer table.
func NewKillerTable() *KillerTable {
	return &KillerTable{}
}

// Get returns the two killer moves recorded at ply, if any.
func (k *KillerTable) Get(ply int) (board.Move, board.Move) {
	if k == nil || ply < 0 || ply >= MaxPly {
		return board.Move{}, board.Move{}
	}
	return k.killers[ply][0], k.killers[ply][1]
}

// Update records m as the newest killer at ply, shifting the previous primary killer to the
// secondary slot. No duplicates: re-recording an existing killer is a no-op.
func (k *KillerTable) Update(ply int, m board.Move) {
	if k == nil || ply < 0 || ply >= MaxPly {
		return
	}
	if k.killers[ply][0].Equals(m) {
		return
	}
	k.killers[ply][1] = k.killers[ply][0]
	k.killers[ply][0] = m
}

// HistoryTable scores quiet moves by [piece][to-square] based on how often they have caused
// a beta cutoff, weighted by the depth at which the cutoff occurred (deeper cutoffs are
// stronger evidence). Used to order quiet moves that are not killers.
type HistoryTable struct {
	scores [board.NumPieces][board.NumSquares]int32
}

// NewHistoryTable returns an empty history table.
func NewHistoryTable() *HistoryTable {
	return &HistoryTable{}
}

// historyCap bounds a single entry so that it always fits comfortably under the killer-move
// priority tier (see orderedPriority), regardless of how long a search runs.
const historyCap = 6000

// Get returns the current history score for a quiet move by the given piece to the given
// square.
func (h *HistoryTable) Get(piece board.Piece, to board.Square) board.MovePriority {
	if h == nil {
		return 0
	}
	return board.MovePriority(h.scores[piece][to])
}

// Update rewards a quiet move that caused a beta cutoff at the given depth.
func (h *HistoryTable) Update(piece board.Piece, to board.Square, depth int) {
	if h == nil {
		return
	}
	h.scores[piece][to] += int32(depth * depth)
	if h.scores[piece][to] > historyCap {
		h.scores[piece][to] = historyCap
	}
}

// Move-ordering priority tiers. Scaled to fit board.MovePriority (int16), so they preserve
// the relative ranking of the UCI front-end's documented ordering table (TT move, captures
// by MVV-LVA, checks, killers, history) without the literal centipawn-scaled magnitudes,
// which would overflow a 16-bit priority for a queen capture.
const (
	captureBase board.MovePriority = 15000
	checkBonus  board.MovePriority = 9000
	killerBonus board.MovePriority = 8000
)

// orderedPriority assigns a move-ordering priority per the category table: captures/
// promotions by MVV-LVA, checks, killers at this ply, and finally history for quiet moves.
// The transposition-table move is layered on top by the caller via board.First.
func orderedPriority(b *board.Board, ply int, killers *KillerTable, history *HistoryTable) board.MovePriorityFn {
	turn := b.Turn()
	pos := b.Position()
	k0, k1 := killers.Get(ply)

	return func(m board.Move) board.MovePriority {
		if m.IsCapture() || m.IsPromotion() {
			return captureBase + MVVLVA(m)
		}
		if pos.GivesCheck(turn, m) {
			return checkBonus
		}
		if k0.Equals(m) {
			return killerBonus
		}
		if k1.Equals(m) {
			return killerBonus - 1000
		}
		return history.Get(m.Piece, m.To)
	}
}

// isQuiet reports whether a move is neither a capture/promotion nor a check -- the category
// of move eligible for killer/history ordering and for late-move reductions.
func isQuiet(pos *board.Position, turn board.Color, m board.Move) bool {
	return !m.IsCapture() && !m.IsPromotion() && !pos.GivesCheck(turn, m)
}

// hasNonPawnMaterial reports whether turn has any piece other than king and pawns -- the
// classic null-move safety check, since null-move pruning is unsound in king-and-pawn
// endgames (zugzwang is common there).
func hasNonPawnMaterial(pos *board.Position, turn board.Color) bool {
	for _, p := range []board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
		if pos.PieceCount(turn, p) > 0 {
			return true
		}
	}
	return false
}
