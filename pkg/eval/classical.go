package eval

import (
	"context"

	"github.com/maelic13/beast/pkg/board"
)

// Classical is a hand-crafted evaluator combining nominal material balance with
// positional bonuses derived from classical chess theory: pawn advancement and
// centralization, piece centralization, and king safety/activity depending on whether
// the opponent still has their queen. All bonuses are expressed directly in centipawns.
type Classical struct{}

const (
	pawnRankWeight     Score = 7
	pawnFileWeight     Score = 5
	pawnCenterWeight   Score = 5
	pawnDistanceWeight Score = 5

	knightCenterWeight   Score = 7
	knightDistanceWeight Score = 8

	bishopCenterWeight Score = 5

	rookCenterWeight   Score = 8
	rookDistanceWeight Score = 5

	queenCenterWeight   Score = 2
	queenDistanceWeight Score = 8

	kingCenterWeight   Score = 8
	kingDistanceWeight Score = 5
)

func (Classical) Evaluate(_ context.Context, b *board.Board) Score {
	pos := b.Position()
	turn := b.Turn()

	var score Score
	for p := board.ZeroPiece; p < board.NumPieces; p++ {
		diff := pos.Piece(board.White, p).PopCount() - pos.Piece(board.Black, p).PopCount()
		score += Score(diff) * NominalValue(p)
	}

	wKing, bKing := pos.King(board.White), pos.King(board.Black)

	score += pawnBonus(pos, board.White, bKing) - pawnBonus(pos, board.Black, wKing)
	score += knightBonus(pos, board.White, bKing) - knightBonus(pos, board.Black, wKing)
	score += bishopBonus(pos, board.White, bKing) - bishopBonus(pos, board.Black, wKing)
	score += rookBonus(pos, board.White, bKing) - rookBonus(pos, board.Black, wKing)
	score += queenBonus(pos, board.White, bKing) - queenBonus(pos, board.Black, wKing)
	score += kingBonus(wKing, bKing, pos.Piece(board.Black, board.Queen) != 0) -
		kingBonus(bKing, wKing, pos.Piece(board.White, board.Queen) != 0)

	if turn == board.Black {
		return -score
	}
	return score
}

func pawnBonus(pos *board.Position, c board.Color, king board.Square) Score {
	var bonus Score
	for _, sq := range pos.Piece(c, board.Pawn).Squares() {
		rank := int(sq.Rank())
		if c == board.White {
			bonus += Score(rank-1) * pawnRankWeight
		} else {
			bonus += Score(6-rank) * pawnRankWeight
		}

		file := int(sq.File())
		switch {
		case file < 3:
			bonus -= Score(3-file) * pawnFileWeight
		case file > 4:
			bonus -= Score(file-4) * pawnFileWeight
		}

		bonus += occupyingCenterBonus(sq, pawnCenterWeight)
		bonus += distanceFromKingBonus(sq, king, pawnDistanceWeight)
	}
	return bonus
}

func knightBonus(pos *board.Position, c board.Color, king board.Square) Score {
	var bonus Score
	for _, sq := range pos.Piece(c, board.Knight).Squares() {
		bonus += occupyingCenterBonus(sq, knightCenterWeight)
		bonus += distanceFromKingBonus(sq, king, knightDistanceWeight)
	}
	return bonus
}

func bishopBonus(pos *board.Position, c board.Color, king board.Square) Score {
	var bonus Score
	for _, sq := range pos.Piece(c, board.Bishop).Squares() {
		bonus += occupyingCenterBonus(sq, bishopCenterWeight)
		bonus += distanceFromKingBonus(sq, king, knightDistanceWeight) // matches original's reuse of the knight weight
	}
	return bonus
}

func rookBonus(pos *board.Position, c board.Color, king board.Square) Score {
	var bonus Score
	for _, sq := range pos.Piece(c, board.Rook).Squares() {
		file := int(sq.File())
		if file >= 3 && file <= 4 {
			bonus += rookCenterWeight
		}
		if file >= 2 && file <= 5 {
			bonus += rookCenterWeight
		}
		if file >= 1 && file <= 6 {
			bonus += rookCenterWeight
		}
		bonus += distanceFromKingBonus(sq, king, rookDistanceWeight)
	}
	return bonus
}

func queenBonus(pos *board.Position, c board.Color, king board.Square) Score {
	var bonus Score
	for _, sq := range pos.Piece(c, board.Queen).Squares() {
		bonus += occupyingCenterBonus(sq, queenCenterWeight)
		bonus += distanceFromKingBonus(sq, king, queenDistanceWeight)
	}
	return bonus
}

func kingBonus(king, opponentKing board.Square, opponentHasQueen bool) Score {
	if king == board.NoSquare || opponentKing == board.NoSquare {
		return 0
	}

	weight := kingCenterWeight
	if opponentHasQueen {
		weight = -kingCenterWeight
	}

	return occupyingCenterBonus(king, weight) + distanceFromKingBonus(king, opponentKing, kingDistanceWeight)
}

func occupyingCenterBonus(sq board.Square, bonus Score) Score {
	rank, file := int(sq.Rank()), int(sq.File())
	switch {
	case rank >= 3 && rank <= 4 && file >= 3 && file <= 4:
		return 3 * bonus
	case rank >= 2 && rank <= 5 && file >= 2 && file <= 5:
		return 2 * bonus
	case rank >= 1 && rank <= 6 && file >= 1 && file <= 6:
		return bonus
	default:
		return 0
	}
}

func distanceFromKingBonus(sq, king board.Square, bonus Score) Score {
	if king == board.NoSquare {
		return 0
	}

	distance := abs(int(sq.Rank())-int(king.Rank())) + abs(int(sq.File())-int(king.File()))
	if distance == 0 {
		distance = 1
	}
	return Score(14/distance)*bonus - bonus
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
