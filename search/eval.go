package search

import "github.com/vantage-chess/vantage/board"

// score packs a middlegame/endgame pair into one int64, grounded on the
// teacher's mg<<32+eg encoding: cheap to add across many terms, split
// apart only once at the end of evaluation.
type score int64

func s(mg, eg int) score {
	return score(mg)<<32 + score(int32(eg))
}

func (v score) mg() int { return int(int32((v + 1<<31) >> 32)) }
func (v score) eg() int { return int(int32(v)) }

// pst holds middlegame/endgame piece-square values in a canonical
// orientation; Evaluate reaches into it through two deliberately
// different square transforms for WHITE and BLACK (see pstIndexWhite /
// pstIndexBlack) rather than one shared mirror, preserving the
// evaluator's original table orientation exactly.
var pst = [7][64]score{
	board.Pawn: {
		s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0),
		s(5, 10), s(10, 10), s(10, 10), s(-20, 10), s(-20, 10), s(10, 10), s(10, 10), s(5, 10),
		s(5, 5), s(-5, 5), s(-10, 5), s(0, 5), s(0, 5), s(-10, 5), s(-5, 5), s(5, 5),
		s(0, 10), s(0, 10), s(0, 10), s(20, 15), s(20, 15), s(0, 10), s(0, 10), s(0, 10),
		s(5, 20), s(5, 20), s(10, 20), s(25, 25), s(25, 25), s(10, 20), s(5, 20), s(5, 20),
		s(10, 35), s(10, 35), s(20, 35), s(30, 40), s(30, 40), s(20, 35), s(10, 35), s(10, 35),
		s(50, 55), s(50, 55), s(50, 55), s(50, 55), s(50, 55), s(50, 55), s(50, 55), s(50, 55),
		s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0),
	},
	board.Knight: {
		s(-50, -40), s(-40, -30), s(-30, -20), s(-30, -20), s(-30, -20), s(-30, -20), s(-40, -30), s(-50, -40),
		s(-40, -30), s(-20, -20), s(0, -5), s(5, 0), s(5, 0), s(0, -5), s(-20, -20), s(-40, -30),
		s(-30, -20), s(5, -5), s(10, 10), s(15, 15), s(15, 15), s(10, 10), s(5, -5), s(-30, -20),
		s(-30, -20), s(0, 0), s(15, 15), s(20, 20), s(20, 20), s(15, 15), s(0, 0), s(-30, -20),
		s(-30, -20), s(5, 0), s(15, 15), s(20, 20), s(20, 20), s(15, 15), s(5, 0), s(-30, -20),
		s(-30, -20), s(0, -5), s(10, 10), s(15, 15), s(15, 15), s(10, 10), s(0, -5), s(-30, -20),
		s(-40, -30), s(-20, -20), s(0, -5), s(0, 0), s(0, 0), s(0, -5), s(-20, -20), s(-40, -30),
		s(-50, -40), s(-40, -30), s(-30, -20), s(-30, -20), s(-30, -20), s(-30, -20), s(-40, -30), s(-50, -40),
	},
	board.Bishop: {
		s(-20, -15), s(-10, -10), s(-10, -10), s(-10, -10), s(-10, -10), s(-10, -10), s(-10, -10), s(-20, -15),
		s(-10, -10), s(5, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(5, 0), s(-10, -10),
		s(-10, -10), s(10, 0), s(10, 5), s(10, 5), s(10, 5), s(10, 5), s(10, 0), s(-10, -10),
		s(-10, -10), s(0, 0), s(10, 5), s(10, 10), s(10, 10), s(10, 5), s(0, 0), s(-10, -10),
		s(-10, -10), s(5, 0), s(5, 5), s(10, 10), s(10, 10), s(5, 5), s(5, 0), s(-10, -10),
		s(-10, -10), s(0, 0), s(5, 5), s(10, 5), s(10, 5), s(5, 5), s(0, 0), s(-10, -10),
		s(-10, -10), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(-10, -10),
		s(-20, -15), s(-10, -10), s(-10, -10), s(-10, -10), s(-10, -10), s(-10, -10), s(-10, -10), s(-20, -15),
	},
	board.Rook: {
		s(0, 5), s(0, 5), s(0, 5), s(5, 5), s(5, 5), s(0, 5), s(0, 5), s(0, 5),
		s(-5, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(-5, 0),
		s(-5, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(-5, 0),
		s(-5, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(-5, 0),
		s(-5, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(-5, 0),
		s(-5, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(-5, 0),
		s(5, 5), s(10, 5), s(10, 5), s(10, 5), s(10, 5), s(10, 5), s(10, 5), s(5, 5),
		s(0, 5), s(0, 5), s(0, 5), s(5, 5), s(5, 5), s(0, 5), s(0, 5), s(0, 5),
	},
	board.Queen: {
		s(-20, -20), s(-10, -10), s(-10, -10), s(-5, -5), s(-5, -5), s(-10, -10), s(-10, -10), s(-20, -20),
		s(-10, -10), s(0, 0), s(5, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(-10, -10),
		s(-10, -10), s(5, 0), s(5, 5), s(5, 5), s(5, 5), s(5, 5), s(0, 0), s(-10, -10),
		s(0, -5), s(0, 0), s(5, 5), s(5, 5), s(5, 5), s(5, 5), s(0, 0), s(-5, -5),
		s(0, -5), s(0, 0), s(5, 5), s(5, 5), s(5, 5), s(5, 5), s(0, 0), s(-5, -5),
		s(-10, -10), s(0, 0), s(5, 5), s(5, 5), s(5, 5), s(5, 5), s(0, 0), s(-10, -10),
		s(-10, -10), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(-10, -10),
		s(-20, -20), s(-10, -10), s(-10, -10), s(-5, -5), s(-5, -5), s(-10, -10), s(-10, -10), s(-20, -20),
	},
	board.King: {
		s(20, -50), s(30, -30), s(10, -30), s(0, -30), s(0, -30), s(10, -30), s(30, -30), s(20, -50),
		s(20, -30), s(20, -30), s(0, 0), s(0, 0), s(0, 0), s(0, 0), s(20, -30), s(20, -30),
		s(-10, -30), s(-20, -10), s(-20, 20), s(-20, 30), s(-20, 30), s(-20, 20), s(-20, -10), s(-10, -30),
		s(-20, -30), s(-30, -10), s(-30, 30), s(-40, 40), s(-40, 40), s(-30, 30), s(-30, -10), s(-20, -30),
		s(-30, -30), s(-40, -10), s(-40, 30), s(-50, 40), s(-50, 40), s(-40, 30), s(-40, -10), s(-30, -30),
		s(-30, -30), s(-40, -10), s(-40, 20), s(-50, 30), s(-50, 30), s(-40, 20), s(-40, -10), s(-30, -30),
		s(-30, -30), s(-40, -20), s(-40, -10), s(-50, 0), s(-50, 0), s(-40, -10), s(-40, -20), s(-30, -30),
		s(-30, -50), s(-40, -40), s(-40, -30), s(-50, -20), s(-50, -20), s(-40, -30), s(-40, -40), s(-30, -50),
	},
}

func pstIndexWhite(sq int) int { return 63 - sq }
func pstIndexBlack(sq int) int { return board.Rank(sq)*8 + (7 - board.File(sq)) }

const (
	bishopPairBonus  = 35
	doublePawnPenalty = -6
	isolatedPenalty  = -21
	isolatedDFile    = -4
	connectedPawnUnit = 9
	blockedPawnPenalty = -4
	sideToMoveBonus  = 5
	dFile            = board.FileD
)

// Evaluate returns a color-relative static score: positive favors WHITE.
func Evaluate(pos *board.Position) int {
	var acc score
	var totalPieces = board.PopCount(pos.Pawns|pos.Knights|pos.Bishops|pos.Rooks|pos.Queens|pos.Kings)

	for x := pos.White; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		acc += pst[pos.WhatPiece(sq)][pstIndexWhite(sq)]
	}
	for x := pos.Black; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		acc -= pst[pos.WhatPiece(sq)][pstIndexBlack(sq)]
	}

	var n = totalPieces
	if n > 32 {
		n = 32
	}
	var result = acc.mg()*n/32 + acc.eg()*(32-n)/32

	result += pawnStructure(pos, true) - pawnStructure(pos, false)

	var whiteKnights = board.PopCount(pos.Knights & pos.White)
	var blackKnights = board.PopCount(pos.Knights & pos.Black)
	result += whiteKnights * -(n / 2)
	result -= blackKnights * -(n / 2)

	if board.PopCount(pos.Bishops&pos.White) >= 2 {
		result += bishopPairBonus
	}
	if board.PopCount(pos.Bishops&pos.Black) >= 2 {
		result -= bishopPairBonus
	}

	result += rookScore(pos, true, n) - rookScore(pos, false, n)
	result += kingSafety(pos, true) - kingSafety(pos, false)

	if pos.WhiteMove {
		result += sideToMoveBonus
	} else {
		result -= sideToMoveBonus
	}

	return clampScore(result)
}

func pawnStructure(pos *board.Position, color bool) int {
	var ownPawns = pos.Pawns & pos.Occupied(color)
	var result = 0

	for file := 0; file < 8; file++ {
		var f = board.PopCount(ownPawns & board.FileMask[file])
		if f == 0 {
			continue
		}
		result += (f - 1) * doublePawnPenalty

		var adjacent = board.FileMask[file]
		if file > 0 {
			adjacent |= board.FileMask[file-1]
		}
		if file < 7 {
			adjacent |= board.FileMask[file+1]
		}
		var a = board.PopCount(ownPawns & adjacent)
		if f == a {
			result += isolatedPenalty
			if file == dFile {
				result += isolatedDFile
			}
		}
	}

	for x := ownPawns; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		var inOpponentHalf bool
		if color {
			inOpponentHalf = sq >= 40
		} else {
			inOpponentHalf = sq <= 23
		}
		if inOpponentHalf {
			result += connectedPawnUnit * board.PopCount(board.PawnAttacks(sq, color)&ownPawns)
		}

		var forward int
		if color {
			forward = sq + 8
		} else {
			forward = sq - 8
		}
		if forward >= 0 && forward < 64 && (board.SquareMask[forward]&pos.Occupied(color)) != 0 {
			result += blockedPawnPenalty
		}
	}

	return result
}

func rookScore(pos *board.Position, color bool, n int) int {
	var result = 0
	var ownRooks = pos.Rooks & pos.Occupied(color)
	var ownPawns = pos.Pawns & pos.Occupied(color)
	var allPawns = pos.Pawns

	for x := ownRooks; x != 0; x &= x - 1 {
		var sq = board.FirstOne(x)
		result += (32 - n) / 2

		var file = board.File(sq)
		if board.PopCount(allPawns&board.FileMask[file]) == 0 {
			result += 18
		} else if board.PopCount(ownPawns&board.FileMask[file]) == 0 {
			result += 7
		}
	}

	return result
}

func kingSafety(pos *board.Position, color bool) int {
	var kingSq = board.FirstOne(pos.Kings & pos.Occupied(color))
	return 2 * board.PopCount(board.KingAttacks[kingSq]&pos.Occupied(color))
}
