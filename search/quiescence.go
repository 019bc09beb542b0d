package search

import "github.com/vantage-chess/vantage/board"

// QSearch is the captures-only (plus check-evasion) extension that
// stabilizes leaf evaluation before it's trusted by the PV search.
// qDepth counts down from the qsearch entry point and gates check-move
// generation: only the first ply of a capture chase also considers quiet
// checking moves, matching the teacher's InitQMoves(genChecks: depth > 0).
func (c *Context) QSearch(pos *board.Position, ply, qDepth int, window Window) int {
	if c.aborted || (c.rootDepth > 1 && c.Aborted()) {
		return 0
	}
	c.countNode(ply)

	var color = pos.WhiteMove
	if ply >= c.maxQSearchDepth {
		return Evaluate(pos)
	}

	var inCheck = pos.IsCheck()
	var standPat int
	if !inCheck {
		standPat = c.evaluate(pos)
		if window.TryCutoff(standPat, color) {
			return window.GetBoundScore(color)
		}
	}

	var onlyCaptures = !inCheck || ply >= c.maxQSearchDepth-3
	var buffer [board.MaxMoves]board.Move
	var moves []board.Move
	if onlyCaptures {
		moves = board.GenerateCaptures(buffer[:], pos, !inCheck && qDepth > 0)
	} else {
		moves = board.GenerateMoves(buffer[:], pos)
	}

	if len(moves) == 0 {
		if !inCheck {
			return standPat
		}
		if !onlyCaptures {
			return GetMateScore(color, ply)
		}
		var all = pos.GenerateLegalMoves(false)
		if len(all) == 0 {
			return GetMateScore(color, ply)
		}
		if color {
			return standPat - 100
		}
		return standPat + 100
	}

	sortCaptures(moves, pos)

	var sign = 1
	if !color {
		sign = -1
	}

	for _, move := range moves {
		if onlyCaptures && ply >= c.rootDepth+4 {
			var deltaMargin = (c.maxQSearchDepth - ply) * c.Config.DeltaMargin * sign
			var capturedValue = pieceValues[move.CapturedPiece()] * 100
			if window.FailsLow(standPat+capturedValue+deltaMargin, color) {
				continue
			}
		}

		var child, ok = pos.DoMove(move)
		if !ok {
			continue
		}

		var childScore = c.QSearch(&child, ply+1, qDepth-1, window)
		if window.TryCutoff(childScore, color) {
			break
		}
	}

	return window.GetBoundScore(color)
}

func sortCaptures(moves []board.Move, pos *board.Position) {
	var ordered = make([]board.OrderedMove, len(moves))
	for i, m := range moves {
		ordered[i] = board.OrderedMove{Move: m, Key: mvvLva(m)}
	}
	sortMoves(ordered)
	for i, om := range ordered {
		moves[i] = om.Move
	}
}
