package search

import "github.com/vantage-chess/vantage/board"

// Search is the principal-variation alpha-beta driver: it consults the
// transposition table, orders moves, recurses on children, and folds in
// the pruning/reduction catalog from the design notes' §4.9 table.
func (c *Context) Search(pos *board.Position, ply, depth int, window Window) (int, []board.Move) {
	if c.aborted || (c.rootDepth > 1 && c.Aborted()) {
		return 0, nil
	}

	if depth <= 0 {
		return c.QSearch(pos, ply, 1, window), nil
	}

	var rootNode = ply == 0
	var color = pos.WhiteMove

	if !rootNode {
		if ply >= maxPly {
			return c.evaluate(pos), nil
		}
		if ply <= 2 && c.isRepetition(pos) {
			return 0, nil
		}
		if c.isDraw(pos) {
			return 0, nil
		}
	}

	c.countNode(ply)

	var inCheck = pos.IsCheck()

	var ttMove board.Move
	if m, ok := c.TT.GetBestMove(pos); ok {
		ttMove = m
	}
	if ply >= MinPly {
		if score, ok := c.TT.GetScore(pos, depth, ply, window); ok {
			return score, nil
		}
	}

	var original = window

	// Razoring: not a cutoff, a depth reduction applied in place.
	if !inCheck && ply >= c.Config.RazorMinPly && depth == c.Config.RazorDepth {
		var sign = signOf(color)
		var margin = c.Config.RazorMargin * depth * sign
		var qWindow = window.GetLowerBound(color)
		var qScore = c.QSearch(pos, ply+2, 1, qWindow)
		if window.FailsLow(qScore+margin, color) {
			depth -= 2
			ply += 2
		}
	}

	// Null-move pruning.
	if !inCheck && !rootNode &&
		depth >= c.Config.NmpMinDepth && ply >= c.Config.NmpMinPly &&
		!IsMateScore(c.prevScore) && window.CanFailHigh(color) {
		var reduction = 2
		if ply > 4 {
			reduction = 3
		}
		var child = pos.GetNullChild()
		var nullWindow = window.GetUpperBound(color)
		var score, _ = c.Search(&child, ply+1, depth-reduction-1, nullWindow)
		if window.FailsHigh(score, color) {
			return score, nil
		}
	}

	var buffer [board.MaxMoves]board.Move
	var moves = orderMoves(buffer[:], pos, c.History, ttMove, ply)

	var expanded = 0
	var best = window.GetBoundScore(color)
	var haveBest = false
	var bestMove board.Move
	var bestPV []board.Move

	for _, om := range moves {
		var move = om.Move
		var isQuiet = move.IsQuiet()

		var child, ok = pos.DoMove(move)
		if !ok {
			continue
		}
		expanded++

		if isQuiet {
			c.History.AddVisited(pos, move)
		}

		var interesting = expanded == 1 || inCheck || child.IsCheck()
		var sEval = c.evaluate(&child)

		if !rootNode && !interesting {
			if ply >= c.Config.FutilityMinPly && depth <= c.Config.FutilityMaxDepth &&
				window.FailsLow(sEval+c.Config.FutilityMargin(depth)*signOf(color), color) {
				continue
			}
			if ply >= c.Config.RfpMinPly && depth <= c.Config.RfpMaxDepth &&
				window.FailsHigh(sEval-c.Config.RfpMargin(depth)*signOf(color), color) {
				continue
			}
		}

		var childDepth = depth - 1
		var score int
		var pv []board.Move

		if ply >= c.Config.LmrMinPly && depth >= c.Config.LmrMinDepth &&
			expanded >= c.Config.LmrMinExpanded && !interesting {
			var reduction = 3
			if int(c.History.GetRep(pos, move)) < c.Config.LmrHistThresh {
				reduction = 4
			}
			var reducedDepth = childDepth - reduction
			if reducedDepth < 1 {
				reducedDepth = 1
			}
			var nullWindow = window.GetLowerBound(color)
			score, _ = c.Search(&child, ply+1, reducedDepth, nullWindow)
			if window.FailsLow(score, color) {
				if isQuiet {
					c.History.DecreaseQRep(pos, move, depth)
				}
				continue
			}
		}

		score, pv = c.Search(&child, ply+1, childDepth, window)

		if window.FailsLow(score, color) {
			if isQuiet {
				c.History.DecreaseQRep(pos, move, depth)
			}
			continue
		}

		haveBest = true
		best = score
		bestMove = move
		bestPV = append([]board.Move{move}, pv...)

		if window.TryCutoff(score, color) {
			if isQuiet {
				c.History.IncreaseQRep(pos, move, depth)
				c.History.AddKiller(move, ply)
			}
			break
		}
	}

	if expanded == 0 {
		if inCheck {
			return GetMateScore(color, ply), nil
		}
		return 0, nil
	}

	if !haveBest {
		best = window.GetBoundScore(color)
	}
	if !inCheck && !IsMateScore(best) {
		c.History.UpdatePawnCorrHist(pos, best, c.evaluate(pos), depth)
	}
	c.TT.Store(pos, depth, ply, original, best, bestMove)
	return best, bestPV
}

func signOf(color bool) int {
	if color {
		return 1
	}
	return -1
}
