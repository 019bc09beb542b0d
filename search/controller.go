package search

import (
	"time"

	"github.com/vantage-chess/vantage/board"
)

// Result is one completed iteration's report, the shape the UCI layer
// turns into "info depth ... seldepth ... score ... nodes ... time ...
// pv ..." lines.
type Result struct {
	Depth         int
	AchievedDepth int
	Score         int
	PV            []board.Move
	Nodes         int64
	Elapsed       time.Duration
}

// SearchDeeper runs one more iterative-deepening iteration on top of
// whatever the previous call to SearchDeeper (or Reset) left behind,
// grounded on the teacher's Engine.Search main loop.
func (c *Context) SearchDeeper(pos *board.Position, prevPV []board.Move) Result {
	c.rootDepth++
	c.PrepareIteration(c.rootDepth)

	if len(prevPV) > 0 {
		c.seedTT(pos, prevPV, c.rootDepth)
	}

	var score, pv = c.Search(pos, 0, c.rootDepth, Infinite())

	c.prevScore = score
	return Result{
		Depth:         c.rootDepth,
		AchievedDepth: c.achievedDepth,
		Score:         score,
		PV:            pv,
		Nodes:         c.nodes,
		Elapsed:       time.Since(c.start),
	}
}

// seedTT replays the previous iteration's PV back into the transposition
// table as move-ordering hints (SeedMove), so the new iteration's move
// ordering finds them immediately instead of re-discovering the line. No
// score, bound or depth is stored for them; at most depth moves of the
// line are replayed.
func (c *Context) seedTT(pos *board.Position, pv []board.Move, depth int) {
	var cur = *pos
	for i, move := range pv {
		var d = depth - i
		if d < 1 {
			break
		}
		c.TT.SeedMove(&cur, move)
		var child, ok = cur.DoMove(move)
		if !ok {
			break
		}
		cur = child
	}
}

// Driver runs iterative deepening from the root position until the
// controller aborts (node or time budget exhausted) or maxDepth is
// reached, returning the last completed iteration's result. Depth 1
// always completes: Context.Search and QSearch only consult Aborted() once
// rootDepth > 1.
func (c *Context) Driver(pos *board.Position, maxDepth int, maxNodes int64, timeBudgetMs int64) Result {
	c.Reset()
	c.SetLimits(maxNodes, msToDuration(timeBudgetMs))

	var last Result
	var pv []board.Move
	for depth := 1; depth <= maxDepth; depth++ {
		var result = c.SearchDeeper(pos, pv)
		if depth > 1 && c.Aborted() {
			break
		}
		last = result
		pv = result.PV
		if c.Aborted() {
			break
		}
		if IsMateScore(result.Score) {
			break
		}
	}
	return last
}
