package search

import (
	"time"

	"github.com/vantage-chess/vantage/board"
)

// Context is the SearchContext design notes §9 calls for: everything the
// PV search, quiescence and move ordering share across one root search,
// owned by the controller and passed through search frames instead of
// living in package-level globals.
type Context struct {
	TT      *TranspositionTable
	History *History
	Config  Config

	// DrawKeys counts occurrences of position hashes seen on the path to
	// the root (including earlier moves in the game), maintained by the
	// caller; a count >= 2 at ply 1 or 2 is treated as a repetition draw.
	DrawKeys map[uint64]int

	rootDepth       int
	maxQSearchDepth int
	prevScore       int

	nodes         int64
	maxNodes      int64
	achievedDepth int
	start         time.Time
	timeBudget    time.Duration
	aborted       bool
}

// NewContext builds a Context with a fresh TT and history, ready for the
// first root search.
func NewContext(megabytes int) *Context {
	return &Context{
		TT:      NewTranspositionTable(megabytes),
		History: NewHistory(),
		Config:  DefaultConfig(),
	}
}

// Reset zeroes every heuristic table, called once before a fresh root
// search on a genuinely new position (as opposed to the next iteration of
// the same one).
func (c *Context) Reset() {
	c.TT.Clear()
	c.History.Clear()
	c.nodes = 0
	c.achievedDepth = 0
	c.aborted = false
	c.prevScore = 0
	c.rootDepth = 0
}

// PrepareIteration advances the controller's notion of the current
// iteration before a SearchDeeper call.
func (c *Context) PrepareIteration(depth int) {
	c.rootDepth = depth
	c.maxQSearchDepth = depth + MaxQSearchDepth
	c.nodes = 0
	c.achievedDepth = 0
	c.History.Expand(depth)
	c.History.Shrink()
}

// SetLimits installs the node cap and time budget for the whole root
// search (all iterations).
func (c *Context) SetLimits(maxNodes int64, timeBudget time.Duration) {
	c.maxNodes = maxNodes
	c.timeBudget = timeBudget
	c.start = time.Now()
	c.aborted = false
}

func msToDuration(ms int64) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Context) countNode(ply int) {
	c.nodes++
	if ply > c.achievedDepth {
		c.achievedDepth = ply
	}
}

// Aborted reports whether the node or time budget has been exceeded.
// Depth 1 must always complete, so callers are expected to suppress this
// check while rootDepth == 1.
func (c *Context) Aborted() bool {
	if c.aborted {
		return true
	}
	if c.maxNodes > 0 && c.nodes >= c.maxNodes {
		c.aborted = true
		return true
	}
	if c.timeBudget > 0 && time.Since(c.start) >= c.timeBudget {
		c.aborted = true
		return true
	}
	return false
}

func (c *Context) evaluate(pos *board.Position) int {
	var raw = Evaluate(pos)
	var correction = c.History.GetPawnCorrection(pos)
	return clampScore(raw + correction)
}

func (c *Context) isDraw(pos *board.Position) bool {
	if pos.Rule50 > 100 {
		return true
	}
	if (pos.Pawns|pos.Rooks|pos.Queens) == 0 && !board.MoreThanOne(pos.Knights|pos.Bishops) {
		return true
	}
	return false
}

func (c *Context) isRepetition(pos *board.Position) bool {
	return c.DrawKeys[pos.Hash()] >= 2
}
