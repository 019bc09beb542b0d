// Package search implements the principal-variation alpha-beta search core:
// transposition table, move ordering, history/killers, quiescence, and the
// pruning/reduction catalog driving iterative deepening.
package search

// Score bounds. Values in (MateBase, MateScore] and their negatives encode
// "mate in N plies"; everything else is a centipawn-ish evaluation.
const (
	MinScore  = -32000
	MaxScore  = 32000
	MateScore = 9999
	MateBase  = 9000

	MaxQSearchDepth = 10

	stackSize = 128
	maxPly    = stackSize - 1
)

// IsMateScore reports whether s encodes a forced mate.
func IsMateScore(s int) bool {
	return s > MateBase || s < -MateBase
}

// GetMateScore returns the score, from WHITE's perspective, of color being
// mated at ply. A WHITE-to-move side with no legal moves under check loses,
// so the score is negative; the mirror holds for BLACK.
func GetMateScore(color bool, ply int) int {
	if color {
		return -(MateScore - ply)
	}
	return MateScore - ply
}

func clampScore(v int) int {
	if v > MaxScore-1 {
		return MaxScore - 1
	}
	if v < MinScore+1 {
		return MinScore + 1
	}
	return v
}

// Config exposes the pruning-margin table of the reference tunings as
// named, overridable fields rather than constants sprinkled through the
// search code.
type Config struct {
	RazorMinPly    int
	RazorDepth     int
	RazorMargin    int
	NmpMinDepth    int
	NmpMinPly      int
	FutilityMinPly int
	FutilityMaxDepth int
	RfpMinPly      int
	RfpMaxDepth    int
	LmrMinPly      int
	LmrMinDepth    int
	LmrMinExpanded int
	LmrHistThresh  int
	DeltaMargin    int
}

// DefaultConfig returns the reference tunings from the pruning catalog.
func DefaultConfig() Config {
	var c = Config{
		RazorMinPly:      3,
		RazorDepth:       4,
		RazorMargin:      165,
		NmpMinDepth:      0,
		NmpMinPly:        2,
		FutilityMinPly:   1,
		FutilityMaxDepth: 8,
		RfpMinPly:        1,
		RfpMaxDepth:      8,
		LmrMinPly:        1,
		LmrMinDepth:      3,
		LmrMinExpanded:   2,
		LmrHistThresh:    -1320,
		DeltaMargin:      81,
	}
	return c
}

func (c *Config) FutilityMargin(depth int) int {
	return 100 + 100*depth
}

func (c *Config) RfpMargin(depth int) int {
	return 100 * depth
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
