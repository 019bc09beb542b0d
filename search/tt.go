package search

import "github.com/vantage-chess/vantage/board"

// Bound classifies how a stored score relates to the window it was
// produced under.
type Bound uint8

const (
	BoundExact Bound = iota + 1
	BoundLower
	BoundUpper
)

// MinPly is the minimum root distance at which a TT probe may be trusted,
// guarding against early-root pollution and repetition edge cases.
const MinPly = 2

type ttEntry struct {
	key32 uint32
	move  board.Move
	score int16
	depth int8
	bound Bound
}

// TranspositionTable is a direct-mapped, fixed-capacity, replace-always
// cache of previously searched positions, keyed by Zobrist hash.
type TranspositionTable struct {
	entries []ttEntry
	mask    uint32
}

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

// NewTranspositionTable allocates a table sized to approximately megabytes.
func NewTranspositionTable(megabytes int) *TranspositionTable {
	const bytesPerEntry = 16
	var size = roundPowerOfTwo(1024 * 1024 * megabytes / bytesPerEntry)
	if size < 1 {
		size = 1
	}
	return &TranspositionTable{
		entries: make([]ttEntry, size),
		mask:    uint32(size - 1),
	}
}

// Clear zeroes every entry.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = ttEntry{}
	}
}

func (tt *TranspositionTable) entry(hash uint64) *ttEntry {
	return &tt.entries[uint32(hash)&tt.mask]
}

// Store records score (already the value returned for the completed node,
// i.e. window.GetBoundScore(color) after search) against pos, deriving the
// bound flag from the window as it stood before this node's search
// mutated it. Mate scores are adjusted to be relative to this node so a
// probe at a different ply can re-adjust them relative to its own root.
func (tt *TranspositionTable) Store(pos *board.Position, depth, ply int, original Window, score int, move board.Move) {
	var bound Bound
	switch {
	case score >= original.Beta:
		bound = BoundLower
	case score <= original.Alpha:
		bound = BoundUpper
	default:
		bound = BoundExact
	}

	var e = tt.entry(pos.Hash())
	e.key32 = uint32(pos.Hash() >> 32)
	e.move = move
	e.score = int16(clampScore(scoreToTT(score, ply)))
	e.depth = int8(depth)
	e.bound = bound
}

// GetScore probes the table, returning a usable score only when the
// stored entry matches pos's hash, was stored at depth >= requested depth,
// and its bound is consistent with window.
func (tt *TranspositionTable) GetScore(pos *board.Position, depth, ply int, window Window) (score int, ok bool) {
	var e = tt.entry(pos.Hash())
	if e.key32 != uint32(pos.Hash()>>32) {
		return 0, false
	}
	if int(e.depth) < depth {
		return 0, false
	}
	var stored = scoreFromTT(int(e.score), ply)
	switch e.bound {
	case BoundExact:
		return stored, true
	case BoundLower:
		if stored >= window.Beta {
			return stored, true
		}
	case BoundUpper:
		if stored <= window.Alpha {
			return stored, true
		}
	}
	return 0, false
}

// SeedMove installs move as pos's TT-move hint ahead of a fresh iteration
// without asserting anything about its score: depth is left at 0 so
// GetScore never trusts it, only GetBestMove's move-ordering hint sees it.
func (tt *TranspositionTable) SeedMove(pos *board.Position, move board.Move) {
	var e = tt.entry(pos.Hash())
	var newer = e.key32 != uint32(pos.Hash()>>32) || e.depth == 0
	if !newer {
		return
	}
	e.key32 = uint32(pos.Hash() >> 32)
	e.move = move
	e.depth = 0
	e.bound = BoundExact
	e.score = 0
}

// GetBestMove returns the move stored for pos, if any.
func (tt *TranspositionTable) GetBestMove(pos *board.Position) (board.Move, bool) {
	var e = tt.entry(pos.Hash())
	if e.key32 != uint32(pos.Hash()>>32) {
		return board.MoveEmpty, false
	}
	return e.move, e.move != board.MoveEmpty
}

func scoreToTT(score, ply int) int {
	if score > MateBase {
		return score + ply
	}
	if score < -MateBase {
		return score - ply
	}
	return score
}

func scoreFromTT(score, ply int) int {
	if score > MateBase {
		return score - ply
	}
	if score < -MateBase {
		return score + ply
	}
	return score
}
