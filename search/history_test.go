package search

import (
	"testing"

	"github.com/vantage-chess/vantage/board"
)

func firstQuietMove(t *testing.T, pos *board.Position) board.Move {
	t.Helper()
	for _, m := range pos.GenerateLegalMoves(false) {
		if m.IsQuiet() {
			return m
		}
	}
	t.Fatal("expected at least one quiet move from the initial position")
	return board.MoveEmpty
}

func TestHistoryIncreaseQRepRaisesGetRep(t *testing.T) {
	var pos, err = board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var h = NewHistory()
	var move = firstQuietMove(t, &pos)

	if h.GetRep(&pos, move) != 0 {
		t.Fatal("a never-visited move should score 0")
	}
	h.IncreaseQRep(&pos, move, 6)
	if h.GetRep(&pos, move) <= 0 {
		t.Error("a rewarded move should score above 0")
	}
}

func TestHistoryDecreaseQRepLowersGetRep(t *testing.T) {
	var pos, err = board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var h = NewHistory()
	var move = firstQuietMove(t, &pos)

	h.IncreaseQRep(&pos, move, 6)
	var afterIncrease = h.GetRep(&pos, move)
	h.DecreaseQRep(&pos, move, 6)
	var afterDecrease = h.GetRep(&pos, move)
	if afterDecrease >= afterIncrease {
		t.Errorf("decrease should lower the score: after increase=%d, after decrease=%d", afterIncrease, afterDecrease)
	}
}

func TestHistoryShrinkHalvesQuietScores(t *testing.T) {
	var pos, err = board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var h = NewHistory()
	var move = firstQuietMove(t, &pos)
	h.IncreaseQRep(&pos, move, 10)

	var end, idx = h.index(&pos, move)
	var before = h.QuietScores[end][idx]
	h.Shrink()
	var after = h.QuietScores[end][idx]
	if after != before/2 {
		t.Errorf("shrink should halve quiet scores: before=%d after=%d", before, after)
	}
	if h.ButterflyScores[end][idx] > 1 {
		t.Error("shrink should saturate butterfly counters to at most 1")
	}
}

func TestHistoryKillersMoveToFrontDedupe(t *testing.T) {
	var h = NewHistory()
	var a = board.Move(1)
	var b = board.Move(2)

	h.AddKiller(a, 0)
	h.AddKiller(b, 0)
	var k1, k2 = h.Killers(0)
	if k1 != b || k2 != a {
		t.Errorf("expected killers (b, a), got (%v, %v)", k1, k2)
	}

	h.AddKiller(a, 0)
	k1, k2 = h.Killers(0)
	if k1 != a {
		t.Errorf("re-inserting an existing killer should move it to the front, got k1=%v", k1)
	}
}

func TestHistoryExpandGrowsKillerSlots(t *testing.T) {
	var h = NewHistory()
	var before = len(h.killers)
	h.Expand(50)
	if len(h.killers) <= before {
		t.Error("expand to a much larger depth should grow the killer table")
	}
}

func TestPawnCorrectionShallowDepthIsANoOp(t *testing.T) {
	var pos, err = board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var h = NewHistory()
	h.UpdatePawnCorrHist(&pos, 300, 100, 2)
	if h.GetPawnCorrection(&pos) != 0 {
		t.Error("depth <= 2 should leave the correction table untouched")
	}
}

// TestPawnCorrectionSelfCancelsForOnePosition documents a direct
// consequence of §4.4's update rule: a single position's own WHITE and
// BLACK buckets are always nudged by the same magnitude in opposite
// directions, so GetPawnCorrection sums back to zero for that position
// regardless of how many times it alone is updated. A nonzero correction
// only emerges once other positions' pawn structures collide into the
// same buckets (mod 2^20) with a different sign.
func TestPawnCorrectionSelfCancelsForOnePosition(t *testing.T) {
	var pos, err = board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var h = NewHistory()
	h.UpdatePawnCorrHist(&pos, 300, 100, 10)
	h.UpdatePawnCorrHist(&pos, 50, 400, 12)
	if h.GetPawnCorrection(&pos) != 0 {
		t.Errorf("expected the self-cancelling sum to stay 0, got %d", h.GetPawnCorrection(&pos))
	}
}
