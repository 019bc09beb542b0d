package search

import (
	"testing"

	"github.com/vantage-chess/vantage/board"
)

func TestSearchMateInOne(t *testing.T) {
	var pos, err = board.NewPositionFromFEN("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var ctx = NewContext(4)
	var result = ctx.Driver(&pos, 4, 0, 0)

	if len(result.PV) == 0 {
		t.Fatal("expected a non-empty PV")
	}
	if result.PV[0].String() != "a1a8" {
		t.Errorf("expected Ra8#, got %s", result.PV[0].String())
	}
	if !IsMateScore(result.Score) {
		t.Errorf("expected a mate score, got %d", result.Score)
	}
	if result.Score <= 0 {
		t.Errorf("mate in 1 for WHITE should be a positive score, got %d", result.Score)
	}
}

func TestSearchStalemateIsZero(t *testing.T) {
	// K+Q vs K, black boxed into the h8 corner with every escape square
	// covered but the king itself not attacked.
	var pos, err = board.NewPositionFromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var ctx = NewContext(4)
	ctx.Reset()
	ctx.SetLimits(0, 0)
	var score, pv = ctx.Search(&pos, 0, 1, Infinite())
	if score != 0 || len(pv) != 0 {
		t.Errorf("stalemate should score 0 with an empty PV, got score=%d pv=%v", score, pv)
	}
}

func TestSearchThreefoldRepetitionIsZero(t *testing.T) {
	var pos, err = board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var ctx = NewContext(4)
	ctx.Reset()
	ctx.SetLimits(0, 0)
	ctx.DrawKeys = map[uint64]int{pos.Hash(): 2}

	var score, _ = ctx.Search(&pos, 1, 3, Infinite())
	if score != 0 {
		t.Errorf("a position seen twice already on the path to root should score 0, got %d", score)
	}
}

func TestSearchQuiescenceAvoidsHangingTheQueen(t *testing.T) {
	// After 1.f3 e5 2.g4 Qh4 the queen checks e1 along h4-g3-f2 and
	// WHITE has no legal reply: this is already checkmate. The search
	// must not report an optimistic score for WHITE, and no PV move may
	// be one of the listed material-losing moves.
	var pos, err = board.NewPositionFromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatal(err)
	}
	var ctx = NewContext(4)
	var result = ctx.Driver(&pos, 4, 0, 0)

	if result.Score > 0 {
		t.Errorf("quiescence should see through the threat instead of reporting an optimistic score for WHITE, got %d", result.Score)
	}
	for _, move := range result.PV {
		if move.String() == "d2d4" || move.String() == "b2b3" {
			t.Errorf("search settled on %s, which leaves the queen/mate threat unresolved", move.String())
		}
	}
}

func TestSearchNullMoveNotTriggeredInZugzwang(t *testing.T) {
	// WHITE's king on g1 is not in check but has no legal move: the g2
	// pawn covers f1 and h1, and the black king covers f2, h2 and
	// defends g2. The position is stalemate, so the reported score must
	// not come back inflated as if WHITE stood well or was winning.
	var pos, err = board.NewPositionFromFEN("8/8/8/8/8/6k1/6p1/6K1 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var ctx = NewContext(4)
	var result = ctx.Driver(&pos, 6, 0, 0)

	if result.Score > 100 {
		t.Errorf("a stalemated WHITE must not be reported with an inflated score, got %d", result.Score)
	}
}

func TestSearchStartingPositionDepth4(t *testing.T) {
	var pos, err = board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var ctx = NewContext(8)
	var result = ctx.Driver(&pos, 4, 0, 0)

	// The backed-up PV can be shorter than the iteration's depth whenever a
	// TT hit truncates recursion partway down the best line; only a root
	// move is guaranteed.
	if len(result.PV) == 0 {
		t.Fatal("expected a non-empty PV")
	}
	if result.Score < -100 || result.Score > 100 {
		t.Errorf("starting position score should be near 0, got %d", result.Score)
	}

	var reasonable = map[string]bool{
		"e2e4": true, "d2d4": true, "g1f3": true,
		"c2c4": true, "b1c3": true, "e2e3": true,
	}
	if len(result.PV) > 0 && !reasonable[result.PV[0].String()] {
		t.Errorf("unexpected opening move %s", result.PV[0].String())
	}
}
