package search

import (
	"testing"

	"github.com/vantage-chess/vantage/board"
)

func TestTranspositionTableStoreAndGet(t *testing.T) {
	var pos, err = board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var tt = NewTranspositionTable(1)
	var window = Window{Alpha: -100, Beta: 100}
	var move = board.Move(0)
	for _, m := range pos.GenerateLegalMoves(false) {
		move = m
		break
	}

	tt.Store(&pos, 5, 0, window, 42, move)

	var score, ok = tt.GetScore(&pos, 5, 0, window)
	if !ok || score != 42 {
		t.Errorf("expected an exact hit at score 42, got score=%d ok=%v", score, ok)
	}

	var stored, hasMove = tt.GetBestMove(&pos)
	if !hasMove || stored != move {
		t.Errorf("expected stored move %v, got %v (ok=%v)", move, stored, hasMove)
	}
}

func TestTranspositionTableRejectsShallowerDepth(t *testing.T) {
	var pos, err = board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var tt = NewTranspositionTable(1)
	var window = Window{Alpha: -100, Beta: 100}
	tt.Store(&pos, 3, 0, window, 42, board.MoveEmpty)

	if _, ok := tt.GetScore(&pos, 5, 0, window); ok {
		t.Error("a probe requesting more depth than was stored should miss")
	}
	if _, ok := tt.GetScore(&pos, 3, 0, window); !ok {
		t.Error("a probe at the stored depth should hit")
	}
}

func TestTranspositionTableBoundDerivation(t *testing.T) {
	var pos, err = board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var tt = NewTranspositionTable(1)
	var original = Window{Alpha: 0, Beta: 100}

	// A score at or above the original beta should be stored as a lower
	// bound, and only re-usable by a probe whose own beta it still beats.
	tt.Store(&pos, 4, 0, original, 100, board.MoveEmpty)
	if _, ok := tt.GetScore(&pos, 4, 0, Window{Alpha: 0, Beta: 100}); !ok {
		t.Error("lower bound should satisfy a probe with the same beta")
	}
	if _, ok := tt.GetScore(&pos, 4, 0, Window{Alpha: 0, Beta: 200}); ok {
		t.Error("lower bound of 100 should not satisfy a probe requiring beta 200")
	}
}

func TestTranspositionTableMateScorePlyAdjustment(t *testing.T) {
	var pos, err = board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var tt = NewTranspositionTable(1)
	var window = Window{Alpha: -MaxScore, Beta: MaxScore}
	var mateScore = MateScore - 3 // mate found 3 plies below the storing node

	tt.Store(&pos, 10, 5, window, mateScore, board.MoveEmpty)

	var score, ok = tt.GetScore(&pos, 10, 5, window)
	if !ok || score != mateScore {
		t.Fatalf("probing at the storing ply should reproduce the exact score, got score=%d ok=%v", score, ok)
	}

	var scoreAtRoot, okAtRoot = tt.GetScore(&pos, 10, 2, window)
	if !okAtRoot {
		t.Fatal("expected a hit when re-probed from a shallower ply")
	}
	if scoreAtRoot <= mateScore {
		t.Errorf("mate re-based to a shallower ply should read as closer to delivering (score=%d)", scoreAtRoot)
	}
}
