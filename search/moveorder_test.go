package search

import (
	"testing"

	"github.com/vantage-chess/vantage/board"
)

func TestOrderMovesPutsTTMoveFirst(t *testing.T) {
	var pos, err = board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var buffer [board.MaxMoves]board.Move
	var legal = pos.GenerateLegalMoves(false)
	var ttMove = legal[len(legal)-1]

	var h = NewHistory()
	var ordered = orderMoves(buffer[:], &pos, h, ttMove, 0)
	if len(ordered) == 0 {
		t.Fatal("expected at least one move")
	}
	if ordered[0].Move != ttMove {
		t.Errorf("expected the TT move first, got %v want %v", ordered[0].Move, ttMove)
	}
}

func TestOrderMovesPutsCapturesBeforeQuiets(t *testing.T) {
	// White to move, pawn on e5 can capture on d6; several quiet moves
	// exist too.
	var pos, err = board.NewPositionFromFEN("4k3/8/3p4/4P3/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var buffer [board.MaxMoves]board.Move
	var h = NewHistory()
	var ordered = orderMoves(buffer[:], &pos, h, board.MoveEmpty, 0)

	var sawQuiet = false
	for _, om := range ordered {
		if om.Move.IsQuiet() {
			sawQuiet = true
			continue
		}
		if sawQuiet {
			t.Error("a capture appeared after a quiet move in the ordering")
		}
	}
}

func TestMvvLvaPrefersCapturingWithLessValuablePiece(t *testing.T) {
	// Both the c5 pawn and the d1 queen can capture the black queen on d6;
	// MVV-LVA should rank the cheaper attacker (the pawn) higher.
	var pos, err = board.NewPositionFromFEN("4k3/8/3q4/2P5/8/8/8/3QK3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var pawnTakesQueen, queenTakesQueen board.Move
	for _, m := range pos.GenerateLegalMoves(true) {
		if m.CapturedPiece() != board.Queen {
			continue
		}
		switch m.MovingPiece() {
		case board.Pawn:
			pawnTakesQueen = m
		case board.Queen:
			queenTakesQueen = m
		}
	}
	if pawnTakesQueen == board.MoveEmpty || queenTakesQueen == board.MoveEmpty {
		t.Fatal("expected both a pawn and a queen recapture of the black queen")
	}
	if mvvLva(pawnTakesQueen) <= mvvLva(queenTakesQueen) {
		t.Error("the pawn recapture should score higher than the queen recapture")
	}
}

func TestSortMovesDescendingByKey(t *testing.T) {
	var moves = []board.OrderedMove{
		{Move: board.Move(1), Key: 5},
		{Move: board.Move(2), Key: 50},
		{Move: board.Move(3), Key: 1},
		{Move: board.Move(4), Key: 30},
	}
	sortMoves(moves)
	for i := 1; i < len(moves); i++ {
		if moves[i].Key > moves[i-1].Key {
			t.Errorf("moves not sorted descending: %+v", moves)
		}
	}
}
