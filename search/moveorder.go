package search

import "github.com/vantage-chess/vantage/board"

// pieceValues gives the small MVV-LVA weights the catalog specifies:
// P=1, N=3, B=3, R=5, Q=9, K is never captured so is left at a value
// larger than any legal exchange can offset.
var pieceValues = [7]int{0, 1, 3, 3, 5, 9, 1000}

func mvvLva(move board.Move) int {
	return pieceValues[move.CapturedPiece()]*1000 - pieceValues[move.MovingPiece()]
}

const (
	scoreTT      = 1 << 30
	scoreCapture = 1 << 20
	scoreKiller1 = 1 << 19
	scoreKiller2 = 1 << 19 - 1
)

// orderMoves fills buffer with pos's legal-pseudo moves annotated for
// ordering (TT move first, then MVV-LVA captures, then killers, then
// quiets sorted by history) and returns the sorted prefix. Illegal
// duplicates of the TT move and stale killers are filtered by their
// absence from the generated pseudo-legal list, not specially detected.
func orderMoves(buffer []board.Move, pos *board.Position, h *History, ttMove board.Move, ply int) []board.OrderedMove {
	var pseudo = board.GenerateMoves(buffer, pos)
	var killer1, killer2 = h.Killers(ply)

	var ordered = make([]board.OrderedMove, 0, len(pseudo))
	for _, m := range pseudo {
		var key int
		switch {
		case m == ttMove:
			key = scoreTT
		case !m.IsQuiet():
			key = scoreCapture + mvvLva(m)
		case m == killer1:
			key = scoreKiller1
		case m == killer2:
			key = scoreKiller2
		default:
			key = int(h.GetRep(pos, m))
		}
		ordered = append(ordered, board.OrderedMove{Move: m, Key: key})
	}

	sortMoves(ordered)
	return ordered
}

var shellSortGaps = [...]int{10, 4, 1}

func sortMoves(moves []board.OrderedMove) {
	for _, gap := range shellSortGaps {
		for i := gap; i < len(moves); i++ {
			var j, t = i, moves[i]
			for ; j >= gap && moves[j-gap].Key < t.Key; j -= gap {
				moves[j] = moves[j-gap]
			}
			moves[j] = t
		}
	}
}
