package search

// Window is the shared alpha/beta pair threaded through a search. Scores
// are always absolute (positive favors WHITE), so unlike a negamax
// formulation the cutoff test branches explicitly on which side is to
// move: WHITE raises alpha and cuts off at alpha >= beta, BLACK lowers
// beta and cuts off at beta <= alpha. Writing search code once against
// this type keeps callers free of that branch.
type Window struct {
	Alpha, Beta int
}

// Infinite returns the full-width root window.
func Infinite() Window {
	return Window{MinScore + 1, MaxScore - 1}
}

// TryCutoff folds score into the window from color's perspective and
// reports whether the window has closed.
func (w *Window) TryCutoff(score int, color bool) bool {
	if color {
		if score > w.Alpha {
			w.Alpha = score
		}
		return w.Alpha >= w.Beta
	}
	if score < w.Beta {
		w.Beta = score
	}
	return w.Beta <= w.Alpha
}

// FailsLow reports whether score is no better than color's current bound.
func (w Window) FailsLow(score int, color bool) bool {
	if color {
		return score <= w.Alpha
	}
	return score >= w.Beta
}

// FailsHigh reports whether score is at least as good as the opponent's
// current bound.
func (w Window) FailsHigh(score int, color bool) bool {
	if color {
		return score >= w.Beta
	}
	return score <= w.Alpha
}

// LowerBound returns the null window (alpha, alpha+1).
func (w Window) LowerBound() Window {
	return Window{w.Alpha, w.Alpha + 1}
}

// UpperBound returns the null window (beta-1, beta).
func (w Window) UpperBound() Window {
	return Window{w.Beta - 1, w.Beta}
}

// GetLowerBound returns the null window that tests whether color can
// improve on its current guarantee.
func (w Window) GetLowerBound(color bool) Window {
	if color {
		return w.LowerBound()
	}
	return w.UpperBound()
}

// GetUpperBound returns the complementary null window to GetLowerBound.
func (w Window) GetUpperBound(color bool) Window {
	if color {
		return w.UpperBound()
	}
	return w.LowerBound()
}

// GetBoundScore returns the bound color is trying to improve: alpha for
// WHITE, beta for BLACK.
func (w Window) GetBoundScore(color bool) int {
	if color {
		return w.Alpha
	}
	return w.Beta
}

// CanFailHigh reports whether there is numerical room left for color to
// improve its bound without saturating the score range.
func (w Window) CanFailHigh(color bool) bool {
	if color {
		return w.Beta < MaxScore-1
	}
	return w.Alpha > MinScore+1
}
