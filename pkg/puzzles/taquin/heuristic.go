package taquin

// Manhattan sums, for every tile except the blank, the grid distance between
// its position on state and its position on goal. It is admissible and
// consistent for unit moves.
func Manhattan(state, goal Board) float64 {
	sum := 0
	for v := 1; v < state.Size(); v++ {
		from, to := state.Index(v), goal.Index(v)
		if to < 0 {
			continue
		}
		sum += abs(from/state.cols-to/goal.cols) + abs(from%state.cols-to%goal.cols)
	}
	return float64(sum)
}

// Hamming counts the tiles, blank excluded, that are not at their goal position.
func Hamming(state, goal Board) float64 {
	misplaced := 0
	for v := 1; v < state.Size(); v++ {
		if state.Index(v) != goal.Index(v) {
			misplaced++
		}
	}
	return float64(misplaced)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
