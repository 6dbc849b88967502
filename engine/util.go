package engine

// abs32 returns the absolute value of x.
func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

func sideIndex(whiteToMove bool) int {
	if whiteToMove {
		return 0
	}
	return 1
}
