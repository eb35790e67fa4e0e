package game

// Score rewards the seconds left on the clock.
func Score(timeLimit, elapsed int) int {
	return 100 + (timeLimit-elapsed)*3
}

// ImprovesOn reports whether elapsed beats the stored best. Ties keep the old record.
func ImprovesOn(elapsed, best int, hasBest bool) bool {
	if !hasBest {
		return true
	}
	return elapsed < best
}
