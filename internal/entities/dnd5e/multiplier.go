package dnd5e

// MultiplierForCount returns the DMG encounter multiplier for a creature count.
// Counts of zero or less are treated as a single creature.
func MultiplierForCount(n int) float64 {
	switch {
	case n <= 1:
		return 1
	case n == 2:
		return 1.5
	case n <= 6:
		return 2
	case n <= 10:
		return 2.5
	case n <= 14:
		return 3
	default:
		return 4
	}
}

// AdjustedXP applies the count multiplier to a base XP total
func AdjustedXP(baseXP, count int) int {
	return int(float64(baseXP) * MultiplierForCount(count))
}
