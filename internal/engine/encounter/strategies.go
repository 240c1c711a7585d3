package encounter

import (
	"math"
	"sort"

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
)

// candidate is a creature with a usable XP value
type candidate struct {
	creature *dnd5e.Creature
	xp       int
}

// proximity scores how well xp fills target. Overshooting is scaled by the
// penalty factor.
func proximity(xp, target int, penalty float64) float64 {
	if xp <= 0 || target <= 0 {
		return 0
	}
	if xp <= target {
		return float64(xp) / float64(target)
	}
	return float64(target) / float64(xp) * penalty
}

// selectSingle picks the creature whose XP best fits the target. Ties keep
// the earlier candidate.
func selectSingle(cands []candidate, target int, cfg Config) Selection {
	best := -1
	bestScore := math.Inf(-1)
	for i, c := range cands {
		score := proximity(c.xp, target, cfg.PenaltyFactor)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return nil
	}
	return Selection{{Creature: cands[best].creature, Quantity: 1}}
}

// selectMultiple returns the first creature and quantity in 2..limit whose
// adjusted XP lands inside the acceptance band. Creatures are tried from
// highest to lowest XP.
func selectMultiple(cands []candidate, target, limit int, cfg Config) Selection {
	if limit < 2 {
		return nil
	}

	sorted := make([]candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].xp > sorted[j].xp })

	low := cfg.BandLow * float64(target)
	high := cfg.BandHigh * float64(target)
	for _, c := range sorted {
		for qty := 2; qty <= limit; qty++ {
			adjusted := float64(dnd5e.AdjustedXP(c.xp*qty, qty))
			if adjusted > high {
				break
			}
			if adjusted >= low {
				return Selection{{Creature: c.creature, Quantity: qty}}
			}
		}
	}
	return nil
}

// selectMixed greedily adds up to limit distinct creatures, one of each.
// A candidate scores by how close the running adjusted XP lands to the target
// plus a bonus if its creature type is not yet represented. Selection stops
// once adjusted XP reaches the stop ratio.
func selectMixed(cands []candidate, target, limit int, cfg Config) Selection {
	if limit < 1 {
		return nil
	}

	var sel Selection
	used := make([]bool, len(cands))
	types := make(map[string]bool)
	baseXP := 0
	stopAt := cfg.MixedStopRatio * float64(target)

	for len(sel) < limit {
		best := -1
		bestScore := math.Inf(-1)
		count := len(sel) + 1
		for i, c := range cands {
			if used[i] {
				continue
			}
			adjusted := dnd5e.AdjustedXP(baseXP+c.xp, count)
			score := proximity(adjusted, target, cfg.PenaltyFactor)
			if !types[fold(c.creature.CreatureType)] {
				score += cfg.DiversityBonus
			}
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}

		used[best] = true
		types[fold(cands[best].creature.CreatureType)] = true
		baseXP += cands[best].xp
		sel = append(sel, Pick{Creature: cands[best].creature, Quantity: 1})

		if float64(dnd5e.AdjustedXP(baseXP, len(sel))) >= stopAt {
			break
		}
	}

	return sel
}

// run dispatches one plan step. limit is already bounded by MaxMonsters.
func (s Step) run(cands []candidate, target, limit int, cfg Config) Selection {
	switch s.Strategy {
	case StrategySingle:
		return selectSingle(cands, target, cfg)
	case StrategyMultiple:
		return selectMultiple(cands, target, limit, cfg)
	case StrategyMixed:
		return selectMixed(cands, target, limit, cfg)
	default:
		return nil
	}
}

// limit bounds the step cap by maxMonsters
func (s Step) limit(maxMonsters int) int {
	if s.Cap <= 0 || s.Cap > maxMonsters {
		return maxMonsters
	}
	return s.Cap
}
