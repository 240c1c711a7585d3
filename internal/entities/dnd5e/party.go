package dnd5e

import "fmt"

// MinCharacterLevel and MaxCharacterLevel bound the threshold table
const (
	MinCharacterLevel = 1
	MaxCharacterLevel = 20
)

// MaxPartySize is the largest party a threshold is computed for
const MaxPartySize = 12

// characterThresholds holds easy, medium, hard and deadly XP per character level
var characterThresholds = [MaxCharacterLevel + 1][4]int{
	{},
	{25, 50, 75, 100},
	{50, 100, 150, 200},
	{75, 150, 225, 400},
	{125, 250, 375, 500},
	{250, 500, 750, 1100},
	{300, 600, 900, 1400},
	{350, 750, 1100, 1700},
	{450, 900, 1400, 2100},
	{550, 1100, 1600, 2400},
	{600, 1200, 1900, 2800},
	{800, 1600, 2400, 3600},
	{1000, 2000, 3000, 4500},
	{1100, 2200, 3400, 5100},
	{1250, 2500, 3800, 5700},
	{1400, 2800, 4300, 6400},
	{1600, 3200, 4800, 7200},
	{2000, 3900, 5900, 8800},
	{2100, 4200, 6300, 9500},
	{2400, 4900, 7300, 10900},
	{2800, 5700, 8500, 12700},
}

func difficultyColumn(d Difficulty) (int, bool) {
	switch d {
	case DifficultyEasy:
		return 0, true
	case DifficultyMedium:
		return 1, true
	case DifficultyHard:
		return 2, true
	case DifficultyDeadly:
		return 3, true
	default:
		return 0, false
	}
}

// CharacterThreshold returns the XP threshold for one character
func CharacterThreshold(level int, difficulty Difficulty) (int, error) {
	if level < MinCharacterLevel || level > MaxCharacterLevel {
		return 0, fmt.Errorf("character level %d out of range %d-%d", level, MinCharacterLevel, MaxCharacterLevel)
	}
	col, ok := difficultyColumn(difficulty)
	if !ok {
		return 0, fmt.Errorf("unknown difficulty %q", difficulty)
	}
	return characterThresholds[level][col], nil
}

// PartyThreshold sums the per-character thresholds for a party
func PartyThreshold(levels []int, difficulty Difficulty) (int, error) {
	if len(levels) == 0 {
		return 0, fmt.Errorf("party has no characters")
	}
	if len(levels) > MaxPartySize {
		return 0, fmt.Errorf("party of %d exceeds the limit of %d", len(levels), MaxPartySize)
	}

	total := 0
	for _, level := range levels {
		xp, err := CharacterThreshold(level, difficulty)
		if err != nil {
			return 0, err
		}
		total += xp
	}
	return total, nil
}
