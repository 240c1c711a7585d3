package dnd5e

import (
	"fmt"
	"strings"
)

// Difficulty is the label attached to a generated encounter
type Difficulty string

// Difficulty labels
const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
	DifficultyDeadly Difficulty = "Deadly"
)

// String returns the label
func (d Difficulty) String() string {
	return string(d)
}

// IsValid checks if the difficulty is one of the four labels
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyDeadly:
		return true
	default:
		return false
	}
}

// ParseDifficulty matches a label case-insensitively
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range AllDifficulties() {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// AllDifficulties returns the labels from easiest to hardest
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyDeadly}
}

// DifficultyThresholds are the adjusted/target ratios that bound each label.
// A ratio at or below Easy is Easy, at or below Medium is Medium, at or below
// Hard is Hard, and anything above is Deadly.
type DifficultyThresholds struct {
	Easy   float64
	Medium float64
	Hard   float64
}

// DefaultDifficultyThresholds returns the 0.5 / 1.0 / 1.5 boundaries
func DefaultDifficultyThresholds() DifficultyThresholds {
	return DifficultyThresholds{
		Easy:   0.5,
		Medium: 1.0,
		Hard:   1.5,
	}
}

// Classify labels an adjusted XP total against a target budget
func (t DifficultyThresholds) Classify(adjustedXP, targetXP int) Difficulty {
	if targetXP <= 0 {
		return DifficultyDeadly
	}

	ratio := float64(adjustedXP) / float64(targetXP)
	switch {
	case ratio <= t.Easy:
		return DifficultyEasy
	case ratio <= t.Medium:
		return DifficultyMedium
	case ratio <= t.Hard:
		return DifficultyHard
	default:
		return DifficultyDeadly
	}
}

// ClassifyDifficulty labels with the default thresholds
func ClassifyDifficulty(adjustedXP, targetXP int) Difficulty {
	return DefaultDifficultyThresholds().Classify(adjustedXP, targetXP)
}
