package dnd5e

import (
	"fmt"
	"strings"
)

// Rarity is the ordinal classification of a magic item
type Rarity string

// Rarities from most to least common
const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityVeryRare  Rarity = "very_rare"
	RarityLegendary Rarity = "legendary"
	RarityArtifact  Rarity = "artifact"
)

// AllRarities returns the rarities in ascending order
func AllRarities() []Rarity {
	return []Rarity{
		RarityCommon,
		RarityUncommon,
		RarityRare,
		RarityVeryRare,
		RarityLegendary,
		RarityArtifact,
	}
}

// Rank returns the step above Common, or -1 for an unknown rarity
func (r Rarity) Rank() int {
	for i, known := range AllRarities() {
		if r == known {
			return i
		}
	}
	return -1
}

// IsValid checks if the rarity is known
func (r Rarity) IsValid() bool {
	return r.Rank() >= 0
}

// String returns the rarity in display form, e.g. "Very Rare"
func (r Rarity) String() string {
	words := strings.Split(string(r), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// ParseRarity accepts "Very Rare", "very-rare" and "VERY_RARE"
func ParseRarity(s string) (Rarity, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	r := Rarity(norm)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown rarity %q", s)
	}
	return r, nil
}

// MagicItem is immutable catalog data for one magic item
type MagicItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Rarity     Rarity `json:"rarity"`
	Value      int    `json:"value"` // gold pieces
	Wondrous   bool   `json:"wondrous,omitempty"`
	Consumable bool   `json:"consumable,omitempty"`
	Attunement bool   `json:"attunement,omitempty"`
}
