package testutils

import (
	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
)

// Goblin returns the CR 1/4 goblin used across scenario tests
func Goblin() *dnd5e.Creature {
	return &dnd5e.Creature{
		ID:              "goblin",
		Name:            "Goblin",
		ChallengeRating: dnd5e.CRQuarter,
		XP:              50,
		CreatureType:    "Humanoid",
		Alignment:       "Neutral Evil",
		Size:            "Small",
		Environments:    []string{"Forest", "Grassland", "Hill", "Underdark"},
	}
}

// SampleCreatures returns a small mixed catalog
func SampleCreatures() []*dnd5e.Creature {
	return []*dnd5e.Creature{
		Goblin(),
		{
			ID: "wolf", Name: "Wolf", ChallengeRating: dnd5e.CRQuarter,
			CreatureType: "Beast", Alignment: "Unaligned", Size: "Medium",
			Environments: []string{"Forest", "Grassland", "Hill"},
		},
		{
			ID: "orc", Name: "Orc", ChallengeRating: dnd5e.CRHalf,
			CreatureType: "Humanoid", Alignment: "Chaotic Evil", Size: "Medium",
			Environments: []string{"Hill", "Mountain", "Underdark"},
		},
		{
			ID: "ogre", Name: "Ogre", ChallengeRating: 2,
			CreatureType: "Giant", Alignment: "Chaotic Evil", Size: "Large",
			Environments: []string{"Hill", "Mountain", "Swamp"},
		},
		{
			ID: "winter-wolf", Name: "Winter Wolf", ChallengeRating: 3,
			CreatureType: "Monstrosity", Alignment: "Neutral Evil", Size: "Large",
			Environments: []string{"Arctic"},
		},
		{
			ID: "rat", Name: "Rat", ChallengeRating: 0,
			CreatureType: "Beast", Alignment: "Unaligned", Size: "Tiny",
			Environments: []string{"Any"},
		},
	}
}

// Potion returns a common 50 gp consumable
func Potion() *dnd5e.MagicItem {
	return &dnd5e.MagicItem{
		ID:         "potion-of-healing",
		Name:       "Potion of Healing",
		Rarity:     dnd5e.RarityCommon,
		Value:      50,
		Consumable: true,
	}
}

// SampleMagicItems returns a small item catalog spanning rarities
func SampleMagicItems() []*dnd5e.MagicItem {
	return []*dnd5e.MagicItem{
		Potion(),
		{ID: "bag-of-holding", Name: "Bag of Holding", Rarity: dnd5e.RarityUncommon, Value: 400, Wondrous: true},
		{ID: "cloak-of-protection", Name: "Cloak of Protection", Rarity: dnd5e.RarityUncommon, Value: 350, Attunement: true, Wondrous: true},
		{ID: "spell-scroll-1", Name: "Spell Scroll (1st Level)", Rarity: dnd5e.RarityCommon, Value: 60, Consumable: true},
		{ID: "flame-tongue", Name: "Flame Tongue", Rarity: dnd5e.RarityRare, Value: 5000, Attunement: true},
	}
}
