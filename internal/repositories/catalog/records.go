package catalog

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
)

// creatureRecord is the on-disk shape of a creature. Numeric fields are read
// as strings so a malformed value degrades to zero XP instead of failing the
// whole file.
type creatureRecord struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	ChallengeRating string   `yaml:"challenge_rating"`
	XP              string   `yaml:"xp,omitempty"`
	Type            string   `yaml:"type,omitempty"`
	Alignment       string   `yaml:"alignment,omitempty"`
	Size            string   `yaml:"size,omitempty"`
	Environments    []string `yaml:"environments,omitempty"`
}

type itemRecord struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Rarity     string `yaml:"rarity"`
	Value      string `yaml:"value"`
	Wondrous   bool   `yaml:"wondrous,omitempty"`
	Consumable bool   `yaml:"consumable,omitempty"`
	Attunement bool   `yaml:"attunement,omitempty"`
}

func slug(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(fields, "-")
}

func (r *creatureRecord) toEntity() *dnd5e.Creature {
	c := &dnd5e.Creature{
		ID:           strings.TrimSpace(r.ID),
		Name:         strings.TrimSpace(r.Name),
		CreatureType: strings.TrimSpace(r.Type),
		Alignment:    strings.TrimSpace(r.Alignment),
		Size:         strings.TrimSpace(r.Size),
		Environments: r.Environments,
	}
	if c.ID == "" {
		c.ID = slug(c.Name)
	}

	cr, err := dnd5e.ParseChallengeRating(r.ChallengeRating)
	if err != nil {
		slog.Warn("Malformed challenge rating in catalog",
			"creature_id", c.ID,
			"value", r.ChallengeRating,
			"error", err,
		)
		cr = dnd5e.UnknownChallengeRating
	}
	c.ChallengeRating = cr

	if xp := strings.TrimSpace(r.XP); xp != "" {
		n, err := strconv.Atoi(xp)
		if err != nil || n < 0 {
			slog.Warn("Malformed XP in catalog",
				"creature_id", c.ID,
				"value", r.XP,
			)
		} else {
			c.XP = n
		}
	}

	return c
}

func fromCreature(c *dnd5e.Creature) creatureRecord {
	r := creatureRecord{
		ID:              c.ID,
		Name:            c.Name,
		ChallengeRating: c.ChallengeRating.String(),
		Type:            c.CreatureType,
		Alignment:       c.Alignment,
		Size:            c.Size,
		Environments:    c.Environments,
	}
	if c.XP > 0 {
		r.XP = strconv.Itoa(c.XP)
	}
	return r
}

func (r *itemRecord) toEntity() *dnd5e.MagicItem {
	item := &dnd5e.MagicItem{
		ID:         strings.TrimSpace(r.ID),
		Name:       strings.TrimSpace(r.Name),
		Wondrous:   r.Wondrous,
		Consumable: r.Consumable,
		Attunement: r.Attunement,
	}
	if item.ID == "" {
		item.ID = slug(item.Name)
	}

	rarity, err := dnd5e.ParseRarity(r.Rarity)
	if err != nil {
		slog.Warn("Unknown rarity in catalog, weighing as common",
			"item_id", item.ID,
			"value", r.Rarity,
		)
		rarity = dnd5e.Rarity(strings.ToLower(strings.TrimSpace(r.Rarity)))
	}
	item.Rarity = rarity

	value, err := strconv.Atoi(strings.TrimSpace(r.Value))
	if err != nil || value < 0 {
		slog.Warn("Malformed item value in catalog, item will never be affordable",
			"item_id", item.ID,
			"value", r.Value,
		)
		value = -1
	}
	item.Value = value

	return item
}

func fromItem(item *dnd5e.MagicItem) itemRecord {
	return itemRecord{
		ID:         item.ID,
		Name:       item.Name,
		Rarity:     string(item.Rarity),
		Value:      strconv.Itoa(item.Value),
		Wondrous:   item.Wondrous,
		Consumable: item.Consumable,
		Attunement: item.Attunement,
	}
}
