package external

import (
	"log/slog"
	"strings"

	"github.com/fadedpez/dnd5e-api/entities"

	internalDnd5e "github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
)

// convertMonster maps an API monster onto a catalog creature. key and name
// come from the reference list and win over empty fields on the monster.
func convertMonster(key, name string, monster *entities.Monster) (*internalDnd5e.Creature, error) {
	if monster == nil {
		return nil, errors.Internalf("monster %s is nil", key)
	}

	if n := strings.TrimSpace(monster.Name); n != "" {
		name = n
	}
	id := key
	if id == "" {
		id = strings.TrimSpace(monster.Key)
	}
	if id == "" {
		id = generateSlug(name)
	}

	creature := &internalDnd5e.Creature{
		ID:           id,
		Name:         name,
		CreatureType: titleCase(monster.Type),
		Alignment:    titleCase(monster.Alignment),
		Size:         titleCase(monster.Size),
	}

	// float32 holds the fractional ratings (1/8, 1/4, 1/2) exactly
	cr := internalDnd5e.ChallengeRating(monster.ChallengeRating)
	if cr.IsValid() {
		creature.ChallengeRating = cr
	} else {
		slog.Warn("SRD monster has unknown challenge rating",
			"monster", id,
			"cr", monster.ChallengeRating)
		creature.ChallengeRating = internalDnd5e.UnknownChallengeRating
	}

	// only keep XP that differs from the table value
	if monster.XP > 0 && monster.XP != internalDnd5e.XPForCR(creature.ChallengeRating) {
		creature.XP = monster.XP
	}

	return creature, nil
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
