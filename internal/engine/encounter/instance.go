package encounter

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/pkg/idgen"
)

// EntityTypeCreature is the core.Entity type of a creature instance
const EntityTypeCreature = "creature"

// Instance is one creature on the table. Treasure is rolled per instance.
type Instance struct {
	ID       string          `json:"id"`
	Creature *dnd5e.Creature `json:"creature"`
	Ordinal  int             `json:"ordinal"` // 1-based within its pick
}

// GetID returns the instance id
func (i *Instance) GetID() string {
	return i.ID
}

// GetType returns EntityTypeCreature
func (i *Instance) GetType() string {
	return EntityTypeCreature
}

var _ core.Entity = (*Instance)(nil)

// Expand turns a selection into one Instance per creature
func Expand(sel Selection, gen idgen.Generator) []*Instance {
	out := make([]*Instance, 0, sel.Count())
	for _, pick := range sel {
		for n := 1; n <= pick.Quantity; n++ {
			out = append(out, &Instance{
				ID:       gen.Generate(),
				Creature: pick.Creature,
				Ordinal:  n,
			})
		}
	}
	return out
}
