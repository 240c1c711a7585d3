package catalog

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

const (
	defaultCreaturesFile = "defaults/creatures.yaml"
	defaultItemsFile     = "defaults/magic_items.yaml"
)

type creatureDocument struct {
	Creatures []creatureRecord `yaml:"creatures"`
}

type itemDocument struct {
	MagicItems []itemRecord `yaml:"magic_items"`
}

// ReadCreatures decodes a YAML document with a top-level creatures list
func ReadCreatures(r io.Reader) ([]*dnd5e.Creature, error) {
	var doc creatureDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.InvalidArgumentf("failed to decode creatures: %v", err)
	}

	out := make([]*dnd5e.Creature, 0, len(doc.Creatures))
	for i := range doc.Creatures {
		out = append(out, doc.Creatures[i].toEntity())
	}
	return out, nil
}

// ReadMagicItems decodes a YAML document with a top-level magic_items list
func ReadMagicItems(r io.Reader) ([]*dnd5e.MagicItem, error) {
	var doc itemDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, errors.InvalidArgumentf("failed to decode magic items: %v", err)
	}

	out := make([]*dnd5e.MagicItem, 0, len(doc.MagicItems))
	for i := range doc.MagicItems {
		out = append(out, doc.MagicItems[i].toEntity())
	}
	return out, nil
}

// WriteCreatures encodes creatures in the format ReadCreatures accepts
func WriteCreatures(w io.Writer, creatures []*dnd5e.Creature) error {
	doc := creatureDocument{Creatures: make([]creatureRecord, 0, len(creatures))}
	for _, c := range creatures {
		doc.Creatures = append(doc.Creatures, fromCreature(c))
	}
	return encodeYAML(w, doc)
}

// WriteMagicItems encodes items in the format ReadMagicItems accepts
func WriteMagicItems(w io.Writer, items []*dnd5e.MagicItem) error {
	doc := itemDocument{MagicItems: make([]itemRecord, 0, len(items))}
	for _, item := range items {
		doc.MagicItems = append(doc.MagicItems, fromItem(item))
	}
	return encodeYAML(w, doc)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "failed to encode yaml")
	}
	return enc.Close()
}

// YAMLConfig points at the creature and item files. Empty paths fall back to
// the catalog embedded in the binary.
type YAMLConfig struct {
	CreaturesPath string
	ItemsPath     string
}

type yamlRepository struct {
	creaturesPath string
	itemsPath     string
}

// NewYAML creates a repository that re-reads its files on every call, so edits
// show up without a restart
func NewYAML(cfg *YAMLConfig) (Repository, error) {
	if cfg == nil {
		cfg = &YAMLConfig{}
	}

	repo := &yamlRepository{
		creaturesPath: cfg.CreaturesPath,
		itemsPath:     cfg.ItemsPath,
	}
	for _, p := range []string{cfg.CreaturesPath, cfg.ItemsPath} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			return nil, errors.InvalidArgumentf("catalog file %s: %v", p, err)
		}
	}
	return repo, nil
}

// NewEmbedded serves the default catalog compiled into the binary
func NewEmbedded() Repository {
	return &yamlRepository{}
}

func (r *yamlRepository) open(path, fallback string) ([]byte, error) {
	if path == "" {
		data, err := fs.ReadFile(defaultsFS, fallback)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read embedded %s", fallback)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("catalog file %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return data, nil
}

// ListCreatures reads the creature file
func (r *yamlRepository) ListCreatures(ctx context.Context) ([]*dnd5e.Creature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := r.open(r.creaturesPath, defaultCreaturesFile)
	if err != nil {
		return nil, err
	}
	creatures, err := ReadCreatures(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid creature catalog %s", r.describe(r.creaturesPath))
	}
	return creatures, nil
}

// ListMagicItems reads the item file
func (r *yamlRepository) ListMagicItems(ctx context.Context) ([]*dnd5e.MagicItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := r.open(r.itemsPath, defaultItemsFile)
	if err != nil {
		return nil, err
	}
	items, err := ReadMagicItems(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid item catalog %s", r.describe(r.itemsPath))
	}
	return items, nil
}

func (r *yamlRepository) describe(path string) string {
	if path == "" {
		return "(embedded)"
	}
	return fmt.Sprintf("%q", path)
}

var _ Repository = (*yamlRepository)(nil)
