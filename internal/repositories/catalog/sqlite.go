package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/encounter-forge/internal/entities/dnd5e"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
	"github.com/KirkDiggler/encounter-forge/internal/repositories/catalog/migrations"
)

const migrationTable = "schema_migrations"

// SQLiteStore is a catalog backed by a SQLite database. It is the import
// target for YAML and SRD data.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens the database at path and applies migrations. ":memory:"
// gives a private in-memory catalog.
func OpenSQLite(path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.InvalidArgument("sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite catalog")
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	if path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, errors.Wrapf(err, "failed to apply %q", p)
		}
	}

	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, err
	}

	slog.Info("SQLite catalog opened", "path", path)
	return &SQLiteStore{db: db}, nil
}

// applyMigrations runs each embedded .sql file once, in name order
func applyMigrations(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		name TEXT PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`, migrationTable)); err != nil {
		return errors.Wrap(err, "failed to ensure migration table")
	}

	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return errors.Wrap(err, "failed to list migrations")
	}
	sort.Strings(files)

	for _, name := range files {
		var applied int
		if err := db.QueryRow(
			fmt.Sprintf("SELECT COUNT(1) FROM %s WHERE name = ?", migrationTable), name,
		).Scan(&applied); err != nil {
			return errors.Wrapf(err, "failed to check migration %s", name)
		}
		if applied > 0 {
			continue
		}

		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return errors.Wrapf(err, "failed to read migration %s", name)
		}

		tx, err := db.Begin()
		if err != nil {
			return errors.Wrap(err, "failed to begin migration")
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "failed to apply migration %s", name)
		}
		if _, err := tx.Exec(
			fmt.Sprintf("INSERT INTO %s (name, applied_at) VALUES (?, ?)", migrationTable),
			name, time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "failed to record migration %s", name)
		}
		if err := tx.Commit(); err != nil {
			return errors.Wrapf(err, "failed to commit migration %s", name)
		}
	}
	return nil
}

// Close closes the database handle
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ListCreatures returns every creature ordered by CR then name
func (s *SQLiteStore) ListCreatures(ctx context.Context) ([]*dnd5e.Creature, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, challenge_rating, xp, creature_type, alignment, size
		FROM creatures
		ORDER BY challenge_rating, name`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query creatures")
	}
	defer func() { _ = rows.Close() }()

	var creatures []*dnd5e.Creature
	byID := make(map[string]*dnd5e.Creature)
	for rows.Next() {
		c := &dnd5e.Creature{}
		var cr float64
		if err := rows.Scan(&c.ID, &c.Name, &cr, &c.XP, &c.CreatureType, &c.Alignment, &c.Size); err != nil {
			return nil, errors.Wrap(err, "failed to scan creature")
		}
		c.ChallengeRating = dnd5e.ChallengeRating(cr)
		creatures = append(creatures, c)
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate creatures")
	}

	envRows, err := s.db.QueryContext(ctx, `
		SELECT creature_id, environment
		FROM creature_environments
		ORDER BY creature_id, environment`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query environments")
	}
	defer func() { _ = envRows.Close() }()

	for envRows.Next() {
		var id, env string
		if err := envRows.Scan(&id, &env); err != nil {
			return nil, errors.Wrap(err, "failed to scan environment")
		}
		if c, ok := byID[id]; ok {
			c.Environments = append(c.Environments, env)
		}
	}
	if err := envRows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate environments")
	}

	return creatures, nil
}

// ListMagicItems returns every item ordered by value then name
func (s *SQLiteStore) ListMagicItems(ctx context.Context) ([]*dnd5e.MagicItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, rarity, value, wondrous, consumable, attunement
		FROM magic_items
		ORDER BY value, name`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query magic items")
	}
	defer func() { _ = rows.Close() }()

	var items []*dnd5e.MagicItem
	for rows.Next() {
		item := &dnd5e.MagicItem{}
		var rarity string
		if err := rows.Scan(&item.ID, &item.Name, &rarity, &item.Value,
			&item.Wondrous, &item.Consumable, &item.Attunement); err != nil {
			return nil, errors.Wrap(err, "failed to scan magic item")
		}
		item.Rarity = dnd5e.Rarity(rarity)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate magic items")
	}
	return items, nil
}

// UpsertCreatures inserts or replaces creatures in one transaction and
// returns how many were written
func (s *SQLiteStore) UpsertCreatures(ctx context.Context, creatures []*dnd5e.Creature) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to begin creature import")
	}
	defer func() { _ = tx.Rollback() }()

	written := 0
	for _, c := range creatures {
		if c == nil || c.ID == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO creatures (id, name, challenge_rating, xp, creature_type, alignment, size)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				challenge_rating = excluded.challenge_rating,
				xp = excluded.xp,
				creature_type = excluded.creature_type,
				alignment = excluded.alignment,
				size = excluded.size`,
			c.ID, c.Name, float64(c.ChallengeRating), c.XP, c.CreatureType, c.Alignment, c.Size,
		); err != nil {
			return 0, errors.Wrapf(err, "failed to upsert creature %s", c.ID)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM creature_environments WHERE creature_id = ?`, c.ID); err != nil {
			return 0, errors.Wrapf(err, "failed to clear environments for %s", c.ID)
		}
		for _, env := range c.Environments {
			env = strings.TrimSpace(env)
			if env == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO creature_environments (creature_id, environment) VALUES (?, ?)`,
				c.ID, env,
			); err != nil {
				return 0, errors.Wrapf(err, "failed to insert environment for %s", c.ID)
			}
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "failed to commit creature import")
	}
	return written, nil
}

// UpsertMagicItems inserts or replaces items in one transaction
func (s *SQLiteStore) UpsertMagicItems(ctx context.Context, items []*dnd5e.MagicItem) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to begin item import")
	}
	defer func() { _ = tx.Rollback() }()

	written := 0
	for _, item := range items {
		if item == nil || item.ID == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO magic_items (id, name, rarity, value, wondrous, consumable, attunement)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				rarity = excluded.rarity,
				value = excluded.value,
				wondrous = excluded.wondrous,
				consumable = excluded.consumable,
				attunement = excluded.attunement`,
			item.ID, item.Name, string(item.Rarity), item.Value,
			item.Wondrous, item.Consumable, item.Attunement,
		); err != nil {
			return 0, errors.Wrapf(err, "failed to upsert magic item %s", item.ID)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "failed to commit item import")
	}
	return written, nil
}

var _ Repository = (*SQLiteStore)(nil)
