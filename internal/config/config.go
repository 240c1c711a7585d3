// Package config loads service settings from FORGE_* environment variables
package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	encengine "github.com/KirkDiggler/encounter-forge/internal/engine/encounter"
	"github.com/KirkDiggler/encounter-forge/internal/engine/treasure"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
	"github.com/KirkDiggler/encounter-forge/internal/logger"
)

// Catalog sources
const (
	SourceYAML   = "yaml"
	SourceSQLite = "sqlite"
	SourceSRD    = "srd"
)

// Encounter stores
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds every setting the commands read
type Config struct {
	GRPCPort int `env:"FORGE_GRPC_PORT" envDefault:"50051"`

	CatalogSource string `env:"FORGE_CATALOG_SOURCE" envDefault:"yaml"`
	// Empty YAML paths serve the catalog embedded in the binary
	CreaturesPath string `env:"FORGE_CREATURES_PATH"`
	ItemsPath     string `env:"FORGE_ITEMS_PATH"`
	SQLitePath    string `env:"FORGE_SQLITE_PATH" envDefault:"encounter-forge.db"`
	SRDBaseURL    string `env:"FORGE_SRD_BASE_URL" envDefault:"https://www.dnd5eapi.co/api/2014/"`

	// RedisAddr enables the catalog cache and, with EncounterStore=redis, saved encounters
	RedisAddr      string        `env:"FORGE_REDIS_ADDR"`
	CacheTTL       time.Duration `env:"FORGE_CACHE_TTL" envDefault:"10m"`
	EncounterStore string        `env:"FORGE_ENCOUNTER_STORE" envDefault:"memory"`
	EncounterTTL   time.Duration `env:"FORGE_ENCOUNTER_TTL" envDefault:"168h"`

	LogLevel       string `env:"FORGE_LOG_LEVEL" envDefault:"INFO"`
	LogFormat      string `env:"FORGE_LOG_FORMAT" envDefault:"text"`
	LogFile        string `env:"FORGE_LOG_FILE"`
	LogFileMaxMB   int    `env:"FORGE_LOG_FILE_MAX_MB" envDefault:"50"`
	LogFileBackups int    `env:"FORGE_LOG_FILE_BACKUPS" envDefault:"3"`
	LogFileMaxDays int    `env:"FORGE_LOG_FILE_MAX_DAYS" envDefault:"14"`

	// OTLPEndpoint enables tracing when set, e.g. http://localhost:4318
	OTLPEndpoint string `env:"FORGE_OTLP_ENDPOINT"`

	DropChance         int     `env:"FORGE_DROP_CHANCE" envDefault:"25"`
	DefaultGold        int     `env:"FORGE_DEFAULT_GOLD" envDefault:"500"`
	DefaultMaxMonsters int     `env:"FORGE_DEFAULT_MAX_MONSTERS" envDefault:"8"`
	PenaltyFactor      float64 `env:"FORGE_PENALTY_FACTOR" envDefault:"0.8"`
	BandLow            float64 `env:"FORGE_BAND_LOW" envDefault:"0.5"`
	BandHigh           float64 `env:"FORGE_BAND_HIGH" envDefault:"1.6"`
}

// Load parses the process environment
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	cfg.CatalogSource = strings.ToLower(strings.TrimSpace(cfg.CatalogSource))
	cfg.EncounterStore = strings.ToLower(strings.TrimSpace(cfg.EncounterStore))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that Load cannot enforce by type
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("grpc_port", c.GRPCPort, 1, 65535, vb)
	errors.ValidateEnum("catalog_source", c.CatalogSource, []string{SourceYAML, SourceSQLite, SourceSRD}, vb)
	errors.ValidateEnum("encounter_store", c.EncounterStore, []string{StoreMemory, StoreRedis}, vb)

	switch c.CatalogSource {
	case SourceSQLite:
		errors.ValidateRequired("sqlite_path", c.SQLitePath, vb)
	case SourceSRD:
		errors.ValidateRequired("srd_base_url", c.SRDBaseURL, vb)
	}

	if c.EncounterStore == StoreRedis && c.RedisAddr == "" {
		vb.Field("redis_addr", "is required when encounter_store is redis")
	}
	if c.CacheTTL < 0 {
		vb.Field("cache_ttl", "must not be negative")
	}
	if c.EncounterTTL < 0 {
		vb.Field("encounter_ttl", "must not be negative")
	}
	errors.ValidatePositive("default_gold", c.DefaultGold, vb)
	errors.ValidateRange("default_max_monsters", c.DefaultMaxMonsters, 1, encengine.MaxMonstersLimit, vb)

	if err := vb.Build(); err != nil {
		return err
	}

	gen := c.EncounterConfig()
	if err := gen.Validate(); err != nil {
		return err
	}
	tr := c.TreasureConfig()
	return tr.Validate()
}

// EncounterConfig applies the tuning overrides to the default generator config
func (c *Config) EncounterConfig() encengine.Config {
	cfg := encengine.DefaultConfig()
	cfg.PenaltyFactor = c.PenaltyFactor
	cfg.BandLow = c.BandLow
	cfg.BandHigh = c.BandHigh
	return cfg
}

// TreasureConfig applies the tuning overrides to the default treasure config
func (c *Config) TreasureConfig() treasure.Config {
	cfg := treasure.DefaultConfig()
	cfg.DropChance = c.DropChance
	return cfg
}

// LoggerConfig maps log settings onto the logger package
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:          c.LogLevel,
		Format:         c.LogFormat,
		FilePath:       c.LogFile,
		FileMaxSizeMB:  c.LogFileMaxMB,
		FileMaxBackups: c.LogFileBackups,
		FileMaxAgeDays: c.LogFileMaxDays,
	}
}
