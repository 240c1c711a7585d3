package encounters

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/encounter-forge/internal/entities"
	"github.com/KirkDiggler/encounter-forge/internal/errors"
	redisclient "github.com/KirkDiggler/encounter-forge/internal/redis"
)

const (
	// Key pattern: encounter:{id}
	encounterKeyPrefix = "encounter:"
	// Sorted set of encounter IDs scored by creation time in unix millis
	historyIndexKey = "encounters:history"
)

// RedisConfig contains configuration for the Redis encounter repository
type RedisConfig struct {
	Client redisclient.Client
	TTL    time.Duration
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("client")
	}
	if cfg.TTL < 0 {
		vb.InvalidField("ttl", "must not be negative")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed encounter history. Records expire after
// the TTL; the history index is pruned lazily on List.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.Encounter == nil {
		return nil, errors.InvalidArgument(errEncounterNil)
	}
	if input.Encounter.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	data, err := json.Marshal(input.Encounter)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal encounter")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, encounterKeyPrefix+input.Encounter.ID, data, r.ttl)
	pipe.ZAdd(ctx, historyIndexKey, redis.Z{
		Score:  float64(input.Encounter.CreatedAt.UnixMilli()),
		Member: input.Encounter.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save encounter")
	}

	return &SaveOutput{Encounter: input.Encounter}, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	result, err := r.client.Get(ctx, encounterKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("encounter %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get encounter")
	}

	enc, err := decode([]byte(result))
	if err != nil {
		return nil, err
	}
	return &GetOutput{Encounter: enc}, nil
}

func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		input = &ListInput{}
	}

	ids, err := r.client.ZRevRange(ctx, historyIndexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read encounter history")
	}

	slog.DebugContext(ctx, "listing encounter history",
		"index_key", historyIndexKey,
		"count", len(ids))

	out := make([]*entities.Encounter, 0, len(ids))
	for _, id := range ids {
		if input.Limit > 0 && len(out) >= input.Limit {
			break
		}

		got, err := r.Get(ctx, &GetInput{ID: id})
		if err != nil {
			// expired records leave their ID behind in the index
			if errors.IsNotFound(err) {
				slog.DebugContext(ctx, "pruning expired encounter from history",
					"encounter_id", id)
				r.client.ZRem(ctx, historyIndexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get encounter %s", id)
		}
		out = append(out, got.Encounter)
	}

	return &ListOutput{Encounters: out}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, encounterKeyPrefix+input.ID)
	pipe.ZRem(ctx, historyIndexKey, input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete encounter")
	}
	if del.Val() == 0 {
		return nil, errors.NotFoundf("encounter %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}
