package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hutarka-ai/hutarka/pkg/domain/interfaces"
	"github.com/hutarka-ai/hutarka/pkg/domain/model"
	"github.com/hutarka-ai/hutarka/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "conversation:"

// RedisStore keeps conversation history in Redis so multiple instances can
// share it. Entries expire after the configured TTL of inactivity.
type RedisStore struct {
	client *redis.Client
	limit  int
	ttl    time.Duration
}

var _ interfaces.HistoryStore = &RedisStore{}

func NewRedisStore(ctx context.Context, redisURL string, limit int, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse redis URL")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to connect to redis")
	}

	return &RedisStore{
		client: client,
		limit:  limit,
		ttl:    ttl,
	}, nil
}

func (x *RedisStore) Get(ctx context.Context, id types.UserID) ([]model.Message, error) {
	data, err := x.client.Get(ctx, redisKeyPrefix+id.String()).Result()
	if err != nil {
		if err == redis.Nil {
			return []model.Message{}, nil
		}
		return nil, goerr.Wrap(err, "failed to load history", goerr.V("id", id))
	}

	var msgs []model.Message
	if err := json.Unmarshal([]byte(data), &msgs); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal history", goerr.V("id", id))
	}

	return msgs, nil
}

func (x *RedisStore) Append(ctx context.Context, id types.UserID, msgs ...model.Message) error {
	current, err := x.Get(ctx, id)
	if err != nil {
		return err
	}

	updated := model.TruncateMessages(append(current, msgs...), x.limit)
	data, err := json.Marshal(updated)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal history", goerr.V("id", id))
	}

	if err := x.client.Set(ctx, redisKeyPrefix+id.String(), data, x.ttl).Err(); err != nil {
		return goerr.Wrap(err, "failed to save history", goerr.V("id", id))
	}

	return nil
}

func (x *RedisStore) Clear(ctx context.Context, id types.UserID) error {
	if err := x.client.Del(ctx, redisKeyPrefix+id.String()).Err(); err != nil {
		return goerr.Wrap(err, "failed to clear history", goerr.V("id", id))
	}
	return nil
}

// Close releases the underlying Redis connection
func (x *RedisStore) Close() error {
	return x.client.Close()
}
