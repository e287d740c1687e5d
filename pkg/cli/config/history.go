package config

import (
	"context"
	"time"

	"github.com/hutarka-ai/hutarka/pkg/domain/interfaces"
	"github.com/hutarka-ai/hutarka/pkg/service/history"
	"github.com/hutarka-ai/hutarka/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// History holds CLI flags for conversation history configuration
type History struct {
	backend  string
	limit    int64
	redisURL string
	redisTTL time.Duration
}

// Flags returns CLI flags for history configuration
func (h *History) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "history-backend",
			Usage:       "History backend type (memory or redis)",
			Value:       "memory",
			Sources:     cli.EnvVars("HUTARKA_HISTORY_BACKEND"),
			Destination: &h.backend,
		},
		&cli.Int64Flag{
			Name:        "history-limit",
			Usage:       "Maximum number of retained messages per user",
			Value:       10,
			Sources:     cli.EnvVars("HUTARKA_HISTORY_LIMIT"),
			Destination: &h.limit,
		},
		&cli.StringFlag{
			Name:        "redis-url",
			Usage:       "Redis URL (required when using redis backend)",
			Sources:     cli.EnvVars("HUTARKA_REDIS_URL"),
			Destination: &h.redisURL,
		},
		&cli.DurationFlag{
			Name:        "redis-ttl",
			Usage:       "History expiry for inactive conversations (redis backend)",
			Value:       24 * time.Hour,
			Sources:     cli.EnvVars("HUTARKA_REDIS_TTL"),
			Destination: &h.redisTTL,
		},
	}
}

// Limit returns the per-user message cap
func (h *History) Limit() int {
	return int(h.limit)
}

// Configure initializes and returns a history store based on the configured backend
func (h *History) Configure(ctx context.Context) (interfaces.HistoryStore, error) {
	if h.limit <= 0 {
		return nil, goerr.New("history-limit must be positive", goerr.V("limit", h.limit))
	}

	switch h.backend {
	case "redis":
		if h.redisURL == "" {
			return nil, goerr.New("redis-url is required when using redis backend")
		}
		store, err := history.NewRedisStore(ctx, h.redisURL, int(h.limit), h.redisTTL)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize redis history store")
		}
		logging.Default().Info("Using Redis history store", "limit", h.limit, "ttl", h.redisTTL)
		return store, nil

	case "memory":
		logging.Default().Info("Using in-memory history store", "limit", h.limit)
		return history.NewMemoryStore(int(h.limit)), nil

	default:
		return nil, goerr.New("invalid history backend", goerr.V("backend", h.backend))
	}
}
