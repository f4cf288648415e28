package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/vigorhq/vigor-backend/internal/config"
	"github.com/vigorhq/vigor-backend/internal/platform/logger"
)

// ScoreEvent is published whenever a day's energy score is recomputed, so the
// gateway can push a refresh to connected mobile clients. Publishing is
// best-effort; a missed event only delays the next pull.
type ScoreEvent struct {
	UserID uuid.UUID `json:"user_id"`
	Date   string    `json:"date"`
	Score  float64   `json:"score"`
	Source string    `json:"source"`
}

type ScoreEventBus interface {
	Publish(ctx context.Context, ev ScoreEvent) error
	Close() error
}

type scoreEventBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewScoreEventBus(cfg config.RedisConfig, log *logger.Logger) (ScoreEventBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	ch := strings.TrimSpace(cfg.Channel)
	if ch == "" {
		ch = "score_events"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &scoreEventBus{
		log:     log.With("service", "ScoreEventBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *scoreEventBus) Publish(ctx context.Context, ev ScoreEvent) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal score event: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("publish score event: %w", err)
	}
	return nil
}

func (b *scoreEventBus) Close() error {
	return b.rdb.Close()
}
