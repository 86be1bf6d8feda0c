// Package events publishes generation lifecycle events to redis so external
// dashboards can follow long-running generations. The publisher is optional;
// the service runs fine without a redis address configured.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vibegen/vibegen-studio/internal/generator"
)

const (
	progressChannel  = "vibegen:generation:progress"
	completedChannel = "vibegen:generation:completed"

	// latestProgressTTL bounds how long a stale progress key survives after
	// a crash mid-generation.
	latestProgressTTL = 5 * time.Minute
)

type CompletedEvent struct {
	ProjectID        string `json:"project_id"`
	UsedFallback     bool   `json:"used_fallback"`
	ProcessingTimeMS int64  `json:"processing_time_ms"`
	Scenes           int    `json:"scenes"`
}

// commands is the slice of the redis client the publisher uses.
type commands interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type Publisher struct {
	rdb     commands
	closeFn func() error
	logger  *slog.Logger
}

// NewPublisher connects to redis and verifies the connection.
func NewPublisher(ctx context.Context, addr string, logger *slog.Logger) (*Publisher, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return &Publisher{rdb: rdb, closeFn: rdb.Close, logger: logger}, nil
}

func (p *Publisher) Close() error {
	if p.closeFn == nil {
		return nil
	}
	return p.closeFn()
}

// PublishProgress fans a progress update out to subscribers and refreshes
// the latest-progress key for poll-based consumers. Failures are logged and
// dropped; events are best effort.
func (p *Publisher) PublishProgress(ctx context.Context, prog generator.Progress) {
	raw, err := json.Marshal(prog)
	if err != nil {
		return
	}
	if err := p.rdb.Publish(ctx, progressChannel, raw).Err(); err != nil {
		p.logger.Warn("failed to publish progress event", "project_id", prog.ProjectID, "error", err)
		return
	}
	key := "vibegen:generation:latest:" + prog.ProjectID
	if err := p.rdb.Set(ctx, key, raw, latestProgressTTL).Err(); err != nil {
		p.logger.Warn("failed to store latest progress", "project_id", prog.ProjectID, "error", err)
	}
}

// PublishCompleted announces a finished generation.
func (p *Publisher) PublishCompleted(ctx context.Context, ev CompletedEvent) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := p.rdb.Publish(ctx, completedChannel, raw).Err(); err != nil {
		p.logger.Warn("failed to publish completion event", "project_id", ev.ProjectID, "error", err)
	}
}
