package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vibegen/vibegen-studio/internal/generator"
)

type fakeRedis struct {
	published   map[string][]string
	stored      map[string]string
	storedTTL   map[string]time.Duration
	failPublish bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		published: map[string][]string{},
		stored:    map[string]string{},
		storedTTL: map[string]time.Duration{},
	}
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.failPublish {
		cmd.SetErr(errors.New("connection refused"))
		return cmd
	}
	f.published[channel] = append(f.published[channel], string(message.([]byte)))
	return cmd
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.stored[key] = string(value.([]byte))
	f.storedTTL[key] = expiration
	return redis.NewStatusCmd(ctx)
}

func testPublisher(rdb commands) *Publisher {
	return &Publisher{
		rdb:    rdb,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestPublishProgress(t *testing.T) {
	fake := newFakeRedis()
	p := testPublisher(fake)

	p.PublishProgress(context.Background(), generator.Progress{
		ProjectID: "proj-1",
		Percent:   45,
		Phase:     "designing_scenes",
	})

	msgs := fake.published[progressChannel]
	if len(msgs) != 1 {
		t.Fatalf("published %d progress messages, want 1", len(msgs))
	}

	var got generator.Progress
	if err := json.Unmarshal([]byte(msgs[0]), &got); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if got.ProjectID != "proj-1" || got.Percent != 45 || got.Phase != "designing_scenes" {
		t.Errorf("payload = %+v", got)
	}

	key := "vibegen:generation:latest:proj-1"
	if fake.stored[key] != msgs[0] {
		t.Errorf("latest-progress key = %q, want published payload", fake.stored[key])
	}
	if fake.storedTTL[key] != latestProgressTTL {
		t.Errorf("latest-progress TTL = %v, want %v", fake.storedTTL[key], latestProgressTTL)
	}
}

func TestPublishProgress_PublishFailureSkipsStore(t *testing.T) {
	fake := newFakeRedis()
	fake.failPublish = true
	p := testPublisher(fake)

	p.PublishProgress(context.Background(), generator.Progress{ProjectID: "proj-1", Percent: 10})

	if len(fake.stored) != 0 {
		t.Errorf("stored %d keys after failed publish, want 0", len(fake.stored))
	}
}

func TestPublishCompleted(t *testing.T) {
	fake := newFakeRedis()
	p := testPublisher(fake)

	ev := CompletedEvent{
		ProjectID:        "proj-2",
		UsedFallback:     true,
		ProcessingTimeMS: 1234,
		Scenes:           5,
	}
	p.PublishCompleted(context.Background(), ev)

	msgs := fake.published[completedChannel]
	if len(msgs) != 1 {
		t.Fatalf("published %d completion messages, want 1", len(msgs))
	}

	var got CompletedEvent
	if err := json.Unmarshal([]byte(msgs[0]), &got); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if got != ev {
		t.Errorf("payload = %+v, want %+v", got, ev)
	}
}

func TestClose_NilCloser(t *testing.T) {
	p := testPublisher(newFakeRedis())
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
