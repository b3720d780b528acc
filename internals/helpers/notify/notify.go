// Package notify publishes domain notifications (newly materialized events)
// to other services over Redis pub/sub.
package notify

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, message any) error
	Close() error
}

/* ===============================
   Redis
=================================*/

type RedisPublisher struct {
	client  *redis.Client
	channel string
	log     *zap.Logger
}

// NewRedisPublisher: url format redis://[:password@]host:port/db
func NewRedisPublisher(ctx context.Context, url, channel string, log *zap.Logger) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	p := newRedisPublisher(client, channel, log)
	p.log.Info("✅ Connected to Redis", zap.String("channel", channel))
	return p, nil
}

func newRedisPublisher(client *redis.Client, channel string, log *zap.Logger) *RedisPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisPublisher{client: client, channel: channel, log: log}
}

func (p *RedisPublisher) Publish(ctx context.Context, message any) error {
	payload, err := sonic.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.channel, err)
	}
	p.log.Debug("📤 published", zap.String("channel", p.channel), zap.Int("bytes", len(payload)))
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

/* ===============================
   Nop (REDIS_URL kosong)
=================================*/

type Nop struct{}

func (Nop) Publish(context.Context, any) error { return nil }
func (Nop) Close() error                       { return nil }

// New: REDIS_URL kosong → Nop.
func New(ctx context.Context, url, channel string, log *zap.Logger) (Publisher, error) {
	if url == "" {
		return Nop{}, nil
	}
	return NewRedisPublisher(ctx, url, channel, log)
}
