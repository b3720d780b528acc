package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStopped = errors.New("stopped before dial")

// captureHook mencatat command lalu menghentikannya sebelum ke jaringan.
type captureHook struct {
	args [][]interface{}
}

func (h *captureHook) BeforeProcess(ctx context.Context, cmd redis.Cmder) (context.Context, error) {
	h.args = append(h.args, cmd.Args())
	return ctx, errStopped
}

func (h *captureHook) AfterProcess(context.Context, redis.Cmder) error { return nil }

func (h *captureHook) BeforeProcessPipeline(ctx context.Context, _ []redis.Cmder) (context.Context, error) {
	return ctx, nil
}

func (h *captureHook) AfterProcessPipeline(context.Context, []redis.Cmder) error { return nil }

func newCapturing(t *testing.T, channel string) (*RedisPublisher, *captureHook) {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })
	hook := &captureHook{}
	client.AddHook(hook)
	return newRedisPublisher(client, channel, nil), hook
}

type eventsCreated struct {
	ScheduleID string   `json:"scheduleId"`
	Dates      []string `json:"dates"`
}

func TestRedisPublisher_PublishesEncodedPayloadOnChannel(t *testing.T) {
	p, hook := newCapturing(t, "church-events")

	err := p.Publish(context.Background(), eventsCreated{ScheduleID: "s-1", Dates: []string{"2024-01-03", "2024-01-07"}})
	require.ErrorIs(t, err, errStopped)
	assert.Contains(t, err.Error(), "publish to church-events")

	require.Len(t, hook.args, 1)
	args := hook.args[0]
	require.Len(t, args, 3)
	assert.Equal(t, "publish", args[0])
	assert.Equal(t, "church-events", args[1])

	payload, ok := args[2].([]byte)
	require.True(t, ok, "payload is %T", args[2])
	assert.JSONEq(t, `{"scheduleId":"s-1","dates":["2024-01-03","2024-01-07"]}`, string(payload))
}

func TestRedisPublisher_MarshalErrorSkipsRedis(t *testing.T) {
	p, hook := newCapturing(t, "church-events")

	err := p.Publish(context.Background(), make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal message")
	assert.Empty(t, hook.args)
}
