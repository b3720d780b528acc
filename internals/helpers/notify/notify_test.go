package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyURLIsNop(t *testing.T) {
	p, err := New(context.Background(), "", "church-events", nil)
	require.NoError(t, err)
	assert.IsType(t, Nop{}, p)
	assert.NoError(t, p.Publish(context.Background(), map[string]string{"a": "b"}))
	assert.NoError(t, p.Close())
}

func TestNewRedisPublisher_InvalidURL(t *testing.T) {
	_, err := NewRedisPublisher(context.Background(), "http://not-redis", "church-events", nil)
	assert.Error(t, err)
}
