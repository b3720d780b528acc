package principal

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWithAndFrom(t *testing.T) {
	ctx := context.Background()

	_, ok := From(ctx)
	assert.False(t, ok)
	assert.Empty(t, UserIDString(ctx))

	id := uuid.New()
	ctx = With(ctx, Principal{UserID: id, Role: "admin"})

	p, ok := From(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, p.UserID)
	assert.Equal(t, "admin", p.Role)
	assert.Equal(t, id.String(), UserIDString(ctx))
}
