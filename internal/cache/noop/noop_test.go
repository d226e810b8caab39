package noop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopRemoteStore(t *testing.T) {
	store := NewRemoteStore()
	ctx := context.Background()

	store.Set(ctx, "k", []byte("v"), time.Minute, true)

	val, found := store.Get(ctx, "k")
	assert.False(t, found)
	assert.Nil(t, val)

	store.Delete(ctx, "k")
	assert.Equal(t, 0, store.DeletePattern(ctx, "*"))

	info, err := store.Info(ctx)
	assert.NoError(t, err)
	assert.Empty(t, info)

	assert.NoError(t, store.Close())
}
