package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/kernsim/service/messaging"
)

func TestQueue_PublishConsume(t *testing.T) {
	queue := NewQueue[int](Config{Capacity: 4})
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		value := i
		require.NoError(t, queue.Publish(ctx, &value))
	}
	assert.Equal(t, 3, queue.Size())
	for i := 0; i < 3; i++ {
		item, err := queue.Consume(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, *item)
	}
	assert.Equal(t, 0, queue.Size())
}

func TestQueue_PublishFull(t *testing.T) {
	queue := NewQueue[int](Config{Capacity: 2})
	ctx := context.Background()
	one, two, three := 1, 2, 3
	require.NoError(t, queue.Publish(ctx, &one))
	require.NoError(t, queue.Publish(ctx, &two))
	assert.ErrorIs(t, queue.Publish(ctx, &three), messaging.ErrFull)
	assert.Equal(t, 2, queue.Size())
}

func TestQueue_ConsumeCancelled(t *testing.T) {
	queue := NewQueue[int](Config{Capacity: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewQueue_defaultCapacity(t *testing.T) {
	queue := NewQueue[int](Config{})
	assert.Equal(t, DefaultConfig().Capacity, queue.Capacity())
}
