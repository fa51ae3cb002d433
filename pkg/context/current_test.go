package context

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrent_SetGet(t *testing.T) {
	current := NewCurrent()

	current.Set("request_id", "abc")
	current.Set("attempt", 2)

	id, ok := current.GetString("request_id")
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	_, ok = current.GetString("attempt")
	assert.False(t, ok)

	_, ok = current.GetString("missing")
	assert.False(t, ok)

	assert.True(t, current.Exists("attempt"))
	assert.Equal(t, map[string]interface{}{"request_id": "abc", "attempt": 2}, current.All())
}

func TestCurrent_Context(t *testing.T) {
	current := NewCurrent()
	current.Set("request_id", "abc")

	ctx := WithCurrent(context.Background(), current)

	found, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, current, found)
	assert.Equal(t, "abc", RequestID(ctx))

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
	assert.Empty(t, RequestID(context.Background()))
	assert.NotNil(t, GetCurrent(context.Background()))
}

func TestCurrent_ConcurrentAccess(t *testing.T) {
	current := NewCurrent()

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			current.Set("key", i)
			current.Get("key")
		}(i)
	}

	wg.Wait()

	assert.True(t, current.Exists("key"))
}
