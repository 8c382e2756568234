package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/notty/internal/adapter/driven/memory"
	"github.com/ericfisherdev/notty/internal/domain/port/driven"
)

func TestTokenStore_GetMissing(t *testing.T) {
	store := memory.NewTokenStore()

	val, err := store.Get(context.Background(), driven.AccessTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestTokenStore_SetOverwrites(t *testing.T) {
	store := memory.NewTokenStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, driven.AccessTokenKey, "old"))
	require.NoError(t, store.Set(ctx, driven.AccessTokenKey, "new"))

	val, err := store.Get(ctx, driven.AccessTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "new", val)
}

func TestTokenStore_ConcurrentAccess(t *testing.T) {
	store := memory.NewTokenStore()
	ctx := context.Background()

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines * 2)

	for range goroutines {
		go func() {
			defer wg.Done()
			_ = store.Set(ctx, driven.AccessTokenKey, "token")
		}()
		go func() {
			defer wg.Done()
			_, err := store.Get(ctx, driven.AccessTokenKey)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	val, err := store.Get(ctx, driven.AccessTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "token", val)
}
