package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/kinetic/pkg/adapters/memory"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStyleCache_Contract(t *testing.T) {
	ports.RunStyleCacheContract(t, memory.NewStyleCache())
}

func TestMemoryStyleCache_Isolation(t *testing.T) {
	cache := memory.NewStyleCache()
	ctx := context.Background()

	input := domain.StyleMap{"height": "10px"}
	require.NoError(t, cache.Store(ctx, "el", input))
	input["height"] = "99px"

	loaded, err := cache.Load(ctx, "el")
	require.NoError(t, err)
	assert.Equal(t, "10px", loaded["height"])

	loaded["height"] = "0px"
	again, _ := cache.Load(ctx, "el")
	assert.Equal(t, "10px", again["height"])
	assert.Equal(t, 1, cache.Len())
}
