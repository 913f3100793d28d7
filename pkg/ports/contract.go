package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ContractTimeline is the timeline used by RunDriverContract.
func ContractTimeline() domain.Timeline {
	return domain.Timeline{
		Duration: time.Second,
		Keyframes: []domain.Keyframe{
			{Offset: 0, Styles: domain.StyleMap{"height": "0px", "opacity": "0"}},
			{Offset: 1, Styles: domain.StyleMap{"height": "100px", "opacity": "1"}},
		},
	}
}

// RunDriverContract runs a suite of tests to verify that a Driver implementation
// adheres to the Player contract. newElement must return a fresh element the driver
// accepts.
func RunDriverContract(t *testing.T, driver Driver, newElement func() Element) {
	t.Run("Available", func(t *testing.T) {
		assert.True(t, driver.IsAvailable())
		assert.NotEmpty(t, driver.Name())
	})

	t.Run("Create Pending", func(t *testing.T) {
		p, err := driver.Create(newElement(), ContractTimeline())
		require.NoError(t, err)
		defer p.Destroy()

		assert.Equal(t, domain.StatusPending, p.Status())
		assert.Equal(t, 0.0, p.Position())
		assert.Len(t, p.Timeline().Keyframes, 2)
	})

	t.Run("SetPosition Endpoints", func(t *testing.T) {
		p, err := driver.Create(newElement(), ContractTimeline())
		require.NoError(t, err)
		defer p.Destroy()

		p.SetPosition(1)
		assert.Equal(t, domain.StyleMap{"height": "100px", "opacity": "1"}, p.Snapshot())

		p.SetPosition(0)
		assert.Equal(t, domain.StyleMap{"height": "0px", "opacity": "0"}, p.Snapshot())

		p.SetPosition(0.5)
		assert.Equal(t, "50px", p.Snapshot()["height"])
	})

	t.Run("Play", func(t *testing.T) {
		p, err := driver.Create(newElement(), ContractTimeline())
		require.NoError(t, err)
		defer p.Destroy()

		p.Play()
		assert.Contains(t, []domain.PlayerStatus{domain.StatusRunning, domain.StatusFinished}, p.Status())
	})

	t.Run("Finish Fires Done Once", func(t *testing.T) {
		p, err := driver.Create(newElement(), ContractTimeline())
		require.NoError(t, err)
		defer p.Destroy()

		done := 0
		p.OnDone(func() { done++ })
		p.Play()
		p.Finish()
		p.Finish()

		assert.Equal(t, 1, done)
		assert.Equal(t, domain.StatusFinished, p.Status())
		assert.Equal(t, 1.0, p.Position())
		assert.Equal(t, "100px", p.Snapshot()["height"])
	})

	t.Run("Destroy Idempotent", func(t *testing.T) {
		p, err := driver.Create(newElement(), ContractTimeline())
		require.NoError(t, err)

		destroyed := 0
		p.OnDestroy(func() { destroyed++ })
		p.Play()
		p.Destroy()
		p.Destroy()

		assert.Equal(t, 1, destroyed)
		assert.Equal(t, domain.StatusDestroyed, p.Status())
		assert.NotPanics(t, func() {
			p.SetPosition(0.5)
			p.Play()
			p.Finish()
		})
		assert.Equal(t, domain.StatusDestroyed, p.Status())
	})
}

// RunStyleCacheContract runs a suite of tests to verify that a StyleCache implementation
// adheres to the defined interface contract.
func RunStyleCacheContract(t *testing.T, cache StyleCache) {
	ctx := context.Background()
	elementID := "contract-element-" + time.Now().Format("20060102150405")

	t.Run("Store and Load", func(t *testing.T) {
		err := cache.Store(ctx, elementID, domain.StyleMap{"height": "100px"})
		require.NoError(t, err, "Store should not return error")

		loaded, err := cache.Load(ctx, elementID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "100px", loaded["height"])
	})

	t.Run("Store Merges", func(t *testing.T) {
		require.NoError(t, cache.Store(ctx, elementID, domain.StyleMap{"opacity": "0.5"}))
		require.NoError(t, cache.Store(ctx, elementID, domain.StyleMap{"height": "80px"}))

		loaded, err := cache.Load(ctx, elementID)
		require.NoError(t, err)
		assert.Equal(t, "80px", loaded["height"])
		assert.Equal(t, "0.5", loaded["opacity"])
	})

	t.Run("Load Unknown", func(t *testing.T) {
		loaded, err := cache.Load(ctx, "unknown-"+elementID)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Delete(ctx, elementID))

		loaded, err := cache.Load(ctx, elementID)
		require.NoError(t, err)
		assert.Empty(t, loaded, "Load after Delete should be empty")
	})
}
