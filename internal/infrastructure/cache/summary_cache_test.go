package cache

import (
	"testing"
	"time"

	"github.com/dashboard/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerSummaryCache_GetSet(t *testing.T) {
	cache := NewCustomerSummaryCache()
	defer cache.Close()

	ownerID := uuid.New()
	summaries := []billing.CustomerSummary{
		{ID: uuid.New(), Name: "Alice", TotalInvoices: 2, TotalPaidMinor: 10000},
	}

	t.Run("miss before set", func(t *testing.T) {
		got, ok := cache.Get(ownerID, "")
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("hit after set", func(t *testing.T) {
		cache.Set(ownerID, "", summaries)

		got, ok := cache.Get(ownerID, "")
		require.True(t, ok)
		require.Len(t, got, 1)
		assert.Equal(t, "Alice", got[0].Name)
	})

	t.Run("query variants are separate entries", func(t *testing.T) {
		_, ok := cache.Get(ownerID, "alice")
		assert.False(t, ok)
	})

	t.Run("owners do not share entries", func(t *testing.T) {
		_, ok := cache.Get(uuid.New(), "")
		assert.False(t, ok)
	})
}

func TestCustomerSummaryCache_TTL(t *testing.T) {
	cache := NewCustomerSummaryCache(WithSummaryTTL(10 * time.Millisecond))
	defer cache.Close()

	ownerID := uuid.New()
	cache.Set(ownerID, "", []billing.CustomerSummary{{Name: "Alice"}})

	_, ok := cache.Get(ownerID, "")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = cache.Get(ownerID, "")
	assert.False(t, ok, "entry should expire after its TTL")
}

func TestCustomerSummaryCache_InvalidateOwner(t *testing.T) {
	cache := NewCustomerSummaryCache()
	defer cache.Close()

	ownerID := uuid.New()
	otherOwner := uuid.New()
	summaries := []billing.CustomerSummary{{Name: "Alice"}}

	cache.Set(ownerID, "", summaries)
	cache.Set(ownerID, "alice", summaries)
	cache.Set(otherOwner, "", summaries)

	cache.InvalidateOwner(ownerID)

	_, ok := cache.Get(ownerID, "")
	assert.False(t, ok, "all query variants of the owner should be dropped")
	_, ok = cache.Get(ownerID, "alice")
	assert.False(t, ok)

	_, ok = cache.Get(otherOwner, "")
	assert.True(t, ok, "other owners' entries must survive")
}

func TestCustomerSummaryCache_Stats(t *testing.T) {
	cache := NewCustomerSummaryCache()
	defer cache.Close()

	ownerID := uuid.New()
	cache.Get(ownerID, "")
	cache.Set(ownerID, "", nil)
	cache.Get(ownerID, "")

	hits, misses := cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestCustomerSummaryCache_CloseIsIdempotent(t *testing.T) {
	cache := NewCustomerSummaryCache()
	require.NoError(t, cache.Close())
	require.NoError(t, cache.Close())
}
