package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dashboard/backend/internal/domain/billing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultSummaryTTL      = 5 * time.Minute
	defaultCleanupInterval = 30 * time.Second
)

// summaryEntry wraps a cached listing with its expiration time
type summaryEntry struct {
	summaries []billing.CustomerSummary
	expiresAt time.Time
}

func (e *summaryEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// CustomerSummaryCache is an in-process cache of customer listing
// summaries keyed by owner and search query. Entries expire by TTL and
// are dropped eagerly when an invalidation signal names their owner,
// so a mutation in one replica cannot leave another serving stale
// aggregates beyond the TTL.
type CustomerSummaryCache struct {
	entries sync.Map // map[string]*summaryEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

// CustomerSummaryCacheOption is a functional option for configuring the cache
type CustomerSummaryCacheOption func(*CustomerSummaryCache)

// WithSummaryTTL sets the entry time-to-live
func WithSummaryTTL(ttl time.Duration) CustomerSummaryCacheOption {
	return func(c *CustomerSummaryCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithSummaryLogger sets the logger for the cache
func WithSummaryLogger(logger *zap.Logger) CustomerSummaryCacheOption {
	return func(c *CustomerSummaryCache) {
		c.logger = logger
	}
}

// NewCustomerSummaryCache creates a new in-memory customer summary cache
func NewCustomerSummaryCache(opts ...CustomerSummaryCacheOption) *CustomerSummaryCache {
	cache := &CustomerSummaryCache{
		ttl:    defaultSummaryTTL,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

// cacheKey groups entries by owner so InvalidateOwner can drop every
// query variant with one prefix match.
func cacheKey(ownerID uuid.UUID, query string) string {
	return ownerID.String() + ":" + query
}

// Get retrieves a cached listing. A nil slice with ok=false means miss.
func (c *CustomerSummaryCache) Get(ownerID uuid.UUID, query string) ([]billing.CustomerSummary, bool) {
	key := cacheKey(ownerID, query)

	if value, loaded := c.entries.Load(key); loaded {
		entry := value.(*summaryEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			return entry.summaries, true
		}
		c.entries.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	return nil, false
}

// Set stores a listing for one owner and query
func (c *CustomerSummaryCache) Set(ownerID uuid.UUID, query string, summaries []billing.CustomerSummary) {
	entry := &summaryEntry{
		summaries: summaries,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.entries.Store(cacheKey(ownerID, query), entry)
}

// InvalidateOwner drops every cached listing for one owner
func (c *CustomerSummaryCache) InvalidateOwner(ownerID uuid.UUID) {
	prefix := ownerID.String() + ":"
	removed := 0

	c.entries.Range(func(key, _ any) bool {
		k := key.(string)
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			c.entries.Delete(key)
			removed++
		}
		return true
	})

	if removed > 0 {
		c.logger.Debug("Invalidated cached customer listings",
			zap.String("owner_id", ownerID.String()),
			zap.Int("removed", removed))
	}
}

// Close stops the cleanup goroutine
func (c *CustomerSummaryCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// Stats returns hit and miss counters
func (c *CustomerSummaryCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// cleanupExpired periodically removes expired entries
func (c *CustomerSummaryCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*summaryEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}
