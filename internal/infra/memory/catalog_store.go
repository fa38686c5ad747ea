package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"ultimate-quiz-service/internal/domain"
)

// CatalogStore keeps the question bank in process memory. Useful for tests
// and demo runs without a configured backend.
type CatalogStore struct {
	mu      sync.RWMutex
	catalog domain.Catalog
}

func NewCatalogStore(initial domain.Catalog) *CatalogStore {
	if initial == nil {
		initial = domain.Catalog{}
	}
	return &CatalogStore{catalog: initial.Clone()}
}

func (s *CatalogStore) Load(_ context.Context) (domain.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Clone(), nil
}

func (s *CatalogStore) Save(_ context.Context, catalog domain.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = catalog.Clone()
	return nil
}

// CatalogBackend is the slower store a CatalogCache sits in front of
// (file, sqlite, Postgres).
type CatalogBackend interface {
	Load(ctx context.Context) (domain.Catalog, error)
	Save(ctx context.Context, catalog domain.Catalog) error
}

// CatalogCache caches the catalog with a TTL to avoid re-reading the backing
// store on every request. Writes go through to the backend and refresh the
// cache on success.
type CatalogCache struct {
	backend CatalogBackend
	ttl     time.Duration
	clock   func() time.Time
	sf      singleflight.Group
	rnd     *rand.Rand

	mu        sync.RWMutex
	cached    domain.Catalog
	expiresAt time.Time
}

func NewCatalogCache(backend CatalogBackend, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		backend: backend,
		ttl:     ttl,
		clock:   time.Now,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CatalogCache) Load(ctx context.Context) (domain.Catalog, error) {
	now := c.clock()

	c.mu.RLock()
	if c.cached != nil && c.expiresAt.After(now) {
		catalog := c.cached.Clone()
		c.mu.RUnlock()
		return catalog, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("catalog", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.cached != nil && c.expiresAt.After(now) {
			catalog := c.cached.Clone()
			c.mu.RUnlock()
			return catalog, nil
		}
		c.mu.RUnlock()

		catalog, err := c.backend.Load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cached = catalog.Clone()
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return catalog, nil
	})
	if err != nil {
		return nil, err
	}
	// Deduplicated callers all receive the same singleflight value; clone so
	// no two callers share a map.
	return result.(domain.Catalog).Clone(), nil
}

// Save writes through to the backend; the cache only refreshes when the
// write commits.
func (c *CatalogCache) Save(ctx context.Context, catalog domain.Catalog) error {
	if err := c.backend.Save(ctx, catalog); err != nil {
		return err
	}
	c.mu.Lock()
	c.cached = catalog.Clone()
	c.expiresAt = c.clock().Add(c.ttlWithJitter())
	c.mu.Unlock()
	return nil
}

func (c *CatalogCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
