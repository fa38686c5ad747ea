package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"ultimate-quiz-service/internal/domain"
)

// countingBackend counts round-trips to the underlying store.
type countingBackend struct {
	inner *CatalogStore
	loads int
	saves int
}

func (b *countingBackend) Load(ctx context.Context) (domain.Catalog, error) {
	b.loads++
	return b.inner.Load(ctx)
}

func (b *countingBackend) Save(ctx context.Context, catalog domain.Catalog) error {
	b.saves++
	return b.inner.Save(ctx, catalog)
}

func sampleCatalog() domain.Catalog {
	return domain.Catalog{
		"Science": {
			Easy: []domain.Question{{
				Text:         "water formula?",
				Options:      []string{"H2O", "CO2", "NaCl", "O2"},
				CorrectIndex: 0,
			}},
		},
	}
}

func TestCatalogCacheServesFromCache(t *testing.T) {
	ctx := context.Background()
	backend := &countingBackend{inner: NewCatalogStore(sampleCatalog())}
	cache := NewCatalogCache(backend, time.Hour)

	for i := 0; i < 5; i++ {
		catalog, err := cache.Load(ctx)
		if err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
		if len(catalog["Science"].Easy) != 1 {
			t.Fatalf("load %d: unexpected catalog %+v", i, catalog)
		}
	}
	if backend.loads != 1 {
		t.Fatalf("expected a single backend load, got %d", backend.loads)
	}
}

func TestCatalogCacheWriteThrough(t *testing.T) {
	ctx := context.Background()
	backend := &countingBackend{inner: NewCatalogStore(nil)}
	cache := NewCatalogCache(backend, time.Hour)

	if err := cache.Save(ctx, sampleCatalog()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if backend.saves != 1 {
		t.Fatalf("expected write-through, got %d saves", backend.saves)
	}

	catalog, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(catalog["Science"].Easy) != 1 {
		t.Fatalf("save should refresh the cache, got %+v", catalog)
	}
	if backend.loads != 0 {
		t.Fatalf("load after save should hit the cache, got %d backend loads", backend.loads)
	}
}

// slowBackend holds every Load until released so concurrent callers pile up
// on the same cold fetch.
type slowBackend struct {
	inner   *CatalogStore
	release chan struct{}
}

func (b *slowBackend) Load(ctx context.Context) (domain.Catalog, error) {
	<-b.release
	return b.inner.Load(ctx)
}

func (b *slowBackend) Save(ctx context.Context, catalog domain.Catalog) error {
	return b.inner.Save(ctx, catalog)
}

func TestCatalogCacheColdLoadDoesNotShareMaps(t *testing.T) {
	ctx := context.Background()
	backend := &slowBackend{inner: NewCatalogStore(sampleCatalog()), release: make(chan struct{})}
	cache := NewCatalogCache(backend, time.Hour)

	const callers = 8
	results := make(chan domain.Catalog, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			catalog, err := cache.Load(ctx)
			if err != nil {
				t.Errorf("load: %v", err)
				return
			}
			results <- catalog
		}()
	}
	close(backend.release)
	wg.Wait()
	close(results)

	// Each caller mutates its copy; writes must never be visible to another
	// caller's map.
	var catalogs []domain.Catalog
	for catalog := range results {
		catalogs = append(catalogs, catalog)
	}
	for i, catalog := range catalogs {
		catalog[fmt.Sprintf("caller-%d", i)] = domain.Buckets{}
	}
	for i, catalog := range catalogs {
		for j := range catalogs {
			if j == i {
				continue
			}
			if _, ok := catalog[fmt.Sprintf("caller-%d", j)]; ok {
				t.Fatalf("caller %d sees caller %d's write: catalogs are shared", i, j)
			}
		}
	}
}

func TestCatalogCacheReturnsCopies(t *testing.T) {
	ctx := context.Background()
	cache := NewCatalogCache(NewCatalogStore(sampleCatalog()), time.Hour)

	first, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	first["Science"].Easy[0].Text = "mutated"

	second, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if second["Science"].Easy[0].Text == "mutated" {
		t.Fatalf("cache handed out an aliased catalog")
	}
}
