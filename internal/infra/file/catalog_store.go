// Package file persists the question bank and leaderboard as JSON files,
// keeping the questions.json / high_scores.json contract of the original
// deployment. Files are pretty-printed for human inspection.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"ultimate-quiz-service/internal/domain"
)

// CatalogStore reads and writes the full question bank at a single JSON path.
type CatalogStore struct {
	path string
}

func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path}
}

// Load returns an empty catalog when the file does not exist yet. A file that
// exists but cannot be read or parsed is a storage failure.
func (s *CatalogStore) Load(_ context.Context) (domain.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Catalog{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStorage, s.path, err)
	}
	var catalog domain.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrStorage, s.path, err)
	}
	return catalog, nil
}

func (s *CatalogStore) Save(_ context.Context, catalog domain.Catalog) error {
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode catalog: %v", domain.ErrStorage, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorage, s.path, err)
	}
	return nil
}
