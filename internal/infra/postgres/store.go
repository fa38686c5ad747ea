// Package postgres persists the catalog and leaderboard as JSONB documents,
// one full-state row each, matching the load-everything / save-everything
// store contract.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ultimate-quiz-service/internal/domain"
)

const catalogKey = "default"
const leaderboardKey = "default"

// CatalogStore loads and saves the question bank JSONB from Postgres.
type CatalogStore struct {
	pool *pgxpool.Pool
}

func NewCatalogStore(pool *pgxpool.Pool) *CatalogStore {
	return &CatalogStore{pool: pool}
}

func (s *CatalogStore) Load(ctx context.Context) (domain.Catalog, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM catalogs WHERE id=$1`, catalogKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Catalog{}, nil
		}
		return nil, fmt.Errorf("%w: load catalog: %v", domain.ErrStorage, err)
	}
	var catalog domain.Catalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("%w: decode catalog: %v", domain.ErrStorage, err)
	}
	return catalog, nil
}

func (s *CatalogStore) Save(ctx context.Context, catalog domain.Catalog) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("%w: encode catalog: %v", domain.ErrStorage, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO catalogs (id, data) VALUES ($1, $2::jsonb)
		ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data
	`, catalogKey, data)
	if err != nil {
		return fmt.Errorf("%w: save catalog: %v", domain.ErrStorage, err)
	}
	return nil
}

// LeaderboardStore loads and saves the high-score list JSONB from Postgres.
type LeaderboardStore struct {
	pool *pgxpool.Pool
}

func NewLeaderboardStore(pool *pgxpool.Pool) *LeaderboardStore {
	return &LeaderboardStore{pool: pool}
}

func (s *LeaderboardStore) Load(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM high_scores WHERE id=$1`, leaderboardKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: load leaderboard: %v", domain.ErrStorage, err)
	}
	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: decode leaderboard: %v", domain.ErrStorage, err)
	}
	return entries, nil
}

func (s *LeaderboardStore) Save(ctx context.Context, entries []domain.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: encode leaderboard: %v", domain.ErrStorage, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO high_scores (id, data) VALUES ($1, $2::jsonb)
		ON CONFLICT (id) DO UPDATE SET data=EXCLUDED.data
	`, leaderboardKey, data)
	if err != nil {
		return fmt.Errorf("%w: save leaderboard: %v", domain.ErrStorage, err)
	}
	return nil
}
