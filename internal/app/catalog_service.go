package app

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"ultimate-quiz-service/internal/domain"
)

// CatalogStore abstracts where the question bank lives (JSON file, sqlite,
// Postgres, in-memory). Load returns an empty catalog when the store has no
// content yet; corruption surfaces as a domain.ErrStorage-wrapped error.
type CatalogStore interface {
	Load(ctx context.Context) (domain.Catalog, error)
	Save(ctx context.Context, catalog domain.Catalog) error
}

// CatalogService owns all reads and mutations of the question bank. Mutations
// are serialized through a mutex and re-persisted in full after each change;
// reads fail open to the fallback catalog, writes fail closed.
type CatalogService struct {
	store    CatalogStore
	fallback domain.Catalog

	mu sync.Mutex
}

func NewCatalogService(store CatalogStore, fallback domain.Catalog) *CatalogService {
	if fallback == nil {
		fallback = domain.Catalog{}
	}
	return &CatalogService{store: store, fallback: fallback}
}

// Snapshot returns the current catalog, falling back to the default catalog
// when the store is unreadable. The returned copy is safe to mutate.
func (s *CatalogService) Snapshot(ctx context.Context) domain.Catalog {
	catalog, err := s.store.Load(ctx)
	if err != nil {
		log.Printf("catalog load failed, falling back to default catalog: %v", err)
		return s.fallback.Clone()
	}
	if len(catalog) == 0 {
		return s.fallback.Clone()
	}
	return catalog
}

// Categories lists category names with their total question counts, sorted by name.
func (s *CatalogService) Categories(ctx context.Context) []domain.CategoryInfo {
	catalog := s.Snapshot(ctx)
	infos := make([]domain.CategoryInfo, 0, len(catalog))
	for name, buckets := range catalog {
		infos = append(infos, domain.CategoryInfo{Name: name, QuestionCount: buckets.Total()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Stats aggregates totals per category and per difficulty.
func (s *CatalogService) Stats(ctx context.Context) domain.Stats {
	catalog := s.Snapshot(ctx)
	stats := domain.Stats{
		TotalCategories: len(catalog),
		CategoryStats:   make(map[string]int, len(catalog)),
		DifficultyStats: map[string]int{
			domain.DifficultyEasy:   0,
			domain.DifficultyMedium: 0,
			domain.DifficultyHard:   0,
		},
	}
	for name, buckets := range catalog {
		stats.CategoryStats[name] = buckets.Total()
		stats.DifficultyStats[domain.DifficultyEasy] += len(buckets.Easy)
		stats.DifficultyStats[domain.DifficultyMedium] += len(buckets.Medium)
		stats.DifficultyStats[domain.DifficultyHard] += len(buckets.Hard)
		stats.TotalQuestions += buckets.Total()
	}
	return stats
}

// AddQuestion validates and appends a question, creating the category with
// all three empty buckets when absent. Nothing is committed if the save fails.
func (s *CatalogService) AddQuestion(ctx context.Context, category, difficulty string, question domain.Question) error {
	if err := validateQuestion(category, difficulty, question); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	catalog := s.Snapshot(ctx)
	buckets := catalog[category]
	switch difficulty {
	case domain.DifficultyEasy:
		buckets.Easy = append(buckets.Easy, question)
	case domain.DifficultyMedium:
		buckets.Medium = append(buckets.Medium, question)
	case domain.DifficultyHard:
		buckets.Hard = append(buckets.Hard, question)
	}
	catalog[category] = buckets.Normalized()

	if err := s.store.Save(ctx, catalog); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// DeleteQuestion removes the question at index from the target bucket and
// re-persists the catalog.
func (s *CatalogService) DeleteQuestion(ctx context.Context, category, difficulty string, index int) error {
	if !validDifficulty(difficulty) {
		return fmt.Errorf("%w: unknown difficulty %q", domain.ErrValidation, difficulty)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	catalog := s.Snapshot(ctx)
	buckets, ok := catalog[category]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrCategoryNotFound, category)
	}

	bucket := buckets.ForDifficulty(difficulty)
	if index < 0 || index >= len(bucket) {
		return fmt.Errorf("%w: index %d in %s/%s", domain.ErrIndexOutOfRange, index, category, difficulty)
	}
	trimmed := append(append([]domain.Question(nil), bucket[:index]...), bucket[index+1:]...)
	switch difficulty {
	case domain.DifficultyEasy:
		buckets.Easy = trimmed
	case domain.DifficultyMedium:
		buckets.Medium = trimmed
	case domain.DifficultyHard:
		buckets.Hard = trimmed
	}
	catalog[category] = buckets.Normalized()

	if err := s.store.Save(ctx, catalog); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// Import merges another catalog into the bank, creating missing categories
// with all three buckets. Unknown difficulty keys are dropped by the catalog
// shape itself.
func (s *CatalogService) Import(ctx context.Context, incoming domain.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog := s.Snapshot(ctx)
	for name, add := range incoming {
		buckets := catalog[name]
		buckets.Easy = append(buckets.Easy, add.Easy...)
		buckets.Medium = append(buckets.Medium, add.Medium...)
		buckets.Hard = append(buckets.Hard, add.Hard...)
		catalog[name] = buckets.Normalized()
	}

	if err := s.store.Save(ctx, catalog); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// Export returns the full bank, answer keys included. Admin use only.
func (s *CatalogService) Export(ctx context.Context) domain.Catalog {
	return s.Snapshot(ctx)
}

func validateQuestion(category, difficulty string, question domain.Question) error {
	if category == "" {
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if !validDifficulty(difficulty) {
		return fmt.Errorf("%w: unknown difficulty %q", domain.ErrValidation, difficulty)
	}
	if question.Text == "" {
		return fmt.Errorf("%w: question text is required", domain.ErrValidation)
	}
	if len(question.Options) != domain.OptionCount {
		return fmt.Errorf("%w: exactly %d options required, got %d", domain.ErrValidation, domain.OptionCount, len(question.Options))
	}
	for i, option := range question.Options {
		if option == "" {
			return fmt.Errorf("%w: option %d is empty", domain.ErrValidation, i)
		}
	}
	if question.CorrectIndex < 0 || question.CorrectIndex >= domain.OptionCount {
		return fmt.Errorf("%w: correct index %d out of range", domain.ErrValidation, question.CorrectIndex)
	}
	return nil
}

func validDifficulty(difficulty string) bool {
	switch difficulty {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
		return true
	}
	return false
}
