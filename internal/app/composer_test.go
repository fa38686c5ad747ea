package app_test

import (
	"math/rand"
	"testing"

	"ultimate-quiz-service/internal/app"
	"ultimate-quiz-service/internal/domain"
)

func testCatalog() domain.Catalog {
	return domain.Catalog{
		"Science": {
			Easy: []domain.Question{
				question("photosynthesis gas?", 2),
				question("bones in adult body?", 0),
			},
			Medium: []domain.Question{question("symbol for gold?", 2)},
			Hard:   []domain.Question{question("speed of light?", 0)},
		},
		"History": {
			Easy:   []domain.Question{question("first US president?", 1)},
			Medium: []domain.Question{},
			Hard:   []domain.Question{},
		},
	}
}

func question(text string, correct int) domain.Question {
	return domain.Question{
		Text:         text,
		Options:      []string{"A", "B", "C", "D"},
		CorrectIndex: correct,
	}
}

func newTestComposer() *app.Composer {
	return app.NewComposerWithRand(rand.New(rand.NewSource(1)))
}

func TestComposeMixedReturnsWholePool(t *testing.T) {
	composer := newTestComposer()

	questions := composer.Compose(testCatalog(), "Science", domain.DifficultyMixed, 10)
	if len(questions) != 4 {
		t.Fatalf("expected all 4 Science questions, got %d", len(questions))
	}

	seen := make(map[string]bool)
	for _, q := range questions {
		if seen[q.Text] {
			t.Fatalf("duplicate question %q in composition", q.Text)
		}
		seen[q.Text] = true
	}
}

func TestComposeTruncatesToCount(t *testing.T) {
	composer := newTestComposer()

	questions := composer.Compose(testCatalog(), "Science", domain.DifficultyMixed, 2)
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
}

func TestComposeSingleDifficultyScope(t *testing.T) {
	composer := newTestComposer()

	questions := composer.Compose(testCatalog(), "Science", domain.DifficultyEasy, 10)
	if len(questions) != 2 {
		t.Fatalf("expected 2 easy questions, got %d", len(questions))
	}
	for _, q := range questions {
		if q.Difficulty != domain.DifficultyEasy {
			t.Fatalf("expected easy tag, got %q", q.Difficulty)
		}
	}
}

func TestComposeRandomMixPoolsAllCategories(t *testing.T) {
	composer := newTestComposer()

	questions := composer.Compose(testCatalog(), domain.RandomMix, domain.DifficultyEasy, 10)
	if len(questions) != 3 {
		t.Fatalf("expected 3 easy questions across categories, got %d", len(questions))
	}
}

func TestComposeMixedDefaultsUntaggedToMedium(t *testing.T) {
	composer := newTestComposer()

	questions := composer.Compose(testCatalog(), "Science", domain.DifficultyMixed, 10)
	for _, q := range questions {
		if q.Difficulty != domain.DifficultyMedium {
			t.Fatalf("untagged question under mixed should default to medium, got %q", q.Difficulty)
		}
	}
}

func TestComposeMixedKeepsExplicitTags(t *testing.T) {
	catalog := domain.Catalog{
		"Science": {
			Hard: []domain.Question{
				{
					Text:         "tagged hard question",
					Options:      []string{"A", "B", "C", "D"},
					CorrectIndex: 0,
					Difficulty:   domain.DifficultyHard,
				},
			},
		},
	}
	composer := newTestComposer()

	questions := composer.Compose(catalog, "Science", domain.DifficultyMixed, 10)
	if len(questions) != 1 || questions[0].Difficulty != domain.DifficultyHard {
		t.Fatalf("explicit tag should survive mixed selection, got %+v", questions)
	}
}

func TestComposeEmptyPoolReturnsEmpty(t *testing.T) {
	composer := newTestComposer()

	questions := composer.Compose(testCatalog(), "Geography", domain.DifficultyMixed, 10)
	if len(questions) != 0 {
		t.Fatalf("expected empty result for unknown category, got %d", len(questions))
	}

	questions = composer.Compose(testCatalog(), "History", domain.DifficultyHard, 10)
	if len(questions) != 0 {
		t.Fatalf("expected empty result for empty bucket, got %d", len(questions))
	}
}
