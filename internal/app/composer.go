package app

import (
	"math/rand"
	"time"

	"ultimate-quiz-service/internal/domain"
)

// Composer selects and orders a subset of the catalog for one quiz.
type Composer struct {
	rnd *rand.Rand
}

func NewComposer() *Composer {
	return NewComposerWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewComposerWithRand allows a seeded generator in tests.
func NewComposerWithRand(rnd *rand.Rand) *Composer {
	return &Composer{rnd: rnd}
}

// Compose builds a shuffled question list for the requested scope, truncated
// to min(count, pool size). An empty pool yields an empty slice; the caller
// decides whether that is an error.
func (c *Composer) Compose(catalog domain.Catalog, category, difficulty string, count int) []domain.Question {
	pool := buildPool(catalog, category, difficulty)
	shuffled := shuffleQuestions(c.rnd, pool)
	if count < 0 {
		count = 0
	}
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

func buildPool(catalog domain.Catalog, category, difficulty string) []domain.Question {
	var pool []domain.Question
	appendScope := func(buckets domain.Buckets) {
		if difficulty == domain.DifficultyMixed {
			for _, level := range []string{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
				pool = append(pool, tagQuestions(buckets.ForDifficulty(level), domain.DifficultyMixed)...)
			}
			return
		}
		pool = append(pool, tagQuestions(buckets.ForDifficulty(difficulty), difficulty)...)
	}

	if category == domain.RandomMix {
		for _, buckets := range catalog {
			appendScope(buckets)
		}
		return pool
	}
	if buckets, ok := catalog[category]; ok {
		appendScope(buckets)
	}
	return pool
}

// tagQuestions fills in missing difficulty tags so scoring knows the point
// value. Under single-difficulty selection the requested level is used; under
// mixed selection untagged questions default to medium. The mixed default is
// an approximation, not a true difficulty inference.
func tagQuestions(questions []domain.Question, selected string) []domain.Question {
	tagged := make([]domain.Question, len(questions))
	copy(tagged, questions)
	for i := range tagged {
		if tagged[i].Difficulty != "" {
			continue
		}
		if selected == domain.DifficultyMixed {
			tagged[i].Difficulty = domain.DifficultyMedium
		} else {
			tagged[i].Difficulty = selected
		}
	}
	return tagged
}

// shuffleQuestions returns a Fisher-Yates shuffled copy, leaving the source
// slice untouched.
func shuffleQuestions(rnd *rand.Rand, questions []domain.Question) []domain.Question {
	shuffled := make([]domain.Question, len(questions))
	copy(shuffled, questions)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
