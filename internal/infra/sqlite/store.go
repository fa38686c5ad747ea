// Package sqlite backs the catalog and leaderboard with a single sqlite file,
// for single-binary deployments that outgrow JSON files but do not need a
// server database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"ultimate-quiz-service/internal/domain"
)

// Store implements both app.CatalogStore and app.LeaderboardStore on one
// sqlite database.
type Store struct {
	db *sql.DB
}

// Open creates the database file if needed and initializes tables.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", domain.ErrStorage, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: ping sqlite: %v", domain.ErrStorage, err)
	}
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("%w: init sqlite schema: %v", domain.ErrStorage, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			position INTEGER NOT NULL,
			question TEXT NOT NULL,
			options TEXT NOT NULL,
			correct INTEGER NOT NULL,
			explanation TEXT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS high_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			category TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			questions INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			timestamp TEXT NOT NULL
		)
	`)
	return err
}

// Load rebuilds the catalog from question rows, preserving bucket order.
func (s *Store) Load(ctx context.Context) (domain.Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, difficulty, question, options, correct, explanation
		FROM questions ORDER BY category, difficulty, position
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: query questions: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	catalog := domain.Catalog{}
	for rows.Next() {
		var category, difficulty, text, optionsJSON, explanation string
		var correct int
		if err := rows.Scan(&category, &difficulty, &text, &optionsJSON, &correct, &explanation); err != nil {
			return nil, fmt.Errorf("%w: scan question: %v", domain.ErrStorage, err)
		}
		var options []string
		if err := json.Unmarshal([]byte(optionsJSON), &options); err != nil {
			return nil, fmt.Errorf("%w: decode options: %v", domain.ErrStorage, err)
		}
		question := domain.Question{
			Text:         text,
			Options:      options,
			CorrectIndex: correct,
			Explanation:  explanation,
			Difficulty:   difficulty,
		}

		buckets := catalog[category]
		switch difficulty {
		case domain.DifficultyEasy:
			buckets.Easy = append(buckets.Easy, question)
		case domain.DifficultyMedium:
			buckets.Medium = append(buckets.Medium, question)
		case domain.DifficultyHard:
			buckets.Hard = append(buckets.Hard, question)
		default:
			continue
		}
		catalog[category] = buckets
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate questions: %v", domain.ErrStorage, err)
	}
	return catalog, nil
}

// Save replaces the stored catalog with the given one in a single transaction.
func (s *Store) Save(ctx context.Context, catalog domain.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", domain.ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions`); err != nil {
		return fmt.Errorf("%w: clear questions: %v", domain.ErrStorage, err)
	}
	for category, buckets := range catalog {
		for _, level := range []string{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
			for position, question := range buckets.ForDifficulty(level) {
				optionsJSON, err := json.Marshal(question.Options)
				if err != nil {
					return fmt.Errorf("%w: encode options: %v", domain.ErrStorage, err)
				}
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO questions (category, difficulty, position, question, options, correct, explanation)
					VALUES (?, ?, ?, ?, ?, ?, ?)
				`, category, level, position, question.Text, string(optionsJSON), question.CorrectIndex, question.Explanation); err != nil {
					return fmt.Errorf("%w: insert question: %v", domain.ErrStorage, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit catalog: %v", domain.ErrStorage, err)
	}
	return nil
}

// LeaderboardStore exposes the high-score half of the database under the
// app.LeaderboardStore contract.
type LeaderboardStore struct {
	db *sql.DB
}

func (s *Store) Leaderboard() *LeaderboardStore {
	return &LeaderboardStore{db: s.db}
}

func (s *LeaderboardStore) Load(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, score, accuracy, category, difficulty, questions, correct, timestamp
		FROM high_scores ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: query high scores: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var entry domain.LeaderboardEntry
		if err := rows.Scan(&entry.PlayerName, &entry.Score, &entry.Accuracy, &entry.Category,
			&entry.Difficulty, &entry.QuestionCount, &entry.CorrectCount, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: scan high score: %v", domain.ErrStorage, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate high scores: %v", domain.ErrStorage, err)
	}
	return entries, nil
}

func (s *LeaderboardStore) Save(ctx context.Context, entries []domain.LeaderboardEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", domain.ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM high_scores`); err != nil {
		return fmt.Errorf("%w: clear high scores: %v", domain.ErrStorage, err)
	}
	for position, entry := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO high_scores (position, name, score, accuracy, category, difficulty, questions, correct, timestamp)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, position, entry.PlayerName, entry.Score, entry.Accuracy, entry.Category,
			entry.Difficulty, entry.QuestionCount, entry.CorrectCount, entry.Timestamp); err != nil {
			return fmt.Errorf("%w: insert high score: %v", domain.ErrStorage, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit high scores: %v", domain.ErrStorage, err)
	}
	return nil
}
