package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"ultimate-quiz-service/internal/domain"
)

// MaxQuestionCount is the ceiling on questions per quiz.
const MaxQuestionCount = 50

// DefaultQuestionCount is used when the caller does not ask for a count.
const DefaultQuestionCount = 10

// EventQuizCompleted is published after each graded quiz.
const EventQuizCompleted = "quiz.completed"

// Publisher emits domain events to an external broker. Implementations must
// tolerate being called concurrently.
type Publisher interface {
	Publish(eventType string, payload any) error
}

// NopPublisher discards events; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(string, any) error { return nil }

// QuizCompletedEvent is the payload published after grading.
type QuizCompletedEvent struct {
	PlayerName string  `json:"player_name"`
	Category   string  `json:"category"`
	Difficulty string  `json:"difficulty"`
	Score      int     `json:"score"`
	Accuracy   float64 `json:"accuracy"`
	Questions  int     `json:"questions"`
}

// QuizService drives the quiz-session lifecycle: compose, redact, grade,
// record. Session state lives behind SessionStore; the player only ever sees
// the redacted view and an opaque handle.
type QuizService struct {
	catalog     *CatalogService
	composer    *Composer
	sessions    SessionStore
	leaderboard *Leaderboard
	events      Publisher
	now         func() time.Time
}

func NewQuizService(catalog *CatalogService, composer *Composer, sessions SessionStore, leaderboard *Leaderboard, events Publisher) *QuizService {
	if events == nil {
		events = NopPublisher{}
	}
	return &QuizService{
		catalog:     catalog,
		composer:    composer,
		sessions:    sessions,
		leaderboard: leaderboard,
		events:      events,
		now:         time.Now,
	}
}

// StartRequest are the inputs to start a quiz.
type StartRequest struct {
	Category   string
	Difficulty string
	Count      int
	PlayerName string
}

// StartResponse hands the caller an opaque session handle plus the redacted
// question list.
type StartResponse struct {
	SessionID string
	Questions []domain.RedactedQuestion
}

// Start composes a question list for the requested scope, binds it to a new
// session, and returns the answer-stripped view.
func (s *QuizService) Start(ctx context.Context, req StartRequest) (StartResponse, error) {
	if req.Count == 0 {
		req.Count = DefaultQuestionCount
	}
	if req.Count < 1 || req.Count > MaxQuestionCount {
		return StartResponse{}, fmt.Errorf("%w: question count must be between 1 and %d", domain.ErrValidation, MaxQuestionCount)
	}
	if req.Category == "" {
		return StartResponse{}, fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	switch req.Difficulty {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard, domain.DifficultyMixed:
	default:
		return StartResponse{}, fmt.Errorf("%w: unknown difficulty %q", domain.ErrValidation, req.Difficulty)
	}

	questions := s.composer.Compose(s.catalog.Snapshot(ctx), req.Category, req.Difficulty, req.Count)
	if len(questions) == 0 {
		return StartResponse{}, domain.ErrEmptySelection
	}

	session := &Session{
		ID:        newSessionID(),
		Questions: questions,
		Config: domain.QuizConfig{
			Category:   req.Category,
			Difficulty: req.Difficulty,
			PlayerName: req.PlayerName,
		},
		State:     SessionActive,
		CreatedAt: s.now(),
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return StartResponse{}, fmt.Errorf("store session: %w", err)
	}

	return StartResponse{SessionID: session.ID, Questions: session.Redacted()}, nil
}

// Submit grades the answer set against the session's answer key, records the
// result on the leaderboard, and publishes a completion event. A session
// grades exactly once: repeat submissions fail with ErrSessionAlreadyGraded
// until the graded tombstone expires, then with ErrSessionNotFound.
func (s *QuizService) Submit(ctx context.Context, sessionID string, answers []int) (domain.Result, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Result{}, err
	}
	if session.State == SessionGraded {
		return domain.Result{}, domain.ErrSessionAlreadyGraded
	}

	if len(answers) != len(session.Questions) {
		log.Printf("session %s: %d answers submitted for %d questions; accuracy computed over submitted count",
			session.ID, len(answers), len(session.Questions))
	}
	result := Score(session.Questions, answers)

	session.State = SessionGraded
	if err := s.sessions.Put(ctx, session); err != nil {
		return domain.Result{}, fmt.Errorf("store session: %w", err)
	}

	entry := domain.LeaderboardEntry{
		PlayerName:    session.Config.PlayerName,
		Score:         result.Score,
		Accuracy:      result.Accuracy,
		Category:      session.Config.Category,
		Difficulty:    session.Config.Difficulty,
		QuestionCount: result.TotalQuestions,
		CorrectCount:  result.CorrectCount,
	}
	if err := s.leaderboard.Record(ctx, entry); err != nil {
		// The grading itself succeeded; surface the dropped record in logs
		// rather than failing the submission.
		log.Printf("session %s: leaderboard record failed: %v", session.ID, err)
	}

	if err := s.events.Publish(EventQuizCompleted, QuizCompletedEvent{
		PlayerName: session.Config.PlayerName,
		Category:   session.Config.Category,
		Difficulty: session.Config.Difficulty,
		Score:      result.Score,
		Accuracy:   result.Accuracy,
		Questions:  result.TotalQuestions,
	}); err != nil {
		log.Printf("session %s: publish %s failed: %v", session.ID, EventQuizCompleted, err)
	}

	return result, nil
}

// Abandon releases a session without grading it.
func (s *QuizService) Abandon(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// HighScores returns the persisted leaderboard.
func (s *QuizService) HighScores(ctx context.Context) []domain.LeaderboardEntry {
	return s.leaderboard.Top(ctx)
}
