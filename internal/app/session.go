package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"ultimate-quiz-service/internal/domain"
)

// Session states. A session is created active; grading moves it to graded,
// after which it only exists as a short-lived tombstone that rejects repeat
// submissions.
const (
	SessionActive = "active"
	SessionGraded = "graded"
)

// Session is the server-side truth for one running quiz: the exact ordered
// questions shown to the player, answer keys included. It is never sent to
// the player in full; use Redacted for the client view.
type Session struct {
	ID        string            `json:"id"`
	Questions []domain.Question `json:"questions"`
	Config    domain.QuizConfig `json:"config"`
	State     string            `json:"state"`
	CreatedAt time.Time         `json:"created_at"`
}

// Redacted strips answer keys from the session's questions. IDs are the
// positional indexes answers are graded against.
func (s *Session) Redacted() []domain.RedactedQuestion {
	redacted := make([]domain.RedactedQuestion, 0, len(s.Questions))
	for i, q := range s.Questions {
		redacted = append(redacted, domain.RedactedQuestion{
			ID:          i,
			Text:        q.Text,
			Options:     q.Options,
			Explanation: q.Explanation,
			Difficulty:  q.Difficulty,
		})
	}
	return redacted
}

// SessionStore abstracts where active sessions live (in-memory, Redis, ...).
// Implementations expire sessions after a TTL so abandoned quizzes do not
// accumulate.
type SessionStore interface {
	Put(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// newSessionID returns an opaque handle. The handle carries no meaning; all
// session state stays server-side.
func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in a bad state anyway.
		panic(err)
	}
	return hex.EncodeToString(buf)
}
