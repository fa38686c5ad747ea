package domain

// Difficulty levels recognized by the catalog. "mixed" is a selection mode,
// not a bucket.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyMixed  = "mixed"
)

// RandomMix is the sentinel category meaning "pool questions from every category".
const RandomMix = "Random Mix"

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// Unanswered marks a question the player skipped.
const Unanswered = -1

// LeaderboardCapacity bounds the persisted high-score list.
const LeaderboardCapacity = 10

// TimestampLayout is the leaderboard timestamp format kept for compatibility
// with existing high_scores.json files.
const TimestampLayout = "2006-01-02 15:04:05"

// Question is a single multiple-choice question. CorrectIndex points into
// Options; Difficulty may be empty for catalog entries that predate tagging.
type Question struct {
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct"`
	Explanation  string   `json:"explanation"`
	Difficulty   string   `json:"difficulty,omitempty"`
}

// Buckets holds a category's questions split by difficulty. Every category
// always carries all three buckets, possibly empty.
type Buckets struct {
	Easy   []Question `json:"easy"`
	Medium []Question `json:"medium"`
	Hard   []Question `json:"hard"`
}

// ForDifficulty returns the bucket for a single difficulty level.
func (b Buckets) ForDifficulty(difficulty string) []Question {
	switch difficulty {
	case DifficultyEasy:
		return b.Easy
	case DifficultyMedium:
		return b.Medium
	case DifficultyHard:
		return b.Hard
	}
	return nil
}

// Total counts questions across all three buckets.
func (b Buckets) Total() int {
	return len(b.Easy) + len(b.Medium) + len(b.Hard)
}

// Normalized replaces nil buckets with empty slices so every category always
// serializes with all three difficulty keys present.
func (b Buckets) Normalized() Buckets {
	if b.Easy == nil {
		b.Easy = []Question{}
	}
	if b.Medium == nil {
		b.Medium = []Question{}
	}
	if b.Hard == nil {
		b.Hard = []Question{}
	}
	return b
}

// Catalog is the full question bank: category name to difficulty buckets.
type Catalog map[string]Buckets

// Clone deep-copies the catalog so callers can mutate without aliasing the
// stored copy.
func (c Catalog) Clone() Catalog {
	clone := make(Catalog, len(c))
	for name, buckets := range c {
		clone[name] = Buckets{
			Easy:   append([]Question(nil), buckets.Easy...),
			Medium: append([]Question(nil), buckets.Medium...),
			Hard:   append([]Question(nil), buckets.Hard...),
		}
	}
	return clone
}

// CategoryInfo is the lightweight category listing shown before a quiz starts.
type CategoryInfo struct {
	Name          string `json:"name"`
	QuestionCount int    `json:"count"`
}

// Stats is the read-only aggregation over the catalog.
type Stats struct {
	TotalQuestions  int            `json:"total_questions"`
	TotalCategories int            `json:"total_categories"`
	CategoryStats   map[string]int `json:"category_stats"`
	DifficultyStats map[string]int `json:"difficulty_stats"`
}

// QuizConfig captures what a session was composed from.
type QuizConfig struct {
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	PlayerName string `json:"player_name"`
}

// RedactedQuestion is the player-facing view of a session question. The
// correct index is deliberately absent.
type RedactedQuestion struct {
	ID          int      `json:"id"`
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	Explanation string   `json:"explanation"`
	Difficulty  string   `json:"difficulty"`
}

// Grade is the letter tier plus its fixed message.
type Grade struct {
	Tier    string `json:"grade"`
	Message string `json:"message"`
}

// QuestionResult is the per-question breakdown of a graded quiz.
type QuestionResult struct {
	QuestionID    int    `json:"question_id"`
	UserAnswer    int    `json:"user_answer"`
	CorrectAnswer int    `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Points        int    `json:"points"`
	Explanation   string `json:"explanation"`
}

// Result is the outcome of grading one session.
type Result struct {
	Score          int              `json:"score"`
	CorrectCount   int              `json:"correct_count"`
	TotalQuestions int              `json:"total_questions"`
	Accuracy       float64          `json:"accuracy"`
	Grade          Grade            `json:"grade"`
	PerQuestion    []QuestionResult `json:"results"`
}

// LeaderboardEntry is one persisted high score.
type LeaderboardEntry struct {
	PlayerName    string  `json:"name"`
	Score         int     `json:"score"`
	Accuracy      float64 `json:"accuracy"`
	Category      string  `json:"category"`
	Difficulty    string  `json:"difficulty"`
	QuestionCount int     `json:"questions"`
	CorrectCount  int     `json:"correct"`
	Timestamp     string  `json:"timestamp"`
}

// Standings is the snapshot pushed to live leaderboard subscribers.
type Standings struct {
	Entries   []LeaderboardEntry `json:"entries"`
	UpdatedAt string             `json:"updatedAt"`
}
