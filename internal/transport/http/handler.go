// Package http exposes the quiz use cases over JSON endpoints plus a
// websocket leaderboard feed. Response bodies keep the {"success": ...}
// envelope the existing browser client expects.
package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"ultimate-quiz-service/internal/app"
	"ultimate-quiz-service/internal/domain"
)

type Handler struct {
	quiz     *app.QuizService
	catalog  *app.CatalogService
	board    *app.Leaderboard
	upgrader websocket.Upgrader
}

func NewHandler(quiz *app.QuizService, catalog *app.CatalogService, board *app.Leaderboard) *Handler {
	return &Handler{
		quiz:    quiz,
		catalog: catalog,
		board:   board,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Register mounts all API routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/categories", h.handleCategories)
	mux.HandleFunc("/api/start-quiz", h.handleStartQuiz)
	mux.HandleFunc("/api/submit-quiz", h.handleSubmitQuiz)
	mux.HandleFunc("/api/high-scores", h.handleHighScores)
	mux.HandleFunc("/api/stats", h.handleStats)
	mux.HandleFunc("/api/questions", h.handleQuestions)
	mux.HandleFunc("/api/import-questions", h.handleImportQuestions)
	mux.HandleFunc("/api/add-question", h.handleAddQuestion)
	mux.HandleFunc("/api/delete-question", h.handleDeleteQuestion)
	mux.HandleFunc("/ws/leaderboard", h.ServeLeaderboardWS)
}

type startQuizRequest struct {
	Category     string `json:"category"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"num_questions"`
	PlayerName   string `json:"player_name"`
}

type submitQuizRequest struct {
	SessionID string `json:"session_id"`
	// Answers align positionally with the session's questions; null means
	// the player skipped that question.
	Answers []*int `json:"answers"`
}

type addQuestionRequest struct {
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type importQuestionsRequest struct {
	Questions domain.Catalog `json:"questions"`
}

type deleteQuestionRequest struct {
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
	QuestionIndex *int   `json:"question_index"`
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"categories": h.catalog.Categories(r.Context()),
	})
}

func (h *Handler) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	defer r.Body.Close()

	var req startQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Category == "" {
		req.Category = "General Knowledge"
	}
	if req.Difficulty == "" {
		req.Difficulty = domain.DifficultyMixed
	}
	if req.PlayerName == "" {
		req.PlayerName = "Anonymous"
	}

	resp, err := h.quiz.Start(r.Context(), app.StartRequest{
		Category:   req.Category,
		Difficulty: req.Difficulty,
		Count:      req.NumQuestions,
		PlayerName: req.PlayerName,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"session_id": resp.SessionID,
		"questions":  resp.Questions,
	})
}

func (h *Handler) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	defer r.Body.Close()

	var req submitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	answers := make([]int, len(req.Answers))
	for i, answer := range req.Answers {
		if answer == nil {
			answers[i] = domain.Unanswered
			continue
		}
		answers[i] = *answer
	}

	result, err := h.quiz.Submit(r.Context(), req.SessionID, answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": result,
	})
}

func (h *Handler) handleHighScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	scores := h.quiz.HighScores(r.Context())
	if scores == nil {
		scores = []domain.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"scores":  scores,
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats":   h.catalog.Stats(r.Context()),
	})
}

// handleQuestions returns the full bank, answer keys included. Admin surface.
func (h *Handler) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"questions": h.catalog.Export(r.Context()),
	})
}

// handleImportQuestions merges a catalog into the bank. The body uses the
// same {"questions": ...} shape /api/questions exports, so a dumped bank can
// be imported back unchanged.
func (h *Handler) handleImportQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	defer r.Body.Close()

	var req importQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Questions) == 0 {
		writeError(w, http.StatusBadRequest, "questions are required")
		return
	}

	if err := h.catalog.Import(r.Context(), req.Questions); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Questions imported successfully",
	})
}

func (h *Handler) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	defer r.Body.Close()

	var req addQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.CorrectAnswer == nil {
		writeError(w, http.StatusBadRequest, "correct_answer is required")
		return
	}

	err := h.catalog.AddQuestion(r.Context(), req.Category, req.Difficulty, domain.Question{
		Text:         req.Question,
		Options:      req.Options,
		CorrectIndex: *req.CorrectAnswer,
		Explanation:  req.Explanation,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Question added successfully",
	})
}

func (h *Handler) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	defer r.Body.Close()

	var req deleteQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.QuestionIndex == nil {
		writeError(w, http.StatusBadRequest, "question_index is required")
		return
	}

	if err := h.catalog.DeleteQuestion(r.Context(), req.Category, req.Difficulty, *req.QuestionIndex); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Question deleted successfully",
	})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrIndexOutOfRange):
		writeError(w, http.StatusBadRequest, "invalid question index")
	case errors.Is(err, domain.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, "category not found")
	case errors.Is(err, domain.ErrEmptySelection):
		writeError(w, http.StatusNotFound, "no questions available for this selection")
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "no active quiz session")
	case errors.Is(err, domain.ErrSessionAlreadyGraded):
		writeError(w, http.StatusConflict, "quiz already submitted")
	default:
		log.Printf("request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "request failed")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
