// Package server exposes the learning tools over HTTP. Every tool is a
// POST to /tools/{name} with a JSON argument object; responses carry a
// chat-ready text rendering alongside the structured data.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/example/hsktutor/internal/database"
	"github.com/example/hsktutor/internal/quiz"
	"github.com/example/hsktutor/internal/vocabulary"
)

// Server wires the tool handlers to their backing components
type Server struct {
	vocab       *database.VocabularyRepository
	progress    *database.ProgressRepository
	results     *database.QuizResultRepository
	manager     *vocabulary.Manager
	builder     *quiz.Builder
	coordinator *quiz.Coordinator
	log         *logrus.Logger
}

// New creates a tool server
func New(
	vocab *database.VocabularyRepository,
	progress *database.ProgressRepository,
	results *database.QuizResultRepository,
	manager *vocabulary.Manager,
	builder *quiz.Builder,
	coordinator *quiz.Coordinator,
	log *logrus.Logger,
) *Server {
	return &Server{
		vocab:       vocab,
		progress:    progress,
		results:     results,
		manager:     manager,
		builder:     builder,
		coordinator: coordinator,
		log:         log,
	}
}

// Routes builds the HTTP router
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/tools/{name}", s.handleTool)

	return r
}

// toolResponse is the envelope every tool returns
type toolResponse struct {
	Text string      `json:"text"`
	Data interface{} `json:"data,omitempty"`
}

// invalidArgumentError marks a caller mistake in the tool arguments
type invalidArgumentError struct {
	message string
}

func (e *invalidArgumentError) Error() string {
	return e.message
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	args := json.RawMessage("{}")
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&args); err != nil && !errors.Is(err, io.EOF) {
			s.writeError(w, &invalidArgumentError{message: "request body must be a JSON object"})
			return
		}
	}

	handler, ok := s.toolHandlers()[name]
	if !ok {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "Unknown tool: " + name})
		return
	}

	response, err := handler(args)
	if err != nil {
		s.log.WithError(err).WithField("tool", name).Error("tool call failed")
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, response)
}

// toolHandlers maps tool names to their implementations
func (s *Server) toolHandlers() map[string]func(json.RawMessage) (*toolResponse, error) {
	return map[string]func(json.RawMessage) (*toolResponse, error){
		"learn_vocabulary":          s.learnVocabulary,
		"get_vocabulary_by_level":   s.getVocabularyByLevel,
		"search_vocabulary":         s.searchVocabulary,
		"get_vocabulary_statistics": s.getVocabularyStatistics,
		"get_vocabulary_for_review": s.getVocabularyForReview,
		"add_vocabulary":            s.addVocabulary,
		"take_quiz":                 s.takeQuiz,
		"submit_quiz_answers":       s.submitQuizAnswers,
		"get_quiz_history":          s.getQuizHistory,
		"get_progress_stats":        s.getProgressStats,
		"export_to_anki":            s.exportToAnki,
		"clear_progress":            s.clearProgress,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.WithError(err).Error("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	var (
		invalidArgument *invalidArgumentError
		invalidLevel    *database.InvalidLevelError
		duplicate       *database.DuplicateVocabularyError
		notFound        *quiz.SessionNotFoundError
		mismatch        *quiz.AnswerCountMismatchError
		insufficient    *quiz.InsufficientVocabularyError
	)
	switch {
	case errors.As(err, &invalidArgument), errors.As(err, &invalidLevel), errors.As(err, &mismatch):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &duplicate):
		return http.StatusConflict
	case errors.As(err, &insufficient):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
