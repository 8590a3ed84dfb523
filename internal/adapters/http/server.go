package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aretw0/vine/internal/logging"
	"github.com/aretw0/vine/internal/runtime"
	"github.com/aretw0/vine/pkg/domain"
)

// Quiz is the slice of the engine facade the HTTP adapter needs.
type Quiz interface {
	CurrentQuestion(ctx context.Context, quizID string) (*runtime.View, error)
	Answer(ctx context.Context, quizID, answerID string) (*runtime.View, error)
	Rewind(ctx context.Context, quizID, questionID string) (*runtime.View, error)
}

// Server exposes a Quiz over the filler REST API.
type Server struct {
	quiz   Quiz
	logger *slog.Logger
}

type answerRequest struct {
	AnswerID string `json:"answer_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler builds the HTTP handler for the filler API.
func NewHandler(quiz Quiz, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{quiz: quiz, logger: logger}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)

	r.Get("/health", s.Health)
	r.Route("/api/filler/{quizID}", func(r chi.Router) {
		r.Get("/current_question", s.CurrentQuestion)
		r.Post("/answer", s.Answer)
		r.Post("/reset_to_previous_question/{questionID}", s.Rewind)
	})
	return r
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CurrentQuestion handles GET /api/filler/{quizID}/current_question.
// A quiz id seen for the first time starts a fresh session.
func (s *Server) CurrentQuestion(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")
	view, err := s.quiz.CurrentQuestion(r.Context(), quizID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Answer handles POST /api/filler/{quizID}/answer.
func (s *Server) Answer(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")

	var body answerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if body.AnswerID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "answer_id is required"})
		return
	}

	view, err := s.quiz.Answer(r.Context(), quizID, body.AnswerID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Rewind handles POST /api/filler/{quizID}/reset_to_previous_question/{questionID}.
func (s *Server) Rewind(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizID")
	questionID := chi.URLParam(r, "questionID")

	view, err := s.quiz.Rewind(r.Context(), quizID, questionID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps engine errors onto HTTP statuses. Caller mistakes are 4xx,
// broken quiz configuration is 500, anything else is treated as a storage
// outage and reported 503.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMismatchedAnswer), errors.Is(err, domain.ErrQuizComplete):
		return http.StatusConflict
	case domain.IsCallerError(err):
		return http.StatusBadRequest
	case domain.IsConfigError(err):
		return http.StatusInternalServerError
	default:
		return http.StatusServiceUnavailable
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
