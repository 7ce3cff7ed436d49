// Package server exposes the assistant over HTTP as a JSON API.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"paisahub/finassist/internal/assistant"
	"paisahub/finassist/internal/categorizer"
	"paisahub/finassist/internal/logging"
	"paisahub/finassist/internal/nlparser"
)

// Server routes API requests to the assistant and the text-understanding
// components.
type Server struct {
	assistant   *assistant.Assistant
	parser      *nlparser.Parser
	categorizer *categorizer.Categorizer
	logger      logging.Logger
	httpServer  *http.Server
}

// New creates a Server. A nil categorizer disables the AI endpoints, which
// then answer 503.
func New(addr string, a *assistant.Assistant, p *nlparser.Parser, c *categorizer.Categorizer, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.GetLogger()
	}
	s := &Server{
		assistant:   a,
		parser:      p,
		categorizer: c,
		logger:      logger,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/ai/status", s.handleAIStatus)

	mux.HandleFunc("POST /api/budget", s.handleCreateBudget)
	mux.HandleFunc("GET /api/budget", s.handleGetBudget)

	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses", s.handleGetExpenses)
	mux.HandleFunc("POST /api/expenses/nlp", s.handleCreateExpenseNLP)
	mux.HandleFunc("GET /api/expenses/suggest-category", s.handleSuggestCategory)
	mux.HandleFunc("GET /api/expenses/summary", s.handleExpenseSummary)
	mux.HandleFunc("DELETE /api/expenses/reset", s.handleResetExpenses)

	mux.HandleFunc("POST /api/debts", s.handleCreateDebt)
	mux.HandleFunc("GET /api/debts", s.handleGetDebts)
	mux.HandleFunc("GET /api/debts/payoff-plan", s.handlePayoffPlan)

	mux.HandleFunc("POST /api/goals", s.handleCreateGoal)
	mux.HandleFunc("GET /api/goals", s.handleGetGoals)

	mux.HandleFunc("GET /api/dashboard/stats", s.handleDashboardStats)

	return corsMiddleware(s.logRequests(mux))
}

// ListenAndServe starts serving and blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("HTTP server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.WithFields(
			logging.Field{Key: "method", Value: r.Method},
			logging.Field{Key: "path", Value: r.URL.Path},
			logging.Field{Key: "duration", Value: time.Since(start).String()},
		).Debug("Handled request")
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, detail string) {
	s.respondJSON(w, status, map[string]any{"success": false, "detail": detail})
}

func (s *Server) respondData(w http.ResponseWriter, data any) {
	s.respondJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}
